package store

import (
	"context"
	"fmt"
	"time"

	"placementdesk/internal/utils"
	"placementdesk/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyTableName = "placementdesk.companies"

var companyColumns = utils.StructTagValues(types.Company{})

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

func (r *CompanyRepository) Companies(ctx context.Context) ([]*types.Company, error) {

	query, args, err := psql().Select(companyColumns...).From(companyTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate company list query: %w", err)
	}

	var companies = make([]*types.Company, 0)
	err = pgxscan.Select(ctx, r.pool, &companies, query, args...)
	if err != nil {
		return nil, utils.ErrorWrapOrNil(err, "failed to list companies")
	}

	return companies, nil
}

func (r *CompanyRepository) CompanyByID(ctx context.Context, id string) (*types.Company, error) {

	query, args, err := psql().Select(companyColumns...).From(companyTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate company query: %w", err)
	}

	var company = new(types.Company)
	err = pgxscan.Get(ctx, r.pool, company, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrCompanyNotFound
	}

	return company, nil
}

func (r *CompanyRepository) CreateCompany(ctx context.Context, company *types.Company) error {

	now := time.Now()
	if company.ID == "" {
		company.ID = utils.NanoID()
	}
	if company.Location == "" {
		company.Location = "remote"
	}
	company.CreatedAt = now
	company.UpdatedAt = now

	companyMap := utils.StructToMap(company)

	query, args, err := psql().Insert(companyTableName).SetMap(companyMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert company query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create company")

}

func (r *CompanyRepository) UpdateCompany(ctx context.Context, id string, company *types.Company) error {

	company.ID = id
	company.UpdatedAt = time.Now()

	companyMap := utils.StructToMap(company)
	delete(companyMap, "created_at")

	query, args, err := psql().Update(companyTableName).SetMap(companyMap).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update company query for company %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return utils.ErrorWrapOrNil(err, "failed to update company")
	}

	if tag.RowsAffected() == 0 {
		return types.ErrCompanyNotFound
	}

	return nil

}

func (r *CompanyRepository) DeleteCompany(ctx context.Context, id string) error {

	query, args, err := psql().Delete(companyTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete company query for company %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return utils.ErrorWrapOrNil(err, "failed to delete company")
	}

	if tag.RowsAffected() == 0 {
		return types.ErrCompanyNotFound
	}

	return nil

}
