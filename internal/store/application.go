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

const applicationTableName = "placementdesk.job_applications"

var applicationColumns = utils.StructTagValues(types.JobApplication{})

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func (r *ApplicationRepository) Applications(ctx context.Context) ([]*types.JobApplication, error) {

	query, args, err := psql().Select(applicationColumns...).From(applicationTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate application list query: %w", err)
	}

	var applications = make([]*types.JobApplication, 0)
	err = pgxscan.Select(ctx, r.pool, &applications, query, args...)
	if err != nil {
		return nil, utils.ErrorWrapOrNil(err, "failed to list job applications")
	}

	return applications, nil
}

func (r *ApplicationRepository) ApplicationByID(ctx context.Context, id string) (*types.JobApplication, error) {
	return r.application(ctx, sq.Eq{"id": id})
}

// ApplicationByReg looks an application up by its registration code, the key
// used for deep links.
func (r *ApplicationRepository) ApplicationByReg(ctx context.Context, reg string) (*types.JobApplication, error) {
	return r.application(ctx, sq.Eq{"reg": reg})
}

func (r *ApplicationRepository) application(ctx context.Context, where sq.Eq) (*types.JobApplication, error) {

	query, args, err := psql().Select(applicationColumns...).From(applicationTableName).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate application query: %w", err)
	}

	var application = new(types.JobApplication)
	err = pgxscan.Get(ctx, r.pool, application, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrApplicationNotFound
	}

	return application, nil
}

func (r *ApplicationRepository) CreateApplication(ctx context.Context, application *types.JobApplication) error {

	now := time.Now()
	if application.ID == "" {
		application.ID = utils.NanoID()
	}
	application.CreatedAt = now
	application.UpdatedAt = now

	applicationMap := utils.StructToMap(application)

	query, args, err := psql().Insert(applicationTableName).SetMap(applicationMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert application query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create job application")

}

// UpdateApplicationFields writes only the named columns. Callers are expected
// to have validated the map against the field descriptor table; the column set
// of a single call is committed atomically.
func (r *ApplicationRepository) UpdateApplicationFields(ctx context.Context, id string, fields map[string]any) error {

	if len(fields) == 0 {
		return nil
	}

	setMap := make(map[string]any, len(fields)+1)
	for column, value := range fields {
		setMap[column] = value
	}
	setMap["updated_at"] = time.Now()

	query, args, err := psql().Update(applicationTableName).SetMap(setMap).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update application query for application %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return utils.ErrorWrapOrNil(err, "failed to update job application")
	}

	if tag.RowsAffected() == 0 {
		return types.ErrApplicationNotFound
	}

	return nil

}
