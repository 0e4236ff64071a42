package seed

import (
	"context"
	"fmt"
	"time"

	"placementdesk/internal/store"
	"placementdesk/internal/utils"
	"placementdesk/pkg/types"
)

var sampleCompanies = []*types.Company{
	{
		JobTitle:       "Backend Engineer (Graduate)",
		JobDescription: "Build and operate Go services backing the placement platform.",
		CompanyName:    "Northwind Labs",
		Location:       "Bengaluru",
		SalaryRange:    "6-9 LPA",
		Duration:       "Full time",
		Status:         types.CompanyStatusActive,
		JobRole:        "Computer Science",
		TechStacks:     []string{"Go", "PostgreSQL", "Redis"},
		EligibilityCriteria: &types.EligibilityCriteria{
			MinCGPA:     utils.Float64Ptr(7.5),
			MinHSCMarks: utils.Float64Ptr(75),
			MinSSCMarks: utils.Float64Ptr(75),
			MaxGapYears: utils.IntPtr(1),
			MaxBacklogs: utils.IntPtr(0),
		},
		ApplicationDeadline: time.Now().AddDate(0, 2, 0),
	},
	{
		JobTitle:       "Embedded Systems Intern",
		JobDescription: "Firmware work on industrial sensor gateways.",
		CompanyName:    "Meridian Devices",
		SalaryRange:    "25k/month stipend",
		Duration:       "6 months",
		Status:         types.CompanyStatusActive,
		JobRole:        "Electronics",
		TechStacks:     []string{"C", "FreeRTOS"},
		EligibilityCriteria: &types.EligibilityCriteria{
			MinCGPA:     utils.Float64Ptr(6.5),
			MaxBacklogs: utils.IntPtr(2),
		},
		ApplicationDeadline: time.Now().AddDate(0, 1, 0),
	},
}

func Companies(ctx context.Context, repo *store.CompanyRepository) ([]string, error) {
	existing, err := repo.Companies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	byName := make(map[string]bool, len(existing))
	for _, company := range existing {
		byName[company.CompanyName] = true
	}

	seeded := make([]string, 0, len(sampleCompanies))
	for _, sample := range sampleCompanies {
		if byName[sample.CompanyName] {
			continue
		}

		company := *sample
		if err := repo.CreateCompany(ctx, &company); err != nil {
			return seeded, fmt.Errorf("create company %s: %w", sample.CompanyName, err)
		}
		seeded = append(seeded, company.CompanyName)
	}

	return seeded, nil
}
