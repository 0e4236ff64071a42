package seed

import (
	"context"
	"errors"
	"fmt"

	"placementdesk/internal/store"
	"placementdesk/internal/utils"
	"placementdesk/pkg/types"
)

var sampleApplications = []*types.JobApplication{
	{
		Reg:      "REG2024-001",
		FullName: "Ananya Sharma",
		Email:    "ananya.sharma+seed1@example.com",
		Phone:    "+91-9000000001",
		DOB:      "2002-04-18",
		Gender:   types.GenderFemale,
		Address:  "14 MG Road, Pune",
		CGPA:     8.5,
		HSC:      88,
		SSC:      91,
		Backlogs: 0,
		Branch:   "Computer Science",
		Skills:   "Go, PostgreSQL, React",
		Projects: "Campus placement portal; library management system",
		Status:   types.StatusPending,
		Placed:   types.PlacedNo,
		CGPAProof: &types.ProofDocument{
			URL:          "https://placement-proofs.s3.amazonaws.com/seed/reg2024-001-cgpa.pdf",
			Verification: &types.Verification{IsVerified: true, VerifiedBy: "admin@placementdesk.example"},
		},
		SSCProof: &types.ProofDocument{
			URL: "https://placement-proofs.s3.amazonaws.com/seed/reg2024-001-ssc.pdf",
		},
	},
	{
		Reg:      "REG2024-002",
		FullName: "Rohan Verma",
		Email:    "rohan.verma+seed2@example.com",
		Phone:    "+91-9000000002",
		DOB:      "2001-11-02",
		Gender:   types.GenderMale,
		Address:  "7 Residency Road, Bengaluru",
		CGPA:     9.1,
		HSC:      93,
		SSC:      89,
		GapYear:  utils.IntPtr(1),
		Backlogs: 0,
		Branch:   "Information Technology",
		Skills:   "Java, Spring, MySQL",
		Internship: "Six months at a fintech startup working on payment " +
			"reconciliation.",
		Status: types.StatusAccepted,
		Placed: types.PlacedYes,
		Amount: utils.Float64Ptr(650000),
	},
	{
		Reg:      "REG2024-003",
		FullName: "Priya Nair",
		Email:    "priya.nair+seed3@example.com",
		Phone:    "+91-9000000003",
		DOB:      "2002-07-25",
		Gender:   types.GenderFemale,
		Address:  "22 Marine Drive, Kochi",
		CGPA:     7.4,
		HSC:      76,
		SSC:      81,
		Backlogs: 2,
		Branch:   "Electronics",
		Skills:   "C, embedded systems",
		Status:   types.StatusPending,
		Placed:   types.PlacedNo,
	},
	{
		Reg:      "REG2024-004",
		FullName: "Arjun Mehta",
		Email:    "arjun.mehta+seed4@example.com",
		Phone:    "+91-9000000004",
		DOB:      "2000-01-30",
		Gender:   types.GenderMale,
		Address:  "3 Civil Lines, Jaipur",
		CGPA:     6.8,
		HSC:      71,
		SSC:      78,
		GapYear:  utils.IntPtr(2),
		Backlogs: 1,
		Branch:   "Computer Science",
		Skills:   "Python, Django",
		Status:   types.StatusRejected,
		Placed:   types.PlacedNo,
		GapYearProof: &types.ProofDocument{
			URL: "https://placement-proofs.s3.amazonaws.com/seed/reg2024-004-gap.pdf",
		},
	},
}

// Applications inserts the sample records, skipping registration codes that
// already exist.
func Applications(ctx context.Context, repo *store.ApplicationRepository) ([]string, error) {
	seeded := make([]string, 0, len(sampleApplications))

	for _, sample := range sampleApplications {
		_, err := repo.ApplicationByReg(ctx, sample.Reg)
		if err == nil {
			continue
		}
		if !errors.Is(err, types.ErrApplicationNotFound) {
			return seeded, fmt.Errorf("check application %s: %w", sample.Reg, err)
		}

		application := sample.Clone()
		if err := repo.CreateApplication(ctx, application); err != nil {
			return seeded, fmt.Errorf("create application %s: %w", sample.Reg, err)
		}
		seeded = append(seeded, sample.Reg)
	}

	return seeded, nil
}
