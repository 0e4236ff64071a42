package main

import (
	"context"
	"fmt"

	"placementdesk/internal/db"
	"placementdesk/internal/seed"
	"placementdesk/internal/store"

	"github.com/k0kubun/pp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with sample applications and companies",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		applicationRepo := store.NewApplicationRepository(pool)
		companyRepo := store.NewCompanyRepository(pool)

		logrus.Info("Seeding job applications...")
		regs, err := seed.Applications(ctx, applicationRepo)
		if err != nil {
			return fmt.Errorf("failed to seed job applications: %w", err)
		}

		logrus.Info("Seeding companies...")
		names, err := seed.Companies(ctx, companyRepo)
		if err != nil {
			return fmt.Errorf("failed to seed companies: %w", err)
		}

		pp.Println(regs, names)

		logrus.Info("Seed data created successfully")

		return nil
	},
}
