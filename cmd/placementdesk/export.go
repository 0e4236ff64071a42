package main

import (
	"fmt"
	"os"

	"placementdesk/internal/client"
	"placementdesk/internal/export"
	"placementdesk/internal/filter"
	"placementdesk/internal/utils"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var exportCommand = &cli.Command{
	Name:  "export",
	Usage: "Download the filtered application list from a running server as CSV",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "Base URL of the server",
			Value: "http://localhost:8080",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "Output file path",
			Value: export.FileName,
		},
		&cli.Float64Flag{Name: "cgpa", Usage: "Minimum CGPA"},
		&cli.Float64Flag{Name: "hsc", Usage: "Minimum HSC marks"},
		&cli.Float64Flag{Name: "ssc", Usage: "Minimum SSC marks"},
		&cli.IntFlag{Name: "gap-year", Usage: "Maximum gap years"},
		&cli.StringFlag{Name: "branch", Usage: "Branch (exact match)"},
	},
	Action: func(c *cli.Context) error {
		config, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := logrus.New()

		api, err := client.New(c.String("url"), logger)
		if err != nil {
			return err
		}

		ctx := c.Context
		if err := api.Login(ctx, config.AdminEmail, config.AdminPassword); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		applications, err := api.ListApplications(ctx)
		if err != nil {
			return fmt.Errorf("failed to list job applications: %w", err)
		}

		var criteria filter.Criteria
		if c.IsSet("cgpa") {
			criteria.MinCGPA = utils.Float64Ptr(c.Float64("cgpa"))
		}
		if c.IsSet("hsc") {
			criteria.MinHSC = utils.Float64Ptr(c.Float64("hsc"))
		}
		if c.IsSet("ssc") {
			criteria.MinSSC = utils.Float64Ptr(c.Float64("ssc"))
		}
		if c.IsSet("gap-year") {
			criteria.MaxGapYear = utils.IntPtr(c.Int("gap-year"))
		}
		criteria.Branch = c.String("branch")

		filtered := filter.Apply(applications, criteria)

		out, err := os.Create(c.String("out"))
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()

		if err := export.WriteCSV(out, filtered); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}

		logger.WithFields(logrus.Fields{
			"records": len(filtered),
			"total":   len(applications),
			"file":    c.String("out"),
		}).Info("export complete")

		return nil
	},
}
