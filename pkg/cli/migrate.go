package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/Qctopus/contingento-engine/pkg/cli/config"
	"github.com/Qctopus/contingento-engine/pkg/repository/firestore"
	"github.com/Qctopus/contingento-engine/pkg/utils/logging"
)

func cmdMigrate() *cli.Command {
	var refDataPath string
	var projectID string
	var databaseID string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Seed a Firestore repository from a reference data TOML file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "reference-data",
				Usage:       "Reference data TOML file (required)",
				Required:    true,
				Sources:     cli.EnvVars("CONTINGENTO_REFERENCE_DATA"),
				Destination: &refDataPath,
			},
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("CONTINGENTO_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Sources:     cli.EnvVars("CONTINGENTO_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Validate and report without writing",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			_, data, err := config.LoadAppConfiguration(refDataPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load reference data")
			}

			logger.Info("Migrate configuration",
				"path", refDataPath,
				"projectID", projectID,
				"databaseID", databaseID,
				"dryRun", dryRun)

			if dryRun {
				logger.Info("Dry run mode - no writes performed",
					"hazards", len(data.Hazards),
					"hazard_profiles", len(data.HazardProfiles),
					"business_types", len(data.BusinessTypes),
					"vulnerability_profiles", len(data.Vulnerabilities),
					"multiplier_rules", len(data.Multipliers),
					"strategies", len(data.Strategies),
				)
				return nil
			}

			repo, err := firestore.New(ctx, projectID, databaseID)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize firestore repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			if err := seedRepository(ctx, repo, data); err != nil {
				return goerr.Wrap(err, "failed to seed repository")
			}

			logger.Info("Reference data migrated",
				"hazards", len(data.Hazards),
				"strategies", len(data.Strategies),
			)
			return nil
		},
	}
}
