package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/Qctopus/contingento-engine/pkg/cli/config"
	"github.com/Qctopus/contingento-engine/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var refDataPath string

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a reference data TOML file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "reference-data",
				Usage:       "Reference data TOML file (required)",
				Required:    true,
				Sources:     cli.EnvVars("CONTINGENTO_REFERENCE_DATA"),
				Destination: &refDataPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			_, data, err := config.LoadAppConfiguration(refDataPath)
			if err != nil {
				return goerr.Wrap(err, "reference data validation failed")
			}

			logger.Info("Reference data validation passed",
				"path", refDataPath,
				"hazards", len(data.Hazards),
				"locations", len(data.Locations),
				"hazard_profiles", len(data.HazardProfiles),
				"business_types", len(data.BusinessTypes),
				"vulnerability_profiles", len(data.Vulnerabilities),
				"multiplier_rules", len(data.Multipliers),
				"strategies", len(data.Strategies),
			)
			return nil
		},
	}
}
