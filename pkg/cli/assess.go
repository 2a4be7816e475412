package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/Qctopus/contingento-engine/pkg/cli/config"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"github.com/Qctopus/contingento-engine/pkg/repository/memory"
	"github.com/Qctopus/contingento-engine/pkg/usecase"
)

func cmdAssess() *cli.Command {
	var refDataPath string
	var locationID string
	var businessTypeID string
	var characteristicsPath string
	var hazards []string
	var asJSON bool

	return &cli.Command{
		Name:    "assess",
		Aliases: []string{"a"},
		Usage:   "Run a one-shot risk assessment against a reference data file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "reference-data",
				Usage:       "Reference data TOML file (required)",
				Required:    true,
				Sources:     cli.EnvVars("CONTINGENTO_REFERENCE_DATA"),
				Destination: &refDataPath,
			},
			&cli.StringFlag{
				Name:        "location",
				Usage:       "Location ID (required)",
				Required:    true,
				Destination: &locationID,
			},
			&cli.StringFlag{
				Name:        "business-type",
				Usage:       "Business type ID (required)",
				Required:    true,
				Destination: &businessTypeID,
			},
			&cli.StringFlag{
				Name:        "characteristics",
				Usage:       "JSON file mapping characteristic keys to boolean or numeric values",
				Destination: &characteristicsPath,
			},
			&cli.StringSliceFlag{
				Name:        "hazard",
				Usage:       "Hazard ID to assess (repeatable; all known hazards when omitted)",
				Destination: &hazards,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "Emit the raw recommendation as JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_, data, err := config.LoadAppConfiguration(refDataPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load reference data")
			}

			repo := memory.New()
			if err := seedRepository(ctx, repo, data); err != nil {
				return goerr.Wrap(err, "failed to seed reference data")
			}

			chars := model.Characteristics{}
			if characteristicsPath != "" {
				// #nosec G304 - path is expected to be provided by CLI argument
				raw, err := os.ReadFile(characteristicsPath)
				if err != nil {
					return goerr.Wrap(err, "failed to read characteristics file",
						goerr.V("path", characteristicsPath))
				}
				if err := json.Unmarshal(raw, &chars); err != nil {
					return goerr.Wrap(err, "failed to parse characteristics file",
						goerr.V("path", characteristicsPath))
				}
			}

			hazardIDs := make([]types.HazardID, len(hazards))
			for i, h := range hazards {
				hazardIDs[i] = types.HazardID(h)
			}

			uc, err := usecase.New(repo)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}

			rec, err := uc.Recommend(ctx, &usecase.AssessmentRequest{
				LocationID:      types.LocationID(locationID),
				BusinessTypeID:  types.BusinessTypeID(businessTypeID),
				Characteristics: chars,
				HazardIDs:       hazardIDs,
			})
			if err != nil {
				return goerr.Wrap(err, "assessment failed")
			}

			if asJSON {
				out, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return goerr.Wrap(err, "failed to marshal recommendation")
				}
				fmt.Println(string(out))
				return nil
			}

			renderRecommendation(rec)
			return nil
		},
	}
}

func renderRecommendation(rec *model.Recommendation) {
	bold := color.New(color.Bold)

	bold.Println("Risk assessment")
	for _, risk := range rec.Risks {
		estimated := ""
		if risk.HazardLevel.Estimated || risk.Vulnerability.Estimated {
			estimated = color.YellowString(" (estimated)")
		}
		fmt.Printf("  %-24s base %2d  x%.2f  score %2d  %s%s\n",
			risk.HazardName,
			risk.CompositeBase,
			risk.CombinedMultiplier,
			risk.FinalScore,
			tierLabel(risk.Tier),
			estimated,
		)
		for _, rule := range risk.AppliedRules {
			fmt.Printf("      %s (x%.2f): %s\n", rule.Name, rule.Factor, rule.Reasoning)
		}
	}

	fmt.Println()
	if rec.NoGuidance {
		color.Yellow("No specific guidance for this hazard set")
		return
	}

	bold.Println("Recommended strategies")
	for i, rs := range rec.Strategies {
		fmt.Printf("  %d. %s [%s, %s, %s] relevance %d\n",
			i+1,
			rs.Strategy.Name,
			rs.Strategy.Category,
			rs.Strategy.Cost,
			rs.Strategy.Selection,
			rs.Relevance,
		)
		for _, line := range rs.Rationale {
			fmt.Printf("      %s\n", line)
		}
		for _, step := range rs.Strategy.Steps {
			fmt.Printf("      - [%s/%s] %s\n", step.Phase, step.Timing, step.Title)
		}
	}
}

func tierLabel(tier types.RiskTier) string {
	switch tier {
	case types.TierLow:
		return color.GreenString(tier.String())
	case types.TierModerate:
		return color.YellowString(tier.String())
	case types.TierHigh:
		return color.New(color.FgYellow, color.Bold).Sprint(tier.String())
	case types.TierVeryHigh:
		return color.RedString(tier.String())
	case types.TierExtreme:
		return color.New(color.FgRed, color.Bold).Sprint(tier.String())
	default:
		return tier.String()
	}
}
