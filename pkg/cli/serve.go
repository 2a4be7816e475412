package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/Qctopus/contingento-engine/pkg/cli/config"
	httpctrl "github.com/Qctopus/contingento-engine/pkg/controller/http"
	"github.com/Qctopus/contingento-engine/pkg/usecase"
	"github.com/Qctopus/contingento-engine/pkg/utils/async"
	"github.com/Qctopus/contingento-engine/pkg/utils/errutil"
	"github.com/Qctopus/contingento-engine/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var refDataPath string
	var strategyLimit int
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CONTINGENTO_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "reference-data",
			Usage:       "Reference data TOML file to seed into the repository at startup",
			Sources:     cli.EnvVars("CONTINGENTO_REFERENCE_DATA"),
			Destination: &refDataPath,
		},
		&cli.IntFlag{
			Name:        "strategy-limit",
			Usage:       "Ranked strategy cutoff (0 disables the cutoff)",
			Value:       8,
			Sources:     cli.EnvVars("CONTINGENTO_STRATEGY_LIMIT"),
			Destination: &strategyLimit,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				errutil.Handle(ctx, repo.Close(), "failed to close repository")
			}()

			var refData *config.ReferenceData
			if refDataPath != "" {
				_, data, err := config.LoadAppConfiguration(refDataPath)
				if err != nil {
					return goerr.Wrap(err, "failed to load reference data")
				}
				if err := seedRepository(ctx, repo, data); err != nil {
					return goerr.Wrap(err, "failed to seed reference data")
				}
				refData = data
				logging.Default().Info("Reference data seeded",
					"path", refDataPath,
					"hazards", len(data.Hazards),
					"strategies", len(data.Strategies),
				)
			}

			uc, err := usecase.New(repo, usecase.WithStrategyLimit(strategyLimit))
			if err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}

			if refData != nil {
				warmCaches(ctx, uc, refData)
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Shutting down HTTP server", "signal", sig.String())
			case <-ctx.Done():
				logging.Default().Info("Shutting down HTTP server", "reason", "context cancelled")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			return nil
		},
	}
}

// warmCaches primes the reference data caches for every seeded profile so
// the first assessment requests skip the repository round trips.
func warmCaches(ctx context.Context, uc *usecase.UseCases, data *config.ReferenceData) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		refData := uc.RefData()
		for _, p := range data.HazardProfiles {
			refData.HazardLevel(ctx, p.LocationID, p.HazardID)
		}
		for _, v := range data.Vulnerabilities {
			refData.Vulnerability(ctx, v.BusinessTypeID, v.HazardID)
		}
		logging.From(ctx).Debug("reference data caches warmed",
			"hazard_profiles", len(data.HazardProfiles),
			"vulnerability_profiles", len(data.Vulnerabilities),
		)
		return nil
	})
}
