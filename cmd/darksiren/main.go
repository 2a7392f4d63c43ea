package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"darksiren/adapters/cosmology"
	"darksiren/adapters/excel"
	"darksiren/adapters/memory"
	"darksiren/adapters/postgres"
	"darksiren/adapters/rng"
	"darksiren/app"
	"darksiren/domain/catalog"
	"darksiren/domain/gw"
	"darksiren/domain/inference"
	"darksiren/internal"
	"darksiren/internal/config"
	"darksiren/internal/numerics"
	"darksiren/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "darksiren",
		Short: "Dark-siren H0 inference from simulated GW events and a galaxy catalog",
	}

	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full analysis with configuration from the environment",
		Long: `Run density construction, event simulation and H0 posterior inference.

Configuration is read from environment variables (and .env if present):
CATALOG_FILE, VARIANT, N_DET, SIGMA_DL, DL_THR, ZCUT_RATE, SEED,
H0_MIN, H0_MAX, H0_STEPS, DATABASE_URL, ...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := internal.DefaultLogger

			cat, err := loadCatalog(cfg, logger)
			if err != nil {
				return err
			}

			cosmo, err := cosmology.NewFlatLambdaCDM(cfg.Cosmology.H0Ref, cfg.Cosmology.OmegaM)
			if err != nil {
				return err
			}

			runs, cleanup, err := openRunRepository(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			variant, err := inference.ParseVariant(cfg.Analysis.Variant)
			if err != nil {
				return err
			}

			service := app.NewAnalysisService(cosmo, rng.NewSeeded(cfg.Simulation.Seed), runs, logger)
			result, err := service.Run(context.Background(), app.AnalysisRequest{
				Catalog: cat,
				H0Grid:  numerics.Linspace(cfg.Analysis.H0Min, cfg.Analysis.H0Max, cfg.Analysis.H0Steps),
				Variant: variant,
				Simulation: gw.SimulationConfig{
					NDet:        cfg.Simulation.NDet,
					SigmaDL:     cfg.Simulation.SigmaDL,
					DLThreshold: cfg.Simulation.DLThreshold,
					ZCutRate:    cfg.Simulation.ZCutRate,
					PoolSize:    cfg.Simulation.PoolSize,
				},
				NoVolumeWeight: cfg.Analysis.NoVolumeWeight,
				TH21Events:     cfg.Analysis.TH21Events,
			})
			if err != nil {
				return err
			}

			fmt.Printf("run %s (%s): %d events\n", result.RunID, variant, result.Events.Len())
			fmt.Printf("H0 MAP  = %.2f km/s/Mpc\n", result.Summary.MAP)
			fmt.Printf("H0 mean = %.2f km/s/Mpc\n", result.Summary.Mean)
			fmt.Printf("68%% CI  = [%.2f, %.2f]\n", result.Summary.CI68[0], result.Summary.CI68[1])
			fmt.Printf("95%% CI  = [%.2f, %.2f]\n", result.Summary.CI95[0], result.Summary.CI95[1])
			return nil
		},
	}
}

func loadCatalog(cfg *config.Config, logger *internal.Logger) (*catalog.Catalog, error) {
	if cfg.Catalog.File != "" {
		logger.Info("loading catalog from %s", cfg.Catalog.File)
		return excel.NewCatalogReader(cfg.Catalog.File).Read()
	}
	logger.Info("no catalog file configured; using synthetic catalog (%d galaxies up to z=%.2f)",
		cfg.Catalog.SyntheticSize, cfg.Catalog.SyntheticMaxZ)
	step := cfg.Catalog.SyntheticMaxZ / float64(cfg.Catalog.SyntheticSize)
	return catalog.NewEvenlySpaced(cfg.Catalog.SyntheticSize, step)
}

func openRunRepository(cfg *config.Config, logger *internal.Logger) (ports.RunRepository, func(), error) {
	if cfg.Database.URL == "" {
		logger.Info("no DATABASE_URL configured; runs kept in memory only")
		return memory.NewRunRepository(), func() {}, nil
	}
	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewRunRepository(db), func() { db.Close() }, nil
}
