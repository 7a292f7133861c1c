package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/clinic"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/config"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/logging"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "clinicdb",
		Short:        "Clinic patient, medical record and appointment store",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(upcomingCmd())
	rootCmd.AddCommand(statusCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore loads configuration, opens the store and makes sure the schema
// exists. The caller must Close the store.
func openStore(ctx context.Context) (*clinic.Store, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	store, err := clinic.Open(ctx, cfg, logger)
	if err != nil {
		return nil, logger, err
	}

	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, logger, err
	}

	return store, logger, nil
}
