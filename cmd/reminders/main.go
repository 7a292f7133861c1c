package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/appointment"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/clinic"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/config"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/logging"
)

const jobTimeout = 10 * time.Minute

func main() {
	cmd := &cobra.Command{
		Use:          "reminders",
		Short:        "Publish reminder events for upcoming scheduled appointments",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			return run(cmd.Context(), days)
		},
	}
	cmd.Flags().Int("days", appointment.DefaultDaysAhead, "Number of days to look ahead")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, days int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.EventsEnabled() {
		return fmt.Errorf("RABBITMQ_URL is required to send reminders")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info().Int("days_ahead", days).Msg("appointment reminder job starting")

	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	store, err := clinic.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	sent, err := store.SendReminders(ctx, days)
	if err != nil {
		return fmt.Errorf("reminder job failed: %w", err)
	}

	logger.Info().Int("sent", sent).Msg("appointment reminder job finished")
	return nil
}
