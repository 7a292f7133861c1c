package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/appointment"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/clinic"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/patient"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/seed"
)

const demoDaysAhead = 30

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the clinic tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, logger, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			logger.Info().Msg("schema is up to date")
			return nil
		},
	}
}

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Load sample patients, records and appointments and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			fixturesPath, _ := cmd.Flags().GetString("fixtures")

			fx, err := loadFixtures(fixturesPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, logger, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var res *seed.Result
			err = store.WithinTx(ctx, func(tx *clinic.Tx) error {
				var applyErr error
				res, applyErr = seed.Apply(ctx, seed.Services{
					Patients:     tx.Patients,
					Records:      tx.Records,
					Appointments: tx.Appointments,
				}, fx, time.Now())
				return applyErr
			})
			if err != nil {
				return fmt.Errorf("failed to load sample data: %w", err)
			}
			logger.Info().
				Int("patients", len(res.PatientIDs)).
				Int("medical_records", len(res.RecordIDs)).
				Int("appointments", len(res.AppointmentIDs)).
				Msg("sample data loaded")

			out := cmd.OutOrStdout()

			patients, err := store.Patients.SearchPatients(ctx, patient.SearchFilter{Name: "Doe"})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Patient Search Results:")
			printPatients(out, patients)

			if len(res.PatientIDs) > 0 {
				first := fx.Patients[0]
				records, err := store.Records.GetPatientMedicalHistory(ctx, res.PatientIDs[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nMedical History for %s %s:\n", first.FirstName, first.LastName)
				printHistory(out, records)
			}

			views, err := store.Appointments.GetUpcomingAppointments(ctx, demoDaysAhead)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nUpcoming Appointments (next %d days):\n", demoDaysAhead)
			printUpcoming(out, views)

			return nil
		},
	}
	cmd.Flags().String("fixtures", "", "YAML fixtures file (defaults to the built-in sample data)")
	return cmd
}

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search patients by name substring and gender",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			genderFlag, _ := cmd.Flags().GetString("gender")

			filter := patient.SearchFilter{Name: name}
			if genderFlag != "" {
				gender, err := patient.ParseGender(genderFlag)
				if err != nil {
					return err
				}
				filter.Gender = gender
			}

			ctx := cmd.Context()
			store, _, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			patients, err := store.Patients.SearchPatients(ctx, filter)
			if err != nil {
				return err
			}
			printPatients(cmd.OutOrStdout(), patients)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Substring of the first or last name")
	cmd.Flags().String("gender", "", "Male, Female or Other")
	return cmd
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <patient-id>",
		Short: "Show a patient's medical history, most recent visit first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, _, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Records.GetPatientMedicalHistory(ctx, patientID)
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}
}

func upcomingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List appointments in the next few days",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")

			ctx := cmd.Context()
			store, _, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			views, err := store.Appointments.GetUpcomingAppointments(ctx, days)
			if err != nil {
				return err
			}
			printUpcoming(cmd.OutOrStdout(), views)
			return nil
		},
	}
	cmd.Flags().Int("days", appointment.DefaultDaysAhead, "Number of days to look ahead")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <appointment-id> <status>",
		Short: "Set an appointment's status (Scheduled, Completed or Cancelled)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := appointment.ParseStatus(args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, _, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			ok, err := store.Appointments.UpdateAppointmentStatus(ctx, id, status)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("appointment %d not found", id)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Appointment %d is now %s\n", id, status)
			return nil
		},
	}
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return seed.Parse(data)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
