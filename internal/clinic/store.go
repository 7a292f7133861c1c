package clinic

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/appointment"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/config"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/messaging"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/patient"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/record"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

// Store owns the database handle, the event publisher and the telemetry
// providers, and exposes the patient, medical record and appointment
// services. Every service call commits on its own unless it runs inside
// WithinTx.
type Store struct {
	Patients     patient.ServiceInterface
	Records      record.ServiceInterface
	Appointments appointment.ServiceInterface

	conn      *sql.DB
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
	provider  *telemetry.Provider
	logger    zerolog.Logger
}

// Tx exposes the same services bound to one database transaction. Events
// raised through a Tx are published only after the transaction commits.
type Tx struct {
	Patients     patient.ServiceInterface
	Records      record.ServiceInterface
	Appointments appointment.ServiceInterface
}

// Open connects to the database described by cfg and, when configured,
// to the OTLP collector and RabbitMQ. Telemetry and event publishing are
// optional: when they cannot be reached the store runs without them.
// Callers must Close the store.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Store, error) {
	var provider *telemetry.Provider
	if cfg.OTelEnabled {
		p, err := telemetry.InitProvider(ctx, telemetry.ConfigFrom(cfg), logger)
		if err != nil {
			logger.Warn().Err(err).Msg("continuing without telemetry")
		} else {
			provider = p
		}
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		logger.Warn().Err(err).Msg("continuing without domain metrics")
		metrics = nil
	}

	conn, err := db.Connect(ctx, cfg, logger)
	if err != nil {
		shutdownProvider(provider)
		return nil, err
	}

	var publisher messaging.PublisherInterface
	if cfg.EventsEnabled() {
		pub, err := messaging.NewPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("continuing without event publishing")
		} else {
			publisher = pub
		}
	}

	store := New(conn, publisher, metrics, logger)
	store.provider = provider
	return store, nil
}

// New builds a store around an open connection. publisher and metrics may
// be nil.
func New(conn *sql.DB, publisher messaging.PublisherInterface, metrics *telemetry.Metrics, logger zerolog.Logger) *Store {
	return &Store{
		Patients:     patient.NewService(patient.NewRepository(conn), publisher, metrics, logger),
		Records:      record.NewService(record.NewRepository(conn), publisher, metrics, logger),
		Appointments: appointment.NewService(appointment.NewRepository(conn), publisher, metrics, logger),
		conn:         conn,
		publisher:    publisher,
		metrics:      metrics,
		logger:       logger,
	}
}

// EnsureSchema creates any missing tables. It is safe to call on every start.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := db.EnsureSchema(ctx, s.conn); err != nil {
		return err
	}
	s.logger.Debug().Msg("schema ready")
	return nil
}

// WithinTx runs fn in a single transaction. The transaction commits when fn
// returns nil; otherwise it rolls back and the events fn raised are dropped.
func (s *Store) WithinTx(ctx context.Context, fn func(tx *Tx) error) error {
	outbox := messaging.NewOutbox()

	err := db.WithTx(ctx, s.conn, func(sqlTx *sql.Tx) error {
		return fn(s.bind(sqlTx, outbox))
	})
	if err != nil {
		outbox.Discard()
		return err
	}

	if err := outbox.Flush(ctx, s.publisher); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish events after commit")
	}
	return nil
}

// SendReminders publishes appointment.reminder events for scheduled
// appointments in the next daysAhead days.
func (s *Store) SendReminders(ctx context.Context, daysAhead int) (int, error) {
	return appointment.NewReminderService(s.Appointments, s.publisher, s.logger).SendReminders(ctx, daysAhead)
}

func (s *Store) bind(tx *sql.Tx, outbox *messaging.Outbox) *Tx {
	return &Tx{
		Patients:     patient.NewService(patient.NewRepository(tx), outbox, s.metrics, s.logger),
		Records:      record.NewService(record.NewRepository(tx), outbox, s.metrics, s.logger),
		Appointments: appointment.NewService(appointment.NewRepository(tx), outbox, s.metrics, s.logger),
	}
}

// Close releases the publisher, the database handle and the telemetry
// providers, returning the first error met.
func (s *Store) Close() error {
	var err error

	if s.publisher != nil {
		if closeErr := s.publisher.Close(); closeErr != nil {
			s.logger.Error().Err(closeErr).Msg("error closing publisher")
			err = fmt.Errorf("failed to close publisher: %w", closeErr)
		}
	}

	if closeErr := s.conn.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("failed to close database: %w", closeErr)
	}

	if shutdownErr := shutdownProvider(s.provider); shutdownErr != nil && err == nil {
		err = fmt.Errorf("failed to shut down telemetry: %w", shutdownErr)
	}

	return err
}

func shutdownProvider(p *telemetry.Provider) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return p.Shutdown(ctx)
}
