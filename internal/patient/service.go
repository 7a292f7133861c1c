package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/messaging"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/telemetry"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
	logger    zerolog.Logger
}

// NewService wires the patient service. publisher and metrics may be nil.
func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface, metrics *telemetry.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.With().Str("component", "patient").Logger(),
	}
}

// AddPatient registers a patient and returns its id. When the patient cannot
// be stored it returns db.NoID together with the reason; the failure is
// logged and never leaves a partial row behind.
func (s *Service) AddPatient(ctx context.Context, req CreatePatientRequest) (id int64, err error) {
	ctx, span := telemetry.StartSpan(ctx, "patient.add")
	defer func() { telemetry.EndSpan(span, err) }()
	defer s.observe(ctx, "add_patient", time.Now())

	if !req.Gender.Valid() {
		return s.fail(ctx, fmt.Errorf("%w: %q", ErrInvalidGender, req.Gender))
	}
	if req.BloodType != nil && !req.BloodType.Valid() {
		return s.fail(ctx, fmt.Errorf("%w: %q", ErrInvalidBloodType, *req.BloodType))
	}

	id, err = s.repo.CreatePatient(ctx, req)
	if err != nil {
		return s.fail(ctx, err)
	}

	span.SetAttributes(attribute.Int64("patient.id", id))
	s.metrics.RecordPatientOperation(ctx, "add", true)
	s.publishCreated(ctx, id, req)

	return id, nil
}

// GetPatientByID returns nil, nil when the patient does not exist.
func (s *Service) GetPatientByID(ctx context.Context, id int64) (*Patient, error) {
	defer s.observe(ctx, "get_patient", time.Now())

	patient, err := s.repo.GetPatient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

// SearchPatients returns every patient when filter is empty.
func (s *Service) SearchPatients(ctx context.Context, filter SearchFilter) ([]Patient, error) {
	defer s.observe(ctx, "search_patients", time.Now())

	patients, err := s.repo.SearchPatients(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (s *Service) fail(ctx context.Context, err error) (int64, error) {
	reason := db.Reason(err)
	s.logger.Warn().Err(err).Str("op", "add_patient").Str("reason", reason).Msg("error adding patient")
	s.metrics.RecordPatientOperation(ctx, "add", false)
	s.metrics.RecordWriteFailure(ctx, "patient", reason)
	return db.NoID, err
}

func (s *Service) observe(ctx context.Context, operation string, start time.Time) {
	s.metrics.RecordDuration(ctx, operation, float64(time.Since(start).Microseconds())/1000)
}

func (s *Service) publishCreated(ctx context.Context, id int64, req CreatePatientRequest) {
	if s.publisher == nil {
		return
	}

	event := messaging.PatientCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientCreated),
		Data: messaging.PatientCreatedData{
			PatientID:   id,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Gender:      string(req.Gender),
			DateOfBirth: req.DateOfBirth.Format(db.DateLayout),
		},
	}
	if req.Email != nil {
		event.Data.Email = *req.Email
	}

	if err := s.publisher.Publish(ctx, messaging.EventPatientCreated, event); err != nil {
		s.logger.Warn().Err(err).Int64("patient_id", id).Msg("failed to publish patient.created")
	}
}
