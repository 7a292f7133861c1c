package record

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

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface, metrics *telemetry.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.With().Str("component", "medical_record").Logger(),
	}
}

// AddMedicalRecord appends a visit to a patient's history. Visits may repeat
// and may lie in the future. On failure it returns db.NoID and the reason.
func (s *Service) AddMedicalRecord(ctx context.Context, req CreateRecordRequest) (id int64, err error) {
	ctx, span := telemetry.StartSpan(ctx, "medical_record.add",
		attribute.Int64("patient.id", req.PatientID))
	defer func() { telemetry.EndSpan(span, err) }()
	defer s.observe(ctx, "add_medical_record", time.Now())

	id, err = s.repo.CreateMedicalRecord(ctx, req)
	if err != nil {
		reason := db.Reason(err)
		s.logger.Warn().Err(err).
			Str("op", "add_medical_record").
			Str("reason", reason).
			Int64("patient_id", req.PatientID).
			Msg("error adding medical record")
		s.metrics.RecordMedicalRecordOperation(ctx, "add", false)
		s.metrics.RecordWriteFailure(ctx, "medical_record", reason)
		return db.NoID, err
	}

	s.metrics.RecordMedicalRecordOperation(ctx, "add", true)
	s.publishCreated(ctx, id, req)

	return id, nil
}

// GetPatientMedicalHistory returns an empty slice for a patient without
// records, including one that does not exist.
func (s *Service) GetPatientMedicalHistory(ctx context.Context, patientID int64) ([]MedicalRecord, error) {
	defer s.observe(ctx, "get_medical_history", time.Now())

	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get medical history: %w", err)
	}
	return records, nil
}

func (s *Service) observe(ctx context.Context, operation string, start time.Time) {
	s.metrics.RecordDuration(ctx, operation, float64(time.Since(start).Microseconds())/1000)
}

func (s *Service) publishCreated(ctx context.Context, id int64, req CreateRecordRequest) {
	if s.publisher == nil {
		return
	}

	event := messaging.MedicalRecordCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventMedicalRecordCreated),
		Data: messaging.MedicalRecordCreatedData{
			RecordID:  id,
			PatientID: req.PatientID,
			VisitDate: req.VisitDate.Format(db.DateLayout),
		},
	}

	if err := s.publisher.Publish(ctx, messaging.EventMedicalRecordCreated, event); err != nil {
		s.logger.Warn().Err(err).Int64("record_id", id).Msg("failed to publish medical_record.created")
	}
}
