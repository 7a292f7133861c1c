package appointment

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
		logger:    logger.With().Str("component", "appointment").Logger(),
	}
}

// ScheduleAppointment books an appointment and returns its id, or db.NoID and
// the reason when it cannot be stored.
func (s *Service) ScheduleAppointment(ctx context.Context, req ScheduleRequest) (id int64, err error) {
	ctx, span := telemetry.StartSpan(ctx, "appointment.schedule",
		attribute.Int64("patient.id", req.PatientID))
	defer func() { telemetry.EndSpan(span, err) }()
	defer s.observe(ctx, "schedule_appointment", time.Now())

	if req.Status != "" && !req.Status.Valid() {
		return s.failSchedule(ctx, req, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status))
	}

	appt, err := s.repo.CreateAppointment(ctx, req)
	if err != nil {
		return s.failSchedule(ctx, req, err)
	}

	span.SetAttributes(attribute.Int64("appointment.id", appt.ID))
	s.metrics.RecordAppointmentOperation(ctx, "schedule", true)
	s.publishScheduled(ctx, appt)

	return appt.ID, nil
}

// GetAppointmentByID returns nil, nil when the appointment does not exist.
func (s *Service) GetAppointmentByID(ctx context.Context, id int64) (*Appointment, error) {
	defer s.observe(ctx, "get_appointment", time.Now())

	appt, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appt, nil
}

// GetUpcomingAppointments lists appointments in the next daysAhead days as
// measured by the store's clock.
func (s *Service) GetUpcomingAppointments(ctx context.Context, daysAhead int) ([]AppointmentView, error) {
	defer s.observe(ctx, "get_upcoming_appointments", time.Now())

	views, err := s.repo.ListUpcoming(ctx, daysAhead)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming appointments: %w", err)
	}
	return views, nil
}

// UpdateAppointmentStatus sets the status of one appointment. It returns false
// with a nil error when no appointment has the id, and false with the reason
// when the status is invalid or the store rejects the update.
func (s *Service) UpdateAppointmentStatus(ctx context.Context, id int64, status Status) (ok bool, err error) {
	ctx, span := telemetry.StartSpan(ctx, "appointment.update_status",
		attribute.Int64("appointment.id", id),
		attribute.String("appointment.status", string(status)))
	defer func() { telemetry.EndSpan(span, err) }()
	defer s.observe(ctx, "update_appointment_status", time.Now())

	if !status.Valid() {
		return s.failUpdate(ctx, id, fmt.Errorf("%w: %q", ErrInvalidStatus, status))
	}

	var oldStatus Status
	if current, err := s.repo.GetAppointment(ctx, id); err != nil {
		s.logger.Debug().Err(err).Int64("appointment_id", id).Msg("could not read current status")
	} else if current != nil {
		oldStatus = current.Status
	}

	ok, err = s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return s.failUpdate(ctx, id, err)
	}
	if !ok {
		s.metrics.RecordAppointmentOperation(ctx, "update_status", false)
		return false, nil
	}

	s.metrics.RecordAppointmentOperation(ctx, "update_status", true)
	s.publishStatusChanged(ctx, id, oldStatus, status)

	return true, nil
}

func (s *Service) failSchedule(ctx context.Context, req ScheduleRequest, err error) (int64, error) {
	reason := db.Reason(err)
	s.logger.Warn().Err(err).
		Str("op", "schedule_appointment").
		Str("reason", reason).
		Int64("patient_id", req.PatientID).
		Msg("error scheduling appointment")
	s.metrics.RecordAppointmentOperation(ctx, "schedule", false)
	s.metrics.RecordWriteFailure(ctx, "appointment", reason)
	return db.NoID, err
}

func (s *Service) failUpdate(ctx context.Context, id int64, err error) (bool, error) {
	reason := db.Reason(err)
	s.logger.Warn().Err(err).
		Str("op", "update_appointment_status").
		Str("reason", reason).
		Int64("appointment_id", id).
		Msg("error updating appointment status")
	s.metrics.RecordAppointmentOperation(ctx, "update_status", false)
	s.metrics.RecordWriteFailure(ctx, "appointment", reason)
	return false, err
}

func (s *Service) observe(ctx context.Context, operation string, start time.Time) {
	s.metrics.RecordDuration(ctx, operation, float64(time.Since(start).Microseconds())/1000)
}

func (s *Service) publishScheduled(ctx context.Context, appt *Appointment) {
	if s.publisher == nil {
		return
	}

	event := messaging.AppointmentScheduledEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentScheduled),
		Data: messaging.AppointmentScheduledData{
			AppointmentID:   appt.ID,
			PatientID:       appt.PatientID,
			AppointmentDate: appt.AppointmentDate,
			Status:          string(appt.Status),
		},
	}
	if appt.Purpose != nil {
		event.Data.Purpose = *appt.Purpose
	}

	if err := s.publisher.Publish(ctx, messaging.EventAppointmentScheduled, event); err != nil {
		s.logger.Warn().Err(err).Int64("appointment_id", appt.ID).Msg("failed to publish appointment.scheduled")
	}
}

func (s *Service) publishStatusChanged(ctx context.Context, id int64, oldStatus, newStatus Status) {
	if s.publisher == nil {
		return
	}

	event := messaging.AppointmentStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentStatusChanged),
		Data: messaging.AppointmentStatusChangedData{
			AppointmentID: id,
			OldStatus:     string(oldStatus),
			NewStatus:     string(newStatus),
			ChangedAt:     time.Now().UTC(),
		},
	}

	if err := s.publisher.Publish(ctx, messaging.EventAppointmentStatusChanged, event); err != nil {
		s.logger.Warn().Err(err).Int64("appointment_id", id).Msg("failed to publish appointment.status_changed")
	}
}
