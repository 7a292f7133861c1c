package appointment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/messaging"
)

// UpcomingLister is the read side the reminder job needs.
type UpcomingLister interface {
	GetUpcomingAppointments(ctx context.Context, daysAhead int) ([]AppointmentView, error)
}

// ReminderService announces upcoming appointments that are still scheduled.
type ReminderService struct {
	appointments UpcomingLister
	publisher    messaging.PublisherInterface
	logger       zerolog.Logger
}

func NewReminderService(appointments UpcomingLister, publisher messaging.PublisherInterface, logger zerolog.Logger) *ReminderService {
	return &ReminderService{
		appointments: appointments,
		publisher:    publisher,
		logger:       logger.With().Str("component", "reminders").Logger(),
	}
}

// SendReminders publishes one appointment.reminder event per Scheduled
// appointment in the next daysAhead days and returns how many were sent.
// A failed publish is logged and skipped.
func (s *ReminderService) SendReminders(ctx context.Context, daysAhead int) (int, error) {
	if s.publisher == nil {
		return 0, fmt.Errorf("event publishing is not configured")
	}

	views, err := s.appointments.GetUpcomingAppointments(ctx, daysAhead)
	if err != nil {
		return 0, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}

	sent := 0
	for _, v := range views {
		if v.Status != StatusScheduled {
			continue
		}

		event := messaging.AppointmentReminderEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentReminder),
			Data: messaging.AppointmentReminderData{
				AppointmentID:   v.AppointmentID,
				PatientID:       v.PatientID,
				PatientName:     v.PatientName,
				AppointmentDate: v.AppointmentDate,
			},
		}
		if v.Purpose != nil {
			event.Data.Purpose = *v.Purpose
		}

		if err := s.publisher.Publish(ctx, messaging.EventAppointmentReminder, event); err != nil {
			s.logger.Warn().Err(err).Int64("appointment_id", v.AppointmentID).Msg("failed to publish reminder")
			continue
		}
		sent++
	}

	s.logger.Info().Int("upcoming", len(views)).Int("sent", sent).Int("days_ahead", daysAhead).Msg("reminders sent")
	return sent, nil
}
