package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Event routing keys as constants
const (
	EventPatientCreated = "patient.created"

	EventMedicalRecordCreated = "medical_record.created"

	EventAppointmentScheduled     = "appointment.scheduled"
	EventAppointmentStatusChanged = "appointment.status_changed"
	EventAppointmentReminder      = "appointment.reminder"
)

// ServiceName is stamped on every event.
const ServiceName = "clinic-records"

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

type PatientCreatedEvent struct {
	BaseEvent
	Data PatientCreatedData `json:"data"`
}

type PatientCreatedData struct {
	PatientID   int64  `json:"patient_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	Email       string `json:"email,omitempty"`
}

type MedicalRecordCreatedEvent struct {
	BaseEvent
	Data MedicalRecordCreatedData `json:"data"`
}

type MedicalRecordCreatedData struct {
	RecordID  int64  `json:"record_id"`
	PatientID int64  `json:"patient_id"`
	VisitDate string `json:"visit_date"`
}

type AppointmentScheduledEvent struct {
	BaseEvent
	Data AppointmentScheduledData `json:"data"`
}

type AppointmentScheduledData struct {
	AppointmentID   int64     `json:"appointment_id"`
	PatientID       int64     `json:"patient_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Purpose         string    `json:"purpose,omitempty"`
	Status          string    `json:"status"`
}

type AppointmentStatusChangedEvent struct {
	BaseEvent
	Data AppointmentStatusChangedData `json:"data"`
}

type AppointmentStatusChangedData struct {
	AppointmentID int64     `json:"appointment_id"`
	OldStatus     string    `json:"old_status,omitempty"`
	NewStatus     string    `json:"new_status"`
	ChangedAt     time.Time `json:"changed_at"`
}

// AppointmentReminderEvent is emitted by the reminders job for each upcoming visit.
type AppointmentReminderEvent struct {
	BaseEvent
	Data AppointmentReminderData `json:"data"`
}

type AppointmentReminderData struct {
	AppointmentID   int64     `json:"appointment_id"`
	PatientID       int64     `json:"patient_id"`
	PatientName     string    `json:"patient_name"`
	AppointmentDate time.Time `json:"appointment_date"`
	Purpose         string    `json:"purpose,omitempty"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		ServiceName: ServiceName,
	}
}
