package appointment

import (
	"fmt"
	"time"
)

// DefaultDaysAhead is the upcoming-appointments window used when the caller
// has no preference.
const DefaultDaysAhead = 7

// Status is the appointment lifecycle state stored in appointments.status.
// Any status may be set from any other.
type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus converts user input into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

type Appointment struct {
	ID              int64     `json:"appointment_id"`
	PatientID       int64     `json:"patient_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Purpose         *string   `json:"purpose,omitempty"`
	Status          Status    `json:"status"`
}

// AppointmentView is an appointment joined with the patient's display name.
type AppointmentView struct {
	AppointmentID   int64     `json:"appointment_id"`
	PatientID       int64     `json:"patient_id"`
	PatientName     string    `json:"patient_name"`
	AppointmentDate time.Time `json:"appointment_date"`
	Purpose         *string   `json:"purpose,omitempty"`
	Status          Status    `json:"status"`
}

// ScheduleRequest describes a new appointment. AppointmentDate is stored as a
// naive local date-time; an empty Status lets the store apply Scheduled.
type ScheduleRequest struct {
	PatientID       int64     `json:"patient_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Purpose         *string   `json:"purpose,omitempty"`
	Status          Status    `json:"status,omitempty"`
}
