package appointment

import "context"

type ServiceInterface interface {
	ScheduleAppointment(ctx context.Context, req ScheduleRequest) (int64, error)
	GetAppointmentByID(ctx context.Context, id int64) (*Appointment, error)
	GetUpcomingAppointments(ctx context.Context, daysAhead int) ([]AppointmentView, error)
	UpdateAppointmentStatus(ctx context.Context, id int64, status Status) (bool, error)
}

var _ ServiceInterface = (*Service)(nil)
