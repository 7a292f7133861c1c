package appointment

import "context"

// RepositoryInterface defines the contract for appointment data access
type RepositoryInterface interface {
	CreateAppointment(ctx context.Context, req ScheduleRequest) (*Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*Appointment, error)
	ListUpcoming(ctx context.Context, daysAhead int) ([]AppointmentView, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (bool, error)
}

var _ RepositoryInterface = (*Repository)(nil)
