package patient

import "context"

// ServiceInterface is the patient surface exposed to callers of the store.
type ServiceInterface interface {
	AddPatient(ctx context.Context, req CreatePatientRequest) (int64, error)
	GetPatientByID(ctx context.Context, id int64) (*Patient, error)
	SearchPatients(ctx context.Context, filter SearchFilter) ([]Patient, error)
}

var _ ServiceInterface = (*Service)(nil)
