package patient

import "context"

// RepositoryInterface defines the contract for patient data access
type RepositoryInterface interface {
	CreatePatient(ctx context.Context, req CreatePatientRequest) (int64, error)
	GetPatient(ctx context.Context, id int64) (*Patient, error)
	SearchPatients(ctx context.Context, filter SearchFilter) ([]Patient, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
