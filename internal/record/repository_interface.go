package record

import "context"

// RepositoryInterface defines the contract for medical record data access
type RepositoryInterface interface {
	CreateMedicalRecord(ctx context.Context, req CreateRecordRequest) (int64, error)
	ListByPatient(ctx context.Context, patientID int64) ([]MedicalRecord, error)
}

var _ RepositoryInterface = (*Repository)(nil)
