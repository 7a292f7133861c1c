package record

import "context"

type ServiceInterface interface {
	AddMedicalRecord(ctx context.Context, req CreateRecordRequest) (int64, error)
	GetPatientMedicalHistory(ctx context.Context, patientID int64) ([]MedicalRecord, error)
}

var _ ServiceInterface = (*Service)(nil)
