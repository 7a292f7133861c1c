package record

import "time"

// MedicalRecord is one visit entry in a patient's history. Records are
// immutable once stored.
type MedicalRecord struct {
	ID          int64     `json:"record_id"`
	PatientID   int64     `json:"patient_id"`
	VisitDate   time.Time `json:"visit_date"`
	Diagnosis   *string   `json:"diagnosis,omitempty"`
	Treatment   *string   `json:"treatment,omitempty"`
	Medications *string   `json:"medications,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
}

type CreateRecordRequest struct {
	PatientID   int64     `json:"patient_id"`
	VisitDate   time.Time `json:"visit_date"`
	Diagnosis   *string   `json:"diagnosis,omitempty"`
	Treatment   *string   `json:"treatment,omitempty"`
	Medications *string   `json:"medications,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
}
