package record

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
)

type Repository struct {
	conn db.DBTX
}

func NewRepository(conn db.DBTX) *Repository {
	return &Repository{conn: conn}
}

// CreateMedicalRecord stores a visit for an existing patient. A missing
// patient surfaces as db.ErrForeignKeyViolation.
func (r *Repository) CreateMedicalRecord(ctx context.Context, req CreateRecordRequest) (int64, error) {
	query := `
		INSERT INTO medical_records
		(patient_id, visit_date, diagnosis, treatment, medications, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING record_id
	`

	var id int64
	err := r.conn.QueryRowContext(ctx, query,
		req.PatientID,
		req.VisitDate.Format(db.DateLayout),
		req.Diagnosis,
		req.Treatment,
		req.Medications,
		req.Notes,
	).Scan(&id)
	if err != nil {
		return db.NoID, fmt.Errorf("failed to insert medical record: %w", db.Classify(err))
	}

	return id, nil
}

// ListByPatient returns the patient's records, most recent visit first.
func (r *Repository) ListByPatient(ctx context.Context, patientID int64) ([]MedicalRecord, error) {
	query := `
		SELECT record_id, patient_id, visit_date, diagnosis, treatment, medications, notes
		FROM medical_records
		WHERE patient_id = $1
		ORDER BY visit_date DESC, record_id DESC
	`

	rows, err := r.conn.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query medical records: %w", err)
	}
	defer rows.Close()

	records := []MedicalRecord{}
	for rows.Next() {
		var rec MedicalRecord
		var diagnosis, treatment, medications, notes sql.NullString

		if err := rows.Scan(
			&rec.ID,
			&rec.PatientID,
			&rec.VisitDate,
			&diagnosis,
			&treatment,
			&medications,
			&notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan medical record: %w", err)
		}

		rec.VisitDate = db.Date(rec.VisitDate)
		rec.Diagnosis = nullable(diagnosis)
		rec.Treatment = nullable(treatment)
		rec.Medications = nullable(medications)
		rec.Notes = nullable(notes)
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medical records: %w", err)
	}

	return records, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
