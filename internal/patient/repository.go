package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
)

const patientColumns = `patient_id, first_name, last_name, date_of_birth, gender, phone, email, address, blood_type`

type Repository struct {
	conn db.DBTX
}

func NewRepository(conn db.DBTX) *Repository {
	return &Repository{conn: conn}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPatient(row scanner) (*Patient, error) {
	var patient Patient
	var gender string
	var phone sql.NullString
	var email sql.NullString
	var address sql.NullString
	var bloodType sql.NullString

	err := row.Scan(
		&patient.ID,
		&patient.FirstName,
		&patient.LastName,
		&patient.DateOfBirth,
		&gender,
		&phone,
		&email,
		&address,
		&bloodType,
	)
	if err != nil {
		return nil, err
	}

	patient.DateOfBirth = db.Date(patient.DateOfBirth)
	patient.Gender = Gender(gender)
	if phone.Valid {
		patient.Phone = &phone.String
	}
	if email.Valid {
		patient.Email = &email.String
	}
	if address.Valid {
		patient.Address = &address.String
	}
	if bloodType.Valid {
		bt := BloodType(bloodType.String)
		patient.BloodType = &bt
	}

	return &patient, nil
}

// CreatePatient inserts a patient and returns the id assigned by the store.
// Integrity errors come back classified by db.Classify.
func (r *Repository) CreatePatient(ctx context.Context, req CreatePatientRequest) (int64, error) {
	query := `
		INSERT INTO patients
		(first_name, last_name, date_of_birth, gender, phone, email, address, blood_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING patient_id
	`

	var bloodType interface{}
	if req.BloodType != nil {
		bloodType = string(*req.BloodType)
	}

	var id int64
	err := r.conn.QueryRowContext(ctx, query,
		req.FirstName,
		req.LastName,
		req.DateOfBirth.Format(db.DateLayout),
		string(req.Gender),
		req.Phone,
		req.Email,
		req.Address,
		bloodType,
	).Scan(&id)
	if err != nil {
		return db.NoID, fmt.Errorf("failed to insert patient: %w", db.Classify(err))
	}

	return id, nil
}

// GetPatient returns nil without an error when no patient has the id.
func (r *Repository) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE patient_id = $1`

	patient, err := scanPatient(r.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}

	return patient, nil
}

// SearchPatients lists patients matching every non-empty filter field, in
// insertion order.
func (r *Repository) SearchPatients(ctx context.Context, filter SearchFilter) ([]Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE 1=1`
	var args []interface{}

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		query += fmt.Sprintf(` AND (first_name LIKE $%d OR last_name LIKE $%d)`, len(args), len(args))
	}
	if filter.Gender != "" {
		args = append(args, string(filter.Gender))
		query += fmt.Sprintf(` AND gender = $%d`, len(args))
	}
	query += ` ORDER BY patient_id`

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	patients := []Patient{}
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *patient)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, nil
}
