package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
)

type Repository struct {
	conn db.DBTX
}

func NewRepository(conn db.DBTX) *Repository {
	return &Repository{conn: conn}
}

// CreateAppointment stores an appointment and returns it as stored. The status
// column is left out when req.Status is empty so the table default applies.
func (r *Repository) CreateAppointment(ctx context.Context, req ScheduleRequest) (*Appointment, error) {
	date := db.Naive(req.AppointmentDate)
	args := []interface{}{req.PatientID, date.Format(db.TimestampLayout), req.Purpose}

	query := `
		INSERT INTO appointments (patient_id, appointment_date, purpose)
		VALUES ($1, $2, $3)
		RETURNING appointment_id, status
	`
	if req.Status != "" {
		query = `
		INSERT INTO appointments (patient_id, appointment_date, purpose, status)
		VALUES ($1, $2, $3, $4)
		RETURNING appointment_id, status
	`
		args = append(args, string(req.Status))
	}

	appt := Appointment{
		PatientID:       req.PatientID,
		AppointmentDate: date,
		Purpose:         req.Purpose,
	}
	var status string
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&appt.ID, &status); err != nil {
		return nil, fmt.Errorf("failed to insert appointment: %w", db.Classify(err))
	}
	appt.Status = Status(status)

	return &appt, nil
}

// GetAppointment returns nil without an error when no appointment has the id.
func (r *Repository) GetAppointment(ctx context.Context, id int64) (*Appointment, error) {
	query := `
		SELECT appointment_id, patient_id, appointment_date, purpose, status
		FROM appointments
		WHERE appointment_id = $1
	`

	var appt Appointment
	var purpose sql.NullString
	var status string

	err := r.conn.QueryRowContext(ctx, query, id).Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.AppointmentDate,
		&purpose,
		&status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment: %w", err)
	}

	appt.AppointmentDate = db.Naive(appt.AppointmentDate)
	appt.Status = Status(status)
	if purpose.Valid {
		appt.Purpose = &purpose.String
	}

	return &appt, nil
}

// ListUpcoming returns appointments between the store's current local time
// and daysAhead days later, inclusive, earliest first. A negative daysAhead
// gives an empty window.
func (r *Repository) ListUpcoming(ctx context.Context, daysAhead int) ([]AppointmentView, error) {
	query := `
		SELECT a.appointment_id, a.patient_id, p.first_name || ' ' || p.last_name,
			a.appointment_date, a.purpose, a.status
		FROM appointments a
		JOIN patients p ON p.patient_id = a.patient_id
		WHERE a.appointment_date BETWEEN LOCALTIMESTAMP AND LOCALTIMESTAMP + make_interval(days => $1)
		ORDER BY a.appointment_date, a.appointment_id
	`

	rows, err := r.conn.QueryContext(ctx, query, daysAhead)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming appointments: %w", err)
	}
	defer rows.Close()

	views := []AppointmentView{}
	for rows.Next() {
		var v AppointmentView
		var purpose sql.NullString
		var status string

		if err := rows.Scan(
			&v.AppointmentID,
			&v.PatientID,
			&v.PatientName,
			&v.AppointmentDate,
			&purpose,
			&status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}

		v.AppointmentDate = db.Naive(v.AppointmentDate)
		v.Status = Status(status)
		if purpose.Valid {
			v.Purpose = &purpose.String
		}
		views = append(views, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointments: %w", err)
	}

	return views, nil
}

// UpdateStatus reports whether exactly one appointment matched id. Setting
// the status an appointment already has still counts as a match.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status Status) (bool, error) {
	query := `UPDATE appointments SET status = $1 WHERE appointment_id = $2`

	result, err := r.conn.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return false, fmt.Errorf("failed to update appointment status: %w", db.Classify(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows == 1, nil
}
