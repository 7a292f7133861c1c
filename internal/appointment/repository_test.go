package appointment

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
)

func setupTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewRepository(conn), mock
}

func TestRepository_CreateAppointment_OmitsEmptyStatus(t *testing.T) {
	repo, mock := setupTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("(patient_id, appointment_date, purpose) VALUES ($1, $2, $3) RETURNING")).
		WithArgs(int64(1), "2030-03-04 10:30:00", "Follow-up").
		WillReturnRows(sqlmock.NewRows([]string{"appointment_id", "status"}).AddRow(int64(9), "Scheduled"))

	appt, err := repo.CreateAppointment(context.Background(), followUp(1))
	require.NoError(t, err)
	assert.Equal(t, int64(9), appt.ID)
	assert.Equal(t, StatusScheduled, appt.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateAppointment_ExplicitStatus(t *testing.T) {
	repo, mock := setupTestRepository(t)
	req := followUp(1)
	req.Status = StatusCompleted

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments (patient_id, appointment_date, purpose, status)")).
		WithArgs(int64(1), "2030-03-04 10:30:00", "Follow-up", "Completed").
		WillReturnRows(sqlmock.NewRows([]string{"appointment_id", "status"}).AddRow(int64(10), "Completed"))

	appt, err := repo.CreateAppointment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, appt.Status)
}

func TestRepository_CreateAppointment_KeepsWallClock(t *testing.T) {
	repo, mock := setupTestRepository(t)
	req := followUp(1)
	req.AppointmentDate = time.Date(2030, 3, 4, 10, 30, 15, 500, time.FixedZone("CET", 3600))

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(int64(1), "2030-03-04 10:30:15", "Follow-up").
		WillReturnRows(sqlmock.NewRows([]string{"appointment_id", "status"}).AddRow(int64(11), "Scheduled"))

	appt, err := repo.CreateAppointment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 3, 4, 10, 30, 15, 0, time.UTC), appt.AppointmentDate)
}

func TestRepository_CreateAppointment_CheckViolation(t *testing.T) {
	repo, mock := setupTestRepository(t)
	req := followUp(1)
	req.Status = "Postponed"

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23514", Constraint: "appointments_status_check"})

	appt, err := repo.CreateAppointment(context.Background(), req)
	assert.Nil(t, appt)
	assert.ErrorIs(t, err, db.ErrCheckViolation)
}

func TestRepository_ListUpcoming(t *testing.T) {
	repo, mock := setupTestRepository(t)
	when := time.Date(2030, 3, 4, 10, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("BETWEEN LOCALTIMESTAMP AND LOCALTIMESTAMP + make_interval(days => $1)")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"appointment_id", "patient_id", "name", "appointment_date", "purpose", "status"}).
			AddRow(int64(1), int64(2), "Jane Smith", when, nil, "Scheduled"))

	views, err := repo.ListUpcoming(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Jane Smith", views[0].PatientName)
	assert.Nil(t, views[0].Purpose)
	assert.Equal(t, StatusScheduled, views[0].Status)
}

func TestRepository_ListUpcoming_Empty(t *testing.T) {
	repo, mock := setupTestRepository(t)

	mock.ExpectQuery("FROM appointments").
		WithArgs(-1).
		WillReturnRows(sqlmock.NewRows([]string{"appointment_id", "patient_id", "name", "appointment_date", "purpose", "status"}))

	views, err := repo.ListUpcoming(context.Background(), -1)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestRepository_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"one row", 1, true},
		{"no row", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupTestRepository(t)

			mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET status = $1 WHERE appointment_id = $2")).
				WithArgs("Completed", int64(3)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			ok, err := repo.UpdateStatus(context.Background(), 3, StatusCompleted)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestRepository_UpdateStatus_Error(t *testing.T) {
	repo, mock := setupTestRepository(t)

	mock.ExpectExec("UPDATE appointments").WillReturnError(errors.New("connection reset"))

	ok, err := repo.UpdateStatus(context.Background(), 3, StatusCompleted)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestRepository_GetAppointment_NotFound(t *testing.T) {
	repo, mock := setupTestRepository(t)

	mock.ExpectQuery("FROM appointments").
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"appointment_id", "patient_id", "appointment_date", "purpose", "status"}))

	appt, err := repo.GetAppointment(context.Background(), 8)
	assert.NoError(t, err)
	assert.Nil(t, appt)
}
