package record

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
)

var columns = []string{"record_id", "patient_id", "visit_date", "diagnosis", "treatment", "medications", "notes"}

func setupTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewRepository(conn), mock
}

func TestRepository_CreateMedicalRecord(t *testing.T) {
	repo, mock := setupTestRepository(t)

	mock.ExpectQuery("INSERT INTO medical_records").
		WithArgs(int64(1), "2023-01-10", "Common cold", "Rest and fluids", "Paracetamol", nil).
		WillReturnRows(sqlmock.NewRows([]string{"record_id"}).AddRow(int64(3)))

	id, err := repo.CreateMedicalRecord(context.Background(), checkup(1))
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateMedicalRecord_ForeignKeyViolation(t *testing.T) {
	repo, mock := setupTestRepository(t)

	mock.ExpectQuery("INSERT INTO medical_records").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "medical_records_patient_id_fkey"})

	id, err := repo.CreateMedicalRecord(context.Background(), checkup(999))
	assert.Equal(t, db.NoID, id)
	assert.ErrorIs(t, err, db.ErrForeignKeyViolation)
	assert.Contains(t, err.Error(), "medical_records_patient_id_fkey")
}

func TestRepository_ListByPatient(t *testing.T) {
	repo, mock := setupTestRepository(t)
	feb := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY visit_date DESC, record_id DESC")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(2), int64(1), feb, "Flu", nil, nil, "Follow up").
			AddRow(int64(1), int64(1), jan, "Common cold", "Rest", "Paracetamol", nil))

	records, err := repo.ListByPatient(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(2), records[0].ID)
	assert.Equal(t, "2023-02-01", records[0].VisitDate.Format(db.DateLayout))
	require.NotNil(t, records[0].Notes)
	assert.Equal(t, "Follow up", *records[0].Notes)
	assert.Nil(t, records[0].Treatment)
	assert.Nil(t, records[1].Notes)
}

func TestRepository_ListByPatient_Empty(t *testing.T) {
	repo, mock := setupTestRepository(t)

	mock.ExpectQuery("FROM medical_records").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(columns))

	records, err := repo.ListByPatient(context.Background(), 404)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
