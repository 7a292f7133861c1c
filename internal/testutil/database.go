package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
)

const defaultTestDSN = "host=localhost port=5432 user=clinic password=clinic dbname=clinic_test sslmode=disable TimeZone=UTC"

// SetupTestDB connects to the integration test database named by
// TEST_DATABASE_DSN (or a local clinic_test database) and starts every test
// from an empty schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		t.Fatalf("Failed to ping test database: %v", err)
	}

	ResetSchema(t, conn)
	t.Cleanup(func() { conn.Close() })

	return conn
}

// ResetSchema drops the clinic tables and recreates them.
func ResetSchema(t *testing.T, conn *sql.DB) {
	t.Helper()

	_, err := conn.Exec(`DROP TABLE IF EXISTS appointments, medical_records, patients CASCADE`)
	if err != nil {
		t.Fatalf("Failed to drop tables: %v", err)
	}

	if err := db.EnsureSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
}

// CreateTestPatient inserts a patient row directly and returns its id.
func CreateTestPatient(t *testing.T, conn *sql.DB, firstName, lastName, gender string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO patients (first_name, last_name, date_of_birth, gender)
		VALUES ($1, $2, '1990-01-01', $3)
		RETURNING patient_id
	`, firstName, lastName, gender).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test patient: %v", err)
	}
	return id
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// DBNow returns the store's LOCALTIMESTAMP, the clock upcoming-appointment
// windows are measured against.
func DBNow(t *testing.T, conn *sql.DB) time.Time {
	t.Helper()

	var now time.Time
	if err := conn.QueryRow(`SELECT LOCALTIMESTAMP`).Scan(&now); err != nil {
		t.Fatalf("Failed to read LOCALTIMESTAMP: %v", err)
	}
	return now
}
