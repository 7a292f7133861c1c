package db

import (
	"context"
	"database/sql"
	"fmt"
)

const createPatientsTable = `
CREATE TABLE IF NOT EXISTS patients (
	patient_id    BIGSERIAL PRIMARY KEY,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	date_of_birth DATE NOT NULL,
	gender        TEXT NOT NULL CHECK (gender IN ('Male', 'Female', 'Other')),
	phone         TEXT,
	email         TEXT UNIQUE,
	address       TEXT,
	blood_type    TEXT CHECK (blood_type IN ('A+', 'A-', 'B+', 'B-', 'AB+', 'AB-', 'O+', 'O-'))
)`

const createMedicalRecordsTable = `
CREATE TABLE IF NOT EXISTS medical_records (
	record_id   BIGSERIAL PRIMARY KEY,
	patient_id  BIGINT NOT NULL REFERENCES patients (patient_id),
	visit_date  DATE NOT NULL,
	diagnosis   TEXT,
	treatment   TEXT,
	medications TEXT,
	notes       TEXT
)`

const createAppointmentsTable = `
CREATE TABLE IF NOT EXISTS appointments (
	appointment_id   BIGSERIAL PRIMARY KEY,
	patient_id       BIGINT NOT NULL REFERENCES patients (patient_id),
	appointment_date TIMESTAMP WITHOUT TIME ZONE NOT NULL,
	purpose          TEXT,
	status           TEXT NOT NULL DEFAULT 'Scheduled' CHECK (status IN ('Scheduled', 'Completed', 'Cancelled'))
)`

var schemaStatements = []string{
	createPatientsTable,
	createMedicalRecordsTable,
	createAppointmentsTable,
	`CREATE INDEX IF NOT EXISTS idx_medical_records_patient ON medical_records (patient_id, visit_date)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_patient ON appointments (patient_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments (appointment_date)`,
}

// EnsureSchema creates the patients, medical_records and appointments tables
// with their constraints when they do not exist yet. Existing tables and rows
// are never altered, so it is safe to call on every start.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}
