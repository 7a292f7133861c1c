//go:build integration

package patient

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/testutil"
)

// TestRepositoryCreateAndGet_Integration tests that a stored patient reads back field for field
func TestRepositoryCreateAndGet_Integration(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	req := johnDoe()
	id, err := repo.CreatePatient(ctx, req)
	if err != nil {
		t.Fatalf("CreatePatient failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("Expected positive patient id, got %d", id)
	}

	patient, err := repo.GetPatient(ctx, id)
	if err != nil {
		t.Fatalf("GetPatient failed: %v", err)
	}
	if patient == nil {
		t.Fatal("Expected patient, got nil")
	}

	if patient.FirstName != "John" || patient.LastName != "Doe" {
		t.Errorf("Expected John Doe, got %s", patient.FullName())
	}
	if got := patient.DateOfBirth.Format(db.DateLayout); got != "1985-05-15" {
		t.Errorf("Expected date of birth 1985-05-15, got %s", got)
	}
	if patient.Gender != GenderMale {
		t.Errorf("Expected gender Male, got %s", patient.Gender)
	}
	if patient.Email == nil || *patient.Email != "john.doe@example.com" {
		t.Errorf("Expected email john.doe@example.com, got %v", patient.Email)
	}
	if patient.Address != nil {
		t.Errorf("Expected nil address, got %q", *patient.Address)
	}
	if patient.BloodType == nil || *patient.BloodType != BloodTypeOPositive {
		t.Errorf("Expected blood type O+, got %v", patient.BloodType)
	}
}

// TestRepositoryGetPatient_NotFound_Integration tests that an unknown id is absent rather than an error
func TestRepositoryGetPatient_NotFound_Integration(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	repo := NewRepository(conn)

	patient, err := repo.GetPatient(context.Background(), 424242)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if patient != nil {
		t.Errorf("Expected nil patient, got %+v", patient)
	}
}

// TestServiceDuplicateEmail_Integration tests that the second patient with an email is rejected
func TestServiceDuplicateEmail_Integration(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	service := NewService(NewRepository(conn), nil, nil, zerolog.New(io.Discard))
	ctx := context.Background()

	first, err := service.AddPatient(ctx, johnDoe())
	if err != nil {
		t.Fatalf("AddPatient failed: %v", err)
	}
	if first == db.NoID {
		t.Fatal("Expected first patient to be stored")
	}

	again := johnDoe()
	again.FirstName = "Johnny"
	id, err := service.AddPatient(ctx, again)
	if id != db.NoID {
		t.Errorf("Expected db.NoID for duplicate email, got %d", id)
	}
	if db.Reason(err) != "unique_violation" {
		t.Errorf("Expected unique_violation, got %v", err)
	}

	if n := testutil.CountRows(t, conn, "patients"); n != 1 {
		t.Errorf("Expected exactly 1 patient row, got %d", n)
	}
}

// TestSchemaRejectsInvalidEnums_Integration tests the table constraints behind the service checks
func TestSchemaRejectsInvalidEnums_Integration(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	badGender := johnDoe()
	badGender.Gender = Gender("Unknown")
	id, err := repo.CreatePatient(ctx, badGender)
	if id != db.NoID || db.Reason(err) != "check_violation" {
		t.Errorf("Expected check_violation for gender, got id=%d err=%v", id, err)
	}

	badBlood := johnDoe()
	badBlood.BloodType = bloodPtr(BloodType("C+"))
	id, err = repo.CreatePatient(ctx, badBlood)
	if id != db.NoID || db.Reason(err) != "check_violation" {
		t.Errorf("Expected check_violation for blood type, got id=%d err=%v", id, err)
	}

	if n := testutil.CountRows(t, conn, "patients"); n != 0 {
		t.Errorf("Expected no patient rows, got %d", n)
	}
}

// TestRepositorySearchPatients_Integration tests name substring and gender filters
func TestRepositorySearchPatients_Integration(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	johnID, err := repo.CreatePatient(ctx, johnDoe())
	if err != nil {
		t.Fatalf("CreatePatient failed: %v", err)
	}
	janeID, err := repo.CreatePatient(ctx, CreatePatientRequest{
		FirstName:   "Jane",
		LastName:    "Smith",
		DateOfBirth: time.Date(1990, 11, 22, 0, 0, 0, 0, time.UTC),
		Gender:      GenderFemale,
		Email:       strPtr("jane.smith@example.com"),
	})
	if err != nil {
		t.Fatalf("CreatePatient failed: %v", err)
	}

	byName, err := repo.SearchPatients(ctx, SearchFilter{Name: "Doe"})
	if err != nil {
		t.Fatalf("SearchPatients failed: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != johnID {
		t.Errorf("Expected only John Doe for name Doe, got %+v", byName)
	}

	byGender, err := repo.SearchPatients(ctx, SearchFilter{Gender: GenderFemale})
	if err != nil {
		t.Fatalf("SearchPatients failed: %v", err)
	}
	if len(byGender) != 1 || byGender[0].ID != janeID {
		t.Errorf("Expected only Jane Smith for Female, got %+v", byGender)
	}

	all, err := repo.SearchPatients(ctx, SearchFilter{})
	if err != nil {
		t.Fatalf("SearchPatients failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != johnID || all[1].ID != janeID {
		t.Errorf("Expected both patients in id order, got %+v", all)
	}

	caseMismatch, err := repo.SearchPatients(ctx, SearchFilter{Name: "doe"})
	if err != nil {
		t.Fatalf("SearchPatients failed: %v", err)
	}
	if len(caseMismatch) != 0 {
		t.Errorf("Expected case-sensitive match to find nothing, got %d", len(caseMismatch))
	}
}
