package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/appointment"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/patient"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/record"
)

//go:embed seed.yaml
var defaultFixtures []byte

// Fixtures is the sample data loaded by the demo command.
type Fixtures struct {
	Patients []PatientFixture `yaml:"patients"`
}

type PatientFixture struct {
	FirstName    string               `yaml:"first_name"`
	LastName     string               `yaml:"last_name"`
	DateOfBirth  string               `yaml:"date_of_birth"`
	Gender       string               `yaml:"gender"`
	Phone        *string              `yaml:"phone"`
	Email        *string              `yaml:"email"`
	Address      *string              `yaml:"address"`
	BloodType    *string              `yaml:"blood_type"`
	Records      []RecordFixture      `yaml:"medical_records"`
	Appointments []AppointmentFixture `yaml:"appointments"`
}

type RecordFixture struct {
	VisitDate   string  `yaml:"visit_date"`
	Diagnosis   *string `yaml:"diagnosis"`
	Treatment   *string `yaml:"treatment"`
	Medications *string `yaml:"medications"`
	Notes       *string `yaml:"notes"`
}

// AppointmentFixture places an appointment InDays days after the seed is
// applied, at the HH:MM wall-clock time At.
type AppointmentFixture struct {
	InDays  int     `yaml:"in_days"`
	At      string  `yaml:"at"`
	Purpose *string `yaml:"purpose"`
	Status  string  `yaml:"status"`
}

// Services are the write operations the seed needs, satisfied by both
// clinic.Store and clinic.Tx.
type Services struct {
	Patients     patient.ServiceInterface
	Records      record.ServiceInterface
	Appointments appointment.ServiceInterface
}

// Result lists the ids created for each fixture patient, in fixture order.
type Result struct {
	PatientIDs     []int64
	RecordIDs      []int64
	AppointmentIDs []int64
}

// Default returns the embedded demo fixtures.
func Default() (*Fixtures, error) {
	return Parse(defaultFixtures)
}

// Parse decodes YAML fixtures.
func Parse(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &fx, nil
}

// Apply stores every fixture through svc and stops at the first failure.
// now anchors the relative appointment times.
func Apply(ctx context.Context, svc Services, fx *Fixtures, now time.Time) (*Result, error) {
	res := &Result{}

	for i, pf := range fx.Patients {
		req, err := pf.request()
		if err != nil {
			return res, fmt.Errorf("patient %d: %w", i, err)
		}

		patientID, err := svc.Patients.AddPatient(ctx, req)
		if err != nil {
			return res, fmt.Errorf("failed to add patient %s %s: %w", pf.FirstName, pf.LastName, err)
		}
		res.PatientIDs = append(res.PatientIDs, patientID)

		for _, rf := range pf.Records {
			visit, err := time.Parse(db.DateLayout, rf.VisitDate)
			if err != nil {
				return res, fmt.Errorf("invalid visit_date %q: %w", rf.VisitDate, err)
			}

			recordID, err := svc.Records.AddMedicalRecord(ctx, record.CreateRecordRequest{
				PatientID:   patientID,
				VisitDate:   visit,
				Diagnosis:   rf.Diagnosis,
				Treatment:   rf.Treatment,
				Medications: rf.Medications,
				Notes:       rf.Notes,
			})
			if err != nil {
				return res, fmt.Errorf("failed to add medical record: %w", err)
			}
			res.RecordIDs = append(res.RecordIDs, recordID)
		}

		for _, af := range pf.Appointments {
			when, err := af.scheduledAt(now)
			if err != nil {
				return res, err
			}

			apptID, err := svc.Appointments.ScheduleAppointment(ctx, appointment.ScheduleRequest{
				PatientID:       patientID,
				AppointmentDate: when,
				Purpose:         af.Purpose,
				Status:          appointment.Status(af.Status),
			})
			if err != nil {
				return res, fmt.Errorf("failed to schedule appointment: %w", err)
			}
			res.AppointmentIDs = append(res.AppointmentIDs, apptID)
		}
	}

	return res, nil
}

func (pf PatientFixture) request() (patient.CreatePatientRequest, error) {
	dob, err := time.Parse(db.DateLayout, pf.DateOfBirth)
	if err != nil {
		return patient.CreatePatientRequest{}, fmt.Errorf("invalid date_of_birth %q: %w", pf.DateOfBirth, err)
	}

	req := patient.CreatePatientRequest{
		FirstName:   pf.FirstName,
		LastName:    pf.LastName,
		DateOfBirth: dob,
		Gender:      patient.Gender(pf.Gender),
		Phone:       pf.Phone,
		Email:       pf.Email,
		Address:     pf.Address,
	}
	if pf.BloodType != nil {
		bt := patient.BloodType(*pf.BloodType)
		req.BloodType = &bt
	}
	return req, nil
}

func (af AppointmentFixture) scheduledAt(now time.Time) (time.Time, error) {
	at := "09:00"
	if af.At != "" {
		at = af.At
	}

	clock, err := time.Parse("15:04", at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid appointment time %q: %w", af.At, err)
	}

	day := now.AddDate(0, 0, af.InDays)
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location()), nil
}
