package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/appointment"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/patient"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/record"
)

type fakePatients struct {
	added  []patient.CreatePatientRequest
	failOn string
}

func (f *fakePatients) AddPatient(ctx context.Context, req patient.CreatePatientRequest) (int64, error) {
	if req.FirstName == f.failOn {
		return db.NoID, db.ErrUniqueViolation
	}
	f.added = append(f.added, req)
	return int64(len(f.added)), nil
}

func (f *fakePatients) GetPatientByID(ctx context.Context, id int64) (*patient.Patient, error) {
	return nil, nil
}

func (f *fakePatients) SearchPatients(ctx context.Context, filter patient.SearchFilter) ([]patient.Patient, error) {
	return []patient.Patient{}, nil
}

type fakeRecords struct {
	added []record.CreateRecordRequest
}

func (f *fakeRecords) AddMedicalRecord(ctx context.Context, req record.CreateRecordRequest) (int64, error) {
	f.added = append(f.added, req)
	return int64(100 + len(f.added)), nil
}

func (f *fakeRecords) GetPatientMedicalHistory(ctx context.Context, patientID int64) ([]record.MedicalRecord, error) {
	return []record.MedicalRecord{}, nil
}

type fakeAppointments struct {
	added []appointment.ScheduleRequest
}

func (f *fakeAppointments) ScheduleAppointment(ctx context.Context, req appointment.ScheduleRequest) (int64, error) {
	f.added = append(f.added, req)
	return int64(200 + len(f.added)), nil
}

func (f *fakeAppointments) GetAppointmentByID(ctx context.Context, id int64) (*appointment.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointments) GetUpcomingAppointments(ctx context.Context, daysAhead int) ([]appointment.AppointmentView, error) {
	return []appointment.AppointmentView{}, nil
}

func (f *fakeAppointments) UpdateAppointmentStatus(ctx context.Context, id int64, status appointment.Status) (bool, error) {
	return false, nil
}

func TestDefault(t *testing.T) {
	fx, err := Default()
	require.NoError(t, err)
	require.Len(t, fx.Patients, 2)

	john := fx.Patients[0]
	assert.Equal(t, "Doe", john.LastName)
	require.NotNil(t, john.BloodType)
	assert.Equal(t, "O+", *john.BloodType)
	assert.Len(t, john.Records, 2)
	assert.Nil(t, john.Records[0].Treatment)
	require.Len(t, john.Appointments, 1)
	assert.Equal(t, 3, john.Appointments[0].InDays)
	assert.Empty(t, john.Appointments[0].Status)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("patients: [unterminated"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	fx, err := Default()
	require.NoError(t, err)

	patients := &fakePatients{}
	records := &fakeRecords{}
	appts := &fakeAppointments{}
	now := time.Date(2026, 10, 19, 16, 45, 0, 0, time.UTC)

	res, err := Apply(context.Background(), Services{patients, records, appts}, fx, now)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, res.PatientIDs)
	assert.Equal(t, []int64{101, 102}, res.RecordIDs)
	assert.Equal(t, []int64{201, 202}, res.AppointmentIDs)

	assert.Equal(t, patient.GenderMale, patients.added[0].Gender)
	assert.Equal(t, "1985-05-15", patients.added[0].DateOfBirth.Format(db.DateLayout))
	require.NotNil(t, patients.added[1].BloodType)
	assert.Equal(t, patient.BloodTypeANegative, *patients.added[1].BloodType)

	assert.Equal(t, int64(1), records.added[1].PatientID)
	assert.Equal(t, "2023-04-15", records.added[1].VisitDate.Format(db.DateLayout))

	assert.Equal(t, int64(1), appts.added[0].PatientID)
	assert.Equal(t, time.Date(2026, 10, 22, 9, 30, 0, 0, time.UTC), appts.added[0].AppointmentDate)
	assert.Equal(t, int64(2), appts.added[1].PatientID)
	assert.Equal(t, time.Date(2026, 10, 23, 14, 0, 0, 0, time.UTC), appts.added[1].AppointmentDate)
	assert.Equal(t, appointment.Status(""), appts.added[1].Status)
}

func TestApply_StopsAtFirstFailure(t *testing.T) {
	fx, err := Default()
	require.NoError(t, err)

	patients := &fakePatients{failOn: "Jane"}
	res, err := Apply(context.Background(), Services{patients, &fakeRecords{}, &fakeAppointments{}}, fx, time.Now())
	assert.ErrorIs(t, err, db.ErrUniqueViolation)
	assert.Equal(t, []int64{1}, res.PatientIDs)
}

func TestApply_BadDates(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"date of birth", "patients:\n  - first_name: A\n    last_name: B\n    date_of_birth: 15/05/1985\n    gender: Male\n"},
		{"visit date", "patients:\n  - first_name: A\n    last_name: B\n    date_of_birth: \"1985-05-15\"\n    gender: Male\n    medical_records:\n      - visit_date: yesterday\n"},
		{"appointment time", "patients:\n  - first_name: A\n    last_name: B\n    date_of_birth: \"1985-05-15\"\n    gender: Male\n    appointments:\n      - in_days: 1\n        at: noon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			_, err = Apply(context.Background(), Services{&fakePatients{}, &fakeRecords{}, &fakeAppointments{}}, fx, time.Now())
			assert.Error(t, err)
		})
	}
}
