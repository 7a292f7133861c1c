package main

import (
	"fmt"
	"io"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/appointment"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/patient"
	"github.com/WailSalutem-Health-Care/clinic-records/internal/record"
)

func printPatients(w io.Writer, patients []patient.Patient) {
	if len(patients) == 0 {
		fmt.Fprintln(w, "No patients found")
		return
	}
	for _, p := range patients {
		fmt.Fprintf(w, "%s (%s), DOB: %s\n", p.FullName(), p.Gender, p.DateOfBirth.Format(db.DateLayout))
	}
}

func printHistory(w io.Writer, records []record.MedicalRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No medical records")
		return
	}
	for _, r := range records {
		diagnosis := "No diagnosis"
		if r.Diagnosis != nil && *r.Diagnosis != "" {
			diagnosis = *r.Diagnosis
		}
		fmt.Fprintf(w, "%s: %s\n", r.VisitDate.Format(db.DateLayout), diagnosis)
	}
}

func printUpcoming(w io.Writer, views []appointment.AppointmentView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No upcoming appointments")
		return
	}
	for _, v := range views {
		purpose := "-"
		if v.Purpose != nil {
			purpose = *v.Purpose
		}
		fmt.Fprintf(w, "%s: %s - %s [%s]\n", v.PatientName, v.AppointmentDate.Format(db.TimestampLayout), purpose, v.Status)
	}
}
