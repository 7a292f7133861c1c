package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/WailSalutem-Health-Care/clinic-records"

// Metrics holds all custom metrics for the clinic records store
type Metrics struct {
	PatientTotal       metric.Int64Counter
	MedicalRecordTotal metric.Int64Counter
	AppointmentTotal   metric.Int64Counter

	WriteFailuresTotal metric.Int64Counter
	OperationDuration  metric.Float64Histogram
}

// InitMetrics initializes all custom metrics on the global meter provider
func InitMetrics() (*Metrics, error) {
	return newMetrics(otel.Meter(instrumentationName))
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	patientTotal, err := meter.Int64Counter(
		"patient_operations_total",
		metric.WithDescription("Total number of patient operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	medicalRecordTotal, err := meter.Int64Counter(
		"medical_record_operations_total",
		metric.WithDescription("Total number of medical record operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	appointmentTotal, err := meter.Int64Counter(
		"appointment_operations_total",
		metric.WithDescription("Total number of appointment operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	writeFailuresTotal, err := meter.Int64Counter(
		"write_failures_total",
		metric.WithDescription("Writes rejected by validation or by the store"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram(
		"store_operation_duration_ms",
		metric.WithDescription("Store operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		PatientTotal:       patientTotal,
		MedicalRecordTotal: medicalRecordTotal,
		AppointmentTotal:   appointmentTotal,
		WriteFailuresTotal: writeFailuresTotal,
		OperationDuration:  operationDuration,
	}, nil
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// RecordPatientOperation records a patient operation metric
func (m *Metrics) RecordPatientOperation(ctx context.Context, operation string, ok bool) {
	if m == nil {
		return
	}
	m.PatientTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome(ok)),
	))
}

// RecordMedicalRecordOperation records a medical record operation metric
func (m *Metrics) RecordMedicalRecordOperation(ctx context.Context, operation string, ok bool) {
	if m == nil {
		return
	}
	m.MedicalRecordTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome(ok)),
	))
}

// RecordAppointmentOperation records an appointment operation metric
func (m *Metrics) RecordAppointmentOperation(ctx context.Context, operation string, ok bool) {
	if m == nil {
		return
	}
	m.AppointmentTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome(ok)),
	))
}

// RecordWriteFailure counts a soft-failed write by entity and reason
func (m *Metrics) RecordWriteFailure(ctx context.Context, entity, reason string) {
	if m == nil {
		return
	}
	m.WriteFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("reason", reason),
	))
}

// RecordDuration records how long a store operation took
func (m *Metrics) RecordDuration(ctx context.Context, operation string, durationMs float64) {
	if m == nil {
		return
	}
	m.OperationDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}
