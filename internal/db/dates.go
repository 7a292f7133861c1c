package db

import "time"

const (
	// DateLayout is how calendar dates are sent to DATE columns.
	DateLayout = "2006-01-02"
	// TimestampLayout is how naive local date-times are sent to TIMESTAMP columns.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Date drops the clock and zone of t, keeping its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Naive keeps the wall clock of t and discards its zone, matching how
// TIMESTAMP WITHOUT TIME ZONE values come back from the driver.
func Naive(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
