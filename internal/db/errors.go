package db

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// NoID is returned by create operations that did not store a row. Real ids are
// assigned by BIGSERIAL columns and start at 1.
const NoID int64 = -1

var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrCheckViolation      = errors.New("check constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrNotNullViolation    = errors.New("not-null constraint violation")

	// ErrInvalidInput marks values rejected before they reach the store.
	ErrInvalidInput = errors.New("invalid input")
)

// Classify maps PostgreSQL integrity errors onto the sentinel errors above while
// keeping the driver error in the chain. Other errors are returned unchanged.
func Classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	var kind error
	switch pqErr.Code {
	case "23505":
		kind = ErrUniqueViolation
	case "23514":
		kind = ErrCheckViolation
	case "23503":
		kind = ErrForeignKeyViolation
	case "23502":
		kind = ErrNotNullViolation
	default:
		return err
	}

	if pqErr.Constraint != "" {
		return fmt.Errorf("%w on %s: %w", kind, pqErr.Constraint, err)
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// Reason is a short label for a write failure, used in logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUniqueViolation):
		return "unique_violation"
	case errors.Is(err, ErrCheckViolation):
		return "check_violation"
	case errors.Is(err, ErrForeignKeyViolation):
		return "foreign_key_violation"
	case errors.Is(err, ErrNotNullViolation):
		return "not_null_violation"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	}
	return "storage_error"
}
