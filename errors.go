package fund

import "errors"

var (
	// ErrSeedInvalid is returned when seed data misses a required field.
	ErrSeedInvalid = errors.New("invalid seed")
	// ErrDraftInvalid is returned when a new record misses a required field.
	ErrDraftInvalid = errors.New("invalid record")
	// ErrRecordNotFound is returned by mutations referencing an unknown record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrReconciliationInputInvalid is returned for negative amounts.
	ErrReconciliationInputInvalid = errors.New("invalid reconciliation input")
	// ErrConflict is returned when the caller's revision of a record is stale.
	ErrConflict = errors.New("record revision conflict")
	// ErrForbidden is returned when a session without the admin role mutates the fund.
	ErrForbidden = errors.New("admin role required")
)
