package guestconfig

import "errors"

var (
	// ErrNotFound means the rid resolves to no reservation at all.
	ErrNotFound = errors.New("reservation not found")

	// ErrInvalidConfig means the store returned a body that failed schema
	// validation. This is deliberately distinct from ErrNotFound: a
	// malformed 200 is a service defect, not a missing reservation.
	ErrInvalidConfig = errors.New("guest config failed validation")

	ErrDuplicateRID = errors.New("reservation id already exists")
)
