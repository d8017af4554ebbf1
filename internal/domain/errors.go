package domain

import "errors"

// Sentinel errors shared across services and repositories. Repositories
// translate driver-level "no rows" conditions to ErrNotFound; services return
// the more specific sentinels below so controllers can map them to API codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	ErrDuplicateEmail    = errors.New("email already registered for this event")
	ErrAlreadyCancelled  = errors.New("registration is already cancelled")
	ErrEventNotPublished = errors.New("event must be published to accept registrations")
	ErrDeadlinePassed    = errors.New("registration deadline has passed")

	ErrDuplicateCode    = errors.New("discount code already exists for this event")
	ErrDiscountCodeUsed = errors.New("cannot delete discount code that has been used")

	ErrHasRegistrations = errors.New("operation not allowed while registrations exist")
)
