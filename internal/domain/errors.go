package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails format or
// required-field rules (e.g. PESEL not 11 digits, malformed email).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would duplicate an existing unique
// record (an enrollment pair, a PESEL).
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrCapacityExceeded is returned when a trip already holds MaxPeople enrollments.
// Handlers should map this to HTTP 400.
var ErrCapacityExceeded = errors.New("trip has reached maximum capacity")

// ErrPersistence marks store failures that are not one of the business
// outcomes above: connectivity, unexpected constraint violations, bad SQL.
// Handlers should map this (and any other unclassified error) to HTTP 500.
var ErrPersistence = errors.New("persistence failure")

// Specific outcomes. Each wraps one of the kinds above, so callers can match
// either the exact case or the broader kind with errors.Is.
var (
	ErrClientNotFound     = fmt.Errorf("client %w", ErrNotFound)
	ErrTripNotFound       = fmt.Errorf("trip %w", ErrNotFound)
	ErrEnrollmentNotFound = fmt.Errorf("registration %w", ErrNotFound)

	ErrAlreadyEnrolled = fmt.Errorf("%w: client is already registered for this trip", ErrConflict)
	ErrPeselTaken      = fmt.Errorf("%w: client with this PESEL already exists", ErrConflict)
)
