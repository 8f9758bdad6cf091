package domain

import "errors"

// Sentinel errors shared across services and repositories. Specific validation
// causes wrap ErrInvalidInput with %w so callers can match the category while
// keeping the message.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when the request is malformed, missing a
	// field, or out of range. Never retryable as-is.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEventPassed is returned when registering for an event whose
	// date_time is not in the future.
	ErrEventPassed = errors.New("event has already occurred")

	// ErrEventFull is returned when an event has no remaining capacity.
	ErrEventFull = errors.New("event capacity is full")

	// ErrAlreadyRegistered is returned when the (event, user) pair already
	// holds a registration.
	ErrAlreadyRegistered = errors.New("user already registered for this event")

	// ErrUnavailable is returned for transient storage failures (timeout,
	// deadlock, serialization conflict). Safe to retry unchanged.
	ErrUnavailable = errors.New("storage temporarily unavailable")
)
