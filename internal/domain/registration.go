package domain

import (
	"context"
	"time"
)

// Registration records that a user holds a seat at an event. Identity is the
// (event_id, user_id) pair; at most one row per pair exists at a time.
// swagger:model Registration
type Registration struct {
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Register performs the whole check-and-insert as one serialized unit of
	// work: it locks the event row, rejects past events (relative to now),
	// full events, and duplicates, then inserts. Returns ErrNotFound,
	// ErrEventPassed, ErrEventFull, ErrAlreadyRegistered or ErrUnavailable.
	Register(ctx context.Context, eventID, userID string, now time.Time) (*Registration, error)
	// Cancel deletes the (event, user) registration. Deleting a row another
	// caller already removed reports ErrNotFound.
	Cancel(ctx context.Context, eventID, userID string) error
	ListByEvent(ctx context.Context, eventID string) ([]*Registration, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
}

// RegistrationService defines the attendee-facing operations of the engine.
type RegistrationService interface {
	RegisterUser(ctx context.Context, eventID, userID string) (*Registration, error)
	CancelRegistration(ctx context.Context, eventID, userID string) error
}
