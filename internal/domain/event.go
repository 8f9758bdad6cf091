package domain

import (
	"context"
	"time"
)

// Capacity bounds enforced at event creation. Capacity is immutable afterwards;
// no update path exists.
const (
	MinCapacity = 1
	MaxCapacity = 1000
)

// Event represents an event with a bounded number of seats.
// swagger:model Event
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	DateTime  time.Time `json:"date_time"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(title string, dateTime time.Time, location string, capacity int, createdAt time.Time) *Event {
	return &Event{
		Title:     title,
		DateTime:  dateTime,
		Location:  location,
		Capacity:  capacity,
		CreatedAt: createdAt,
	}
}

// EventDetails bundles an event with its resolved attendees.
// swagger:model EventDetails
type EventDetails struct {
	Event     *Event  `json:"event"`
	Attendees []*User `json:"attendees"`
}

// EventStats reports aggregate registration figures for one event.
// PercentageUsed is rendered with two decimal places (e.g. "20.00").
// swagger:model EventStats
type EventStats struct {
	EventID           string `json:"event_id"`
	Capacity          int    `json:"capacity"`
	RegistrationCount int    `json:"registration_count"`
	RemainingCapacity int    `json:"remaining_capacity"`
	PercentageUsed    string `json:"percentage_used"`
}

// CreateEventInput carries the raw creation fields as provided by the caller.
// Capacity is a pointer so a missing field is distinguishable from zero.
type CreateEventInput struct {
	Title    string
	Date     string
	Time     string
	Location string
	Capacity *int
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListUpcoming returns events with date_time strictly after now,
	// ordered by date_time ascending, then location ascending.
	ListUpcoming(ctx context.Context, now time.Time) ([]*Event, error)
}

// EventService defines the event-facing operations of the registration engine.
type EventService interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*Event, error)
	GetEventDetails(ctx context.Context, eventID string) (*EventDetails, error)
	ListUpcomingEvents(ctx context.Context) ([]*Event, error)
	GetEventStats(ctx context.Context, eventID string) (*EventStats, error)
}
