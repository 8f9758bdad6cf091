package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"eventregistry/internal/domain"
)

// userLookupLimit bounds the concurrent user-store reads performed while
// resolving attendees in GetEventDetails.
const userLookupLimit = 8

// dateLayout and timeLayout are the wire formats for the split date and time
// creation fields. They are combined in the server's local timezone; the same
// local clock decides both the creation check and the is-past check.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type eventService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	userRepo         domain.UserRepository
	contextTimeout   time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	userRepo domain.UserRepository,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		contextTimeout:   timeout,
	}
}

// CreateEvent validates the raw input and inserts the event. Validation order:
// missing fields, then capacity range, then the future-date rule. The clock is
// read once, before the insert transaction opens.
func (s *eventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)
	if title == "" || strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Time) == "" || location == "" || in.Capacity == nil {
		return nil, fmt.Errorf("%w: missing field", domain.ErrInvalidInput)
	}

	dateTime, err := time.ParseInLocation(dateLayout+" "+timeLayout, strings.TrimSpace(in.Date)+" "+strings.TrimSpace(in.Time), time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date or time", domain.ErrInvalidInput)
	}

	capacity := *in.Capacity
	if capacity < domain.MinCapacity || capacity > domain.MaxCapacity {
		return nil, fmt.Errorf("%w: capacity out of range", domain.ErrInvalidInput)
	}

	now := time.Now()
	if !dateTime.After(now) {
		return nil, fmt.Errorf("%w: event date and time must be in the future", domain.ErrInvalidInput)
	}

	event := domain.NewEvent(title, dateTime, location, capacity, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			return nil, domain.ErrUnavailable
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// GetEventDetails loads the event, its registrations, and resolves each
// attendee through the user store. Lookups are independent reads and fan out
// concurrently; the result is sorted by user ID so the order is deterministic
// rather than whatever the fan-in produced. Registrations whose user row has
// vanished are skipped.
func (s *eventService) GetEventDetails(ctx context.Context, eventID string) (*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if eventID == "" {
		return nil, fmt.Errorf("%w: missing event id", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	regs, err := s.registrationRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	attendees := make([]*domain.User, len(regs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(userLookupLimit)
	for i, reg := range regs {
		g.Go(func() error {
			user, err := s.userRepo.GetByID(gctx, reg.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Registration outlived its user row; skip it.
					return nil
				}
				return fmt.Errorf("get user %s: %w", reg.UserID, err)
			}
			attendees[i] = user
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolved := make([]*domain.User, 0, len(attendees))
	for _, u := range attendees {
		if u != nil {
			resolved = append(resolved, u)
		}
	}
	sort.Slice(resolved, func(i, j int) bool { return resolved[i].ID < resolved[j].ID })

	return &domain.EventDetails{Event: event, Attendees: resolved}, nil
}

func (s *eventService) ListUpcomingEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListUpcoming(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// GetEventStats derives the registration count live from the store; it is
// never cached, so a concurrent cancellation is reflected on the next read.
func (s *eventService) GetEventStats(ctx context.Context, eventID string) (*domain.EventStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if eventID == "" {
		return nil, fmt.Errorf("%w: missing event id", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	count, err := s.registrationRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}

	// Capacity >= 1 is enforced at creation, so the division is safe.
	return &domain.EventStats{
		EventID:           event.ID,
		Capacity:          event.Capacity,
		RegistrationCount: count,
		RemainingCapacity: event.Capacity - count,
		PercentageUsed:    fmt.Sprintf("%.2f", float64(count)/float64(event.Capacity)*100),
	}, nil
}
