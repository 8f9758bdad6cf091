package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"eventregistry/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, every method returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, now time.Time) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if e.DateTime.After(now) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateTime.Equal(out[j].DateTime) {
			return out[i].DateTime.Before(out[j].DateTime)
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}

// fakeRegistrationRepo is an in-memory RegistrationRepository. A single mutex
// guards Register end to end, mirroring the row lock the real repository
// takes, so the concurrency tests exercise the same atomic contract.
type fakeRegistrationRepo struct {
	mu     sync.Mutex
	events *fakeEventRepo
	regs   map[string]map[string]*domain.Registration // eventID -> userID
	err    error
}

func newFakeRegistrationRepo(events *fakeEventRepo) *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		events: events,
		regs:   make(map[string]map[string]*domain.Registration),
	}
}

func (f *fakeRegistrationRepo) Register(ctx context.Context, eventID, userID string, now time.Time) (*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	event, err := f.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.DateTime.After(now) {
		return nil, domain.ErrEventPassed
	}
	byUser := f.regs[eventID]
	if len(byUser) >= event.Capacity {
		return nil, domain.ErrEventFull
	}
	if _, ok := byUser[userID]; ok {
		return nil, domain.ErrAlreadyRegistered
	}
	if byUser == nil {
		byUser = make(map[string]*domain.Registration)
		f.regs[eventID] = byUser
	}
	reg := &domain.Registration{EventID: eventID, UserID: userID, CreatedAt: now}
	byUser[userID] = reg
	return reg, nil
}

func (f *fakeRegistrationRepo) Cancel(ctx context.Context, eventID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.regs[eventID][userID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.regs[eventID], userID)
	return nil
}

func (f *fakeRegistrationRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Registration, 0, len(f.regs[eventID]))
	for _, reg := range f.regs[eventID] {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRegistrationRepo) CountByEvent(ctx context.Context, eventID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return len(f.regs[eventID]), nil
}

// fakeUserRepo is an in-memory read-only user store.
type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

// seedEvent inserts an event directly into the fake store.
func seedEvent(f *fakeEventRepo, title string, dateTime time.Time, location string, capacity int) *domain.Event {
	e := domain.NewEvent(title, dateTime, location, capacity, time.Now())
	_ = f.Create(context.Background(), e)
	return e
}
