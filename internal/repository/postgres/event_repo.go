package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventregistry/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// Create inserts the event inside a transaction and fills in the generated id.
// Any failure rolls the transaction back so no partial row is visible.
func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", mapStoreError(err))
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (title, date_time, location, capacity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, e.Title, e.DateTime, e.Location, e.Capacity, e.CreatedAt).Scan(&e.ID); err != nil {
		return mapStoreError(err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", mapStoreError(err))
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, date_time, location, capacity, created_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.DateTime, &e.Location, &e.Capacity, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapStoreError(err)
	}
	return e, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, now time.Time) ([]*domain.Event, error) {
	query := `
		SELECT id, title, date_time, location, capacity, created_at
		FROM events
		WHERE date_time > $1
		ORDER BY date_time ASC, location ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.Title, &e.DateTime, &e.Location, &e.Capacity, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
