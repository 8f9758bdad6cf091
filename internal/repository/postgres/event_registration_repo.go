package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventregistry/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

// Register performs the capacity check-then-insert as one transaction.
//
// SELECT ... FOR UPDATE takes a row-level lock on the event, so concurrent
// registrations for the same event serialize here: a second transaction
// blocks on the lock until the first commits, then re-reads the committed
// registration count. A plain read followed by an insert would let two
// callers both observe the last free seat.
//
// The composite primary key on (event_id, user_id) backs the duplicate check
// at the storage layer; a unique violation on insert is reported the same way
// as the in-transaction check.
func (r *registrationRepository) Register(ctx context.Context, eventID, userID string, now time.Time) (*domain.Registration, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", mapStoreError(err))
	}
	defer tx.Rollback()

	var dateTime time.Time
	var capacity int
	err = tx.QueryRowContext(ctx,
		`SELECT date_time, capacity
		 FROM events
		 WHERE id = $1
		 FOR UPDATE`,
		eventID,
	).Scan(&dateTime, &capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", mapStoreError(err))
	}

	if !dateTime.After(now) {
		return nil, domain.ErrEventPassed
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`,
		eventID,
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", mapStoreError(err))
	}
	if count >= capacity {
		return nil, domain.ErrEventFull
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM event_registrations WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", mapStoreError(err))
	}
	if exists {
		return nil, domain.ErrAlreadyRegistered
	}

	reg := &domain.Registration{EventID: eventID, UserID: userID, CreatedAt: now}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO event_registrations (event_id, user_id, created_at)
		 VALUES ($1, $2, $3)`,
		reg.EventID, reg.UserID, reg.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyRegistered
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("insert registration: %w", mapStoreError(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", mapStoreError(err))
	}
	return reg, nil
}

// Cancel deletes the registration. The single DELETE is its own atomic unit of
// work; zero affected rows means another caller got there first and the
// operation reports ErrNotFound rather than silently succeeding.
func (r *registrationRepository) Cancel(ctx context.Context, eventID, userID string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM event_registrations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		return mapStoreError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return mapStoreError(err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `
		SELECT event_id, user_id, created_at
		FROM event_registrations
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg := &domain.Registration{}
		if err := rows.Scan(&reg.EventID, &reg.UserID, &reg.CreatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`,
		eventID,
	).Scan(&count)
	if err != nil {
		return 0, mapStoreError(err)
	}
	return count, nil
}
