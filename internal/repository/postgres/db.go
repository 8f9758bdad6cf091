package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL, configures the pool, and verifies the
// connection. It retries the ping a few times to accommodate databases that
// are still starting up.
func Open(ctx context.Context, dbURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	for attempt := 1; attempt <= 5; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return db, nil
		}
		time.Sleep(2 * time.Second)
	}
	db.Close()
	return nil, fmt.Errorf("connect to postgres: %w", err)
}
