// Package database manages the process-wide PostgreSQL handle.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/singleflight"
)

// Provider yields the shared *sql.DB, establishing it on first use.
type Provider interface {
	DB(ctx context.Context) (*sql.DB, error)
}

// Handle is a lazily established, process-wide database handle. Concurrent
// first-time callers coalesce onto a single connection attempt; a failed
// attempt is not cached, so a later request retries instead of being stuck
// on a dead handle.
type Handle struct {
	dsn    string
	logger *slog.Logger

	mu    sync.RWMutex
	db    *sql.DB
	group singleflight.Group
}

// NewHandle returns a Handle for the given connection string. No connection
// is attempted until the first DB call.
func NewHandle(dsn string, logger *slog.Logger) *Handle {
	return &Handle{dsn: dsn, logger: logger}
}

// DB returns the shared *sql.DB, connecting if needed.
func (h *Handle) DB(ctx context.Context) (*sql.DB, error) {
	h.mu.RLock()
	db := h.db
	h.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := h.group.Do("connect", func() (any, error) {
		return h.connect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.DB), nil
}

func (h *Handle) connect(ctx context.Context) (*sql.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db != nil {
		return h.db, nil
	}

	db, err := sql.Open("postgres", h.dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	h.logger.Info("database connection established")
	h.db = db
	return db, nil
}

// Close tears down the handle. Owned by the process shutdown path.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

// Static wraps an already-open *sql.DB in a Provider. Used by tests.
func Static(db *sql.DB) Provider {
	return staticProvider{db: db}
}

type staticProvider struct {
	db *sql.DB
}

func (p staticProvider) DB(ctx context.Context) (*sql.DB, error) {
	return p.db, nil
}
