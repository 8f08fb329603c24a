// Package store provides the optional Postgres seam used for the decision
// audit trail. The zero value is safe and does nothing; a hook run with no
// audit store configured never touches this package beyond a nil check
package store

import (
	"context"
	"errors"

	"refgate/internal/platform/logger"
)

// Store is the facade over the optional audit backend
type Store struct {
	// Log is the logger used by subclients; zero means a no-op logger
	Log logger.Logger

	// PG is the postgres seam, nil when disabled
	PG TxRunner
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Open constructs a Store with the requested backends.
// A hook invocation is short-lived, so Postgres gets a single bounded ping
// rather than a retry loop: an unreachable audit store must surface fast and
// degrade, never stall a push
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	if cfg.PG.Enabled {
		a, err := openPG(ctx, cfg.PG, s)
		if err != nil {
			return nil, err
		}
		s.PG = a
	}
	return s, nil
}

// Guard verifies the configured seams are reachable
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if s.PG != nil {
		if p, ok := any(s.PG).(interface{ Ping(context.Context) error }); ok {
			return p.Ping(ctx)
		}
	}
	return nil
}

// Close closes all initialized backends; nil backends are ignored
func (s *Store) Close(_ context.Context) error {
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
