package store

import (
	"context"
	"errors"
	"time"

	"refgate/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgAdapter wraps pg.PG and implements RowQuerier + TxRunner.
// Slow statements are logged through the store logger
type pgAdapter struct {
	p *pg.PG
	s *Store
}

func newPGAdapter(p *pg.PG, s *Store) *pgAdapter { return &pgAdapter{p: p, s: s} }

// openPG opens pg, probes it once, and wraps it with the sql adapter
func openPG(ctx context.Context, cfg PGConfig, s *Store) (TxRunner, error) {
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		SlowMs:   cfg.SlowQueryMs,
	})
	if err != nil {
		return nil, err
	}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	toCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := p.Pool.Ping(toCtx); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p, s), nil
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := a.p.Pool.Exec(ctx, sql, args...)
	a.slow(sql, start)
	return tag{ct}, err
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.p.Pool.Query(ctx, sql, args...)
	a.slow(sql, start)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := a.p.Pool.QueryRow(ctx, sql, args...)
	a.slow(sql, start)
	return r
}

// Tx runs fn inside a transaction, rolling back on error
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, a.p.Pool, func(tx pgx.Tx) error {
		return fn(txQuerier{tx: tx})
	})
}

func (a *pgAdapter) slow(sql string, start time.Time) {
	if a.p.SlowMs <= 0 {
		return
	}
	elapsed := time.Since(start)
	if elapsed >= time.Duration(a.p.SlowMs)*time.Millisecond {
		a.s.Log.Warn().Dur("elapsed", elapsed).Str("sql", sql).Msg("slow query")
	}
}

// txQuerier adapts a pgx.Tx to RowQuerier for use inside Tx callbacks
type txQuerier struct{ tx pgx.Tx }

func (t txQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	ct, err := t.tx.Exec(ctx, sql, args...)
	return tag{ct}, err
}

func (t txQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := t.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

func (t txQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return t.tx.QueryRow(ctx, sql, args...)
}

// tag adapts pgconn.CommandTag
type tag struct{ ct pgconn.CommandTag }

func (t tag) String() string      { return t.ct.String() }
func (t tag) RowsAffected() int64 { return t.ct.RowsAffected() }

// rows adapts pgx.Rows
type rows struct{ r pgx.Rows }

func (w rows) Next() bool             { return w.r.Next() }
func (w rows) Scan(dest ...any) error { return w.r.Scan(dest...) }
func (w rows) Err() error             { return w.r.Err() }
func (w rows) Close()                 { w.r.Close() }
