//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"refgate/internal/platform/store"
	"refgate/internal/services/gate/domain"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const decisionsDDL = `CREATE TABLE gate_decisions (
	id UUID PRIMARY KEY,
	ref_name TEXT NOT NULL,
	old_id TEXT NOT NULL DEFAULT '',
	new_id TEXT NOT NULL DEFAULT '',
	decision TEXT NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	correlation_id TEXT NOT NULL DEFAULT '',
	decided_at TIMESTAMPTZ NOT NULL
)`

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}
	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("mapped port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	return dsn, func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
}

func TestRecordDecisionRoundtrip(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx := context.Background()
	s, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2}})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = s.Close(ctx) }()

	if _, err := s.PG.Exec(ctx, decisionsDDL); err != nil {
		t.Fatalf("create table: %v", err)
	}

	r := NewPG().Bind(s.PG)
	rec := domain.AuditRecord{
		RefName:       "refs/heads/secure",
		OldID:         "aaa",
		NewID:         "bbb",
		Decision:      "reject",
		Reason:        domain.ReasonAuthOnly,
		CorrelationID: "cid-42",
	}
	if err := r.RecordDecision(ctx, rec); err != nil {
		t.Fatalf("RecordDecision: %v", err)
	}

	var decision, reason, cid string
	err = s.PG.QueryRow(ctx,
		`SELECT decision, reason, correlation_id FROM gate_decisions WHERE ref_name = $1`,
		"refs/heads/secure").Scan(&decision, &reason, &cid)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if decision != "reject" || reason != domain.ReasonAuthOnly || cid != "cid-42" {
		t.Fatalf("roundtrip mismatch: %q %q %q", decision, reason, cid)
	}
}
