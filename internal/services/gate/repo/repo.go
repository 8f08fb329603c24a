// Package repo provides the gate's persistence surface: the decision audit
// trail. Everything here is best effort by contract; the service layer logs
// failures and moves on
package repo

import (
	"context"
	"time"

	"refgate/internal/modkit/repokit"
	"refgate/internal/services/gate/domain"

	"github.com/google/uuid"
)

// Repo is the audit persistence surface used by the service layer
type Repo interface {
	domain.AuditPort
}

type (
	// PG is the Postgres implementation of the audit repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// RecordDecision inserts one audit row. A zero DecidedAt defaults to now
func (r *queries) RecordDecision(ctx context.Context, rec domain.AuditRecord) error {
	const sql = `
		INSERT INTO gate_decisions (
			id, ref_name, old_id, new_id, decision, reason, correlation_id, decided_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	at := rec.DecidedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := r.q.Exec(ctx, sql,
		uuid.NewString(),
		rec.RefName,
		rec.OldID,
		rec.NewID,
		rec.Decision,
		rec.Reason,
		rec.CorrelationID,
		at,
	)
	return err
}
