package domain

import (
	"context"
	"time"
)

// EvaluatePort evaluates one ref update end to end
type EvaluatePort interface {
	Evaluate(ctx context.Context, upd RefUpdate) (Verdict, error)
}

// ResolverPort produces the effective policy for a branch short name
type ResolverPort interface {
	Resolve(ctx context.Context, branch string) (BranchPolicy, error)
}

// InspectorPort queries the version-control backend for commit facts
type InspectorPort interface {
	ParentCount(ctx context.Context, commit string) (int, error)
	Verify(ctx context.Context, commit, trustStorePath string) (VerificationVerdict, error)
	Introduced(ctx context.Context, oldID, newID string) ([]string, error)
}

// AuditRecord is one row of the decision audit trail
type AuditRecord struct {
	RefName       string
	OldID         string
	NewID         string
	Decision      string // "accept" | "reject" | "error"
	Reason        string
	CorrelationID string
	DecidedAt     time.Time
}

// AuditPort records decisions best effort; failures are logged, never fatal
type AuditPort interface {
	RecordDecision(ctx context.Context, rec AuditRecord) error
}
