// Package domain defines the gate's core types, the decision function, and
// the ports its service layer is wired through
package domain

// RefUpdate is the unit of work: one ref, evaluated exactly once per hook
// invocation. Only NewID is inspected unless range walking is enabled
type RefUpdate struct {
	RefName string
	OldID   string
	NewID   string
}

// Deletion reports whether the update removes the ref (null new id).
// There is no commit to inspect, so policy does not apply
func (u RefUpdate) Deletion() bool { return IsZeroID(u.NewID) }

// BranchPolicy is the resolved per-ref configuration. Created fresh per
// invocation, never mutated after resolution
type BranchPolicy struct {
	MergeOnly      bool
	AuthOnly       bool
	TrustStorePath string
}

// Enforcing reports whether any constraint is active; a non-enforcing policy
// accepts unconditionally
func (p BranchPolicy) Enforcing() bool { return p.MergeOnly || p.AuthOnly }

// CommitFacts are derived, read-only facts about a commit. Only the facts the
// active policy needs are ever computed
type CommitFacts struct {
	ParentCount  int
	Verification VerificationVerdict
}
