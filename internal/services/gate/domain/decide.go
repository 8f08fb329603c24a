package domain

// Verdict is the terminal outcome of evaluating one ref update
type Verdict struct {
	Allowed bool
	Reason  string
}

// Accept is the allowing verdict
func Accept() Verdict { return Verdict{Allowed: true} }

// Reject builds a rejecting verdict with a human-readable reason
func Reject(reason string) Verdict { return Verdict{Reason: reason} }

// Rejection reasons are deterministic so pushers and audit entries see stable
// text per violated constraint
const (
	ReasonMergeOnly = "merge-only policy violated: pushed commit is not a merge commit"
	ReasonAuthOnly  = "auth-only policy violated: pushed commit is not verifiably signed"
)

// Decide combines a resolved policy with commit facts. Both constraints are
// independent and additive; the first violated one wins. Callers evaluate
// lazily, passing only the facts the enforced flags require
func Decide(p BranchPolicy, f CommitFacts) Verdict {
	if p.MergeOnly && f.ParentCount <= 1 {
		return Reject(ReasonMergeOnly)
	}
	if p.AuthOnly && f.Verification != VerdictGood {
		return Reject(ReasonAuthOnly)
	}
	return Accept()
}
