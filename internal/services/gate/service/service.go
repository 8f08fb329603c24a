// Package service orchestrates one ref-update evaluation: resolve policy,
// inspect the pushed commits lazily, decide, and record the outcome
package service

import (
	"context"
	"io/fs"
	"os"

	perr "refgate/internal/platform/errors"
	"refgate/internal/platform/logger"
	"refgate/internal/services/gate/domain"
)

// Trust-store handling modes. Always fails closed when a configured store
// cannot be used; SkipIfAbsent reproduces the older posture of accepting
// without verifying when the store directory is missing
const (
	TrustStoreAlways       = "always"
	TrustStoreSkipIfAbsent = "skip-if-absent"
)

// Config carries the evaluation knobs that are process-wide rather than
// per-branch
type Config struct {
	// WalkRange applies the signature constraint to every commit the update
	// introduces instead of only the tip
	WalkRange bool

	// TrustStoreMode is TrustStoreAlways or TrustStoreSkipIfAbsent
	TrustStoreMode string
}

// Svc evaluates ref updates. Stateless across calls: the same update triple
// against the same repository state always yields the same verdict
type Svc struct {
	log       logger.Logger
	resolver  domain.ResolverPort
	inspector domain.InspectorPort
	audit     domain.AuditPort // nil disables the audit trail
	cfg       Config

	stat func(string) (fs.FileInfo, error)
}

// New builds the gate service. audit may be nil
func New(log logger.Logger, resolver domain.ResolverPort, inspector domain.InspectorPort, audit domain.AuditPort, cfg Config) *Svc {
	if cfg.TrustStoreMode == "" {
		cfg.TrustStoreMode = TrustStoreAlways
	}
	return &Svc{
		log:       log,
		resolver:  resolver,
		inspector: inspector,
		audit:     audit,
		cfg:       cfg,
		stat:      os.Stat,
	}
}

// Evaluate runs the full gate for one ref update. A returned error is always
// an internal failure; policy violations come back as a rejecting Verdict
// with a nil error
func (s *Svc) Evaluate(ctx context.Context, upd domain.RefUpdate) (domain.Verdict, error) {
	log := s.refLog(ctx, upd)

	if !domain.IsBranch(upd.RefName) {
		log.Debug().Msg("ref outside the branch namespace; accepting without evaluation")
		return domain.Accept(), nil
	}
	if upd.Deletion() {
		log.Debug().Msg("branch deletion; no commit to evaluate")
		s.record(ctx, upd, "accept", "branch deletion")
		return domain.Accept(), nil
	}

	branch := domain.ShortName(upd.RefName)
	pol, err := s.resolver.Resolve(ctx, branch)
	if err != nil {
		s.record(ctx, upd, "error", err.Error())
		return domain.Verdict{}, perr.WithOp(err, "gate.resolve")
	}
	if !pol.Enforcing() {
		log.Debug().Msg("no constraints enforced for branch")
		s.record(ctx, upd, "accept", "")
		return domain.Accept(), nil
	}

	if pol.MergeOnly {
		v, err := s.checkMergeOnly(ctx, upd)
		if err != nil {
			s.record(ctx, upd, "error", err.Error())
			return domain.Verdict{}, err
		}
		if !v.Allowed {
			log.Info().Str("reason", v.Reason).Msg("update rejected")
			s.record(ctx, upd, "reject", v.Reason)
			return v, nil
		}
	}

	if pol.AuthOnly {
		v, err := s.checkAuthOnly(ctx, upd, pol)
		if err != nil {
			s.record(ctx, upd, "error", err.Error())
			return domain.Verdict{}, err
		}
		if !v.Allowed {
			log.Info().Str("reason", v.Reason).Msg("update rejected")
			s.record(ctx, upd, "reject", v.Reason)
			return v, nil
		}
	}

	log.Info().Msg("update accepted")
	s.record(ctx, upd, "accept", "")
	return domain.Accept(), nil
}

// checkMergeOnly decides the merge-only constraint against the tip commit;
// the constraint is only meaningful there
func (s *Svc) checkMergeOnly(ctx context.Context, upd domain.RefUpdate) (domain.Verdict, error) {
	parents, err := s.inspector.ParentCount(ctx, upd.NewID)
	if err != nil {
		return domain.Verdict{}, perr.WithOp(err, "gate.parentcount")
	}
	return domain.Decide(
		domain.BranchPolicy{MergeOnly: true},
		domain.CommitFacts{ParentCount: parents},
	), nil
}

// checkAuthOnly decides the signature constraint. With range walking enabled
// every introduced commit must verify; otherwise only the tip is checked
func (s *Svc) checkAuthOnly(ctx context.Context, upd domain.RefUpdate, pol domain.BranchPolicy) (domain.Verdict, error) {
	trust, skip, err := s.trustStore(pol)
	if err != nil {
		return domain.Verdict{}, err
	}
	if skip {
		log := s.refLog(ctx, upd)
		log.Warn().Str("trust_store", pol.TrustStorePath).
			Msg("trust store absent; skipping signature verification")
		return domain.Accept(), nil
	}

	commits := []string{upd.NewID}
	if s.cfg.WalkRange {
		commits, err = s.inspector.Introduced(ctx, upd.OldID, upd.NewID)
		if err != nil {
			return domain.Verdict{}, perr.WithOp(err, "gate.introduced")
		}
	}
	for _, commit := range commits {
		verdict, err := s.inspector.Verify(ctx, commit, trust)
		if err != nil {
			return domain.Verdict{}, perr.WithOp(err, "gate.verify")
		}
		v := domain.Decide(
			domain.BranchPolicy{AuthOnly: true},
			domain.CommitFacts{Verification: verdict},
		)
		if !v.Allowed {
			return v, nil
		}
	}
	return domain.Accept(), nil
}

// trustStore validates the configured trust-store path. An empty path keeps
// the ambient keyring; a configured path must be an existing directory or,
// under SkipIfAbsent, a missing one downgrades to skipping verification
func (s *Svc) trustStore(pol domain.BranchPolicy) (path string, skip bool, err error) {
	if pol.TrustStorePath == "" {
		return "", false, nil
	}
	info, err := s.stat(pol.TrustStorePath)
	if err != nil {
		if s.cfg.TrustStoreMode == TrustStoreSkipIfAbsent && os.IsNotExist(err) {
			return "", true, nil
		}
		return "", false, perr.ConfigStoref("trust store %q is not usable: %v", pol.TrustStorePath, err)
	}
	if !info.IsDir() {
		return "", false, perr.ConfigStoref("trust store %q is not a directory", pol.TrustStorePath)
	}
	return pol.TrustStorePath, false, nil
}

// record appends one audit row, best effort. Audit unavailability is an
// operational condition, never a policy outcome
func (s *Svc) record(ctx context.Context, upd domain.RefUpdate, decision, reason string) {
	if s.audit == nil {
		return
	}
	rec := domain.AuditRecord{
		RefName:       upd.RefName,
		OldID:         upd.OldID,
		NewID:         upd.NewID,
		Decision:      decision,
		Reason:        reason,
		CorrelationID: logger.CorrelationFrom(ctx),
	}
	if err := s.audit.RecordDecision(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("ref", upd.RefName).Msg("audit record failed")
	}
}

// refLog scopes the service logger to one update and its correlation id
func (s *Svc) refLog(ctx context.Context, upd domain.RefUpdate) logger.Logger {
	lc := s.log.With().Str("ref", upd.RefName)
	if id := logger.CorrelationFrom(ctx); id != "" {
		lc = lc.Str("correlation_id", id)
	}
	return lc.Logger()
}
