// Package policy resolves per-branch enforcement policy from the
// repository's configuration store
package policy

import (
	"context"

	"refgate/internal/platform/logger"
	"refgate/internal/services/gate/domain"
)

// Configuration keys, namespaced by branch short name in the store
const (
	KeyMergeOnly  = "enforcemergeonly"
	KeyAuthOnly   = "enforceauthonly"
	KeyTrustStore = "truststore"
)

// Source is a get-with-default view over one configuration backend.
// ok=false means the key has no entry, which is never an error
type Source interface {
	Get(ctx context.Context, branch, key string) (value string, ok bool, err error)
}

// Resolver produces the effective BranchPolicy for a branch short name
type Resolver struct {
	src Source
	log logger.Logger
}

// NewResolver builds a Resolver over src
func NewResolver(src Source, log logger.Logger) *Resolver {
	return &Resolver{src: src, log: log}
}

// Resolve looks up the three policy keys independently, each with its
// documented default. Lookup failures surface as errors (internal), never as
// a verdict
func (r *Resolver) Resolve(ctx context.Context, branch string) (domain.BranchPolicy, error) {
	var pol domain.BranchPolicy

	mergeOnly, err := r.boolKey(ctx, branch, KeyMergeOnly)
	if err != nil {
		return domain.BranchPolicy{}, err
	}
	authOnly, err := r.boolKey(ctx, branch, KeyAuthOnly)
	if err != nil {
		return domain.BranchPolicy{}, err
	}
	trust, _, err := r.src.Get(ctx, branch, KeyTrustStore)
	if err != nil {
		return domain.BranchPolicy{}, err
	}

	pol.MergeOnly = mergeOnly
	pol.AuthOnly = authOnly
	pol.TrustStorePath = trust
	return pol, nil
}

func (r *Resolver) boolKey(ctx context.Context, branch, key string) (bool, error) {
	raw, ok, err := r.src.Get(ctx, branch, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	v, recognized := parseBool(raw)
	if !recognized {
		// fail open on malformed booleans, but make it visible
		r.log.Warn().Str("branch", branch).Str("key", key).Str("value", raw).
			Msg("unrecognized boolean in branch policy; treating as false")
	}
	return v, nil
}

// parseBool is the total parsing function over the closed enumeration
// {"true", "false"}. Anything else maps to false with recognized=false
func parseBool(s string) (value, recognized bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
