// Package module wires the gate service and exposes its ports
package module

import (
	"refgate/internal/gitcli"
	"refgate/internal/modkit"
	"refgate/internal/modkit/repokit"
	"refgate/internal/services/gate/domain"
	"refgate/internal/services/gate/policy"
	"refgate/internal/services/gate/repo"
	"refgate/internal/services/gate/service"
)

// Module defines the gate module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the gate module with its ports
func New(deps modkit.Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.RepoDir != "" {
		opts.RepoDir = overrides.RepoDir
	}
	if overrides.PolicyFile != "" {
		opts.PolicyFile = overrides.PolicyFile
	}
	if overrides.TrustStoreMode != "" {
		opts.TrustStoreMode = overrides.TrustStoreMode
	}
	if overrides.WalkRange {
		opts.WalkRange = true
	}

	git := gitcli.NewExec(opts.RepoDir)

	var src policy.Source = policy.NewGitConfig(git)
	if opts.PolicyFile != "" {
		src = policy.NewFileSource(opts.PolicyFile)
	}

	var audit domain.AuditPort
	if deps.PG != nil {
		audit = repokit.MustBind(repo.NewPG(), deps.PG)
	}

	svc := service.New(
		deps.Log,
		policy.NewResolver(src, deps.Log),
		service.NewInspector(git),
		audit,
		service.Config{
			WalkRange:      opts.WalkRange,
			TrustStoreMode: opts.TrustStoreMode,
		},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Gate: svc}
	return m
}

// Ports returns the module ports (Gate)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "gate" }
