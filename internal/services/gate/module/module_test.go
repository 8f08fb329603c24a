package module

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"refgate/internal/modkit"
	mod "refgate/internal/modkit/module"
	"refgate/internal/modkit/repokit"
	"refgate/internal/platform/config"
	dom "refgate/internal/services/gate/domain"
)

func TestNewExposesEvaluatePort(t *testing.T) {
	deps := modkit.Deps{Log: zerolog.Nop(), Cfg: config.New()}
	m := New(deps, Options{RepoDir: t.TempDir()})

	if m.Name() != "gate" {
		t.Fatalf("name = %q", m.Name())
	}
	if _, ok := mod.PortsOf[dom.EvaluatePort](m); !ok {
		t.Fatal("gate module must expose an EvaluatePort")
	}
}

type noopTxRunner struct{}

func (noopTxRunner) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, nil
}
func (noopTxRunner) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, nil }
func (noopTxRunner) QueryRow(context.Context, string, ...any) repokit.Row        { return nil }
func (noopTxRunner) Tx(context.Context, func(q repokit.Queryer) error) error     { return nil }

func TestNewBindsAuditWhenStoreWired(t *testing.T) {
	deps := modkit.Deps{Log: zerolog.Nop(), Cfg: config.New(), PG: noopTxRunner{}}
	m := New(deps, Options{RepoDir: t.TempDir()})

	if _, ok := mod.PortsOf[dom.EvaluatePort](m); !ok {
		t.Fatal("gate module must expose an EvaluatePort with audit wired")
	}
}

func TestFromConfigDefaultsAndOverrides(t *testing.T) {
	opts := FromConfig(config.New())
	if opts.WalkRange || opts.PolicyFile != "" || opts.TrustStoreMode != "always" {
		t.Fatalf("unexpected defaults: %+v", opts)
	}

	t.Setenv("REFGATE_WALK_RANGE", "true")
	t.Setenv("REFGATE_TRUSTSTORE_MODE", "skip-if-absent")
	t.Setenv("REFGATE_POLICY_FILE", "/etc/refgate/policy.yaml")

	opts = FromConfig(config.New())
	if !opts.WalkRange {
		t.Fatal("WALK_RANGE not honored")
	}
	if opts.TrustStoreMode != "skip-if-absent" {
		t.Fatalf("TrustStoreMode = %q", opts.TrustStoreMode)
	}
	if opts.PolicyFile != "/etc/refgate/policy.yaml" {
		t.Fatalf("PolicyFile = %q", opts.PolicyFile)
	}
}
