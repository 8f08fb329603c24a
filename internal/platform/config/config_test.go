package config

import (
	"testing"

	kit "refgate/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	gate := root.Prefix("REFGATE_")
	if got := gate.key("WALK_RANGE"); got != "REFGATE_WALK_RANGE" {
		t.Fatalf("key() = %q, want REFGATE_WALK_RANGE", got)
	}
	audit := gate.Prefix("AUDIT_")
	if got := audit.key("DBURL"); got != "REFGATE_AUDIT_DBURL" {
		t.Fatalf("nested key() = %q, want REFGATE_AUDIT_DBURL", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("REFGATE_")
	t.Setenv("REFGATE_REPO_DIR", "  /srv/git/app.git ")
	if got := c.MustString("REPO_DIR"); got != "/srv/git/app.git" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMayString(t *testing.T) {
	c := New().Prefix("REFGATE_")
	t.Setenv("REFGATE_POLICY_FILE", " policy.yaml ")
	if got := c.MayString("POLICY_FILE", ""); got != "policy.yaml" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("MISSING", "fallback"); got != "fallback" {
		t.Fatalf("MayString default = %q", got)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("F_")
	t.Setenv("F_WALK", " true ")
	if !c.MayBool("WALK", false) {
		t.Fatalf("MayBool true expected")
	}
	if c.MayBool("MISSING", false) {
		t.Fatalf("missing should use default")
	}
	t.Setenv("F_BAD", "notabool")
	if c.MayBool("BAD", false) {
		t.Fatalf("invalid bool should use default, not raise")
	}
}

func TestMayInt(t *testing.T) {
	c := New()
	t.Setenv("MAX_CONNS", " 2 ")
	if got := c.MayInt("MAX_CONNS", 8); got != 2 {
		t.Fatalf("MayInt = %d", got)
	}
	t.Setenv("BAD_INT", "two")
	if got := c.MayInt("BAD_INT", 8); got != 8 {
		t.Fatalf("invalid int should use default, got %d", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("REFGATE_")
	t.Setenv("REFGATE_TRUSTSTORE_MODE", "Skip-If-Absent")
	got := c.MayEnum("TRUSTSTORE_MODE", "always", "always", "skip-if-absent")
	if got != "skip-if-absent" {
		t.Fatalf("MayEnum should normalize to allowed casing, got %q", got)
	}
	if got := c.MayEnum("UNSET_MODE", "always", "always", "skip-if-absent"); got != "always" {
		t.Fatalf("MayEnum default = %q", got)
	}
	t.Setenv("REFGATE_BAD_MODE", "sometimes")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD_MODE", "always", "always", "skip-if-absent") })
}
