package policy

import (
	"context"
	"strings"
	"testing"

	"refgate/internal/gitcli"
)

// scriptRunner maps full git config keys to canned values
type scriptRunner struct {
	values map[string]string
	keys   []string
}

func (s *scriptRunner) Run(_ context.Context, _ map[string]string, args ...string) (gitcli.Result, error) {
	// args are always: config --get <key>
	key := args[len(args)-1]
	s.keys = append(s.keys, key)
	if v, ok := s.values[key]; ok {
		return gitcli.Result{Stdout: []byte(v + "\n")}, nil
	}
	return gitcli.Result{ExitCode: 1}, nil
}

func TestGitConfigKeyComposition(t *testing.T) {
	run := &scriptRunner{values: map[string]string{
		"refgate.release/1.2.enforcemergeonly": "true",
	}}
	src := NewGitConfig(gitcli.New(run))

	v, ok, err := src.Get(context.Background(), "release/1.2", KeyMergeOnly)
	if err != nil || !ok || v != "true" {
		t.Fatalf("Get = (%q, %v, %v)", v, ok, err)
	}
	if got := run.keys[0]; got != "refgate.release/1.2.enforcemergeonly" {
		t.Fatalf("composed key = %q", got)
	}
}

func TestGitConfigAbsentKey(t *testing.T) {
	src := NewGitConfig(gitcli.New(&scriptRunner{}))
	_, ok, err := src.Get(context.Background(), "main", KeyAuthOnly)
	if err != nil || ok {
		t.Fatalf("absent key = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestGitConfigResolverEndToEnd(t *testing.T) {
	run := &scriptRunner{values: map[string]string{
		"refgate.secure.enforceauthonly": "true",
		"refgate.secure.truststore":      "/srv/keys",
	}}
	r, _ := testResolver(NewGitConfig(gitcli.New(run)))
	pol, err := r.Resolve(context.Background(), "secure")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pol.MergeOnly || !pol.AuthOnly || pol.TrustStorePath != "/srv/keys" {
		t.Fatalf("policy = %+v", pol)
	}
	// all three keys are resolved independently
	joined := strings.Join(run.keys, ",")
	for _, want := range []string{KeyMergeOnly, KeyAuthOnly, KeyTrustStore} {
		if !strings.Contains(joined, want) {
			t.Fatalf("key %q was never looked up: %s", want, joined)
		}
	}
}
