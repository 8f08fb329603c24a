package module

import (
	"context"
	"testing"
)

// evaluator is a sample port interface for wiring tests
type evaluator interface {
	Evaluate(ctx context.Context) (bool, error)
}

type fakeEval struct{}

func (fakeEval) Evaluate(context.Context) (bool, error) { return true, nil }

// stubModule satisfies Module with a configurable port set
type stubModule struct {
	name  string
	ports any
}

func (s stubModule) Ports() any   { return s.ports }
func (s stubModule) Name() string { return s.name }

var _ Module = stubModule{}

type portSet struct {
	Gate evaluator
}

func TestPortsOf_Direct(t *testing.T) {
	m := stubModule{name: "gate", ports: fakeEval{}}
	got, ok := PortsOf[evaluator](m)
	if !ok || got == nil {
		t.Fatalf("expected direct port extraction")
	}
}

func TestPortsOf_StructField(t *testing.T) {
	m := stubModule{name: "gate", ports: portSet{Gate: fakeEval{}}}
	got, ok := PortsOf[evaluator](m)
	if !ok || got == nil {
		t.Fatalf("expected struct-field port extraction")
	}
}

func TestPortsOf_Missing(t *testing.T) {
	if _, ok := PortsOf[evaluator](stubModule{name: "empty"}); ok {
		t.Fatalf("nil ports should not resolve")
	}
	type other struct{ N int }
	if _, ok := PortsOf[evaluator](stubModule{name: "other", ports: other{N: 1}}); ok {
		t.Fatalf("unrelated ports should not resolve")
	}
}

func TestMustPortsOfPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing port")
		}
	}()
	_ = MustPortsOf[evaluator](stubModule{name: "empty"})
}

func TestRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register("gate", portSet{Gate: fakeEval{}})
	ps, ok := PortsAs[portSet]("gate")
	if !ok || ps.Gate == nil {
		t.Fatalf("registry roundtrip failed")
	}
	if _, ok := PortsAs[portSet]("missing"); ok {
		t.Fatalf("missing name should not resolve")
	}
	if _, ok := PortsAs[int]("gate"); ok {
		t.Fatalf("wrong type should not resolve")
	}
}
