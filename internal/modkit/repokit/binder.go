package repokit

// Binder defers a repo's queryer to wiring time: the module decides at
// construction whether audit persistence is on, then binds once
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain constructor function into a Binder
type BindFunc[T any] func(Queryer) T

// Bind calls the underlying function
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// RequireQueryer panics on a nil queryer, which is always a wiring bug
func RequireQueryer(q Queryer) Queryer {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return q
}

// MustBind validates q then binds; module wiring uses this so a
// misconfigured store fails at startup, not on the first audit write
func MustBind[T any](b Binder[T], q Queryer) T {
	return b.Bind(RequireQueryer(q))
}
