package module

import "sync"

// Process-wide port registry. Each binary registers its modules during
// bootstrap and entry points look ports up by module name; the gate composes
// in a single process, so a plain map behind a lock is enough
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores the port set published by the named module, replacing any
// earlier registration under the same name
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs fetches the port set registered under name and asserts it to T.
// ok is false when the name is unknown or the registered set is not a T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset empties the registry between tests
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
