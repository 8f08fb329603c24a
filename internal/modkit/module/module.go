// Package module defines the minimal contract for a modkit module
package module

// Module is the common surface for service modules.
// Kept tiny so modules stay decoupled: a module exposes a name and a port set
type Module interface {
	// Ports returns a module specific port set for cross wiring
	Ports() any

	// Name returns the module name
	Name() string
}
