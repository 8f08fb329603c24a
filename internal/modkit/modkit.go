// Package modkit provides module wiring and core deps
package modkit

import (
	"refgate/internal/modkit/repokit"
	"refgate/internal/platform/config"
	"refgate/internal/platform/logger"
)

// Deps holds core dependencies passed to modules.
// This is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG is the optional audit seam; nil when no audit store is configured
	PG repokit.TxRunner
}
