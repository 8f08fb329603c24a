package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	PG PGConfig
}

// PGConfig configures postgres connectivity
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	SlowQueryMs int

	// PingTimeout bounds the single readiness probe; default 3s
	PingTimeout time.Duration
}
