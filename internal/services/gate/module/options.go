package module

import (
	"refgate/internal/platform/config"
	"refgate/internal/services/gate/service"
)

// Options controls the gate evaluation
type Options struct {
	// RepoDir is the repository to serve; empty means the process working
	// directory, which is where git runs update hooks
	RepoDir string

	// PolicyFile switches policy resolution from the repository
	// configuration to a provisioned YAML document
	PolicyFile string

	// WalkRange applies signature checks to every introduced commit
	WalkRange bool

	// TrustStoreMode is "always" or "skip-if-absent"
	TrustStoreMode string
}

// FromConfig reads with REFGATE_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("REFGATE_")
	return Options{
		RepoDir:    c.MayString("REPO_DIR", ""),
		PolicyFile: c.MayString("POLICY_FILE", ""),
		WalkRange:  c.MayBool("WALK_RANGE", false),
		TrustStoreMode: c.MayEnum("TRUSTSTORE_MODE", service.TrustStoreAlways,
			service.TrustStoreAlways, service.TrustStoreSkipIfAbsent),
	}
}
