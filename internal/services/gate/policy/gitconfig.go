package policy

import (
	"context"

	"refgate/internal/gitcli"
)

// configSection is the git config section holding branch policies, e.g.
// refgate.release.enforcemergeonly
const configSection = "refgate"

// GitConfig reads policy from the repository's git configuration
type GitConfig struct {
	cli *gitcli.Client
}

// NewGitConfig builds the default configuration source
func NewGitConfig(cli *gitcli.Client) *GitConfig { return &GitConfig{cli: cli} }

// Get implements Source over git config --get. git's own subsection
// handling keeps branch names with slashes intact
func (g *GitConfig) Get(ctx context.Context, branch, key string) (string, bool, error) {
	return g.cli.ConfigGet(ctx, configSection+"."+branch+"."+key)
}
