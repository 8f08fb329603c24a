package gitcli

import (
	"bytes"
	"context"
	"strings"

	perr "refgate/internal/platform/errors"
)

// Client exposes the read-only queries the gate needs from git
type Client struct {
	run Runner
}

// New builds a Client over an arbitrary runner (tests inject fakes here)
func New(run Runner) *Client { return &Client{run: run} }

// NewExec builds a Client over the real git binary in dir
func NewExec(dir string) *Client { return &Client{run: ExecRunner{Dir: dir}} }

// ParentCount retrieves the commit record for id and counts its parent edges.
// A commit is a merge iff the count exceeds one
func (c *Client) ParentCount(ctx context.Context, id string) (int, error) {
	res, err := c.run.Run(ctx, nil, "cat-file", "commit", id)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeBackend, "spawn git cat-file for %s", id)
	}
	if res.ExitCode != 0 || len(bytes.TrimSpace(res.Stderr)) > 0 {
		return 0, perr.Backendf("git cat-file %s exited %d: %s", id, res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}
	return countParents(res.Stdout, id)
}

// countParents parses a raw commit record. The header runs until the first
// blank line; it must open with a tree line, and each parent line names one
// parent edge
func countParents(record []byte, id string) (int, error) {
	lines := strings.Split(string(record), "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "tree ") {
		return 0, perr.CorruptDataf("object %s is not a parseable commit record", id)
	}
	n := 0
	for _, line := range lines[1:] {
		if line == "" {
			break
		}
		if !strings.HasPrefix(line, "parent ") {
			continue
		}
		sha := strings.TrimPrefix(line, "parent ")
		if !isObjectID(sha) {
			return 0, perr.CorruptDataf("object %s has malformed parent line %q", id, line)
		}
		n++
	}
	return n, nil
}

// VerificationCode returns git's single-character signature status for id.
// gnupgHome, when non-empty, is injected as GNUPGHOME for this call only so
// verification runs against the designated trust store; empty means the
// ambient keyring
func (c *Client) VerificationCode(ctx context.Context, id, gnupgHome string) (byte, error) {
	var env map[string]string
	if gnupgHome != "" {
		env = map[string]string{"GNUPGHOME": gnupgHome}
	}
	res, err := c.run.Run(ctx, env, "show", "--no-patch", "--format=%G?", id)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeBackend, "spawn git show for %s", id)
	}
	if res.ExitCode != 0 || len(bytes.TrimSpace(res.Stderr)) > 0 {
		return 0, perr.Backendf("git show %s exited %d: %s", id, res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}
	code := bytes.TrimSpace(res.Stdout)
	if len(code) != 1 {
		return 0, perr.CorruptDataf("unexpected verification status %q for %s", string(code), id)
	}
	return code[0], nil
}

// ConfigGet reads one key from the repository configuration.
// ok=false with a nil error means the key is unset (git exits 1); any other
// non-zero exit is a configuration-store failure
func (c *Client) ConfigGet(ctx context.Context, key string) (string, bool, error) {
	res, err := c.run.Run(ctx, nil, "config", "--get", key)
	if err != nil {
		return "", false, perr.Wrapf(err, perr.ErrorCodeConfigStore, "spawn git config for %s", key)
	}
	switch {
	case res.ExitCode == 0:
		return strings.TrimSpace(string(res.Stdout)), true, nil
	case res.ExitCode == 1 && len(bytes.TrimSpace(res.Stderr)) == 0:
		return "", false, nil
	default:
		return "", false, perr.ConfigStoref("git config --get %s exited %d: %s",
			key, res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}
}

// ListIntroduced returns every commit the update introduces, newest first.
// For a pre-existing branch that is oldID..newID; for a branch creation
// (zero oldID) it is everything reachable from newID and from no existing ref
func (c *Client) ListIntroduced(ctx context.Context, oldID, newID string) ([]string, error) {
	args := []string{"rev-list", newID, "--not", "--all"}
	if oldID != "" && !isZero(oldID) {
		args = []string{"rev-list", oldID + ".." + newID}
	}
	res, err := c.run.Run(ctx, nil, args...)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeBackend, "spawn git rev-list for %s", newID)
	}
	if res.ExitCode != 0 || len(bytes.TrimSpace(res.Stderr)) > 0 {
		return nil, perr.Backendf("git rev-list exited %d: %s", res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}
	var out []string
	for _, line := range strings.Split(string(res.Stdout), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !isObjectID(line) {
			return nil, perr.CorruptDataf("rev-list produced malformed id %q", line)
		}
		out = append(out, line)
	}
	return out, nil
}

// isObjectID accepts 40 (sha1) or 64 (sha256) hex characters
func isObjectID(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func isZero(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return len(s) > 0
}
