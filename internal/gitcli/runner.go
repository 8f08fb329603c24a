// Package gitcli runs git plumbing commands for the repository the hook
// serves. All queries are read-only; a non-empty stderr from git is treated
// as a hard failure, never silently ignored
package gitcli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"sort"
)

// Result captures one finished git invocation
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes a single git invocation. env carries extra variables for
// that one call only; implementations must never mutate the process
// environment, so nothing leaks across ref evaluations in a multi-ref run
type Runner interface {
	Run(ctx context.Context, env map[string]string, args ...string) (Result, error)
}

// ExecRunner runs the real git binary
type ExecRunner struct {
	// Dir is the repository directory; empty means the current working
	// directory (git's update hook runs with CWD = the bare repo)
	Dir string
}

// Run spawns git with a fresh environment slice built per call.
// The returned error is non-nil only for spawn-level failures; git exiting
// non-zero is reported through Result.ExitCode
func (r ExecRunner) Run(ctx context.Context, env map[string]string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	cmd.Env = mergedEnv(env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var xerr *exec.ExitError
		if !errors.As(err, &xerr) {
			return res, err
		}
		res.ExitCode = xerr.ExitCode()
	}
	return res, nil
}

// mergedEnv layers extra on top of the ambient environment in a new slice
func mergedEnv(extra map[string]string) []string {
	base := os.Environ()
	if len(extra) == 0 {
		return base
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(base)+len(keys))
	out = append(out, base...)
	for _, k := range keys {
		out = append(out, k+"="+extra[k])
	}
	return out
}
