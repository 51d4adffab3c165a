package remote

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner executes git with captured output. The resolver goes through this
// interface so tests can substitute a fake and never touch the network.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// GitRunner runs the real git binary as a subprocess. Timeout policy belongs
// to the caller's context.
type GitRunner struct {
	// Verbose, when non-nil, receives one line per git invocation.
	Verbose io.Writer
}

func (g *GitRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return "", fmt.Errorf("git is not available on PATH: %w", err)
	}
	if g.Verbose != nil {
		fmt.Fprintf(g.Verbose, "git %s\n", strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
