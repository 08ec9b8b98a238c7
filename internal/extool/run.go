// Package extool wraps the external collaborators the estimator shells out
// to: the detexer, the typesetting pipeline, and the image inspectors. Every
// invocation runs under a per-call timeout so a wedged tool fails the current
// document instead of hanging the run.
package extool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Config carries per-call timeouts. Zero values get sensible defaults.
type Config struct {
	DetexTimeout     time.Duration
	TypesetTimeout   time.Duration
	InspectorTimeout time.Duration
}

func (c Config) withDefaults() Config {
	out := c
	if out.DetexTimeout <= 0 {
		out.DetexTimeout = 10 * time.Second
	}
	if out.TypesetTimeout <= 0 {
		out.TypesetTimeout = 60 * time.Second
	}
	if out.InspectorTimeout <= 0 {
		out.InspectorTimeout = 5 * time.Second
	}
	return out
}

// runCapture executes name with args in dir, capturing stdout and stderr.
// extraEnv entries are appended to the inherited environment.
func runCapture(ctx context.Context, dir string, extraEnv []string, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if len(extraEnv) > 0 {
		cmd.Env = append(cmd.Environ(), extraEnv...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// classify turns a raw exec failure into an actionable message naming the
// tool, distinguishing missing binaries and timeouts from real failures.
func classify(tool string, err error, ctx context.Context, stderr string) error {
	if err == nil {
		return nil
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s timeout: %w", tool, ctx.Err())
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%s not found in PATH: %w", tool, err)
	}
	if s := strings.TrimSpace(stderr); s != "" {
		return fmt.Errorf("%s failed: %s", tool, truncate(s, 300))
	}
	return fmt.Errorf("%s failed: %w", tool, err)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
