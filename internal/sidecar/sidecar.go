// Package sidecar locates and executes the bundled extract-inputs helper,
// capturing its exit status and output streams.
package sidecar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/google/uuid"
)

// DefaultMaxOutput caps each captured stream when no limit is configured.
const DefaultMaxOutput = 4 << 20 // 4 MiB

// Result holds the outcome of one helper invocation.
type Result struct {
	RunID     string // unique identifier for this run
	ExitCode  int    // process exit code
	Stdout    []byte // captured stdout (may be truncated)
	Stderr    []byte // captured stderr (may be truncated)
	Truncated bool   // true if either stream exceeded the size cap
}

// Invoker runs the helper with the given arguments. The production
// implementation is Command; tests substitute fakes so no real process
// is spawned.
type Invoker interface {
	Run(ctx context.Context, args []string) (*Result, error)
}

// SpawnError reports that the helper process could not be started.
// A non-zero exit code is not a SpawnError; it is data in Result.
type SpawnError struct {
	Path string // binary path or logical name that failed to start
	Err  error  // underlying OS-level error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawning %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Command is the production Invoker. It resolves Name to a bundled
// binary and executes it with the given arguments and no stdin.
type Command struct {
	Name      string // logical helper name, e.g. "extract-inputs"
	Path      string // explicit binary path; skips resolution when set
	Dir       string // bundle directory; defaults to the host executable's directory
	MaxOutput int    // bytes per stream; DefaultMaxOutput when zero
}

// Run spawns the helper and waits for it to exit. A non-zero exit status
// is returned as data in Result; only a failure to start the process is
// an error. The invocation owns its process handle exclusively, so
// concurrent Runs are independent.
func (c *Command) Run(ctx context.Context, args []string) (*Result, error) {
	path, err := c.Resolve()
	if err != nil {
		return nil, &SpawnError{Path: c.Name, Err: err}
	}

	maxOutput := c.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}

	cmd := exec.CommandContext(ctx, path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitWriter{buf: &stdout, limit: maxOutput}
	cmd.Stderr = &limitWriter{buf: &stderr, limit: maxOutput}

	runErr := cmd.Run()

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			return nil, &SpawnError{Path: path, Err: runErr}
		}
	}

	return &Result{
		RunID:     uuid.New().String(),
		ExitCode:  exitCode,
		Stdout:    stdout.Bytes(),
		Stderr:    stderr.Bytes(),
		Truncated: stdout.Len() >= maxOutput || stderr.Len() >= maxOutput,
	}, nil
}

// limitWriter writes up to limit bytes to buf, then silently discards the rest.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Write only what fits, but report all bytes as consumed
		// to avoid short write errors from io.Copy.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
