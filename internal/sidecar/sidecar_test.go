package sidecar

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeStub writes an executable shell script named name into dir.
func writeStub(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Success(t *testing.T) {
	dir := t.TempDir()
	writeStub(t, dir, "extract-inputs", `printf '["intro.txt","body.txt"]'`)

	c := &Command{Name: "extract-inputs", Dir: dir}
	res, err := c.Run(context.Background(), []string{"--single", "/tmp/doc.pdf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if got := string(res.Stdout); got != `["intro.txt","body.txt"]` {
		t.Errorf("Stdout = %q", got)
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
	if res.Truncated {
		t.Error("Truncated = true, want false")
	}
}

func TestRun_ArgsPassed(t *testing.T) {
	dir := t.TempDir()
	writeStub(t, dir, "extract-inputs", `echo "$@"`)

	c := &Command{Name: "extract-inputs", Dir: dir}
	res, err := c.Run(context.Background(), []string{"--single", "/tmp/doc.pdf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(res.Stdout), "--single /tmp/doc.pdf") {
		t.Errorf("Stdout = %q, want to contain the argv", res.Stdout)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	dir := t.TempDir()
	writeStub(t, dir, "extract-inputs", "echo 'cannot open file' >&2\nexit 1")

	c := &Command{Name: "extract-inputs", Dir: dir}
	res, err := c.Run(context.Background(), []string{"--single", "/tmp/doc.pdf"})
	if err != nil {
		t.Fatalf("non-zero exit must not be an error, got: %v", err)
	}
	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}
	if !strings.Contains(string(res.Stderr), "cannot open file") {
		t.Errorf("Stderr = %q, want to contain 'cannot open file'", res.Stderr)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	c := &Command{Name: "no-such-helper-xyz-123", Dir: t.TempDir()}
	_, err := c.Run(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("error = %T, want *SpawnError", err)
	}
	if !strings.Contains(err.Error(), "no-such-helper-xyz-123") {
		t.Errorf("error = %q, want to mention the helper name", err)
	}
}

func TestRun_NotExecutable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "no-such-helper-xyz-123")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := &Command{Name: "no-such-helper-xyz-123", Dir: dir}
	_, err := c.Run(context.Background(), nil)
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("error = %v, want *SpawnError", err)
	}
}

func TestRun_OutputTruncation(t *testing.T) {
	dir := t.TempDir()
	writeStub(t, dir, "extract-inputs", "dd if=/dev/zero bs=200 count=1 2>/dev/null")

	c := &Command{Name: "extract-inputs", Dir: dir, MaxOutput: 100}
	res, err := c.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Truncated {
		t.Error("Truncated = false, want true")
	}
	if len(res.Stdout) > 100 {
		t.Errorf("len(Stdout) = %d, want <= 100", len(res.Stdout))
	}
}

func TestRun_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := writeStub(t, dir, "renamed-helper", `printf '[]'`)

	c := &Command{Name: "extract-inputs", Path: path}
	res, err := c.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
}
