package sidecar

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Resolve locates the helper binary. Order: the explicit Path, then the
// platform-suffixed name in the bundle directory, then the bare name
// there, then PATH.
func (c *Command) Resolve() (string, error) {
	if c.Path != "" {
		return c.Path, nil
	}

	dir := c.Dir
	if dir == "" {
		if exe, err := os.Executable(); err == nil {
			dir = filepath.Dir(exe)
		}
	}

	if dir != "" {
		// Bundled sidecars carry a target-triple suffix so several
		// platforms can ship side by side.
		suffixed := filepath.Join(dir, c.Name+"-"+targetTriple()+exeSuffix())
		if isExecutable(suffixed) {
			return suffixed, nil
		}
		plain := filepath.Join(dir, c.Name+exeSuffix())
		if isExecutable(plain) {
			return plain, nil
		}
	}

	path, err := exec.LookPath(c.Name)
	if err != nil {
		return "", fmt.Errorf("%s not found in bundle or PATH: %w", c.Name, err)
	}
	return path, nil
}

// targetTriple maps GOOS/GOARCH to the triple used in bundled binary names.
func targetTriple() string {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	case "386":
		arch = "i686"
	}

	switch runtime.GOOS {
	case "darwin":
		return arch + "-apple-darwin"
	case "windows":
		return arch + "-pc-windows-msvc"
	default:
		return arch + "-unknown-" + runtime.GOOS + "-gnu"
	}
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// isExecutable reports whether path is a regular file the current user
// may execute. On Windows the permission bits carry no meaning, so any
// regular file qualifies.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
