// Package config loads and validates the optional .cellbridge YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for bridge configuration.
const (
	DefaultMaxOutput   = 4 << 20 // 4 MiB per captured stream
	DefaultNotebookExt = ".nb"
	DefaultHistorySize = 10
)

// Config holds the parsed .cellbridge configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version        int    `yaml:"version"`
	Sidecar        string `yaml:"sidecar"`      // explicit helper binary path
	SidecarDir     string `yaml:"sidecar_dir"`  // bundle directory to resolve the helper in
	RawMaxOutput   int    `yaml:"max_output"`   // bytes per captured stream
	RawNotebookExt string `yaml:"notebook_ext"` // e.g. ".nb"
	RawHistorySize int    `yaml:"history_size"` // LRU capacity for run records
	Debug          bool   `yaml:"debug"`        // enable informational logging
}

// MaxOutputBytes returns the configured stream cap or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// NotebookExt returns the configured notebook extension or the default.
func (c *Config) NotebookExt() string {
	if c.RawNotebookExt != "" {
		return c.RawNotebookExt
	}
	return DefaultNotebookExt
}

// HistorySize returns the configured history LRU capacity or the default.
func (c *Config) HistorySize() int {
	if c.RawHistorySize > 0 {
		return c.RawHistorySize
	}
	return DefaultHistorySize
}

// LoadResult holds the parsed config and the directory it was found in.
type LoadResult struct {
	Config *Config
	Root   string // directory containing .cellbridge; falls back to dir
}

// Load reads the .cellbridge file, searching dir and then its ancestors.
// If no file exists anywhere up the tree, a default Config is returned.
func Load(dir string) (*LoadResult, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	for cur := dir; ; {
		path := filepath.Join(cur, ".cellbridge")
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			cfg := &Config{}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
			return &LoadResult{Config: cfg, Root: cur}, nil
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return &LoadResult{Config: &Config{}, Root: dir}, nil
		}
		cur = parent
	}
}
