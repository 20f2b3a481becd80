// Package dialog provides the file-picker capability behind the
// pick_notebook tool: enumerating notebook files so the front-end can
// populate a chooser without filesystem access of its own.
package dialog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxDepth bounds recursion when no depth is configured.
const DefaultMaxDepth = 8

// Picker lists notebook files under a directory.
type Picker struct {
	Ext      string // notebook extension, e.g. ".nb"
	MaxDepth int    // directory depth below the root; DefaultMaxDepth when zero
}

// List returns the paths of notebook files under root, relative to root
// and sorted. Hidden directories are skipped. root must exist and be a
// directory; everything else about the selection is the caller's concern.
func (p *Picker) List(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("listing notebooks: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("listing notebooks: %s is not a directory", root)
	}

	maxDepth := p.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var out []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || depth(rel) > maxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), p.Ext) {
			out = append(out, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing notebooks: %w", err)
	}

	sort.Strings(out)
	return out, nil
}

// depth counts the path separators in a relative path plus one, i.e. how
// many levels below the walk root it sits.
func depth(rel string) int {
	return strings.Count(rel, string(filepath.Separator)) + 1
}
