package extract

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inputlab/cellbridge/internal/sidecar"
)

// DefaultNotebookExt is the notebook file extension used when none is
// configured.
const DefaultNotebookExt = ".nb"

// BatchOptions configure a directory-mode run.
type BatchOptions struct {
	InputDir  string
	OutputDir string
	Ext       string           // notebook extension; DefaultNotebookExt when empty
	Progress  func(rel string) // called before each notebook, nil to disable
}

// BatchFailure records one notebook that could not be processed.
type BatchFailure struct {
	Path string `json:"path"` // relative to InputDir
	Err  string `json:"error"`
}

// BatchResult summarises a directory-mode run.
type BatchResult struct {
	Notebooks int            `json:"notebooks"` // notebook files found
	Processed int            `json:"processed"` // notebooks with at least one input
	Empty     int            `json:"empty"`     // notebooks with no inputs
	Failures  []BatchFailure `json:"failures,omitempty"`
}

// Batch walks InputDir recursively for notebooks, extracts inputs from
// each, and writes one text file per notebook under OutputDir, mirroring
// the directory structure. Per-notebook failures are recorded in the
// result and do not stop the walk; only setup failures (bad directories,
// unwritable output) or context cancellation abort the run.
func Batch(ctx context.Context, inv sidecar.Invoker, opts BatchOptions) (*BatchResult, error) {
	info, err := os.Stat(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input directory: %s is not a directory", opts.InputDir)
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}

	ext := opts.Ext
	if ext == "" {
		ext = DefaultNotebookExt
	}

	notebooks, err := findNotebooks(opts.InputDir, ext)
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", opts.InputDir, err)
	}

	result := &BatchResult{Notebooks: len(notebooks)}
	for _, rel := range notebooks {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if opts.Progress != nil {
			opts.Progress(rel)
		}

		inputs, err := Inputs(ctx, inv, filepath.Join(opts.InputDir, rel))
		if err != nil {
			result.Failures = append(result.Failures, BatchFailure{Path: rel, Err: err.Error()})
			continue
		}

		out := filepath.Join(opts.OutputDir, strings.TrimSuffix(rel, ext)+".txt")
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return result, fmt.Errorf("creating %s: %w", filepath.Dir(out), err)
		}
		if err := os.WriteFile(out, []byte(renderInputs(inputs)), 0o644); err != nil {
			return result, fmt.Errorf("writing %s: %w", out, err)
		}

		if len(inputs) > 0 {
			result.Processed++
		} else {
			result.Empty++
		}
	}

	return result, nil
}

// findNotebooks returns the relative paths of all files under root with
// the given extension, sorted.
func findNotebooks(root, ext string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// renderInputs formats extracted inputs as numbered blocks separated by
// rules, matching the layout the front-end expects for exported files.
func renderInputs(inputs []string) string {
	if len(inputs) == 0 {
		return "(No input cells found)\n"
	}

	var b strings.Builder
	rule := strings.Repeat("-", 70)
	for i, input := range inputs {
		fmt.Fprintf(&b, "(* Input %d *)\n", i+1)
		fmt.Fprintf(&b, "%s\n\n", input)
		fmt.Fprintf(&b, "%s\n\n", rule)
	}
	return b.String()
}
