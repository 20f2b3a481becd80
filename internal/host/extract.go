package host

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inputlab/cellbridge/internal/extract"
	"github.com/inputlab/cellbridge/internal/history"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type extractParams struct {
	Path string `json:"path" jsonschema:"filesystem path of the notebook to extract input cells from"`
}

func (h *handler) extractHandler(ctx context.Context, req *mcp.CallToolRequest, params extractParams) (*mcp.CallToolResult, any, error) {
	if params.Path == "" {
		return errorResult("path is required")
	}

	rec := &history.Record{
		ID:      uuid.New().String(),
		Path:    params.Path,
		Started: time.Now(),
	}
	h.logger.Info("extract_inputs", "path", params.Path, "run", rec.ID)

	inputs, err := extract.Inputs(ctx, h.invoker, params.Path)
	rec.Duration = time.Since(rec.Started).Round(time.Millisecond).String()

	if err != nil {
		rec.Error = err.Error()
		h.saveRecord(rec)
		h.logger.Info("extract_inputs failed", "run", rec.ID, "error", err)
		return errorResult(err.Error())
	}

	rec.Inputs = inputs
	h.saveRecord(rec)
	h.logger.Info("extract_inputs done", "run", rec.ID, "inputs", len(inputs))

	data, err := json.Marshal(inputs)
	if err != nil {
		return errorResult(fmt.Sprintf("encoding result: %v", err))
	}
	return textResult(string(data))
}

// saveRecord persists the run record. A failing store must not fail the
// extraction itself, so the error is only logged.
func (h *handler) saveRecord(rec *history.Record) {
	if err := h.store.Save(rec); err != nil {
		h.logger.Warn("saving run record", "run", rec.ID, "error", err)
	}
}

type batchParams struct {
	InputDir  string `json:"input_dir" jsonschema:"directory to walk for notebooks"`
	OutputDir string `json:"output_dir" jsonschema:"directory to write one text file per notebook into"`
}

func (h *handler) batchHandler(ctx context.Context, req *mcp.CallToolRequest, params batchParams) (*mcp.CallToolResult, any, error) {
	if params.InputDir == "" {
		return errorResult("input_dir is required")
	}
	if params.OutputDir == "" {
		return errorResult("output_dir is required")
	}

	res, err := extract.Batch(ctx, h.invoker, extract.BatchOptions{
		InputDir:  params.InputDir,
		OutputDir: params.OutputDir,
		Ext:       h.cfg.NotebookExt(),
		Progress: func(rel string) {
			h.logger.Debug("extract_batch", "notebook", rel)
		},
	})
	if err != nil {
		return errorResult(fmt.Sprintf("batch extraction failed: %v", err))
	}

	return textResult(formatBatch(res))
}

func formatBatch(res *extract.BatchResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Notebooks: %d\n", res.Notebooks)
	fmt.Fprintf(&b, "Processed: %d\n", res.Processed)
	fmt.Fprintf(&b, "Empty: %d\n", res.Empty)

	if len(res.Failures) > 0 {
		fmt.Fprintf(&b, "\nFailures (%d):\n", len(res.Failures))
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "  %s: %s\n", f.Path, f.Err)
		}
	}

	return b.String()
}
