package host

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type historyParams struct {
	RunID string `json:"run_id,omitempty" jsonschema:"ID of one run to show in full; omit to list recent runs"`
}

func (h *handler) historyHandler(ctx context.Context, req *mcp.CallToolRequest, params historyParams) (*mcp.CallToolResult, any, error) {
	if params.RunID != "" {
		rec, err := h.store.Load(params.RunID)
		if err != nil {
			return errorResult(fmt.Sprintf("loading run %s: %v", params.RunID, err))
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Run: %s\n", rec.ID)
		fmt.Fprintf(&b, "Path: %s\n", rec.Path)
		fmt.Fprintf(&b, "Started: %s (%s)\n", rec.Started.Format("2006-01-02 15:04:05"), rec.Duration)
		if rec.Failed() {
			fmt.Fprintf(&b, "Outcome: FAIL\n\n%s\n", rec.Error)
			return textResult(b.String())
		}
		fmt.Fprintf(&b, "Outcome: ok (%d inputs)\n", len(rec.Inputs))
		for i, input := range rec.Inputs {
			fmt.Fprintf(&b, "\n[%d] %s\n", i+1, input)
		}
		return textResult(b.String())
	}

	recs, err := h.store.Recent(h.cfg.HistorySize())
	if err != nil {
		return errorResult(fmt.Sprintf("listing runs: %v", err))
	}
	if len(recs) == 0 {
		return textResult("No extraction runs recorded yet.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent runs (%d):\n", len(recs))
	for _, rec := range recs {
		outcome := fmt.Sprintf("ok, %d inputs", len(rec.Inputs))
		if rec.Failed() {
			outcome = "FAIL"
		}
		fmt.Fprintf(&b, "  %s  %s  (%s)\n", rec.ID, rec.Path, outcome)
	}
	return textResult(b.String())
}
