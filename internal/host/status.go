package host

import (
	"context"
	"fmt"
	"strings"

	"github.com/inputlab/cellbridge"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type statusParams struct{}

func (h *handler) statusHandler(ctx context.Context, req *mcp.CallToolRequest, _ statusParams) (*mcp.CallToolResult, any, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "cellbridge %s\n\n", cellbridge.Version)
	fmt.Fprintf(&b, "Helper: %s\n", h.cmd.Name)

	if path, err := h.cmd.Resolve(); err != nil {
		fmt.Fprintf(&b, "Resolved: (unavailable: %v)\n", err)
	} else {
		fmt.Fprintf(&b, "Resolved: %s\n", path)
	}

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Notebook extension: %s\n", h.cfg.NotebookExt())
	fmt.Fprintf(&b, "Output cap: %d bytes per stream\n", h.cfg.MaxOutputBytes())
	fmt.Fprintf(&b, "History size: %d\n", h.cfg.HistorySize())

	return textResult(b.String())
}
