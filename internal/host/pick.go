package host

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type pickParams struct {
	Dir string `json:"dir" jsonschema:"directory to list notebook files under"`
}

func (h *handler) pickHandler(ctx context.Context, req *mcp.CallToolRequest, params pickParams) (*mcp.CallToolResult, any, error) {
	if params.Dir == "" {
		return errorResult("dir is required")
	}

	notebooks, err := h.picker.List(params.Dir)
	if err != nil {
		return errorResult(err.Error())
	}
	if len(notebooks) == 0 {
		return textResult(fmt.Sprintf("No %s files found under %s.", h.picker.Ext, params.Dir))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Notebooks under %s (%d):\n", params.Dir, len(notebooks))
	for _, nb := range notebooks {
		fmt.Fprintf(&b, "  %s\n", nb)
	}
	return textResult(b.String())
}
