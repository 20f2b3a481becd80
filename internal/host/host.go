// Package host wires the extraction command into the MCP dispatch table,
// registering the extract tools and the supporting capabilities the
// front-end consumes.
package host

import (
	_ "embed"

	"github.com/charmbracelet/log"
	"github.com/inputlab/cellbridge"
	"github.com/inputlab/cellbridge/internal/config"
	"github.com/inputlab/cellbridge/internal/dialog"
	"github.com/inputlab/cellbridge/internal/history"
	"github.com/inputlab/cellbridge/internal/sidecar"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	cfg     *config.Config
	cmd     *sidecar.Command // production helper binding, reported by bridge_status
	invoker sidecar.Invoker  // what extract handlers actually call; defaults to cmd
	store   history.Store
	picker  *dialog.Picker
	logger  *log.Logger
}

// NewServer creates an MCP server with all cellbridge tools registered.
func NewServer(cfg *config.Config, cmd *sidecar.Command, store history.Store, logger *log.Logger, opts ...ServerOption) *mcp.Server {
	h := &handler{
		cfg:     cfg,
		cmd:     cmd,
		invoker: cmd,
		store:   store,
		picker:  &dialog.Picker{Ext: cfg.NotebookExt()},
		logger:  logger,
	}

	var so serverOptions
	for _, o := range opts {
		o(&so)
	}
	if so.invoker != nil {
		h.invoker = so.invoker
	}

	mcpOpts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "cellbridge", Version: cellbridge.Version}, mcpOpts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "extract_inputs",
		Description: `Extract the input cells of a notebook as a JSON array of strings.

Runs the bundled extract-inputs helper on the given path and returns the
input cells in notebook order. Fails with a descriptive message when the
helper cannot be started, exits non-zero, or prints malformed output.`,
	}, h.extractHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "extract_batch",
		Description: `Extract input cells from every notebook under a directory.

Writes one text file per notebook under the output directory, mirroring
the input layout, and returns a summary. Per-notebook failures are listed
in the summary and do not abort the run.`,
	}, h.batchHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "pick_notebook",
		Description: "List notebook files under a directory so the front-end can populate a file chooser.",
	}, h.pickHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "extract_history",
		Description: `Show recent extraction runs, or one run in full.

Without run_id, lists recent runs (ID, path, outcome). With run_id, shows
the recorded inputs or failure text for that run.`,
	}, h.historyHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "bridge_status",
		Description: "Report the resolved extract-inputs helper binary and the effective configuration.",
	}, h.statusHandler)

	return s
}

// ServerOption configures the cellbridge MCP server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	invoker sidecar.Invoker
}

// WithInvoker overrides the helper invoker. Used by tests to substitute
// a fake without spawning real processes.
func WithInvoker(inv sidecar.Invoker) ServerOption {
	return func(o *serverOptions) {
		o.invoker = inv
	}
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result. The boundary
// carries success-value-or-error-string semantics, so every failure
// collapses to one descriptive string here.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
