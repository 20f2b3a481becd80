// Command cellbridge bridges a notebook front-end to the bundled
// extract-inputs helper.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/inputlab/cellbridge"
	"github.com/inputlab/cellbridge/internal/config"
	"github.com/inputlab/cellbridge/internal/extract"
	"github.com/inputlab/cellbridge/internal/history"
	"github.com/inputlab/cellbridge/internal/host"
	"github.com/inputlab/cellbridge/internal/sidecar"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "serve":
		err = serveMain(args)
	case "extract":
		err = extractMain(args)
	case "batch":
		err = batchMain(args)
	case "version":
		fmt.Println(cellbridge.Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "cellbridge: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "cellbridge: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: cellbridge <command> [flags] [args]

Commands:
  serve       Start the MCP server (stdio, or -http addr)
  extract     Extract input cells from one notebook, JSON to stdout
  batch       Extract input cells from every notebook under a directory
  version     Print the version
  help        Show this help

Use "cellbridge <command> -h" for command-specific flags.`)
}

// newLogger builds the debug logger: informational output only when
// debugging is enabled, mirroring the debug-only logging of the desktop
// shell this backend serves.
func newLogger(debug bool) *log.Logger {
	level := log.WarnLevel
	if debug || os.Getenv("CELLBRIDGE_DEBUG") != "" {
		level = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "cellbridge",
		Level:  level,
	})
}

// newCommand binds the helper per the loaded configuration.
func newCommand(cfg *config.Config) *sidecar.Command {
	return &sidecar.Command{
		Name:      extract.HelperName,
		Path:      cfg.Sidecar,
		Dir:       cfg.SidecarDir,
		MaxOutput: cfg.MaxOutputBytes(),
	}
}

func loadConfig() (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}
	loaded, err := config.Load(wd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return loaded.Config, nil
}

// --- serve ---

func serveMain(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	debug := fs.Bool("debug", false, "enable informational logging")
	_ = fs.Parse(args)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(*debug || cfg.Debug)
	store := history.NewLRUStore(cfg.HistorySize(), history.NewDiskStore())
	server := host.NewServer(cfg, newCommand(cfg), store, logger)

	if *httpAddr != "" {
		return serveHTTP(ctx, server, *httpAddr, logger)
	}
	return server.Run(ctx, &mcp.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcp.Server, addr string, logger *log.Logger) error {
	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	logger.Info("listening", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// --- extract ---

func extractMain(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	debug := fs.Bool("debug", false, "enable informational logging")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cellbridge extract <notebook>")
	}
	path := fs.Arg(0)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(*debug || cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("extracting", "path", path)
	inputs, err := extract.Inputs(ctx, newCommand(cfg), path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(inputs)
}

// --- batch ---

func batchMain(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	debug := fs.Bool("debug", false, "enable informational logging")
	_ = fs.Parse(args)

	if fs.NArg() != 2 {
		return fmt.Errorf("usage: cellbridge batch <input_dir> <output_dir>")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(*debug || cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := extract.Batch(ctx, newCommand(cfg), extract.BatchOptions{
		InputDir:  fs.Arg(0),
		OutputDir: fs.Arg(1),
		Ext:       cfg.NotebookExt(),
		Progress: func(rel string) {
			logger.Info("processing", "notebook", rel)
		},
	})
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	fmt.Printf("Notebooks: %d, processed: %d, empty: %d, failed: %d\n",
		res.Notebooks, res.Processed, res.Empty, len(res.Failures))
	for _, f := range res.Failures {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Path, f.Err)
	}
	if len(res.Failures) > 0 {
		os.Exit(1)
	}
	return nil
}
