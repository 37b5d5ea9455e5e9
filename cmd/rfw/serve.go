package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ccerv1/rf-weights-testing/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, e.g. 127.0.0.1:8050)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the graph API and Sankey page over HTTP",
	Long: `Start an HTTP server over the loaded relationship table.

Endpoints:
  GET /                          Sankey page (same query parameters as /api/graph)
  GET /api/graph                 Graph JSON; ?type=..&top_projects=..&top_tools=..&w_<metric>=..&summary=..
  GET /api/relationship-types    Distinct relationship types
  GET /api/schema                Metrics, default weights and control bounds
  GET /metrics                   Prometheus metrics

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	table := mustLoadTable(cfg)

	srv, err := server.New(table, cfg)
	if err != nil {
		exitWithError(ExitConfigError, "config defaults: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
