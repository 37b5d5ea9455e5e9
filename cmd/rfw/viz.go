package main

import (
	"fmt"
	"os"

	"github.com/ccerv1/rf-weights-testing/internal/engine"
	"github.com/ccerv1/rf-weights-testing/internal/viz"
	"github.com/spf13/cobra"
)

var (
	vizOpts        graphFlags
	vizOutput      string
	vizArrangement string
	vizTitle       string
	vizHeight      int
)

func init() {
	vizOpts.register(vizCmd)
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	vizCmd.Flags().StringVar(&vizArrangement, "arrangement", "snap", "Sankey arrangement: snap, perpendicular, freeform, or fixed")
	vizCmd.Flags().StringVar(&vizTitle, "title", "", "Page and chart title")
	vizCmd.Flags().IntVar(&vizHeight, "height", 0, "Chart height in pixels (default 800)")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Generate the Sankey visualization",
	Long: `Generate an HTML page with an interactive Sankey diagram of the graph.

Projects (blue) flow into the dev tools (orange) they use. Link width is the
blended edge weight; hovering shows the underlying metrics. The page loads
Plotly.js from its CDN.

Examples:
  # Generate HTML to stdout
  rfw viz > sankey.html

  # Generate to file with custom controls
  rfw viz --top-projects 20 --weight total_txns=1 --output sankey.html

  # Use a fixed node arrangement
  rfw viz --arrangement fixed -o sankey.html`,
	Args: cobra.NoArgs,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	base, err := cfg.Defaults.Params()
	if err != nil {
		exitWithError(ExitConfigError, "config defaults: %v", err)
	}
	params := vizOpts.mustParams(cmd, base)
	table := mustLoadTable(cfg)

	res, err := engine.Compute(table, params)
	if err != nil {
		exitWithError(exitCodeFor(err), "computing graph: %v", err)
	}

	// Generate HTML (validates options internally)
	opts := viz.HTMLOptions{
		Arrangement: vizArrangement,
		Title:       vizTitle,
		Height:      vizHeight,
	}
	html, err := viz.GenerateHTML(res.Graph, opts)
	if err != nil {
		exitWithError(ExitInvalidParam, "generating HTML: %v", err)
	}

	// Output
	if vizOutput == "" {
		fmt.Print(html)
		return nil
	}
	if err := os.WriteFile(vizOutput, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if humanOutput {
		outputHuman("Visualization written to %s (%d edges)\n", vizOutput, len(res.Graph.Edges))
	} else {
		outputJSON(map[string]any{"output": vizOutput, "runId": res.RunID, "edges": len(res.Graph.Edges)})
	}
	return nil
}
