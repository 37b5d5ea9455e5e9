package main

import (
	"sort"

	"github.com/ccerv1/rf-weights-testing/internal/engine"
	"github.com/ccerv1/rf-weights-testing/internal/relationship"
	"github.com/ccerv1/rf-weights-testing/internal/viz"
	"github.com/spf13/cobra"
)

var graphOpts graphFlags

// graphHumanEdges is how many of the heaviest edges --human prints.
const graphHumanEdges = 15

func init() {
	graphOpts.register(graphCmd)
	rootCmd.AddCommand(graphCmd)
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Compute the weighted project/dev-tool graph",
	Long: `Compute the weighted bipartite graph and print it as JSON.

Projects are ranked by mean total gas fees and dev tools by mean number of
engaged project devs. Names that rank in both populations are kept as
projects. Edge weights blend the four metrics by --weight and are scaled so
the heaviest edge is 100.

Examples:
  rfw graph
  rfw graph --type Dependency --type Both --top-projects 20
  rfw graph --weight total_gas_fees=1 --weight project_devs=0
  rfw graph --summary mean --human`,
	Args: cobra.NoArgs,
	RunE: runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	base, err := cfg.Defaults.Params()
	if err != nil {
		exitWithError(ExitConfigError, "config defaults: %v", err)
	}
	params := graphOpts.mustParams(cmd, base)
	table := mustLoadTable(cfg)

	res, err := engine.Compute(table, params)
	if err != nil {
		exitWithError(exitCodeFor(err), "computing graph: %v", err)
	}

	if !humanOutput {
		return outputJSON(res)
	}
	printGraphHuman(res)
	return nil
}

func printGraphHuman(res *engine.Result) {
	g := res.Graph
	outputHuman("Run %s: %d projects, %d dev tools, %d edges (%d of %d records after type filter)\n",
		res.RunID,
		g.CountPopulation(relationship.PopulationProject),
		g.CountPopulation(relationship.PopulationTool),
		len(g.Edges), res.Stats.TypedRecords, res.Stats.InputRecords)
	if res.Stats.Collisions > 0 {
		outputHuman("%d dev tool(s) dropped because they also rank as projects\n", res.Stats.Collisions)
	}
	if g.IsEmpty() {
		outputHuman("No relationships to show.\n")
		return
	}

	edges := make([]viz.Edge, len(g.Edges))
	copy(edges, g.Edges)
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Weight > edges[j].Weight })
	if len(edges) > graphHumanEdges {
		edges = edges[:graphHumanEdges]
	}

	outputHuman("\nHeaviest edges:\n")
	for _, e := range edges {
		outputHuman("  %6.2f  %s -> %s (%s)\n", e.Weight, g.Nodes[e.Source].Label, g.Nodes[e.Target].Label, e.RelationshipType)
	}
}
