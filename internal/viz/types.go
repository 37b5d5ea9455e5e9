// Package viz builds the project/dev-tool flow graph and renders it as a
// Plotly Sankey diagram.
package viz

import (
	"fmt"

	"github.com/ccerv1/rf-weights-testing/internal/relationship"
)

// GraphData contains all data needed to render the visualization.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents a project or dev tool in the graph.
type Node struct {
	Index      int                     `json:"index"`
	ID         string                  `json:"id"`
	Label      string                  `json:"label"`
	Population relationship.Population `json:"population"`

	// Raw fields for tooltips. Projects carry their metric vector in schema
	// order; tools carry a single value, the number of dependent projects.
	SummaryMetrics []float64 `json:"summaryMetrics"`
}

// Edge is a weighted project -> tool flow. Source and Target index into Nodes.
type Edge struct {
	Source           int     `json:"source"`
	Target           int     `json:"target"`
	Weight           float64 `json:"weight"`
	RelationshipType string  `json:"relationshipType"`
}

// NewEmptyGraph returns a graph with no nodes and no edges.
func NewEmptyGraph() *GraphData {
	return &GraphData{Nodes: []Node{}, Edges: []Edge{}}
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// CountPopulation returns the number of nodes in population p.
func (g *GraphData) CountPopulation(p relationship.Population) int {
	n := 0
	for _, node := range g.Nodes {
		if node.Population == p {
			n++
		}
	}
	return n
}

// CheckInvariants verifies that every edge endpoint is a valid node index,
// that edges run from a project to a tool, and that every node has at least one edge.
func (g *GraphData) CheckInvariants() error {
	referenced := make([]bool, len(g.Nodes))
	for i, e := range g.Edges {
		if e.Source < 0 || e.Source >= len(g.Nodes) {
			return fmt.Errorf("edge %d: source index %d out of range", i, e.Source)
		}
		if e.Target < 0 || e.Target >= len(g.Nodes) {
			return fmt.Errorf("edge %d: target index %d out of range", i, e.Target)
		}
		if g.Nodes[e.Source].Population != relationship.PopulationProject {
			return fmt.Errorf("edge %d: source %q is not a project", i, g.Nodes[e.Source].Label)
		}
		if g.Nodes[e.Target].Population != relationship.PopulationTool {
			return fmt.Errorf("edge %d: target %q is not a tool", i, g.Nodes[e.Target].Label)
		}
		referenced[e.Source] = true
		referenced[e.Target] = true
	}
	for i, ok := range referenced {
		if !ok {
			return fmt.Errorf("node %d (%q) has no edges", i, g.Nodes[i].Label)
		}
		if g.Nodes[i].Index != i {
			return fmt.Errorf("node %d carries index %d", i, g.Nodes[i].Index)
		}
	}
	return nil
}
