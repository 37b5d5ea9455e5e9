package viz

import (
	"encoding/json"
	"fmt"

	"github.com/ccerv1/rf-weights-testing/internal/relationship"
)

// Node colors by population.
const (
	ProjectColor = "#1f77b4"
	ToolColor    = "#ff7f0e"
)

// Hover templates read the raw summary fields attached to each node.
const (
	projectHoverTemplate = "<b>Project:</b> %{label}<br>" +
		"<b>Project Devs:</b> %{customdata[0]:,}<br>" +
		"<b>Smart Contract Devs:</b> %{customdata[1]:,}<br>" +
		"<b>Total Transactions:</b> %{customdata[2]:,}<br>" +
		"<b>Total Gas Fees:</b> %{customdata[3]:,.2f}<extra></extra>"
	toolHoverTemplate = "<b>Dev Tool:</b> %{label}<br>" +
		"<b>Dependent Projects:</b> %{customdata[0]}<extra></extra>"
	linkHoverTemplate = "Source: %{source.label}<br>" +
		"Target: %{target.label}<br>" +
		"Weight: %{value:.2f}<extra></extra>"
)

// SankeyTrace is a Plotly sankey trace.
type SankeyTrace struct {
	Type        string      `json:"type"`
	Arrangement string      `json:"arrangement"`
	Node        SankeyNodes `json:"node"`
	Link        SankeyLinks `json:"link"`
}

// SankeyNodes holds the per-node arrays of a sankey trace.
type SankeyNodes struct {
	Label         []string    `json:"label"`
	Pad           int         `json:"pad"`
	Thickness     int         `json:"thickness"`
	Color         []string    `json:"color"`
	CustomData    [][]float64 `json:"customdata"`
	HoverInfo     string      `json:"hoverinfo"`
	HoverTemplate []string    `json:"hovertemplate"`
}

// SankeyLinks holds the per-link arrays of a sankey trace.
type SankeyLinks struct {
	Source        []int     `json:"source"`
	Target        []int     `json:"target"`
	Value         []float64 `json:"value"`
	HoverInfo     string    `json:"hoverinfo"`
	HoverTemplate string    `json:"hovertemplate"`
}

// ToSankeyTrace converts GraphData to a Plotly sankey trace.
func (g *GraphData) ToSankeyTrace(arrangement string) SankeyTrace {
	nodes := SankeyNodes{
		Label:         make([]string, 0, len(g.Nodes)),
		Pad:           15,
		Thickness:     20,
		Color:         make([]string, 0, len(g.Nodes)),
		CustomData:    make([][]float64, 0, len(g.Nodes)),
		HoverInfo:     "all",
		HoverTemplate: make([]string, 0, len(g.Nodes)),
	}
	for _, n := range g.Nodes {
		nodes.Label = append(nodes.Label, n.Label)
		nodes.CustomData = append(nodes.CustomData, n.SummaryMetrics)
		if n.Population == relationship.PopulationProject {
			nodes.Color = append(nodes.Color, ProjectColor)
			nodes.HoverTemplate = append(nodes.HoverTemplate, projectHoverTemplate)
		} else {
			nodes.Color = append(nodes.Color, ToolColor)
			nodes.HoverTemplate = append(nodes.HoverTemplate, toolHoverTemplate)
		}
	}

	links := SankeyLinks{
		Source:        make([]int, 0, len(g.Edges)),
		Target:        make([]int, 0, len(g.Edges)),
		Value:         make([]float64, 0, len(g.Edges)),
		HoverInfo:     "all",
		HoverTemplate: linkHoverTemplate,
	}
	for _, e := range g.Edges {
		links.Source = append(links.Source, e.Source)
		links.Target = append(links.Target, e.Target)
		links.Value = append(links.Value, e.Weight)
	}

	return SankeyTrace{
		Type:        "sankey",
		Arrangement: arrangementOrDefault(arrangement),
		Node:        nodes,
		Link:        links,
	}
}

// ToSankeyJSON converts GraphData to Plotly sankey trace JSON.
func (g *GraphData) ToSankeyJSON(arrangement string) (string, error) {
	jsonBytes, err := json.Marshal(g.ToSankeyTrace(arrangement))
	if err != nil {
		return "", fmt.Errorf("marshaling sankey trace to JSON: %w", err)
	}
	return string(jsonBytes), nil
}
