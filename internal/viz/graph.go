package viz

import (
	"errors"
	"fmt"

	"github.com/ccerv1/rf-weights-testing/internal/relationship"
)

// SummaryMode selects how a project node's metric vector is derived when the
// project has several surviving records.
type SummaryMode string

const (
	// SummaryFirst uses the first record seen for the project.
	SummaryFirst SummaryMode = "first"
	// SummaryMean averages each metric over the project's records.
	SummaryMean SummaryMode = "mean"
)

// ValidSummaryModes lists the supported summary modes.
var ValidSummaryModes = []SummaryMode{SummaryFirst, SummaryMean}

// Build errors.
var (
	ErrPopulationOverlap = errors.New("name appears as both a project and a dev tool")
	ErrWeightCount       = errors.New("weight count does not match record count")
)

// BuildOptions configures graph construction.
type BuildOptions struct {
	ProjectSummary SummaryMode
}

// Build converts filtered relationship records and their edge weights into
// GraphData. Projects take the low node indices in first-seen order, tools
// follow in first-seen order. Only entities with at least one record become
// nodes, so every node is referenced by an edge.
func Build(records []relationship.Record, weights []float64, opts BuildOptions) (*GraphData, error) {
	if len(records) != len(weights) {
		return nil, fmt.Errorf("%w: %d records, %d weights", ErrWeightCount, len(records), len(weights))
	}

	switch opts.ProjectSummary {
	case "", SummaryFirst, SummaryMean:
	default:
		return nil, fmt.Errorf("invalid project summary mode %q: must be first or mean", opts.ProjectSummary)
	}

	graph := NewEmptyGraph()
	if len(records) == 0 {
		return graph, nil
	}

	projects := collectEntities(records, relationship.PopulationProject)
	tools := collectEntities(records, relationship.PopulationTool)

	index := make(map[string]int, len(projects.order)+len(tools.order))
	for _, name := range projects.order {
		index[name] = len(index)
	}
	for _, name := range tools.order {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrPopulationOverlap, name)
		}
		index[name] = len(index)
	}

	graph.Nodes = make([]Node, 0, len(index))
	for _, name := range projects.order {
		graph.Nodes = append(graph.Nodes, Node{
			Index:          index[name],
			ID:             projects.ids[name],
			Label:          name,
			Population:     relationship.PopulationProject,
			SummaryMetrics: projectSummary(records, name, opts.ProjectSummary),
		})
	}

	dependents := countDependentProjects(records)
	for _, name := range tools.order {
		graph.Nodes = append(graph.Nodes, Node{
			Index:          index[name],
			ID:             tools.ids[name],
			Label:          name,
			Population:     relationship.PopulationTool,
			SummaryMetrics: []float64{float64(dependents[name])},
		})
	}

	graph.Edges = make([]Edge, 0, len(records))
	for i, r := range records {
		graph.Edges = append(graph.Edges, Edge{
			Source:           index[r.ProjectName],
			Target:           index[r.ToolName],
			Weight:           weights[i],
			RelationshipType: r.RelationshipType,
		})
	}

	return graph, nil
}

// entitySet holds distinct names of one population in first-seen order along
// with the upstream ID of each name's first record.
type entitySet struct {
	order []string
	ids   map[string]string
}

func collectEntities(records []relationship.Record, p relationship.Population) entitySet {
	set := entitySet{ids: make(map[string]string)}
	for i := range records {
		name := records[i].Name(p)
		if _, ok := set.ids[name]; ok {
			continue
		}
		set.ids[name] = records[i].ID(p)
		set.order = append(set.order, name)
	}
	return set
}

// projectSummary returns the metric vector shown for a project node.
func projectSummary(records []relationship.Record, project string, mode SummaryMode) []float64 {
	if mode == SummaryMean {
		sums := make([]float64, len(relationship.Metrics))
		n := 0
		for i := range records {
			if records[i].ProjectName != project {
				continue
			}
			for j, v := range records[i].Values() {
				sums[j] += v
			}
			n++
		}
		for j := range sums {
			sums[j] /= float64(n)
		}
		return sums
	}

	for i := range records {
		if records[i].ProjectName == project {
			return records[i].Values()
		}
	}
	return make([]float64, len(relationship.Metrics))
}

// countDependentProjects counts distinct projects connected to each tool.
func countDependentProjects(records []relationship.Record) map[string]int {
	seen := make(map[[2]string]bool)
	counts := make(map[string]int)
	for _, r := range records {
		key := [2]string{r.ToolName, r.ProjectName}
		if seen[key] {
			continue
		}
		seen[key] = true
		counts[r.ToolName]++
	}
	return counts
}
