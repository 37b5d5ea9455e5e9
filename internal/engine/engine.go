package engine

import (
	"fmt"
	"time"

	"github.com/ccerv1/rf-weights-testing/internal/logger"
	"github.com/ccerv1/rf-weights-testing/internal/relationship"
	"github.com/ccerv1/rf-weights-testing/internal/viz"
	"github.com/google/uuid"
)

// Result is the output of one computation.
type Result struct {
	RunID string         `json:"runId"`
	Graph *viz.GraphData `json:"graph"`
	Stats Stats          `json:"stats"`
}

// Stats counts what each pipeline stage kept.
type Stats struct {
	InputRecords    int           `json:"inputRecords"`
	TypedRecords    int           `json:"typedRecords"`
	TopProjects     int           `json:"topProjects"`
	TopTools        int           `json:"topTools"`
	Collisions      int           `json:"collisions"`
	Edges           int           `json:"edges"`
	Duration        time.Duration `json:"-"`
	DurationSeconds float64       `json:"durationSeconds"`
}

// Compute runs the full pipeline: relationship type filter, top-K ranking of
// both populations, collision resolution, weighted aggregation and graph
// construction. Invalid parameters fail before any work is done. A selection
// that leaves no records yields an empty graph, not an error.
func Compute(table *relationship.Table, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	runID := uuid.NewString()
	stats := Stats{InputRecords: table.Len()}

	typed := filterTypes(table, params.RelationshipTypes)
	stats.TypedRecords = len(typed)

	topProjects, err := TopK(typed, relationship.PopulationProject, params.projectRankMetric(), params.TopProjects)
	if err != nil {
		return nil, fmt.Errorf("ranking projects: %w", err)
	}
	topTools, err := TopK(typed, relationship.PopulationTool, params.toolRankMetric(), params.TopTools)
	if err != nil {
		return nil, fmt.Errorf("ranking dev tools: %w", err)
	}

	tools := ResolveCollisions(topProjects, topTools)
	stats.TopProjects = len(topProjects)
	stats.TopTools = len(tools)
	stats.Collisions = len(topTools) - len(tools)

	kept := keepPairs(typed, topProjects, tools)

	weights, err := Aggregate(kept, params.Weights)
	if err != nil {
		return nil, fmt.Errorf("aggregating weights: %w", err)
	}

	graph, err := viz.Build(kept, weights, viz.BuildOptions{ProjectSummary: params.ProjectSummary})
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}

	stats.Edges = len(graph.Edges)
	stats.Duration = time.Since(start)
	stats.DurationSeconds = stats.Duration.Seconds()

	logger.Debug("Computed relationship graph",
		"run", runID,
		"records", stats.InputRecords,
		"typed", stats.TypedRecords,
		"projects", stats.TopProjects,
		"tools", stats.TopTools,
		"collisions", stats.Collisions,
		"edges", stats.Edges,
		"duration", stats.Duration,
	)

	return &Result{RunID: runID, Graph: graph, Stats: stats}, nil
}

// filterTypes returns the records whose relationship type is selected.
func filterTypes(table *relationship.Table, types []string) []relationship.Record {
	if types == nil {
		return table.Records()
	}
	selected := make(map[string]bool, len(types))
	for _, t := range types {
		selected[t] = true
	}
	return table.Select(func(r relationship.Record) bool {
		return selected[r.RelationshipType]
	})
}

// keepPairs returns the records whose project and tool both survived ranking.
func keepPairs(records []relationship.Record, projects, tools []string) []relationship.Record {
	keepProject := make(map[string]bool, len(projects))
	for _, name := range projects {
		keepProject[name] = true
	}
	keepTool := make(map[string]bool, len(tools))
	for _, name := range tools {
		keepTool[name] = true
	}

	var kept []relationship.Record
	for _, r := range records {
		if keepProject[r.ProjectName] && keepTool[r.ToolName] {
			kept = append(kept, r)
		}
	}
	return kept
}
