package relationship

import (
	"errors"
	"fmt"
	"math"
)

// Population identifies one side of the bipartite graph.
type Population string

const (
	PopulationProject Population = "project"
	PopulationTool    Population = "tool"
)

// Record is one observed relationship between a project and a dev tool.
type Record struct {
	// Identity
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	ToolID      string `json:"tool_id"`
	ToolName    string `json:"tool_name"`

	// Dependency, Engagement or Both
	RelationshipType string `json:"relationship_type"`

	// Metrics
	ProjectDevs       int64   `json:"project_devs"`
	SmartContractDevs int64   `json:"smart_contract_devs"`
	TotalTxns         int64   `json:"total_txns"`
	TotalGasFees      float64 `json:"total_gas_fees"`
}

// Validation errors.
var (
	ErrEmptyProjectName      = errors.New("project name is required")
	ErrEmptyToolName         = errors.New("dev tool name is required")
	ErrEmptyRelationshipType = errors.New("relationship type is required")
	ErrNegativeMetric        = errors.New("metric must be a finite value >= 0")
)

// Validate checks that identity fields are present and every metric is a
// finite non-negative number.
func (r *Record) Validate() error {
	if r.ProjectName == "" {
		return ErrEmptyProjectName
	}
	if r.ToolName == "" {
		return ErrEmptyToolName
	}
	if r.RelationshipType == "" {
		return ErrEmptyRelationshipType
	}
	for _, m := range Metrics {
		v := r.Value(m)
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: %w", m, ErrNegativeMetric)
		}
	}
	return nil
}

// Value returns the named metric as a float64. Unknown metrics return 0.
func (r *Record) Value(m Metric) float64 {
	switch m {
	case MetricProjectDevs:
		return float64(r.ProjectDevs)
	case MetricSmartContractDevs:
		return float64(r.SmartContractDevs)
	case MetricTotalTxns:
		return float64(r.TotalTxns)
	case MetricTotalGasFees:
		return r.TotalGasFees
	default:
		return 0
	}
}

// Values returns all metrics in schema order.
func (r *Record) Values() []float64 {
	vals := make([]float64, len(Metrics))
	for i, m := range Metrics {
		vals[i] = r.Value(m)
	}
	return vals
}

// Name returns the entity name for the given population.
func (r *Record) Name(p Population) string {
	if p == PopulationTool {
		return r.ToolName
	}
	return r.ProjectName
}

// ID returns the upstream entity ID for the given population.
func (r *Record) ID(p Population) string {
	if p == PopulationTool {
		return r.ToolID
	}
	return r.ProjectID
}
