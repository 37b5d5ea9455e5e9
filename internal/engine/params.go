package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ccerv1/rf-weights-testing/internal/relationship"
	"github.com/ccerv1/rf-weights-testing/internal/viz"
	"github.com/go-playground/validator"
)

// Defaults match the initial control values of the dashboard.
const (
	DefaultTopProjects = 50
	DefaultTopTools    = 30
	DefaultWeight      = 0.25
)

// Params is the full input of one graph computation.
type Params struct {
	// RelationshipTypes selects records by type. Nil selects every type; a
	// non-nil empty slice selects nothing.
	RelationshipTypes []string

	TopProjects int `validate:"gt=0"`
	TopTools    int `validate:"gt=0"`

	// Ranking criteria. Empty values fall back to total gas fees for
	// projects and engaged project devs for tools.
	ProjectRankMetric relationship.Metric
	ToolRankMetric    relationship.Metric

	Weights MetricWeights `validate:"dive,gte=0,lte=1"`

	ProjectSummary viz.SummaryMode `validate:"omitempty,oneof=first mean"`
}

// DefaultParams returns the dashboard's initial parameters.
func DefaultParams() Params {
	return Params{
		TopProjects:       DefaultTopProjects,
		TopTools:          DefaultTopTools,
		ProjectRankMetric: relationship.MetricTotalGasFees,
		ToolRankMetric:    relationship.MetricProjectDevs,
		Weights:           UniformWeights(DefaultWeight),
		ProjectSummary:    viz.SummaryFirst,
	}
}

var validate = validator.New()

// Validate rejects out-of-range counts and weights and unknown metrics.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s (got %v)", fe.Field(), constraint(fe), fe.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidParameter, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	for _, m := range []relationship.Metric{p.ProjectRankMetric, p.ToolRankMetric} {
		if m != "" && !m.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownMetric, m)
		}
	}
	return p.Weights.Validate()
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func (p Params) projectRankMetric() relationship.Metric {
	if p.ProjectRankMetric == "" {
		return relationship.MetricTotalGasFees
	}
	return p.ProjectRankMetric
}

func (p Params) toolRankMetric() relationship.Metric {
	if p.ToolRankMetric == "" {
		return relationship.MetricProjectDevs
	}
	return p.ToolRankMetric
}
