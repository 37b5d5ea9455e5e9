package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ccerv1/rf-weights-testing/internal/engine"
	"github.com/ccerv1/rf-weights-testing/internal/viz"
)

// WeightParamPrefix prefixes metric keys in weight query parameters, as in
// w_total_gas_fees=0.5.
const WeightParamPrefix = "w_"

// graphQuery holds the scalar controls of a graph request. Bounds match the
// dashboard sliders.
type graphQuery struct {
	TopProjects int    `query:"top_projects" validate:"omitempty,gte=5,lte=100"`
	TopTools    int    `query:"top_tools" validate:"omitempty,gte=5,lte=50"`
	Summary     string `query:"summary" validate:"omitempty,oneof=first mean"`
	Arrangement string `query:"arrangement" validate:"omitempty,oneof=snap perpendicular freeform fixed"`
}

// apply overlays the query on base. Zero values keep the base setting.
func (q graphQuery) apply(base engine.Params) engine.Params {
	if q.TopProjects != 0 {
		base.TopProjects = q.TopProjects
	}
	if q.TopTools != 0 {
		base.TopTools = q.TopTools
	}
	if q.Summary != "" {
		base.ProjectSummary = viz.SummaryMode(q.Summary)
	}
	return base
}

// relationshipTypes reads the type selection. An absent parameter selects
// every type; a present but empty one selects none. Values may repeat or be
// comma separated.
func relationshipTypes(values url.Values) []string {
	raw, ok := values["type"]
	if !ok {
		return nil
	}
	types := []string{}
	for _, v := range raw {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}
	return types
}

// applyWeights overlays w_<metric> parameters on a copy of base.
func applyWeights(values url.Values, base engine.MetricWeights) (engine.MetricWeights, error) {
	weights := make(engine.MetricWeights, len(base))
	for m, v := range base {
		weights[m] = v
	}
	for key, vals := range values {
		if !strings.HasPrefix(key, WeightParamPrefix) || len(vals) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(vals[len(vals)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number, got %q", engine.ErrInvalidParameter, key, vals[len(vals)-1])
		}
		if err := weights.Set(strings.TrimPrefix(key, WeightParamPrefix), v); err != nil {
			return nil, err
		}
	}
	return weights, nil
}
