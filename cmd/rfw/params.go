package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ccerv1/rf-weights-testing/internal/engine"
	"github.com/ccerv1/rf-weights-testing/internal/viz"
	"github.com/spf13/cobra"
)

// Slider bounds of the dashboard controls.
const (
	MinTopProjects = 5
	MaxTopProjects = 100
	MinTopTools    = 5
	MaxTopTools    = 50
)

// graphFlags holds the controls shared by graph and viz.
type graphFlags struct {
	types       []string
	topProjects int
	topTools    int
	weights     []string
	summary     string
}

func (f *graphFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.types, "type", nil, "Relationship type to include (repeatable; default: all types)")
	cmd.Flags().IntVar(&f.topProjects, "top-projects", 0, fmt.Sprintf("Number of top projects [%d-%d] (default from config)", MinTopProjects, MaxTopProjects))
	cmd.Flags().IntVar(&f.topTools, "top-tools", 0, fmt.Sprintf("Number of top dev tools [%d-%d] (default from config)", MinTopTools, MaxTopTools))
	cmd.Flags().StringArrayVar(&f.weights, "weight", nil, "Metric weight as key=value in [0,1] (repeatable), e.g. total_gas_fees=0.5")
	cmd.Flags().StringVar(&f.summary, "summary", "", "Project summary metrics: first or mean (default from config)")
}

// params overlays the flags on base. changed reports whether --type was
// given, so that an explicit empty selection is kept distinct from "all".
func (f *graphFlags) params(base engine.Params, changed func(string) bool) (engine.Params, error) {
	p := base
	p.Weights = make(engine.MetricWeights, len(base.Weights))
	for m, v := range base.Weights {
		p.Weights[m] = v
	}

	if changed("type") {
		p.RelationshipTypes = []string{}
		for _, t := range f.types {
			if t = strings.TrimSpace(t); t != "" {
				p.RelationshipTypes = append(p.RelationshipTypes, t)
			}
		}
	}

	if changed("top-projects") {
		if f.topProjects < MinTopProjects || f.topProjects > MaxTopProjects {
			return p, fmt.Errorf("%w: --top-projects must be in [%d,%d], got %d", engine.ErrInvalidParameter, MinTopProjects, MaxTopProjects, f.topProjects)
		}
		p.TopProjects = f.topProjects
	}
	if changed("top-tools") {
		if f.topTools < MinTopTools || f.topTools > MaxTopTools {
			return p, fmt.Errorf("%w: --top-tools must be in [%d,%d], got %d", engine.ErrInvalidParameter, MinTopTools, MaxTopTools, f.topTools)
		}
		p.TopTools = f.topTools
	}

	if f.summary != "" {
		p.ProjectSummary = viz.SummaryMode(f.summary)
	}

	for _, w := range f.weights {
		key, value, ok := strings.Cut(w, "=")
		if !ok {
			return p, fmt.Errorf("%w: --weight %q must be key=value", engine.ErrInvalidParameter, w)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return p, fmt.Errorf("%w: --weight %s: %q is not a number", engine.ErrInvalidParameter, key, value)
		}
		if err := p.Weights.Set(key, v); err != nil {
			return p, err
		}
	}

	return p, p.Validate()
}

// mustParams resolves the engine parameters for cmd, exits on error.
func (f *graphFlags) mustParams(cmd *cobra.Command, base engine.Params) engine.Params {
	p, err := f.params(base, cmd.Flags().Changed)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	return p
}
