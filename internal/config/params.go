package config

import (
	"github.com/ccerv1/rf-weights-testing/internal/engine"
	"github.com/ccerv1/rf-weights-testing/internal/viz"
)

// Params converts the configured defaults into engine parameters. Weights
// not named in the config keep the engine default.
func (d Defaults) Params() (engine.Params, error) {
	p := engine.DefaultParams()
	p.TopProjects = d.TopProjects
	p.TopTools = d.TopTools
	if d.ProjectSummary != "" {
		p.ProjectSummary = viz.SummaryMode(d.ProjectSummary)
	}
	for key, v := range d.Weights {
		if err := p.Weights.Set(key, v); err != nil {
			return engine.Params{}, err
		}
	}
	return p, p.Validate()
}
