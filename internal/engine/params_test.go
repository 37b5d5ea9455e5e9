package engine

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ccerv1/rf-weights-testing/internal/relationship"
	"github.com/ccerv1/rf-weights-testing/internal/viz"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if err := p.Validate(); err != nil {
		t.Fatalf("DefaultParams().Validate() = %v", err)
	}
	if p.TopProjects != 50 || p.TopTools != 30 {
		t.Errorf("got top %d/%d, want 50/30", p.TopProjects, p.TopTools)
	}
	if p.RelationshipTypes != nil {
		t.Error("default should select every relationship type")
	}
	for _, m := range relationship.Metrics {
		if p.Weights[m] != 0.25 {
			t.Errorf("weight for %s = %v, want 0.25", m.Key(), p.Weights[m])
		}
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *Params)
		wantErr  error
		wantText string
	}{
		{name: "defaults", mutate: func(p *Params) {}},
		{name: "small k is allowed", mutate: func(p *Params) { p.TopProjects, p.TopTools = 1, 2 }},
		{name: "zero projects", mutate: func(p *Params) { p.TopProjects = 0 }, wantErr: ErrInvalidParameter, wantText: "TopProjects"},
		{name: "negative tools", mutate: func(p *Params) { p.TopTools = -1 }, wantErr: ErrInvalidParameter, wantText: "TopTools"},
		{
			name:     "weight above one",
			mutate:   func(p *Params) { p.Weights[relationship.MetricTotalTxns] = 1.1 },
			wantErr:  ErrInvalidParameter,
			wantText: "Weights",
		},
		{
			name:    "NaN weight",
			mutate:  func(p *Params) { p.Weights[relationship.MetricTotalTxns] = math.NaN() },
			wantErr: ErrInvalidParameter,
		},
		{
			name:     "unknown weight metric",
			mutate:   func(p *Params) { p.Weights["GitHub Stars"] = 0.5 },
			wantErr:  ErrUnknownMetric,
			wantText: "GitHub Stars",
		},
		{
			name:    "unknown rank metric",
			mutate:  func(p *Params) { p.ToolRankMetric = "Downloads" },
			wantErr: ErrUnknownMetric,
		},
		{name: "mean summary", mutate: func(p *Params) { p.ProjectSummary = viz.SummaryMean }},
		{name: "bad summary", mutate: func(p *Params) { p.ProjectSummary = "median" }, wantErr: ErrInvalidParameter},
		{name: "nil weights", mutate: func(p *Params) { p.Weights = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q should mention %q", err, tt.wantText)
			}
		})
	}
}
