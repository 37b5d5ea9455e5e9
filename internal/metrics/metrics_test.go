package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

var errBadInput = errors.New("bad input")

func TestObserveComputation(t *testing.T) {
	tests := []struct {
		name    string
		graph   Graph
		err     error
		outcome string
	}{
		{"graph with edges", Graph{Projects: 2, Tools: 3, Edges: 4, Seconds: 0.002}, nil, OutcomeOK},
		{"empty graph", Graph{}, nil, OutcomeEmpty},
		{"caller error", Graph{}, fmt.Errorf("parsing: %w", errBadInput), OutcomeInvalid},
		{"failure", Graph{}, errors.New("boom"), OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(GraphComputationsTotal.WithLabelValues(tt.outcome))
			ObserveComputation(tt.graph, tt.err, errBadInput)
			after := testutil.ToFloat64(GraphComputationsTotal.WithLabelValues(tt.outcome))
			if after-before != 1 {
				t.Errorf("%s counter moved by %v, want 1", tt.outcome, after-before)
			}
		})
	}
}

func TestObserveComputation_Gauges(t *testing.T) {
	ObserveComputation(Graph{Projects: 5, Tools: 7, Edges: 11}, nil)

	if got := testutil.ToFloat64(GraphNodes.WithLabelValues("project")); got != 5 {
		t.Errorf("project nodes = %v, want 5", got)
	}
	if got := testutil.ToFloat64(GraphNodes.WithLabelValues("tool")); got != 7 {
		t.Errorf("tool nodes = %v, want 7", got)
	}
	if got := testutil.ToFloat64(GraphEdges); got != 11 {
		t.Errorf("edges = %v, want 11", got)
	}

	// failed runs leave the last graph's gauges alone
	ObserveComputation(Graph{}, errors.New("boom"))
	if got := testutil.ToFloat64(GraphEdges); got != 11 {
		t.Errorf("edges after failure = %v, want 11", got)
	}
}
