package engine

import (
	"errors"
	"testing"

	"github.com/ccerv1/rf-weights-testing/internal/relationship"
)

func TestTopK(t *testing.T) {
	tests := []struct {
		name    string
		records []relationship.Record
		pop     relationship.Population
		metric  relationship.Metric
		k       int
		want    []string
	}{
		{
			name: "top projects by gas fees",
			records: []relationship.Record{
				rec("P3", "T1", 1, 10),
				rec("P1", "T1", 1, 100),
				rec("P2", "T1", 1, 50),
			},
			pop:    relationship.PopulationProject,
			metric: relationship.MetricTotalGasFees,
			k:      2,
			want:   []string{"P1", "P2"},
		},
		{
			name: "mean not sum",
			records: []relationship.Record{
				rec("P1", "T1", 1, 40),
				rec("P1", "T2", 1, 40),
				rec("P1", "T3", 1, 40),
				rec("P2", "T1", 1, 60),
			},
			pop:    relationship.PopulationProject,
			metric: relationship.MetricTotalGasFees,
			k:      1,
			want:   []string{"P2"},
		},
		{
			name: "tools by project devs",
			records: []relationship.Record{
				rec("P1", "viem", 2, 0),
				rec("P2", "viem", 4, 0),
				rec("P1", "ethers.js", 5, 0),
				rec("P1", "hardhat", 1, 0),
			},
			pop:    relationship.PopulationTool,
			metric: relationship.MetricProjectDevs,
			k:      2,
			want:   []string{"ethers.js", "viem"},
		},
		{
			name: "ties keep first-seen order",
			records: []relationship.Record{
				rec("B", "T", 1, 5),
				rec("A", "T", 1, 5),
				rec("C", "T", 1, 5),
			},
			pop:    relationship.PopulationProject,
			metric: relationship.MetricTotalGasFees,
			k:      2,
			want:   []string{"B", "A"},
		},
		{
			name:    "fewer entities than k",
			records: []relationship.Record{rec("P1", "T", 1, 1), rec("P2", "T", 1, 2)},
			pop:     relationship.PopulationProject,
			metric:  relationship.MetricTotalGasFees,
			k:       10,
			want:    []string{"P2", "P1"},
		},
		{
			name:   "no records",
			pop:    relationship.PopulationTool,
			metric: relationship.MetricProjectDevs,
			k:      5,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TopK(tt.records, tt.pop, tt.metric, tt.k)
			if err != nil {
				t.Fatalf("TopK() error: %v", err)
			}
			if !equalStrings(got, tt.want) {
				t.Errorf("TopK() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopK_Properties(t *testing.T) {
	records := []relationship.Record{
		rec("P1", "T1", 3, 9), rec("P2", "T2", 8, 1), rec("P3", "T1", 1, 4),
		rec("P4", "T3", 6, 4), rec("P1", "T3", 2, 9), rec("P5", "T4", 8, 7),
	}
	present := map[string]bool{}
	for _, r := range records {
		present[r.ProjectName] = true
	}

	for k := 1; k <= 7; k++ {
		first, err := TopK(records, relationship.PopulationProject, relationship.MetricTotalGasFees, k)
		if err != nil {
			t.Fatalf("TopK(k=%d) error: %v", k, err)
		}
		if len(first) > k {
			t.Errorf("k=%d: returned %d names", k, len(first))
		}
		for _, name := range first {
			if !present[name] {
				t.Errorf("k=%d: returned unknown name %q", k, name)
			}
		}
		again, _ := TopK(records, relationship.PopulationProject, relationship.MetricTotalGasFees, k)
		if !equalStrings(first, again) {
			t.Errorf("k=%d: not idempotent: %v vs %v", k, first, again)
		}
	}
}

func TestTopK_Errors(t *testing.T) {
	records := []relationship.Record{rec("P1", "T1", 1, 1)}

	if _, err := TopK(records, relationship.PopulationProject, relationship.MetricTotalGasFees, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("k=0: got %v, want ErrInvalidParameter", err)
	}
	if _, err := TopK(records, relationship.PopulationProject, relationship.MetricTotalGasFees, -3); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("k=-3: got %v, want ErrInvalidParameter", err)
	}
	if _, err := TopK(records, relationship.PopulationProject, "Stars", 1); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("unknown metric: got %v, want ErrUnknownMetric", err)
	}
}
