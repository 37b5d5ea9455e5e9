package engine

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ccerv1/rf-weights-testing/internal/relationship"
	"github.com/ccerv1/rf-weights-testing/internal/viz"
)

func sampleTable() *relationship.Table {
	return relationship.NewTable([]relationship.Record{
		rec("Velodrome", "viem", 4, 900),
		rec("Velodrome", "ethers.js", 6, 900),
		rec("Aerodrome", "viem", 2, 500),
		withType(rec("Aerodrome", "foundry", 3, 500), "Engagement"),
		withType(rec("Zora", "hardhat", 1, 100), "Both"),
		rec("Zora", "ethers.js", 2, 100),
	})
}

func labels(g *viz.GraphData, p relationship.Population) []string {
	var out []string
	for _, n := range g.Nodes {
		if n.Population == p {
			out = append(out, n.Label)
		}
	}
	return out
}

func TestCompute_Defaults(t *testing.T) {
	res, err := Compute(sampleTable(), DefaultParams())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if res.RunID == "" {
		t.Error("missing run id")
	}
	g := res.Graph
	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	if len(g.Edges) != 6 {
		t.Errorf("got %d edges, want 6", len(g.Edges))
	}
	if got := labels(g, relationship.PopulationProject); !equalStrings(got, []string{"Velodrome", "Aerodrome", "Zora"}) {
		t.Errorf("projects = %v", got)
	}
	if got := labels(g, relationship.PopulationTool); !equalStrings(got, []string{"viem", "ethers.js", "foundry", "hardhat"}) {
		t.Errorf("tools = %v", got)
	}
	if res.Stats.InputRecords != 6 || res.Stats.Edges != 6 || res.Stats.Collisions != 0 {
		t.Errorf("stats = %+v", res.Stats)
	}

	maxWeight := 0.0
	for _, e := range g.Edges {
		if e.Weight < 0 || e.Weight > VisualScale {
			t.Errorf("edge weight %v outside [0, %v]", e.Weight, VisualScale)
		}
		if e.Weight > maxWeight {
			maxWeight = e.Weight
		}
	}
	if maxWeight != VisualScale {
		t.Errorf("max edge weight = %v, want %v", maxWeight, VisualScale)
	}
}

func TestCompute_TopProjects(t *testing.T) {
	table := relationship.NewTable([]relationship.Record{
		rec("P1", "T1", 1, 100),
		rec("P2", "T1", 1, 50),
		rec("P3", "T1", 1, 10),
	})
	p := DefaultParams()
	p.TopProjects = 2

	res, err := Compute(table, p)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if got := labels(res.Graph, relationship.PopulationProject); !equalStrings(got, []string{"P1", "P2"}) {
		t.Errorf("projects = %v, want [P1 P2]", got)
	}
	if len(res.Graph.Edges) != 2 {
		t.Errorf("got %d edges, want 2", len(res.Graph.Edges))
	}
}

func TestCompute_CollisionKeepsProject(t *testing.T) {
	table := relationship.NewTable([]relationship.Record{
		rec("P1", "T1", 5, 100),
		rec("P2", "P1", 9, 50),
		rec("P2", "T1", 5, 50),
	})

	res, err := Compute(table, DefaultParams())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	g := res.Graph
	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	count := 0
	for _, n := range g.Nodes {
		if n.Label == "P1" {
			count++
			if n.Population != relationship.PopulationProject {
				t.Errorf("P1 population = %q, want project", n.Population)
			}
		}
	}
	if count != 1 {
		t.Errorf("P1 appears %d times, want 1", count)
	}
	if res.Stats.Collisions != 1 {
		t.Errorf("collisions = %d, want 1", res.Stats.Collisions)
	}
	if len(g.Edges) != 2 {
		t.Errorf("got %d edges, want 2 (P2->P1 dropped)", len(g.Edges))
	}
}

func TestCompute_SingleMetricWeights(t *testing.T) {
	table := relationship.NewTable([]relationship.Record{
		rec("P1", "T1", 10, 5),
		rec("P2", "T1", 20, 5),
	})
	p := DefaultParams()
	p.Weights = UniformWeights(0)
	p.Weights[relationship.MetricProjectDevs] = 1

	res, err := Compute(table, p)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	got := []float64{res.Graph.Edges[0].Weight, res.Graph.Edges[1].Weight}
	if got[0] != 0 || got[1] != 100 {
		t.Errorf("edge weights = %v, want [0 100]", got)
	}
}

func TestCompute_ZeroWeights(t *testing.T) {
	p := DefaultParams()
	p.Weights = UniformWeights(0)

	res, err := Compute(sampleTable(), p)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(res.Graph.Edges) == 0 {
		t.Fatal("expected edges")
	}
	for i, e := range res.Graph.Edges {
		if e.Weight != 0 {
			t.Errorf("edge %d weight = %v, want 0", i, e.Weight)
		}
	}
}

func TestCompute_RelationshipTypeFilter(t *testing.T) {
	tests := []struct {
		name      string
		types     []string
		wantEdges int
	}{
		{name: "nil selects all", types: nil, wantEdges: 6},
		{name: "single type", types: []string{"Engagement"}, wantEdges: 1},
		{name: "two types", types: []string{"Dependency", "Both"}, wantEdges: 5},
		{name: "empty selects none", types: []string{}, wantEdges: 0},
		{name: "unknown type selects none", types: []string{"Fork"}, wantEdges: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.RelationshipTypes = tt.types
			res, err := Compute(sampleTable(), p)
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			if len(res.Graph.Edges) != tt.wantEdges {
				t.Errorf("got %d edges, want %d", len(res.Graph.Edges), tt.wantEdges)
			}
			if err := res.Graph.CheckInvariants(); err != nil {
				t.Errorf("invariants: %v", err)
			}
		})
	}
}

func TestCompute_EmptyResult(t *testing.T) {
	p := DefaultParams()
	p.RelationshipTypes = []string{}

	res, err := Compute(sampleTable(), p)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if res.Graph.Nodes == nil || res.Graph.Edges == nil {
		t.Fatal("empty result must carry non-nil node and edge slices")
	}
	if len(res.Graph.Nodes) != 0 || len(res.Graph.Edges) != 0 {
		t.Errorf("got %d nodes %d edges, want empty", len(res.Graph.Nodes), len(res.Graph.Edges))
	}

	empty, err := Compute(relationship.NewTable(nil), DefaultParams())
	if err != nil {
		t.Fatalf("Compute(empty table) error: %v", err)
	}
	if !empty.Graph.IsEmpty() {
		t.Error("empty table should produce empty graph")
	}
}

func TestCompute_RejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.TopTools = 0
	res, err := Compute(sampleTable(), p)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
	if res != nil {
		t.Error("invalid parameters must not return a partial result")
	}

	p = DefaultParams()
	p.Weights["Stars"] = 0.1
	if _, err := Compute(sampleTable(), p); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("got %v, want ErrUnknownMetric", err)
	}
}

func TestCompute_InvariantsAcrossParams(t *testing.T) {
	var records []relationship.Record
	for i := 0; i < 40; i++ {
		r := rec(fmt.Sprintf("P%d", i%13), fmt.Sprintf("T%d", i%7), int64(i%5), float64((i*37)%101))
		r.TotalTxns = int64(i * 11 % 17)
		if i%4 == 0 {
			r.RelationshipType = "Engagement"
		}
		records = append(records, r)
	}
	// a tool sharing a project name
	records = append(records, rec("P3", "P1", 50, 1))
	table := relationship.NewTable(records)

	for _, topP := range []int{1, 2, 5, 20} {
		for _, topT := range []int{1, 3, 10} {
			p := DefaultParams()
			p.TopProjects, p.TopTools = topP, topT
			res, err := Compute(table, p)
			if err != nil {
				t.Fatalf("top %d/%d: %v", topP, topT, err)
			}
			if err := res.Graph.CheckInvariants(); err != nil {
				t.Errorf("top %d/%d: %v", topP, topT, err)
			}
			if n := res.Graph.CountPopulation(relationship.PopulationProject); n > topP {
				t.Errorf("top %d/%d: %d project nodes", topP, topT, n)
			}
			if n := res.Graph.CountPopulation(relationship.PopulationTool); n > topT {
				t.Errorf("top %d/%d: %d tool nodes", topP, topT, n)
			}
		}
	}
}

func TestCompute_ConcurrentCallsShareTable(t *testing.T) {
	table := sampleTable()
	want, err := Compute(table, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := Compute(table, DefaultParams())
			if err != nil {
				errs <- err
				return
			}
			if len(res.Graph.Edges) != len(want.Graph.Edges) {
				errs <- fmt.Errorf("got %d edges, want %d", len(res.Graph.Edges), len(want.Graph.Edges))
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
