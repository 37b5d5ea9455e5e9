package engine

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input []float64
		want  []float64
	}{
		{name: "two points", input: []float64{10, 20}, want: []float64{0, 1}},
		{name: "order preserved", input: []float64{5, 1, 3}, want: []float64{1, 0, 0.5}},
		{name: "constant column", input: []float64{7, 7, 7}, want: []float64{0, 0, 0}},
		{name: "single value", input: []float64{42}, want: []float64{0}},
		{name: "all zeros", input: []float64{0, 0}, want: []float64{0, 0}},
		{name: "empty", input: []float64{}, want: []float64{}},
		{name: "nil", input: nil, want: []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Normalize(%v) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("Normalize(%v)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalize_SpansUnitInterval(t *testing.T) {
	inputs := [][]float64{
		{3, 9, 1, 4},
		{-5, 0, 5},
		{0.001, 1e9},
		{12345.678, 12345.679, 20000},
	}

	for _, in := range inputs {
		got := Normalize(in)
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range got {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if lo != 0 || hi != 1 {
			t.Errorf("Normalize(%v) spans [%v, %v], want [0, 1]", in, lo, hi)
		}
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := []float64{2, 4}
	Normalize(in)
	if in[0] != 2 || in[1] != 4 {
		t.Errorf("input mutated: %v", in)
	}
}
