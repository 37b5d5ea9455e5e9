package engine

import "gonum.org/v1/gonum/floats"

// Normalize min-max scales values to [0,1], preserving order. A constant or
// empty column yields all zeros.
func Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if hi == lo {
		return out
	}

	span := hi - lo
	for i, v := range values {
		out[i] = (v - lo) / span
	}
	return out
}
