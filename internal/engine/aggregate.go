package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/ccerv1/rf-weights-testing/internal/relationship"
)

// VisualScale is the magnitude of the heaviest edge after aggregation.
const VisualScale = 100.0

// MetricWeights maps a metric to its contribution in [0,1]. Weights need not
// sum to 1. Metrics without an entry contribute nothing.
type MetricWeights map[relationship.Metric]float64

// UniformWeights returns weights assigning w to every metric.
func UniformWeights(w float64) MetricWeights {
	weights := make(MetricWeights, len(relationship.Metrics))
	for _, m := range relationship.Metrics {
		weights[m] = w
	}
	return weights
}

// Validate checks that every weight is in [0,1] and every metric exists.
// Known metrics are checked in schema order, then unknown keys by name, so
// the reported error does not depend on map order.
func (w MetricWeights) Validate() error {
	for _, m := range relationship.Metrics {
		v, ok := w[m]
		if !ok {
			continue
		}
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: weight for %q must be in [0,1], got %v", ErrInvalidParameter, m.Key(), v)
		}
	}

	var unknown []string
	for m := range w {
		if !m.Valid() {
			unknown = append(unknown, string(m))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %q", ErrUnknownMetric, unknown[0])
	}
	return nil
}

// Set resolves name (column header, key or label) and assigns its weight.
// The weight itself is checked by Validate.
func (w MetricWeights) Set(name string, v float64) error {
	m, err := relationship.ParseMetric(name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownMetric, err)
	}
	w[m] = v
	return nil
}

// Aggregate blends the weighted metrics of each record into one edge weight.
// Each weighted metric column is normalized over records, the columns are
// summed by weight, and the blend is normalized again and scaled to
// [0, VisualScale]. The result has one entry per record, in order.
func Aggregate(records []relationship.Record, weights MetricWeights) ([]float64, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	blended := make([]float64, len(records))
	column := make([]float64, len(records))
	for _, m := range relationship.Metrics {
		w, ok := weights[m]
		if !ok {
			continue
		}
		for i := range records {
			column[i] = records[i].Value(m)
		}
		for i, v := range Normalize(column) {
			blended[i] += w * v
		}
	}

	scaled := Normalize(blended)
	for i := range scaled {
		scaled[i] *= VisualScale
	}
	return scaled, nil
}
