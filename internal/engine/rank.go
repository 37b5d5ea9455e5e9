package engine

import (
	"fmt"
	"sort"

	"github.com/ccerv1/rf-weights-testing/internal/relationship"
	"gonum.org/v1/gonum/stat"
)

// TopK returns the names of the k entities of population p with the highest
// mean value of metric, highest first. The mean keeps repeated relationship
// rows from inflating an entity's rank. Ties keep first-seen order in records.
// Fewer than k names are returned when fewer distinct entities exist.
func TopK(records []relationship.Record, p relationship.Population, metric relationship.Metric, k int) ([]string, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: top-k count must be > 0, got %d", ErrInvalidParameter, k)
	}
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}

	type group struct {
		name   string
		values []float64
		mean   float64
	}

	var groups []*group
	byName := make(map[string]*group)
	for i := range records {
		name := records[i].Name(p)
		g, ok := byName[name]
		if !ok {
			g = &group{name: name}
			byName[name] = g
			groups = append(groups, g)
		}
		g.values = append(g.values, records[i].Value(metric))
	}

	for _, g := range groups {
		g.mean = stat.Mean(g.values, nil)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].mean > groups[j].mean
	})

	if k > len(groups) {
		k = len(groups)
	}
	names := make([]string, k)
	for i := range names {
		names[i] = groups[i].name
	}
	return names, nil
}
