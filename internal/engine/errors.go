// Package engine ranks, filters and weights project/dev-tool relationships
// into a flow graph.
//
// Every computation is a pure function of a read-only relationship.Table and
// a Params value. Nothing is cached between calls, so concurrent computations
// over the same table need no locking.
package engine

import "errors"

var (
	// ErrInvalidParameter reports a parameter outside its allowed range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnknownMetric reports a metric name that is not part of the record schema.
	ErrUnknownMetric = errors.New("unknown metric")
)
