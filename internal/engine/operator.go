// Package engine implements the edge_map/vertex_map/vertex_filter
// drivers (spec.md §4.5-§4.6): the primitives user algorithms compose to
// express iterative vertex-centric computations over a PartitionedGraph.
package engine

import "github.com/dd0wney/numagraph/internal/graph"

// Operator is the capability set edge_map requires of a user algorithm
// (spec.md §4.5, §9's "operator is a capability set"): non-atomic and
// atomic edge visits plus an early-exit predicate.
type Operator interface {
	// Update is a non-atomic edge visit; returns true iff d became
	// newly active. Safe only when the engine guarantees no other
	// worker concurrently visits the same d.
	Update(s, d graph.VId, w graph.Weight) bool
	// UpdateAtomic is the atomic counterpart, required whenever
	// multiple workers may visit the same d concurrently.
	UpdateAtomic(s, d graph.VId, w graph.Weight) bool
	// Cond is the early-exit predicate: when it returns false for d,
	// the driver skips further work on d (e.g. a settled BFS vertex).
	Cond(d graph.VId) bool
}

// CacheOperator is the optional cache extension (spec.md §4.5): when a
// pull-mode vertex's in-neighbors are processed serially, the driver
// loads a cache once, runs UpdateCache against it, and commits once,
// avoiding repeated stores to the destination's aggregation variable.
type CacheOperator interface {
	Operator
	UseCache() bool
	CreateCache(d graph.VId) any
	UpdateCache(cache any, s graph.VId, w graph.Weight) bool
	CommitCache(cache any, d graph.VId)
}

// asCacheOperator returns op as a CacheOperator if it implements the
// interface and UseCache() reports true, else nil.
func asCacheOperator(op Operator) CacheOperator {
	co, ok := op.(CacheOperator)
	if ok && co.UseCache() {
		return co
	}
	return nil
}
