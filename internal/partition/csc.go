package partition

import (
	"github.com/dd0wney/numagraph/internal/graph"
	"github.com/dd0wney/numagraph/internal/numa"
)

// CscEntry is a single compact record in a CscPartition: a destination
// vertex that has at least one in-edge in the partition's range, paired
// with its in-neighbor run.
type CscEntry struct {
	OrigID   graph.VId
	InStart  int // offset into CscPartition.Neighbors/Weights
	InDegree int
}

// CscPartition is the per-partition compressed-sparse-column storage
// (spec.md §3, §4.2): a compact list of destinations that actually have
// in-edges in this partition's range, each with a contiguous in-neighbor
// run allocated on the partition's NUMA node.
type CscPartition struct {
	Entries   []CscEntry
	Neighbors []graph.VId
	Weights   []graph.Weight // nil for unweighted graphs
}

// NumEdges returns the total in-edge count represented by this partition.
func (c *CscPartition) NumEdges() int {
	return len(c.Neighbors)
}

// buildCSC constructs the CscPartition for partition p: scan the whole
// graph's in-edge arrays, keep only destinations in [lo, hi), group by
// destination, and lay out the destination-keyed neighbor run in a
// single contiguous block first-touched on numaOf(p) (spec.md §4.2,
// steps 1-3).
func buildCSC(g *graph.WholeGraph, lo, hi graph.VId, alloc numa.Allocator, node numa.NodeID) *CscPartition {
	total := 0
	for v := lo; v < hi; v++ {
		total += g.InDegree(v)
	}

	// First-touch the block on the partition's NUMA node (internal/numa's
	// simulated binding), then fill the typed view that callers read.
	alloc.AllocUint32(node, total)
	neighbors := make([]graph.VId, total)
	var weights []graph.Weight
	if g.OutWeights != nil || g.InWeights != nil {
		alloc.AllocFloat64(node, total)
		weights = make([]graph.Weight, total)
	}

	entries := make([]CscEntry, 0, hi-lo)
	offset := 0
	for v := lo; v < hi; v++ {
		deg := g.InDegree(v)
		if deg == 0 {
			continue
		}
		entries = append(entries, CscEntry{OrigID: v, InStart: offset, InDegree: deg})
		for j := 0; j < deg; j++ {
			neighbors[offset+j] = g.InNeighbor(v, j)
			if weights != nil {
				weights[offset+j] = g.InWeight(v, j)
			}
		}
		offset += deg
	}

	return &CscPartition{Entries: entries, Neighbors: neighbors, Weights: weights}
}
