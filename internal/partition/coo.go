package partition

import (
	"sort"

	"github.com/dd0wney/numagraph/internal/graph"
	"github.com/dd0wney/numagraph/internal/numa"
)

// EdgeSort selects the secondary sort key used when laying out a
// CooPartition (spec.md §4.3).
type EdgeSort int

const (
	// EdgeSortCSR sorts by (src, dst) lexicographically — sequential
	// cache behavior when iterating edges to produce pushes. Default:
	// requires no extra pass (see DESIGN.md's Open Question decision).
	EdgeSortCSR EdgeSort = iota
	// EdgeSortHilbert sorts by the Hilbert-curve index of (src, dst)
	// over an n_p x n_p grid, trading one extra pass for locality on
	// both endpoints.
	EdgeSortHilbert
)

// CooPartition is the per-partition coordinate-list storage (spec.md §3,
// §4.3): the edges belonging to partition p under the selected
// partitioning strategy, allocated on numaOf(p) and sorted per EdgeSort.
type CooPartition struct {
	Edges []graph.Edge
}

// NumEdges returns the edge count in this partition.
func (c *CooPartition) NumEdges() int {
	return len(c.Edges)
}

// buildCOO enumerates the edges belonging to partition p under strategy,
// allocates an exact-size EdgeList on node, and sorts it per sortKey
// (spec.md §4.3).
func buildCOO(g *graph.WholeGraph, p int, pt *Partitioner, strategy Strategy, sortKey EdgeSort, alloc numa.Allocator, node numa.NodeID) *CooPartition {
	lo, hi := pt.Range(p)

	var edges []graph.Edge
	switch strategy {
	case BySource:
		for v := lo; v < hi; v++ {
			deg := g.OutDegree(v)
			for j := 0; j < deg; j++ {
				edges = append(edges, graph.Edge{Src: v, Dst: g.OutNeighbor(v, j), Weight: g.OutWeight(v, j)})
			}
		}
	default: // ByDestination, ByVertex: include an edge iff its destination falls in range
		for v := graph.VId(0); v < g.N; v++ {
			deg := g.OutDegree(v)
			for j := 0; j < deg; j++ {
				dst := g.OutNeighbor(v, j)
				if dst >= lo && dst < hi {
					edges = append(edges, graph.Edge{Src: v, Dst: dst, Weight: g.OutWeight(v, j)})
				}
			}
		}
	}

	alloc.AllocUint64(node, len(edges)) // first-touch the partition's NUMA node

	switch sortKey {
	case EdgeSortHilbert:
		n := int(g.N)
		keys := make([]graph.HilbertKey, len(edges))
		for i, e := range edges {
			keys[i] = graph.HilbertKey{Edge: e}
			keys[i].HilbertIndex(n)
		}
		sort.Slice(keys, func(i, j int) bool {
			return keys[i].HilbertIndex(n) < keys[j].HilbertIndex(n)
		})
		for i, k := range keys {
			edges[i] = k.Edge
		}
	default: // EdgeSortCSR
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].Src != edges[j].Src {
				return edges[i].Src < edges[j].Src
			}
			return edges[i].Dst < edges[j].Dst
		})
	}

	return &CooPartition{Edges: edges}
}
