// Package frontier implements partitioned_vertices (spec.md §3, §4.4):
// the dual dense-bitmap/sparse-index-list set of active vertices that
// internal/engine's edge_map and vertex_map operate over.
package frontier

import (
	"github.com/dd0wney/numagraph/internal/engineerr"
	"github.com/dd0wney/numagraph/internal/graph"
	"github.com/dd0wney/numagraph/internal/numa"
	"github.com/dd0wney/numagraph/internal/parallelrt"
	"github.com/dd0wney/numagraph/internal/partition"
)

// Frontier is the dense/sparse dual-representation active-vertex set.
// At any moment at least one of Dense/Sparse is populated; see the
// invariants in spec.md §3.
type Frontier struct {
	NumVertices int
	Dense       []bool // nil until materialized
	Sparse      []int  // nil until materialized
	DM          int    // active vertex count
	NumOutEdges int     // sum of out-degrees of active vertices
	Bit         bool    // "all vertices are active" fast-path flag
}

// Empty returns the empty frontier.
func Empty() *Frontier {
	return &Frontier{}
}

// Singleton returns a sparse frontier containing exactly v.
func Singleton(n int, v int, outDegree int) *Frontier {
	return &Frontier{
		NumVertices: n,
		Sparse:      []int{v},
		DM:          1,
		NumOutEdges: outDegree,
	}
}

// Dense returns an empty, partition-allocated dense frontier of size n.
// The NUMA-aware zeroing mirrors spec.md §4.4's dense() constructor.
func Dense(n int, pt *partition.Partitioner, alloc numa.Allocator) *Frontier {
	buf := make([]bool, n)
	parallelrt.NUMAGroupedParallelFor(pt.NumPartitions, func(p int) int { return int(pt.NumaOf[p]) }, func(p int) {
		lo, hi := pt.Range(p)
		alloc.AllocBool(pt.NumaOf[p], int(hi-lo)) // first-touch the partition's range
		for v := lo; v < hi; v++ {
			buf[v] = false
		}
	})
	return &Frontier{NumVertices: n, Dense: buf}
}

// Bits returns the all-active shortcut frontier: bit=true, d_m=n,
// num_out_edges=m, avoiding the O(n) scan whole-graph iterations
// (PageRank-style algorithms) would otherwise need (spec.md §4.4).
func Bits(n, m int) *Frontier {
	return &Frontier{NumVertices: n, Bit: true, DM: n, NumOutEdges: m}
}

// FromBoolean wraps an externally produced dense bitmap (spec.md §4.4's
// boolean() constructor, used by vertex_filter).
func FromBoolean(n int, bits []bool, activeM, outEdges int) *Frontier {
	return &Frontier{NumVertices: n, Dense: bits, DM: activeM, NumOutEdges: outEdges}
}

// IsEmpty reports whether the frontier has no active vertices.
func (f *Frontier) IsEmpty() bool {
	return f.DM == 0 && !f.Bit
}

// ToDense materializes the dense bitmap if it does not already exist,
// setting dense[sparse[i]]=true for each sparse element. Idempotent
// (spec.md §4.4).
func (f *Frontier) ToDense() {
	if f.Dense != nil {
		return
	}
	buf := make([]bool, f.NumVertices)
	for _, v := range f.Sparse {
		buf[v] = true
	}
	f.Dense = buf
}

// ToSparse materializes the sparse index list if it does not already
// exist, via a parallel filter-pack over the dense bitmap. Idempotent
// (spec.md §4.4).
func (f *Frontier) ToSparse() {
	if f.Sparse != nil {
		return
	}
	packed := parallelrt.ParallelFilterPack(f.NumVertices, 0, func(i int) bool {
		return f.Dense[i]
	})
	if len(packed) != f.DM {
		panic(engineerr.NewError("Frontier.ToSparse").Cause(engineerr.ErrFrontierSizeMismatch).Err())
	}
	f.Sparse = packed
}

// CheckInvariant verifies d_m against whichever representations are
// populated (spec.md §3, §8).
func (f *Frontier) CheckInvariant() bool {
	if f.Bit {
		return f.DM == f.NumVertices
	}
	if f.Sparse != nil && len(f.Sparse) != f.DM {
		return false
	}
	if f.Dense != nil {
		count := 0
		for _, b := range f.Dense {
			if b {
				count++
			}
		}
		if count != f.DM {
			return false
		}
	}
	return true
}

// ReduceOutStats recomputes DM and NumOutEdges from whichever
// representation is populated, given a per-vertex out-degree lookup
// (spec.md §4.5's "output reduction"). Prefers the sparse list when
// present, since summing over it is cheaper than scanning the dense
// bitmap.
func (f *Frontier) ReduceOutStats(outDegree func(v int) int) {
	if f.Sparse != nil {
		dm := len(f.Sparse)
		sum := parallelrt.ParallelReduce(dm, 0, 0, func(i int, acc int) int {
			return acc + outDegree(f.Sparse[i])
		}, func(a, b int) int { return a + b })
		f.DM = dm
		f.NumOutEdges = sum
		return
	}
	if f.Dense != nil {
		type stat struct{ count, edges int }
		s := parallelrt.ParallelReduce(f.NumVertices, 0, stat{}, func(i int, acc stat) stat {
			if f.Dense[i] {
				acc.count++
				acc.edges += outDegree(i)
			}
			return acc
		}, func(a, b stat) stat {
			return stat{count: a.count + b.count, edges: a.edges + b.edges}
		})
		f.DM = s.count
		f.NumOutEdges = s.edges
	}
}
