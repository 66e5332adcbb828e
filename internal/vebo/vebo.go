// Package vebo implements VEBO (Vertex-Equal, Balanced-load Ordering,
// spec.md §4.7): a degree-balanced vertex permutation computed once at
// partition time and retained for the partitioned graph's lifetime.
package vebo

import (
	"golang.org/x/exp/slices"

	"github.com/dd0wney/numagraph/internal/graph"
)

// Result is the output permutation VEBO computes: NewID maps an
// original vertex id to its relabeled position, OldID is its inverse,
// and PartitionVerts/PartitionEdges record the per-partition vertex and
// in-degree-sum counts the algorithm balanced for (spec.md §4.7's
// output contract).
type Result struct {
	NewID          []graph.VId
	OldID          []graph.VId
	PartitionVerts []int
	PartitionEdges []int
}

type bucket struct {
	degree int
	ids    []graph.VId
}

// Compute implements spec.md §4.7's algorithm: sort vertices by
// decreasing in-degree, bucket by distinct degree value, and greedily
// route each bucket's vertices to the minimum-load partition (with the
// bulk-assignment optimization for large identical-degree buckets),
// then pad every partition to its target vertex count with the
// remaining degree-zero vertices.
//
// This implementation folds the original's three-branch zero-degree
// padding phase (exact split / more-than-partitions / fewer-than-
// partitions) into a single "assign to the currently-smallest
// partition" loop, since both converge on the same invariant
// (verts[p] ∈ {⌊n/P⌋, ⌈n/P⌉}) for fewer moving parts; see DESIGN.md.
func Compute(g *graph.WholeGraph, numPartitions int) *Result {
	n := int(g.N)
	pairs := make([]graph.VId, n)
	for i := range pairs {
		pairs[i] = graph.VId(i)
	}
	slices.SortFunc(pairs, func(a, b graph.VId) int {
		da, db := g.InDegree(a), g.InDegree(b)
		switch {
		case da != db:
			return db - da // decreasing degree
		case a != b:
			return int(a) - int(b) // tie-break: increasing original id
		default:
			return 0
		}
	})

	buckets := groupByDegree(g, pairs)

	edges := make([]int, numPartitions)
	verts := make([]int, numPartitions)
	assigned := make([][]graph.VId, numPartitions)

	for _, b := range buckets {
		if b.degree == 0 {
			continue // padded in the zero-degree pass below
		}
		ids := b.ids
		k := 0
		for k < len(ids) {
			minP, maxP := argMinMax(edges)
			delta := edges[maxP] - edges[minP]
			if delta > b.degree {
				remain := (len(ids) - k) / numPartitions
				if remain > 1 {
					edges[minP] += b.degree * remain
					verts[minP] += remain
					assigned[minP] = append(assigned[minP], ids[k:k+remain]...)
					k += remain
					continue
				}
			}
			edges[minP] += b.degree
			verts[minP]++
			assigned[minP] = append(assigned[minP], ids[k])
			k++
		}
	}

	for _, b := range buckets {
		if b.degree != 0 {
			continue
		}
		for _, id := range b.ids {
			minP := argMinVerts(verts)
			verts[minP]++
			assigned[minP] = append(assigned[minP], id)
		}
	}

	newID := make([]graph.VId, n)
	oldID := make([]graph.VId, n)
	pos := 0
	for p := 0; p < numPartitions; p++ {
		for _, origID := range assigned[p] {
			newID[origID] = graph.VId(pos)
			oldID[pos] = origID
			pos++
		}
	}

	return &Result{
		NewID:          newID,
		OldID:          oldID,
		PartitionVerts: verts,
		PartitionEdges: edges,
	}
}

// groupByDegree partitions pairs (already sorted by decreasing degree)
// into contiguous runs of identical in-degree, preserving sort order
// (spec.md §4.7 step 2).
func groupByDegree(g *graph.WholeGraph, sorted []graph.VId) []bucket {
	var buckets []bucket
	for _, v := range sorted {
		deg := g.InDegree(v)
		if len(buckets) == 0 || buckets[len(buckets)-1].degree != deg {
			buckets = append(buckets, bucket{degree: deg})
		}
		last := &buckets[len(buckets)-1]
		last.ids = append(last.ids, v)
	}
	return buckets
}

func argMinMax(loads []int) (min, max int) {
	for i := 1; i < len(loads); i++ {
		if loads[i] < loads[min] {
			min = i
		}
		if loads[i] > loads[max] {
			max = i
		}
	}
	return min, max
}

func argMinVerts(verts []int) int {
	min := 0
	for i := 1; i < len(verts); i++ {
		if verts[i] < verts[min] {
			min = i
		}
	}
	return min
}

// Relabel implements spec.md §4.7 step 7: emit a new WholeGraph with
// vertex records permuted into the relabeled id space and every
// neighbor reference rewritten through res.NewID.
func Relabel(g *graph.WholeGraph, res *Result) *graph.WholeGraph {
	n := int(g.N)
	newV := make([]graph.Vertex, n)
	newOut := make([]graph.VId, len(g.OutEdges))
	var newOutW []graph.Weight
	if g.OutWeights != nil {
		newOutW = make([]graph.Weight, len(g.OutWeights))
	}

	outOffset := 0
	for newID := 0; newID < n; newID++ {
		origID := res.OldID[newID]
		deg := g.OutDegree(origID)
		for j := 0; j < deg; j++ {
			newOut[outOffset+j] = res.NewID[g.OutNeighbor(origID, j)]
			if newOutW != nil {
				newOutW[outOffset+j] = g.OutWeight(origID, j)
			}
		}
		newV[newID].OutStart = outOffset
		newV[newID].OutDegree = deg
		outOffset += deg
	}

	out := &graph.WholeGraph{
		N:           g.N,
		M:           g.M,
		V:           newV,
		OutEdges:    newOut,
		OutWeights:  newOutW,
		IsSymmetric: g.IsSymmetric,
	}

	if g.IsSymmetric {
		for i := range out.V {
			out.V[i].InStart = out.V[i].OutStart
			out.V[i].InDegree = out.V[i].OutDegree
		}
		return out
	}

	newIn := make([]graph.VId, len(g.InEdges))
	var newInW []graph.Weight
	if g.InWeights != nil {
		newInW = make([]graph.Weight, len(g.InWeights))
	}
	inOffset := 0
	for newID := 0; newID < n; newID++ {
		origID := res.OldID[newID]
		deg := g.InDegree(origID)
		for j := 0; j < deg; j++ {
			newIn[inOffset+j] = res.NewID[g.InNeighbor(origID, j)]
			if newInW != nil {
				newInW[inOffset+j] = g.InWeight(origID, j)
			}
		}
		newV[newID].InStart = inOffset
		newV[newID].InDegree = deg
		inOffset += deg
	}
	out.InEdges = newIn
	out.InWeights = newInW
	return out
}
