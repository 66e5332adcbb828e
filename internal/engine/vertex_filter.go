package engine

import (
	"github.com/dd0wney/numagraph/internal/frontier"
	"github.com/dd0wney/numagraph/internal/graph"
	"github.com/dd0wney/numagraph/internal/parallelrt"
)

// VertexFilter implements vertex_filter: evaluate pred over every
// vertex active in the input frontier v, independent of the edges
// that touch it, and return a dense frontier W with W.dense[i] =
// pred(i) for i active in v, false elsewhere. The result is always
// dense, whichever representation v carries (VertexMap's result is
// always sparse). Before returning,
// reduces (d_m, num_out_edges) against g so a subsequent EdgeMap call
// selects its mode correctly.
func VertexFilter(g *graph.WholeGraph, v *frontier.Frontier, pred func(i int) bool) *frontier.Frontier {
	n := v.NumVertices
	dense := make([]bool, n)

	switch {
	case v.Bit:
		parallelrt.ParallelFor(n, 0, func(i int) {
			dense[i] = pred(i)
		})
	case v.Sparse != nil:
		parallelrt.ParallelFor(len(v.Sparse), 0, func(i int) {
			vertex := v.Sparse[i]
			dense[vertex] = pred(vertex)
		})
	default:
		parallelrt.ParallelFor(n, 0, func(i int) {
			if v.Dense[i] {
				dense[i] = pred(i)
			}
		})
	}

	out := &frontier.Frontier{NumVertices: n, Dense: dense}
	out.ReduceOutStats(func(i int) int { return g.OutDegree(graph.VId(i)) })
	return out
}
