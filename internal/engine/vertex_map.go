package engine

import (
	"github.com/dd0wney/numagraph/internal/frontier"
	"github.com/dd0wney/numagraph/internal/parallelrt"
)

// VertexOperator is the capability set vertex_map requires (spec.md
// §4.6): a per-vertex visit with no edge context, applied to every
// vertex currently active in the frontier.
type VertexOperator interface {
	Visit(v int) bool
}

// VertexMap implements spec.md §4.6's vertex_map: apply op to every
// active vertex of f in parallel and return the subset for which op
// reported true as a sparse frontier, whichever representation (all-
// active, sparse or dense) f carries. Only DM is set on the result;
// its out-edge count is left at zero.
func VertexMap(f *frontier.Frontier, op VertexOperator) *frontier.Frontier {
	if f.Bit {
		kept := parallelrt.ParallelFilterPack(f.NumVertices, 0, func(i int) bool {
			return op.Visit(i)
		})
		out := &frontier.Frontier{NumVertices: f.NumVertices, Sparse: kept, DM: len(kept)}
		return out
	}

	if f.Sparse != nil {
		keep := make([]bool, len(f.Sparse))
		parallelrt.ParallelFor(len(f.Sparse), 0, func(i int) {
			keep[i] = op.Visit(f.Sparse[i])
		})
		packed := make([]int, 0, len(f.Sparse))
		for i, v := range f.Sparse {
			if keep[i] {
				packed = append(packed, v)
			}
		}
		return &frontier.Frontier{NumVertices: f.NumVertices, Sparse: packed, DM: len(packed)}
	}

	kept := parallelrt.ParallelFilterPack(f.NumVertices, 0, func(i int) bool {
		return f.Dense[i] && op.Visit(i)
	})
	return &frontier.Frontier{NumVertices: f.NumVertices, Sparse: kept, DM: len(kept)}
}
