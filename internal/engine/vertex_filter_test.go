package engine

import (
	"testing"

	"github.com/dd0wney/numagraph/internal/frontier"
	"github.com/dd0wney/numagraph/internal/graph"
	"github.com/stretchr/testify/require"
)

// starGraph builds an n-vertex star: 0 has one out-edge to each of
// 1..n-1, every leaf has out-degree 0.
func starGraph(n int) *graph.WholeGraph {
	g := &graph.WholeGraph{
		N:        graph.VId(n),
		M:        n - 1,
		V:        make([]graph.Vertex, n),
		OutEdges: make([]graph.VId, n-1),
	}
	for i := 1; i < n; i++ {
		g.OutEdges[i-1] = graph.VId(i)
	}
	g.V[0] = graph.Vertex{OutStart: 0, OutDegree: n - 1}
	return g
}

func TestVertexFilter_SelectsMatchingVerticesFromBitFrontier(t *testing.T) {
	g := starGraph(10)
	in := frontier.Bits(10, g.M)

	out := VertexFilter(g, in, func(v int) bool { return v%3 == 0 })

	out.ToSparse()
	require.ElementsMatch(t, []int{0, 3, 6, 9}, out.Sparse)
	require.Equal(t, 4, out.DM)
	require.Equal(t, g.OutDegree(0), out.NumOutEdges)
}

func TestVertexFilter_OnlyConsidersInputFrontierActiveVertices(t *testing.T) {
	g := starGraph(10)
	in := &frontier.Frontier{NumVertices: 10, Sparse: []int{0, 1, 2}, DM: 3}

	out := VertexFilter(g, in, func(v int) bool { return v%3 == 0 })

	out.ToSparse()
	require.ElementsMatch(t, []int{0}, out.Sparse)
	require.Equal(t, 1, out.DM)
	require.Equal(t, g.OutDegree(0), out.NumOutEdges)
}

func TestVertexFilter_NoneMatch(t *testing.T) {
	g := starGraph(5)
	in := frontier.Bits(5, g.M)

	out := VertexFilter(g, in, func(v int) bool { return false })

	out.ToSparse()
	require.Empty(t, out.Sparse)
	require.Equal(t, 0, out.DM)
	require.Equal(t, 0, out.NumOutEdges)
}
