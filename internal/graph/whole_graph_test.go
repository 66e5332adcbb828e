package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// pathGraph builds the directed path 0->1->2->3->4 (spec.md §8 scenario 1).
func pathGraph() *WholeGraph {
	g := &WholeGraph{
		N: 5,
		M: 4,
		V: make([]Vertex, 5),
		OutEdges: []VId{
			1, // vertex 0's single out-neighbor
			2,
			3,
			4,
			// vertex 4 has no out-neighbors
		},
		InEdges: []VId{
			// vertex 0 has no in-neighbors
			0,
			1,
			2,
			3,
		},
	}
	g.V[0] = Vertex{OutStart: 0, OutDegree: 1, InStart: 0, InDegree: 0}
	g.V[1] = Vertex{OutStart: 1, OutDegree: 1, InStart: 0, InDegree: 1}
	g.V[2] = Vertex{OutStart: 2, OutDegree: 1, InStart: 1, InDegree: 1}
	g.V[3] = Vertex{OutStart: 3, OutDegree: 1, InStart: 2, InDegree: 1}
	g.V[4] = Vertex{OutStart: 4, OutDegree: 0, InStart: 3, InDegree: 1}
	return g
}

func TestWholeGraph_CheckInvariant(t *testing.T) {
	g := pathGraph()
	require.True(t, g.CheckInvariant())
}

func TestWholeGraph_CheckInvariant_DetectsMismatch(t *testing.T) {
	g := pathGraph()
	g.M = 999
	require.False(t, g.CheckInvariant())
}

func TestWholeGraph_Neighbors(t *testing.T) {
	g := pathGraph()
	require.Equal(t, VId(1), g.OutNeighbor(0, 0))
	require.Equal(t, VId(3), g.InNeighbor(4, 0))
}

func TestWholeGraph_Transpose_IsInvolution(t *testing.T) {
	g := pathGraph()
	tg := g.Transpose().Transpose()

	require.Equal(t, g.N, tg.N)
	require.Equal(t, g.M, tg.M)
	for v := VId(0); v < g.N; v++ {
		require.Equal(t, g.V[v], tg.V[v])
	}
}

func TestWholeGraph_Transpose_SwapsDegrees(t *testing.T) {
	g := pathGraph()
	tg := g.Transpose()

	require.Equal(t, g.InDegree(2), tg.OutDegree(2))
	require.Equal(t, g.OutDegree(2), tg.InDegree(2))
}

func TestWholeGraph_Transpose_SymmetricIsNoop(t *testing.T) {
	g := pathGraph()
	g.IsSymmetric = true

	tg := g.Transpose()
	require.Equal(t, g, tg)
}

func TestWholeGraph_UnweightedExposesUnitWeight(t *testing.T) {
	g := pathGraph()
	require.Equal(t, Weight(1), g.OutWeight(0, 0))
}
