package vebocache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dd0wney/numagraph/internal/graph"
)

func pathGraph() *graph.WholeGraph {
	g := &graph.WholeGraph{
		N:        5,
		M:        4,
		V:        make([]graph.Vertex, 5),
		OutEdges: []graph.VId{1, 2, 3, 4},
		InEdges:  []graph.VId{0, 1, 2, 3},
	}
	g.V[0] = graph.Vertex{OutStart: 0, OutDegree: 1, InStart: 0, InDegree: 0}
	g.V[1] = graph.Vertex{OutStart: 1, OutDegree: 1, InStart: 0, InDegree: 1}
	g.V[2] = graph.Vertex{OutStart: 2, OutDegree: 1, InStart: 1, InDegree: 1}
	g.V[3] = graph.Vertex{OutStart: 3, OutDegree: 1, InStart: 2, InDegree: 1}
	g.V[4] = graph.Vertex{OutStart: 4, OutDegree: 0, InStart: 3, InDegree: 1}
	return g
}

func TestComputeFingerprint_DeterministicAndStable(t *testing.T) {
	g := pathGraph()
	a := ComputeFingerprint(g)
	b := ComputeFingerprint(g)
	require.Equal(t, a, b)
}

func TestComputeFingerprint_DiffersOnEdgeChange(t *testing.T) {
	g1 := pathGraph()
	g2 := pathGraph()
	g2.OutEdges[0] = 2 // 0->2 instead of 0->1

	require.NotEqual(t, ComputeFingerprint(g1), ComputeFingerprint(g2))
}

func TestCache_ComputeCachesByFingerprintAndPartitionCount(t *testing.T) {
	c := New()
	g := pathGraph()

	res1 := c.Compute(g, 2)
	require.Equal(t, 1, c.Len())

	res2 := c.Compute(g, 2)
	require.Same(t, res1, res2, "second call with identical graph and partition count should hit the cache")

	res3 := c.Compute(g, 3)
	require.Equal(t, 2, c.Len())
	require.NotSame(t, res1, res3)
}

func TestCache_ComputeRecomputesOnGraphChange(t *testing.T) {
	c := New()
	g := pathGraph()
	res1 := c.Compute(g, 2)

	g.OutEdges[0] = 2
	res2 := c.Compute(g, 2)

	require.NotSame(t, res1, res2)
	require.Equal(t, 2, c.Len())
}
