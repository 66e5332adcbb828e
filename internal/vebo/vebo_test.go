package vebo

import (
	"testing"

	"github.com/dd0wney/numagraph/internal/graph"
	"github.com/stretchr/testify/require"
)

// pathGraph builds the directed path 0->1->2->3->4 (spec.md §8 scenario 1).
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

// skewedGraph gives vertex 0 in-degree 4 (from 1,2,3,4) and every other
// vertex in-degree 0, the classic VEBO stress case (spec.md §8 scenario
// 6: "VEBO balance on skewed-degree graph").
func skewedGraph() *graph.WholeGraph {
	g := &graph.WholeGraph{
		N:        5,
		M:        4,
		V:        make([]graph.Vertex, 5),
		OutEdges: []graph.VId{0, 0, 0, 0},
		InEdges:  []graph.VId{1, 2, 3, 4},
	}
	g.V[0] = graph.Vertex{InStart: 0, InDegree: 4}
	g.V[1] = graph.Vertex{OutStart: 0, OutDegree: 1}
	g.V[2] = graph.Vertex{OutStart: 1, OutDegree: 1}
	g.V[3] = graph.Vertex{OutStart: 2, OutDegree: 1}
	g.V[4] = graph.Vertex{OutStart: 3, OutDegree: 1}
	return g
}

func TestCompute_NewIDIsAPermutation(t *testing.T) {
	g := pathGraph()
	res := Compute(g, 2)

	seen := make(map[graph.VId]bool)
	for _, id := range res.NewID {
		require.False(t, seen[id], "duplicate new id %d", id)
		seen[id] = true
	}
	require.Len(t, seen, int(g.N))

	for orig := graph.VId(0); orig < g.N; orig++ {
		require.Equal(t, orig, res.OldID[res.NewID[orig]])
	}
}

func TestCompute_PartitionVertCountsWithinOne(t *testing.T) {
	g := skewedGraph()
	res := Compute(g, 2)

	floor, ceil := int(g.N)/2, (int(g.N)+1)/2
	for _, v := range res.PartitionVerts {
		require.Containsf(t, []int{floor, ceil}, v, "partition vertex count out of {%d,%d}", floor, ceil)
	}
	total := 0
	for _, v := range res.PartitionVerts {
		total += v
	}
	require.Equal(t, int(g.N), total)
}

func TestCompute_EdgeLoadBalanceWithinMaxDegree(t *testing.T) {
	g := skewedGraph()
	res := Compute(g, 2)

	maxDegree := 0
	for v := graph.VId(0); v < g.N; v++ {
		if d := g.InDegree(v); d > maxDegree {
			maxDegree = d
		}
	}
	minE, maxE := res.PartitionEdges[0], res.PartitionEdges[0]
	for _, e := range res.PartitionEdges {
		if e < minE {
			minE = e
		}
		if e > maxE {
			maxE = e
		}
	}
	require.LessOrEqual(t, maxE-minE, maxDegree)
}

func TestRelabel_PreservesEdgeCountAndInvariant(t *testing.T) {
	g := pathGraph()
	res := Compute(g, 2)
	relabeled := Relabel(g, res)

	require.Equal(t, g.N, relabeled.N)
	require.Equal(t, g.M, relabeled.M)
	require.True(t, relabeled.CheckInvariant())
}

func TestRelabel_NeighborsRemappedConsistently(t *testing.T) {
	g := pathGraph()
	res := Compute(g, 2)
	relabeled := Relabel(g, res)

	// Original edge 0->1 must reappear as new_id[0]->new_id[1].
	wantSrc, wantDst := res.NewID[0], res.NewID[1]
	found := false
	for j := 0; j < relabeled.OutDegree(wantSrc); j++ {
		if relabeled.OutNeighbor(wantSrc, j) == wantDst {
			found = true
		}
	}
	require.True(t, found)
}
