package partition

import (
	"testing"

	"github.com/dd0wney/numagraph/internal/numa"
	"github.com/stretchr/testify/require"
)

func TestBuild_CooEdgeCountConservation(t *testing.T) {
	g := pathGraph()
	for _, strat := range []Strategy{ByDestination, BySource, ByVertex} {
		for p := 1; p <= 4; p++ {
			pg, err := Build(g, p, 1, strat, EdgeSortCSR, numa.NewDefaultAllocator(1))
			require.NoError(t, err)
			require.Equalf(t, g.M, pg.TotalCooEdges(), "strategy=%v partitions=%d", strat, p)
		}
	}
}

func TestBuild_CscEdgeCountConservation(t *testing.T) {
	g := pathGraph()
	for p := 1; p <= 4; p++ {
		pg, err := Build(g, p, 1, ByDestination, EdgeSortCSR, numa.NewDefaultAllocator(1))
		require.NoError(t, err)
		require.Equal(t, g.M, pg.TotalCscEdges())
	}
}

func TestBuild_ByDestination_EdgeLandsInOwningPartitionOnly(t *testing.T) {
	g := pathGraph()
	pg, err := Build(g, 2, 1, ByDestination, EdgeSortCSR, numa.NewDefaultAllocator(1))
	require.NoError(t, err)

	for p, coo := range pg.Coo {
		lo, hi := pg.Partitions.Range(p)
		for _, e := range coo.Edges {
			require.GreaterOrEqual(t, e.Dst, lo)
			require.Less(t, e.Dst, hi)
		}
	}
}

func TestBuild_HilbertSort_PreservesEdgeSet(t *testing.T) {
	g := pathGraph()
	pg, err := Build(g, 1, 1, ByDestination, EdgeSortHilbert, numa.NewDefaultAllocator(1))
	require.NoError(t, err)
	require.Len(t, pg.Coo[0].Edges, g.M)
}
