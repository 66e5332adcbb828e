package frontier

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	f := Empty()
	require.True(t, f.IsEmpty())
	require.True(t, f.CheckInvariant())
}

func TestSingleton(t *testing.T) {
	f := Singleton(5, 2, 3)
	require.False(t, f.IsEmpty())
	require.Equal(t, []int{2}, f.Sparse)
	require.Equal(t, 1, f.DM)
	require.Equal(t, 3, f.NumOutEdges)
}

func TestBits(t *testing.T) {
	f := Bits(10, 40)
	require.True(t, f.Bit)
	require.Equal(t, 10, f.DM)
	require.False(t, f.IsEmpty())
	require.True(t, f.CheckInvariant())
}

func TestToDense_ToSparse_Idempotent(t *testing.T) {
	f := &Frontier{NumVertices: 8, Sparse: []int{1, 3, 5}, DM: 3}

	f.ToDense()
	dense1 := append([]bool(nil), f.Dense...)
	f.ToDense() // idempotent
	require.Equal(t, dense1, f.Dense)

	for _, v := range []int{1, 3, 5} {
		require.True(t, f.Dense[v])
	}
	require.True(t, f.CheckInvariant())

	// Force a fresh ToSparse from the dense representation.
	g := &Frontier{NumVertices: f.NumVertices, Dense: f.Dense, DM: f.DM}
	g.ToSparse()
	sparse1 := append([]int(nil), g.Sparse...)
	g.ToSparse() // idempotent
	require.Equal(t, sparse1, g.Sparse)

	sort.Ints(g.Sparse)
	require.Equal(t, []int{1, 3, 5}, g.Sparse)
}

func TestToDense_ThenToSparse_RoundTripsAsPermutation(t *testing.T) {
	f := &Frontier{NumVertices: 20, Sparse: []int{0, 4, 9, 19}, DM: 4}
	f.ToDense()

	g := &Frontier{NumVertices: f.NumVertices, Dense: f.Dense, DM: f.DM}
	g.ToSparse()

	sort.Ints(g.Sparse)
	require.Equal(t, []int{0, 4, 9, 19}, g.Sparse)
}

func TestReduceOutStats_FromSparse(t *testing.T) {
	f := &Frontier{NumVertices: 5, Sparse: []int{0, 2, 4}}
	outDeg := map[int]int{0: 3, 2: 1, 4: 5}

	f.ReduceOutStats(func(v int) int { return outDeg[v] })
	require.Equal(t, 3, f.DM)
	require.Equal(t, 9, f.NumOutEdges)
}

func TestReduceOutStats_FromDense(t *testing.T) {
	dense := []bool{true, false, true, false, true}
	f := &Frontier{NumVertices: 5, Dense: dense}
	outDeg := map[int]int{0: 3, 2: 1, 4: 5}

	f.ReduceOutStats(func(v int) int { return outDeg[v] })
	require.Equal(t, 3, f.DM)
	require.Equal(t, 9, f.NumOutEdges)
}

func TestRemoveDuplicates_FirstIndexWins(t *testing.T) {
	indices := []int{2, 0, 2, 1, 0}
	flags := NewDedupFlags(3)

	RemoveDuplicates(indices, flags)

	require.Equal(t, 2, indices[0])  // first writer to dst 2
	require.Equal(t, 0, indices[1])  // first writer to dst 0
	require.Equal(t, -1, indices[2]) // loses to index 0 for dst 2
	require.Equal(t, 1, indices[3])  // only writer to dst 1
	require.Equal(t, -1, indices[4]) // loses to index 1 for dst 0

	for _, fl := range flags {
		require.EqualValues(t, -1, fl) // winners' flags reset for reuse
	}
}

func TestRemoveDuplicates_SkipsSentinels(t *testing.T) {
	indices := []int{-1, -1, 0}
	flags := NewDedupFlags(1)
	RemoveDuplicates(indices, flags)
	require.Equal(t, []int{-1, -1, 0}, indices)
}
