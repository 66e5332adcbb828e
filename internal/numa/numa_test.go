package numa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultAllocator_NumNodes(t *testing.T) {
	require.Equal(t, 4, NewDefaultAllocator(4).NumNodes())
	require.Equal(t, 1, NewDefaultAllocator(0).NumNodes())
	require.Equal(t, 1, NewDefaultAllocator(-3).NumNodes())
}

func TestDefaultAllocator_AllocReturnsZeroedBuffersOfRequestedLength(t *testing.T) {
	a := NewDefaultAllocator(2)

	u64 := a.AllocUint64(0, 10)
	require.Len(t, u64, 10)
	for _, v := range u64 {
		require.Zero(t, v)
	}

	u32 := a.AllocUint32(1, 5)
	require.Len(t, u32, 5)

	bools := a.AllocBool(0, 7)
	require.Len(t, bools, 7)
	for _, v := range bools {
		require.False(t, v)
	}

	f64 := a.AllocFloat64(1, 3)
	require.Len(t, f64, 3)
}

func TestDefaultAllocator_AllocZeroLength(t *testing.T) {
	a := NewDefaultAllocator(1)
	require.Empty(t, a.AllocUint64(0, 0))
}
