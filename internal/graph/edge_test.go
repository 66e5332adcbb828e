package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundUpPow2(t *testing.T) {
	cases := map[uint32]uint32{
		0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 17: 32, 1024: 1024, 1025: 2048,
	}
	for in, want := range cases {
		require.Equal(t, want, roundUpPow2(in), "roundUpPow2(%d)", in)
	}
}

func TestHilbertIndex_IsDeterministicAndDistinguishesDistinctPoints(t *testing.T) {
	a := HilbertKey{Edge: Edge{Src: 0, Dst: 0}}
	b := HilbertKey{Edge: Edge{Src: 0, Dst: 0}}
	require.Equal(t, a.HilbertIndex(16), b.HilbertIndex(16))

	c := HilbertKey{Edge: Edge{Src: 3, Dst: 7}}
	d := HilbertKey{Edge: Edge{Src: 1, Dst: 2}}
	require.NotEqual(t, c.HilbertIndex(16), d.HilbertIndex(16))
}

func TestHilbertIndex_CachesResult(t *testing.T) {
	k := HilbertKey{Edge: Edge{Src: 5, Dst: 9}}
	first := k.HilbertIndex(16)
	second := k.HilbertIndex(999) // different n must not change cached value
	require.Equal(t, first, second)
}

func TestHilbertIndex_OriginMapsToZero(t *testing.T) {
	k := HilbertKey{Edge: Edge{Src: 0, Dst: 0}}
	require.Zero(t, k.HilbertIndex(8))
}
