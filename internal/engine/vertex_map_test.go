package engine

import (
	"testing"

	"github.com/dd0wney/numagraph/internal/frontier"
	"github.com/stretchr/testify/require"
)

type evenVisitor struct{}

func (evenVisitor) Visit(v int) bool { return v%2 == 0 }

func TestVertexMap_SparseFrontier(t *testing.T) {
	f := &frontier.Frontier{NumVertices: 6, Sparse: []int{0, 1, 2, 3, 4, 5}, DM: 6}
	out := VertexMap(f, evenVisitor{})
	require.ElementsMatch(t, []int{0, 2, 4}, out.Sparse)
	require.Equal(t, 3, out.DM)
}

func TestVertexMap_DenseFrontier(t *testing.T) {
	f := &frontier.Frontier{NumVertices: 6, Dense: []bool{true, true, true, true, true, true}, DM: 6}
	out := VertexMap(f, evenVisitor{})
	require.ElementsMatch(t, []int{0, 2, 4}, out.Sparse)
}

func TestVertexMap_BitFrontier(t *testing.T) {
	f := frontier.Bits(6, 10)
	out := VertexMap(f, evenVisitor{})
	require.ElementsMatch(t, []int{0, 2, 4}, out.Sparse)
}
