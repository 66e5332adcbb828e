package graphio

import "github.com/dd0wney/numagraph/internal/graph"

// BuildInEdges populates g's in-edge arrays from its out-edge arrays,
// the Go equivalent of readGraphFromGalois's "both in and out" pass: a
// counting sort by destination vertex rather than the original's
// quickSort-by-pair, since Go's construction already has the out-edges
// in a contiguous array ready to bucket. Callers pass -s (symmetric) to
// skip this entirely, per §6's CLI surface.
func BuildInEdges(g *graph.WholeGraph) {
	n := int(g.N)
	inDegree := make([]int, n)
	for i := 0; i < n; i++ {
		v := g.V[i]
		for j := 0; j < v.OutDegree; j++ {
			inDegree[g.OutEdges[v.OutStart+j]]++
		}
	}

	inStart := make([]int, n)
	running := 0
	for i := 0; i < n; i++ {
		inStart[i] = running
		running += inDegree[i]
	}

	inEdges := make([]graph.VId, g.M)
	var inWeights []graph.Weight
	if g.OutWeights != nil {
		inWeights = make([]graph.Weight, g.M)
	}
	cursor := append([]int(nil), inStart...)
	for i := 0; i < n; i++ {
		v := g.V[i]
		for j := 0; j < v.OutDegree; j++ {
			dst := g.OutEdges[v.OutStart+j]
			idx := cursor[dst]
			inEdges[idx] = graph.VId(i)
			if inWeights != nil {
				inWeights[idx] = g.OutWeights[v.OutStart+j]
			}
			cursor[dst]++
		}
	}

	for i := 0; i < n; i++ {
		g.V[i].InStart = inStart[i]
		g.V[i].InDegree = inDegree[i]
	}
	g.InEdges = inEdges
	g.InWeights = inWeights
}

// MarkSymmetric sets IsSymmetric and mirrors each vertex's out-view
// into its in-view, for callers that pass -s and therefore never built
// separate in-edge arrays.
func MarkSymmetric(g *graph.WholeGraph) {
	g.IsSymmetric = true
	for i := range g.V {
		g.V[i].InStart = g.V[i].OutStart
		g.V[i].InDegree = g.V[i].OutDegree
	}
}
