package graph

// Vertex is a value struct owning index ranges into the WholeGraph's
// shared out/in neighbor pools, per spec.md §9's guidance to model
// vertices as range-owning values rather than raw pointers. Symmetric
// graphs set InStart == OutStart and InDegree == OutDegree so FlipEdges
// is a no-op; asymmetric graphs give each vertex two independent ranges.
type Vertex struct {
	OutStart  int
	OutDegree int
	InStart   int
	InDegree  int
}

// Symmetric reports whether this vertex's in- and out-views coincide.
func (v Vertex) Symmetric() bool {
	return v.OutStart == v.InStart && v.OutDegree == v.InDegree
}

// FlipEdges swaps the in- and out-neighbor ranges. A no-op on symmetric
// vertices.
func (v *Vertex) FlipEdges() {
	v.OutStart, v.InStart = v.InStart, v.OutStart
	v.OutDegree, v.InDegree = v.InDegree, v.OutDegree
}

// OutNeighbor returns the j-th out-neighbor of v within pool.
func (v Vertex) OutNeighbor(pool []VId, j int) VId {
	return pool[v.OutStart+j]
}

// InNeighbor returns the j-th in-neighbor of v within pool.
func (v Vertex) InNeighbor(pool []VId, j int) VId {
	return pool[v.InStart+j]
}

// OutWeight returns the j-th out-edge weight, or 1 when weights is nil
// (the unweighted variant exposes weight 1 uniformly per spec.md §3).
func (v Vertex) OutWeight(weights []Weight, j int) Weight {
	if weights == nil {
		return 1
	}
	return weights[v.OutStart+j]
}

// InWeight returns the j-th in-edge weight, or 1 when weights is nil.
func (v Vertex) InWeight(weights []Weight, j int) Weight {
	if weights == nil {
		return 1
	}
	return weights[v.InStart+j]
}
