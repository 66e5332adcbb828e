package graph

// VId identifies a vertex. Vertices are numbered [0, n).
type VId uint32

// Weight is an edge weight. Unweighted graphs use Weight(1) uniformly.
type Weight float64

// Edge is an explicit (src, dst, weight) triple, the element type of a
// CooPartition.
type Edge struct {
	Src    VId
	Dst    VId
	Weight Weight
}

// HilbertKey caches a 2-D space-filling-curve index derived from (Src,
// Dst), computed lazily by HilbertIndex and used as the Hilbert-sort
// ordering key for COO partitions (§4.3).
type HilbertKey struct {
	Edge
	d     uint64
	valid bool
}

// roundUpPow2 rounds n up to the next power of two (n=0 rounds to 1).
func roundUpPow2(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}

// xy2d maps a 2-D point (x, y) on an n×n grid (n a power of two) to its
// index d along the Hilbert curve. Ported from the original's xy2d,
// itself adapted from https://en.wikipedia.org/wiki/Hilbert_curve.
func xy2d(gridSize uint32, x, y VId) uint64 {
	var rx, ry uint32
	var d uint64
	ux, uy := uint32(x), uint32(y)

	for s := gridSize / 2; s > 0; s /= 2 {
		if ux&s > 0 {
			rx = 1
		} else {
			rx = 0
		}
		if uy&s > 0 {
			ry = 1
		} else {
			ry = 0
		}
		d += uint64(s) * uint64(s) * uint64((3*rx)^ry)
		rot(s, &ux, &uy, rx, ry)
	}
	return d
}

// rot performs the Hilbert-curve quadrant rotation/reflection step used
// by xy2d.
func rot(n uint32, x, y *uint32, rx, ry uint32) {
	if ry == 0 {
		if rx == 1 {
			*x = n - 1 - *x
			*y = n - 1 - *y
		}
		*x, *y = *y, *x
	}
}

// HilbertIndex returns e's cached Hilbert-curve index over a grid of size
// roundUpPow2(n) × roundUpPow2(n), computing and caching it on first use.
func (e *HilbertKey) HilbertIndex(n int) uint64 {
	if !e.valid {
		e.d = xy2d(roundUpPow2(uint32(n)), e.Src, e.Dst)
		e.valid = true
	}
	return e.d
}
