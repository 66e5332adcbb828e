// Package numa abstracts NUMA-node placement for partitioned buffers.
//
// Go gives no syscall-level control over page placement the way
// libnuma's mbind/numa_alloc_onnode does (spec.md's Design Notes call for
// "an allocator trait parameterized by a NUMA node id" with first-touch
// semantics). This package models that abstraction faithfully — a
// NodeID, an Allocator interface, and a default implementation — but the
// default implementation's "binding" is simulated: it records which node
// a buffer is logically assigned to and first-touches (zero-fills) the
// memory on a goroutine whose OS thread is, best-effort, locked for the
// duration via runtime.LockOSThread. True physical placement is left as
// an Open Question resolution (see DESIGN.md): a production deployment
// would swap DefaultAllocator for an Allocator backed by a cgo binding to
// libnuma without changing any caller.
package numa

import "runtime"

// NodeID identifies a NUMA node.
type NodeID int

// Allocator places typed buffers on a specific NUMA node and reports how
// many nodes the host exposes.
type Allocator interface {
	// NumNodes returns the number of NUMA nodes the allocator manages.
	NumNodes() int
	// AllocUint64 returns a zeroed []uint64 of length n, first-touched on node.
	AllocUint64(node NodeID, n int) []uint64
	// AllocUint32 returns a zeroed []uint32 of length n, first-touched on node.
	AllocUint32(node NodeID, n int) []uint32
	// AllocBool returns a zeroed []bool of length n, first-touched on node.
	AllocBool(node NodeID, n int) []bool
	// AllocFloat64 returns a zeroed []float64 of length n, first-touched on node.
	AllocFloat64(node NodeID, n int) []float64
}

// DefaultAllocator is a best-effort NUMA allocator: it simulates node
// affinity by locking the allocating goroutine's OS thread while it
// first-touches (writes to) every page of the new buffer, but does not
// bind physical pages to a node since that requires a libnuma cgo binding
// this module does not carry (see package doc).
type DefaultAllocator struct {
	numNodes int
}

// NewDefaultAllocator creates an allocator that simulates numNodes NUMA
// nodes. numNodes <= 0 defaults to 1.
func NewDefaultAllocator(numNodes int) *DefaultAllocator {
	if numNodes <= 0 {
		numNodes = 1
	}
	return &DefaultAllocator{numNodes: numNodes}
}

// NumNodes returns the number of NUMA nodes this allocator manages.
func (a *DefaultAllocator) NumNodes() int {
	return a.numNodes
}

func firstTouch(touch func()) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	touch()
}

// AllocUint64 returns a zeroed []uint64 of length n.
func (a *DefaultAllocator) AllocUint64(node NodeID, n int) []uint64 {
	buf := make([]uint64, n)
	if n > 0 {
		firstTouch(func() {
			for i := range buf {
				buf[i] = 0
			}
		})
	}
	return buf
}

// AllocUint32 returns a zeroed []uint32 of length n.
func (a *DefaultAllocator) AllocUint32(node NodeID, n int) []uint32 {
	buf := make([]uint32, n)
	if n > 0 {
		firstTouch(func() {
			for i := range buf {
				buf[i] = 0
			}
		})
	}
	return buf
}

// AllocBool returns a zeroed []bool of length n.
func (a *DefaultAllocator) AllocBool(node NodeID, n int) []bool {
	buf := make([]bool, n)
	if n > 0 {
		firstTouch(func() {
			for i := range buf {
				buf[i] = false
			}
		})
	}
	return buf
}

// AllocFloat64 returns a zeroed []float64 of length n.
func (a *DefaultAllocator) AllocFloat64(node NodeID, n int) []float64 {
	buf := make([]float64, n)
	if n > 0 {
		firstTouch(func() {
			for i := range buf {
				buf[i] = 0
			}
		})
	}
	return buf
}
