package frontier

import "sync/atomic"

// RemoveDuplicates implements spec.md §4.5.4's winner-takes-first
// deduplication: given a buffer of destinations (possibly with -1
// sentinels for "no write"), each index races to CAS its position into
// flags[dst]; the first writer to land wins and keeps its entry, every
// later writer to the same destination has its slot overwritten with
// -1. flags must have length n and start filled with -1; it is reset
// for reuse across calls. This preserves the original's observed
// "first-index wins" semantics (spec.md §9's duplicate-removal Open
// Question) rather than asserting any other winner criterion.
func RemoveDuplicates(indices []int, flags []int32) {
	n := len(flags)
	_ = n

	for i, dst := range indices {
		if dst == -1 {
			continue
		}
		atomic.CompareAndSwapInt32(&flags[dst], -1, int32(i))
	}

	for i, dst := range indices {
		if dst == -1 {
			continue
		}
		if atomic.LoadInt32(&flags[dst]) == int32(i) {
			atomic.StoreInt32(&flags[dst], -1) // winner: reset for reuse
		} else {
			indices[i] = -1 // loser
		}
	}
}

// NewDedupFlags returns a flags buffer of length n initialized to -1,
// ready for RemoveDuplicates.
func NewDedupFlags(n int) []int32 {
	flags := make([]int32, n)
	for i := range flags {
		flags[i] = -1
	}
	return flags
}
