package engine

import "github.com/dd0wney/numagraph/internal/metrics"

// Mode names the execution mode edge_map selected for a round — the
// label attached to the numagraph_edgemap_mode_total metric and logged
// under the "mode" field (SPEC_FULL.md §2, §3).
type Mode string

const (
	ModeSparsePush  Mode = "sparse_push"
	ModeDenseCOO    Mode = "dense_coo"
	ModeDenseCSC    Mode = "dense_csc"
)

// Options tunes edge_map's mode selection and dispatch (spec.md §4.5,
// §4.5.3). Zero value selects spec.md's defaults.
type Options struct {
	// SparseThreshold overrides T1 = m/20 (spec.md §4.5); <= 0 selects
	// the default.
	SparseThreshold int
	// RemoveDuplicates enables the winner-takes-first dedup pass after
	// sparse push (spec.md §4.5.4).
	RemoveDuplicates bool
	// PART96 marks by-destination partitioning where each partition
	// owns its destinations exclusively, permitting edgeMapDenseCOO to
	// use non-atomic updates (spec.md §4.5.2). edgeMapDenseCSC does not
	// read this field: its CscPartition entries are built with an
	// exclusive destination-ID range per partition regardless of
	// Strategy (internal/partition/csc.go), so the race PART96 guards
	// against in the COO path cannot occur in CSC's layout — see
	// DESIGN.md's "CSC dispatch and partition.Strategy" entry.
	PART96 bool
	// LargeDegreeThreshold overrides the 1000-neighbor small/large
	// split in sparse push and dense CSC pull; <= 0 selects the
	// original's constant of 1000.
	LargeDegreeThreshold int
	// Metrics records the mode selected and the round's wall time, when
	// set (SPEC_FULL.md §2, §3). Nil disables instrumentation.
	Metrics *metrics.Registry
	// RunID, when set, is attached to the per-round debug log line so
	// every round of a multi-round benchmark invocation can be
	// correlated (SPEC_FULL.md §3's uuid "run id" wiring). Not attached
	// to metric labels: a uuid per invocation is unbounded-cardinality
	// and would be a Prometheus anti-pattern as a label value.
	RunID string
}

const defaultLargeDegreeThreshold = 1000

func (o Options) largeDegreeThreshold() int {
	if o.LargeDegreeThreshold > 0 {
		return o.LargeDegreeThreshold
	}
	return defaultLargeDegreeThreshold
}

// selectMode implements spec.md §4.5's mode-selection rule: let m =
// |frontier|, edgesTouched = frontier.num_out_edges, T1 = m/20 (or
// opts.SparseThreshold) and T2 = mTotal/2.
func selectMode(m, edgesTouched, mTotal int, opts Options) Mode {
	t1 := opts.SparseThreshold
	if t1 <= 0 {
		t1 = m / 20
	}
	t2 := mTotal / 2

	switch {
	case edgesTouched+m <= t1:
		return ModeSparsePush
	case edgesTouched+m > t2:
		return ModeDenseCOO
	default:
		return ModeDenseCSC
	}
}
