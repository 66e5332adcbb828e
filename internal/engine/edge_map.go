package engine

import (
	"sync/atomic"
	"time"

	"github.com/dd0wney/numagraph/internal/frontier"
	"github.com/dd0wney/numagraph/internal/graph"
	"github.com/dd0wney/numagraph/internal/logging"
	"github.com/dd0wney/numagraph/internal/parallelrt"
	"github.com/dd0wney/numagraph/internal/partition"
)

// EdgeMap implements spec.md §4.5's edge_map driver: select a mode from
// the frontier's size and touched-edge count, dispatch to the
// corresponding execution strategy, and return the output frontier of
// vertices the operator newly activated. logger may be nil; when set,
// EdgeMap emits a debug line naming the mode it selected for the round
// (SPEC_FULL.md §2).
func EdgeMap(pg *partition.PartitionedGraph, f *frontier.Frontier, op Operator, opts Options, logger *logging.JSONLogger) *frontier.Frontier {
	if f.IsEmpty() {
		return frontier.Empty()
	}

	mTotal := pg.Whole.M
	mode := selectMode(f.DM, f.NumOutEdges, mTotal, opts)

	if logger != nil {
		fields := []logging.Field{logging.Mode(string(mode)), logging.FrontierSize(f.DM)}
		if opts.RunID != "" {
			fields = append(fields, logging.RunID(opts.RunID))
		}
		logger.Debug("edge_map round", fields...)
	}

	start := time.Now()
	var out *frontier.Frontier
	switch mode {
	case ModeSparsePush:
		out = edgeMapSparse(pg, f, op, opts)
	case ModeDenseCOO:
		out = edgeMapDenseCOO(pg, f, op, opts)
	default:
		out = edgeMapDenseCSC(pg, f, op, opts)
	}

	if opts.Metrics != nil {
		opts.Metrics.RecordEdgeMapRound(string(mode), time.Since(start))
		opts.Metrics.SetFrontierSize(out.DM)
	}
	return out
}

// frontierActive reports whether v is active in f, assuming f has
// already been densified (the caller's responsibility in both pull
// paths below).
func frontierActive(f *frontier.Frontier, v int) bool {
	if f.Bit {
		return true
	}
	return f.Dense[v]
}

// edgeMapSparse implements spec.md §4.5.1: iterate the active sources'
// out-edges directly against the whole graph, splitting each source's
// neighbor run into a sequential or parallel loop at the large-degree
// threshold, gating every candidate edge through op.Cond before
// dispatching to the non-atomic or atomic update (ported from
// edgeOpFwdSeq/edgeOpFwd in the original's ligra-numa.h).
func edgeMapSparse(pg *partition.PartitionedGraph, f *frontier.Frontier, op Operator, opts Options) *frontier.Frontier {
	f.ToSparse()
	g := pg.Whole
	large := opts.largeDegreeThreshold()

	offsets := make([]int, len(f.Sparse)+1)
	for i, src := range f.Sparse {
		offsets[i+1] = offsets[i] + g.OutDegree(graph.VId(src))
	}
	total := offsets[len(f.Sparse)]
	outIdx := make([]int, total)
	for i := range outIdx {
		outIdx[i] = -1
	}

	parallelrt.ParallelFor(len(f.Sparse), 0, func(i int) {
		src := graph.VId(f.Sparse[i])
		deg := g.OutDegree(src)
		base := offsets[i]

		if deg > large {
			parallelrt.ParallelFor(deg, 0, func(j int) {
				dst := g.OutNeighbor(src, j)
				if !op.Cond(dst) {
					return
				}
				if op.UpdateAtomic(src, dst, g.OutWeight(src, j)) {
					outIdx[base+j] = int(dst)
				}
			})
			return
		}

		for j := 0; j < deg; j++ {
			dst := g.OutNeighbor(src, j)
			if !op.Cond(dst) {
				continue
			}
			if op.Update(src, dst, g.OutWeight(src, j)) {
				outIdx[base+j] = int(dst)
			}
		}
	})

	if opts.RemoveDuplicates {
		flags := frontier.NewDedupFlags(int(g.N))
		frontier.RemoveDuplicates(outIdx, flags)
	}

	packed := make([]int, 0, total)
	for _, v := range outIdx {
		if v != -1 {
			packed = append(packed, v)
		}
	}

	out := &frontier.Frontier{NumVertices: int(g.N), Sparse: packed, DM: len(packed)}
	out.ReduceOutStats(func(v int) int { return g.OutDegree(graph.VId(v)) })
	return out
}

// edgeMapDenseCOO implements spec.md §4.5.2: scan each partition's COO
// edge list, skipping edges whose source is inactive, gating on
// op.Cond(dst) first, and dispatching to a non-atomic update when
// opts.PART96 reports each partition owns its destinations exclusively
// (ported from edgeMapDense's PART96 branch in the original).
func edgeMapDenseCOO(pg *partition.PartitionedGraph, f *frontier.Frontier, op Operator, opts Options) *frontier.Frontier {
	f.ToDense()
	g := pg.Whole
	out := make([]bool, g.N)

	parallelrt.NUMAGroupedParallelFor(pg.Partitions.NumPartitions, func(p int) int {
		return int(pg.Partitions.NumaOf[p])
	}, func(p int) {
		for _, e := range pg.Coo[p].Edges {
			if !frontierActive(f, int(e.Src)) {
				continue
			}
			if !op.Cond(e.Dst) {
				continue
			}
			var updated bool
			if opts.PART96 {
				updated = op.Update(e.Src, e.Dst, e.Weight)
			} else {
				updated = op.UpdateAtomic(e.Src, e.Dst, e.Weight)
			}
			if updated {
				out[e.Dst] = true
			}
		}
	})

	result := frontier.FromBoolean(int(g.N), out, 0, 0)
	result.ReduceOutStats(func(v int) int { return g.OutDegree(graph.VId(v)) })
	result.ToSparse()
	return result
}

// edgeMapDenseCSC implements spec.md §4.5.3: scan each partition's CSC
// entries (one per destination with at least one in-edge in range),
// gate once on op.Cond(d), and process that destination's in-neighbor
// run sequentially or in parallel at the large-degree threshold
// (ported from edgeOpBwd/edgeOpIn's small/large split).
//
// Unlike edgeMapDenseCOO, this path never reads opts.PART96 or
// pg.Strategy: the original forces edgeOpBwd onto the atomic update
// whenever partitioning is by source, to guard against two partitions
// racing on the same destination. That race needs a destination to be
// reachable from more than one partition's CSC entries, and this port's
// CscPartition construction never allows it — every partition's entries
// cover a disjoint range of destination IDs regardless of Strategy
// (internal/partition/csc.go). processCscEntryLarge still dispatches to
// UpdateAtomic, but because several goroutines can race on the same
// entry's own in-neighbor run, not because of cross-partition overlap.
func edgeMapDenseCSC(pg *partition.PartitionedGraph, f *frontier.Frontier, op Operator, opts Options) *frontier.Frontier {
	f.ToDense()
	g := pg.Whole
	large := opts.largeDegreeThreshold()
	out := make([]bool, g.N)

	parallelrt.NUMAGroupedParallelFor(pg.Partitions.NumPartitions, func(p int) int {
		return int(pg.Partitions.NumaOf[p])
	}, func(p int) {
		csc := pg.Csc[p]
		for _, e := range csc.Entries {
			d := e.OrigID
			if !op.Cond(d) {
				continue
			}
			if e.InDegree > large {
				processCscEntryLarge(csc, e, d, f, op, out)
			} else {
				processCscEntrySmall(csc, e, d, f, op, out)
			}
		}
	})

	result := frontier.FromBoolean(int(g.N), out, 0, 0)
	result.ReduceOutStats(func(v int) int { return g.OutDegree(graph.VId(v)) })
	result.ToSparse()
	return result
}

func cscWeight(csc *partition.CscPartition, e partition.CscEntry, j int) graph.Weight {
	if csc.Weights == nil {
		return 1
	}
	return csc.Weights[e.InStart+j]
}

// processCscEntrySmall visits d's in-neighbor run serially, using the
// CacheOperator path when op supports it (spec.md §4.5's cache
// extension): a single cache load and commit instead of one store per
// contributing in-neighbor. Its cond-recheck-per-step early exit
// mirrors the original's sequential edgeOpIn.
func processCscEntrySmall(csc *partition.CscPartition, e partition.CscEntry, d graph.VId, f *frontier.Frontier, op Operator, out []bool) {
	if co := asCacheOperator(op); co != nil {
		cache := co.CreateCache(d)
		updated := false
		for j := 0; j < e.InDegree; j++ {
			if !op.Cond(d) {
				break
			}
			src := csc.Neighbors[e.InStart+j]
			if !frontierActive(f, int(src)) {
				continue
			}
			if co.UpdateCache(cache, src, cscWeight(csc, e, j)) {
				updated = true
			}
		}
		if updated {
			co.CommitCache(cache, d)
			out[d] = true
		}
		return
	}

	for j := 0; j < e.InDegree; j++ {
		if !op.Cond(d) {
			break
		}
		src := csc.Neighbors[e.InStart+j]
		if !frontierActive(f, int(src)) {
			continue
		}
		if op.Update(src, d, cscWeight(csc, e, j)) {
			out[d] = true
		}
	}
}

// processCscEntryLarge splits a high-degree destination's in-neighbor
// run across workers, forgoing the per-step cond early exit (only
// checked once up front) since concurrent workers cannot cheaply agree
// to stop, and using the atomic update since multiple workers may
// contribute to d concurrently.
func processCscEntryLarge(csc *partition.CscPartition, e partition.CscEntry, d graph.VId, f *frontier.Frontier, op Operator, out []bool) {
	var updated int32
	parallelrt.ParallelFor(e.InDegree, 0, func(j int) {
		src := csc.Neighbors[e.InStart+j]
		if !frontierActive(f, int(src)) {
			return
		}
		if op.UpdateAtomic(src, d, cscWeight(csc, e, j)) {
			atomic.StoreInt32(&updated, 1)
		}
	})
	if atomic.LoadInt32(&updated) == 1 {
		out[d] = true
	}
}
