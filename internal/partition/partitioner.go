// Package partition implements the degree-balanced partitioner (spec.md
// §4.1), the per-partition CSC and COO storage it drives (§4.2, §4.3),
// and the PartitionedGraph that ties both representations together.
package partition

import (
	"github.com/dd0wney/numagraph/internal/engineerr"
	"github.com/dd0wney/numagraph/internal/graph"
	"github.com/dd0wney/numagraph/internal/numa"
)

// Strategy selects which edge direction the partitioner balances on.
type Strategy int

const (
	// ByDestination accumulates in-degree to balance per-partition
	// in-edge counts; preferred for pull-mode algorithms (PageRank,
	// Bellman-Ford) whose incoming work should be partition-local.
	ByDestination Strategy = iota
	// BySource accumulates out-degree; preferred for push-mode
	// traversals (BFS, BC, Components).
	BySource
	// ByVertex splits the vertex range into P equal-sized blocks,
	// ignoring degree balance.
	ByVertex
)

func (s Strategy) String() string {
	switch s {
	case ByDestination:
		return "dest"
	case BySource:
		return "source"
	case ByVertex:
		return "vertex"
	default:
		return "unknown"
	}
}

// ParseStrategy parses the -P flag's {dest|source} values (spec.md §6).
// ByVertex has no CLI spelling; it is selected programmatically.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "dest":
		return ByDestination, nil
	case "source":
		return BySource, nil
	default:
		return 0, engineerr.NewError("ParseStrategy").Context(s).Cause(engineerr.ErrArgument).Err()
	}
}

// Partitioner maps a partition index to a NUMA node and a contiguous
// vertex range (spec.md §3's Partitioner data model).
type Partitioner struct {
	NumPartitions     int
	NumNUMANodes      int
	PerNodePartitions int
	Starts            []graph.VId   // len NumPartitions+1, Starts[0]=0, Starts[P]=n
	NumaOf            []numa.NodeID // len NumPartitions
}

// NumVertices returns n, the vertex count the partitioner was built over.
func (p *Partitioner) NumVertices() graph.VId {
	return p.Starts[p.NumPartitions]
}

// PartitionOf returns the partition index owning vertex v.
func (p *Partitioner) PartitionOf(v graph.VId) int {
	lo, hi := 0, p.NumPartitions
	for lo < hi {
		mid := (lo + hi) / 2
		if p.Starts[mid+1] <= v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Range returns [start, end) for partition p.
func (pt *Partitioner) Range(p int) (start, end graph.VId) {
	return pt.Starts[p], pt.Starts[p+1]
}

// New builds a Partitioner over g using the given strategy, target
// partition count, and NUMA node count. If numPartitions > n, excess
// partitions collapse to zero-width ranges at the tail (spec.md §4.1's
// "collapses empty partitions" failure mode); all operations on such
// partitions are no-ops.
func New(g *graph.WholeGraph, numPartitions, numNUMANodes int, strategy Strategy) (*Partitioner, error) {
	if numPartitions <= 0 {
		return nil, engineerr.NewError("partition.New").Cause(engineerr.ErrArgument).Err()
	}
	if numNUMANodes <= 0 {
		numNUMANodes = 1
	}

	n := int(g.N)
	starts := make([]graph.VId, numPartitions+1)

	switch strategy {
	case ByVertex:
		fillEqualRanges(starts, n, numPartitions)
	case ByDestination:
		fillDegreeBalanced(starts, g, numPartitions, func(v graph.VId) int { return g.InDegree(v) })
	case BySource:
		fillDegreeBalanced(starts, g, numPartitions, func(v graph.VId) int { return g.OutDegree(v) })
	default:
		return nil, engineerr.NewError("partition.New").Context("strategy").Cause(engineerr.ErrArgument).Err()
	}

	perNode := numPartitions / numNUMANodes
	if perNode == 0 {
		perNode = 1
	}
	numaOf := make([]numa.NodeID, numPartitions)
	for p := 0; p < numPartitions; p++ {
		numaOf[p] = numa.NodeID((p / perNode) % numNUMANodes)
	}

	return &Partitioner{
		NumPartitions:     numPartitions,
		NumNUMANodes:      numNUMANodes,
		PerNodePartitions: perNode,
		Starts:            starts,
		NumaOf:            numaOf,
	}, nil
}

func fillEqualRanges(starts []graph.VId, n, numPartitions int) {
	base := n / numPartitions
	rem := n % numPartitions
	cur := 0
	for p := 0; p < numPartitions; p++ {
		starts[p] = graph.VId(cur)
		size := base
		if p < rem {
			size++
		}
		cur += size
		if cur > n {
			cur = n
		}
	}
	starts[numPartitions] = graph.VId(n)
}

// fillDegreeBalanced implements §4.1(1)/(2): scan vertices in numeric
// order, accumulating degree(v) into a running sum, and close the
// current partition whenever the sum crosses the per-partition target
// m/P. The final partition absorbs any remainder.
func fillDegreeBalanced(starts []graph.VId, g *graph.WholeGraph, numPartitions int, degree func(graph.VId) int) {
	n := int(g.N)
	target := g.M / numPartitions
	if target == 0 {
		target = 1
	}

	starts[0] = 0
	p := 0
	running := 0
	for v := 0; v < n && p < numPartitions-1; v++ {
		running += degree(graph.VId(v))
		if running >= target {
			p++
			starts[p] = graph.VId(v + 1)
			running = 0
		}
	}
	// Any partitions left unclosed (graph smaller than numPartitions, or
	// the scan ran out of vertices before every target was crossed)
	// collapse to zero-width ranges ending at n.
	for q := p + 1; q < numPartitions; q++ {
		starts[q] = graph.VId(n)
	}
	starts[numPartitions] = graph.VId(n)
}
