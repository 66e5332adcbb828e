package partition

import (
	"github.com/dd0wney/numagraph/internal/graph"
	"github.com/dd0wney/numagraph/internal/numa"
	"github.com/dd0wney/numagraph/internal/parallelrt"
)

// PartitionedGraph holds the whole graph's CSC representation (split
// across partitions) plus each partition's COO edge list, as driven by
// New (spec.md §3, §4.1-4.3).
type PartitionedGraph struct {
	Whole      *graph.WholeGraph
	Partitions *Partitioner
	Strategy   Strategy

	Csc []*CscPartition // len NumPartitions
	Coo []*CooPartition // len NumPartitions
}

// Build partitions g into numPartitions partitions across numNUMANodes
// NUMA nodes using strategy, constructing both the per-partition CSC and
// COO storage (sorted per sortKey) in parallel.
func Build(g *graph.WholeGraph, numPartitions, numNUMANodes int, strategy Strategy, sortKey EdgeSort, alloc numa.Allocator) (*PartitionedGraph, error) {
	pt, err := New(g, numPartitions, numNUMANodes, strategy)
	if err != nil {
		return nil, err
	}

	csc := make([]*CscPartition, numPartitions)
	coo := make([]*CooPartition, numPartitions)

	parallelrt.NUMAGroupedParallelFor(numPartitions, func(p int) int { return int(pt.NumaOf[p]) }, func(p int) {
		lo, hi := pt.Range(p)
		node := pt.NumaOf[p]
		csc[p] = buildCSC(g, lo, hi, alloc, node)
		coo[p] = buildCOO(g, p, pt, strategy, sortKey, alloc, node)
	})

	return &PartitionedGraph{
		Whole:      g,
		Partitions: pt,
		Strategy:   strategy,
		Csc:        csc,
		Coo:        coo,
	}, nil
}

// TotalCooEdges returns sum_p |Coo[p].Edges|, which must equal g.M
// (spec.md §8's conservation invariant).
func (pg *PartitionedGraph) TotalCooEdges() int {
	total := 0
	for _, c := range pg.Coo {
		total += c.NumEdges()
	}
	return total
}

// TotalCscEdges returns sum_p |Csc[p].Entries' in-edges|, which must
// equal g.M (spec.md §8's conservation invariant).
func (pg *PartitionedGraph) TotalCscEdges() int {
	total := 0
	for _, c := range pg.Csc {
		total += c.NumEdges()
	}
	return total
}
