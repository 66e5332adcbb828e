package graphio

import (
	"os"
	"strconv"

	"github.com/golang/snappy"

	"github.com/dd0wney/numagraph/internal/engineerr"
	"github.com/dd0wney/numagraph/internal/graph"
	"github.com/dd0wney/numagraph/internal/pools"
)

// WriteOptions controls how a graphio writer serializes its output.
type WriteOptions struct {
	// Weighted emits the WeightedAdjacencyGraph header and a trailing
	// weight array; g.OutWeights must be non-nil when set.
	Weighted bool
	// Snappy compresses the serialized text with golang/snappy before
	// the write syscall, mirroring pkg/wal/compressed_wal.go's
	// snappy.Encode(nil, data) idiom.
	Snappy bool
}

// WriteAdjacencyText writes g to path in the text adjacency format
// (§6), using g's own out-edge view (callers wanting the transposed or
// VEBO-relabeled variant pass the already-transformed graph — see
// internal/graph.WholeGraph.Transpose and internal/vebo.Relabel).
func WriteAdjacencyText(g *graph.WholeGraph, path string, opts WriteOptions) error {
	b := pools.NewBufferBuilder(64 + int(g.N)*8 + g.M*8)
	defer b.Release()

	header := adjGraphHeader
	if opts.Weighted {
		header = weightedAdjHeader
	}
	b.WriteString(header)
	b.WriteByte('\n')
	b.WriteString(strconv.Itoa(int(g.N)))
	b.WriteByte('\n')
	b.WriteString(strconv.Itoa(g.M))
	b.WriteByte('\n')

	for i := 0; i < int(g.N); i++ {
		b.WriteString(strconv.Itoa(g.V[i].OutStart))
		b.WriteByte('\n')
	}
	for _, d := range g.OutEdges {
		b.WriteString(strconv.Itoa(int(d)))
		b.WriteByte('\n')
	}
	if opts.Weighted {
		for _, w := range g.OutWeights {
			b.WriteString(strconv.FormatFloat(float64(w), 'g', -1, 64))
			b.WriteByte('\n')
		}
	}

	return writeBytes(path, b.Bytes(), opts.Snappy)
}

// WriteTransposed writes g's transposed adjacency (§6's "Transposed
// adjacency": same header, edges inverted, offsets recomputed) — a thin
// wrapper that transposes then delegates to WriteAdjacencyText.
func WriteTransposed(g *graph.WholeGraph, path string, opts WriteOptions) error {
	return WriteAdjacencyText(g.Transpose(), path, opts)
}

// WriteVEBORelabeled writes g's VEBO-relabeled adjacency (§6: same
// header, neighbor ids rewritten through new_id[·]) given the already
// relabeled graph from internal/vebo.Relabel.
func WriteVEBORelabeled(relabeled *graph.WholeGraph, path string, opts WriteOptions) error {
	return WriteAdjacencyText(relabeled, path, opts)
}

func writeBytes(path string, data []byte, compress bool) error {
	if compress {
		data = snappy.Encode(nil, data)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return engineerr.NewError("graphio.Write").Context(path).Cause(err).Err()
	}
	return nil
}
