// Package vebocache memoizes internal/vebo's relabeling computation
// against the edge list it was computed from. VEBO's bucket-and-assign
// pass is linear in m but still the most expensive step a repeated
// benchmark round (the driver's "-rounds k" flag) would otherwise pay
// again for an input that has not changed.
//
// The teacher never caches anything keyed by a content hash, but it
// does reach for golang.org/x/crypto for exactly this shape of problem
// elsewhere — bcrypt for password hashes (pkg/auth), pbkdf2 for key
// derivation (pkg/encryption). Both exist to turn variable-length input
// bytes into a fixed-size, collision-resistant token; blake2b is the
// same module's general-purpose instance of that primitive, minus the
// deliberate slowness bcrypt/pbkdf2 add for password stretching, which
// a cache key has no use for.
package vebocache

import (
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/dd0wney/numagraph/internal/graph"
	"github.com/dd0wney/numagraph/internal/pools"
	"github.com/dd0wney/numagraph/internal/vebo"
)

// Fingerprint is a blake2b-256 digest over a WholeGraph's shape and
// edge content. Two graphs that fingerprint equal are treated as
// identical inputs to VEBO.
type Fingerprint [blake2b.Size256]byte

// ComputeFingerprint hashes g's vertex count, edge count, symmetry
// flag, and full out/in-edge arrays. Weights are excluded: VEBO's
// relabeling depends only on degree and adjacency, never on edge
// weight.
func ComputeFingerprint(g *graph.WholeGraph) Fingerprint {
	return computeFingerprint(g)
}

func computeFingerprint(g *graph.WholeGraph) Fingerprint {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails for an oversized key, and nil never
		// qualifies; a panic here would mean the standard library broke.
		panic(err)
	}

	b := pools.NewBufferBuilder(64)
	defer b.Release()

	b.WriteUint64BE(uint64(g.N))
	b.WriteUint64BE(uint64(g.M))
	if g.IsSymmetric {
		b.WriteByte(1)
	} else {
		b.WriteByte(0)
	}
	h.Write(b.Bytes())

	writeEdges(h, g.OutEdges)
	if !g.IsSymmetric {
		writeEdges(h, g.InEdges)
	}

	var fp Fingerprint
	copy(fp[:], h.Sum(nil))
	return fp
}

func writeEdges(h interface{ Write([]byte) (int, error) }, edges []graph.VId) {
	var tmp [4]byte
	for _, e := range edges {
		binary.BigEndian.PutUint32(tmp[:], uint32(e))
		h.Write(tmp[:])
	}
}

// Cache memoizes VEBO results by graph fingerprint, so repeated rounds
// against the same loaded edge list skip recomputing the relabeling
// table. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]*vebo.Result
}

type cacheKey struct {
	fp            Fingerprint
	numPartitions int
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[cacheKey]*vebo.Result)}
}

// Compute returns the VEBO relabeling for g under numPartitions
// partitions, computing and storing it on first request and returning
// the cached result on every subsequent call with the same fingerprint
// and partition count.
func (c *Cache) Compute(g *graph.WholeGraph, numPartitions int) *vebo.Result {
	key := cacheKey{fp: computeFingerprint(g), numPartitions: numPartitions}

	c.mu.Lock()
	if res, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return res
	}
	c.mu.Unlock()

	res := vebo.Compute(g, numPartitions)

	c.mu.Lock()
	c.entries[key] = res
	c.mu.Unlock()

	return res
}

// Len reports how many distinct (fingerprint, partition count) results
// are currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
