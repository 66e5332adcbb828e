package pools

import (
	"sync"
)

// Buffer size classes, chosen against graphio's actual read/write
// shapes rather than a generic KV-store's key/value split.
const (
	TinySize   = 16    // adjacency-text token scratch (one vertex id, one weight)
	SmallSize  = 64    // a CscEntry/CooEdge record's encoded form
	MediumSize = 256   // a short adjacency-list line (low-degree vertex)
	LargeSize  = 1024  // a Galois-binary header or high-degree adjacency line
	HugeSize   = 4096  // a BufferBuilder's starting capacity for a full write pass
	MaxPool    = 65536 // buffers this size or larger (e.g. a whole partition's CSC block) go unpooled
)

// BytePool is a size-class sync.Pool wrapper graphio's readers and
// writers draw scratch buffers from instead of allocating per call:
// one Galois-binary or adjacency-text read/write touches many
// same-shaped buffers (one per line, one per partition's edge block),
// and the size classes here match those shapes closely enough to keep
// the pool's hit rate high.
type BytePool struct {
	tiny   sync.Pool // <= 16 bytes
	small  sync.Pool // <= 64 bytes
	medium sync.Pool // <= 256 bytes
	large  sync.Pool // <= 1024 bytes
	huge   sync.Pool // <= 4096 bytes
}

// NewBytePool creates an empty byte pool; each size class allocates
// lazily on first Get.
func NewBytePool() *BytePool {
	return &BytePool{
		tiny: sync.Pool{
			New: func() any {
				b := make([]byte, 0, TinySize)
				return &b
			},
		},
		small: sync.Pool{
			New: func() any {
				b := make([]byte, 0, SmallSize)
				return &b
			},
		},
		medium: sync.Pool{
			New: func() any {
				b := make([]byte, 0, MediumSize)
				return &b
			},
		},
		large: sync.Pool{
			New: func() any {
				b := make([]byte, 0, LargeSize)
				return &b
			},
		},
		huge: sync.Pool{
			New: func() any {
				b := make([]byte, 0, HugeSize)
				return &b
			},
		},
	}
}

// Get returns a byte slice with at least the requested capacity and
// length 0, routed to the smallest size class that fits — the shape
// BufferBuilder.Reset relies on before appending a fresh record.
func (p *BytePool) Get(size int) []byte {
	var pool *sync.Pool
	switch {
	case size <= TinySize:
		pool = &p.tiny
	case size <= SmallSize:
		pool = &p.small
	case size <= MediumSize:
		pool = &p.medium
	case size <= LargeSize:
		pool = &p.large
	case size <= HugeSize:
		pool = &p.huge
	default:
		return make([]byte, 0, size)
	}

	bp, ok := pool.Get().(*[]byte)
	if !ok || cap(*bp) < size {
		return make([]byte, 0, size)
	}
	return (*bp)[:0]
}

// GetSized returns a byte slice with exactly the requested length,
// e.g. a fixed Galois-binary header graphio fills field by field.
func (p *BytePool) GetSized(size int) []byte {
	b := p.Get(size)
	return b[:size]
}

// Put returns b to its size class for reuse. Buffers above MaxPool —
// a whole partition's serialized CSC block, say — are dropped instead
// of retained, so one oversized write doesn't pin a huge buffer in the
// pool forever.
func (p *BytePool) Put(b []byte) {
	c := cap(b)
	if c > MaxPool {
		return
	}

	b = b[:0]

	var pool *sync.Pool
	switch {
	case c <= TinySize:
		pool = &p.tiny
	case c <= SmallSize:
		pool = &p.small
	case c <= MediumSize:
		pool = &p.medium
	case c <= LargeSize:
		pool = &p.large
	case c <= HugeSize:
		pool = &p.huge
	default:
		return
	}

	pool.Put(&b)
}

// defaultBytePool backs the package-level helpers below; graphio and
// BufferBuilder both draw from it rather than constructing their own
// BytePool.
var defaultBytePool = NewBytePool()

// GetBytes draws from the default pool.
func GetBytes(size int) []byte {
	return defaultBytePool.Get(size)
}

// GetBytesSized draws an exact-length slice from the default pool.
func GetBytesSized(size int) []byte {
	return defaultBytePool.GetSized(size)
}

// PutBytes returns b to the default pool.
func PutBytes(b []byte) {
	defaultBytePool.Put(b)
}
