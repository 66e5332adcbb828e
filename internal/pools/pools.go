// Package pools provides object pooling for reducing GC pressure during
// graph loading and edge-map rounds.
//
//   - BytePool: size-class byte slice pooling for graphio readers/writers
//   - Uint64Pool: pooling for uint64 slices (out-edge scratch buffers,
//     sparse frontier element arrays)
//   - BufferBuilder: buffered binary/text encoding on top of BytePool
package pools
