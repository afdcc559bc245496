// Package buffer pools the read buffers demuxers pull stream chunks into.
package buffer

// PooledBuffer is a byte buffer borrowed from a size class pool.
type PooledBuffer interface {
	// Data returns the buffer. Its length is the size last requested.
	Data() []byte
	Len() int

	// Grow makes the buffer at least size bytes long. Contents are not kept:
	// a read buffer is drained before it grows.
	Grow(size int)

	// Release returns the buffer to the pool. After calling Release,
	// the buffer should not be used.
	Release()
}
