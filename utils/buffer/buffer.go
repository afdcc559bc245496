package buffer

import (
	"sync"
)

// Capacities of the pooled size classes. Larger buffers are left to the GC.
var classes = [...]int{
	4 * 1024,        // 4KB
	64 * 1024,       // 64KB, the default demuxer chunk
	1024 * 1024,     // 1MB
	4 * 1024 * 1024, // 4MB
}

var pools [len(classes)]sync.Pool

// classFor returns the smallest class that fits size, or -1.
func classFor(size int) int {
	for i, c := range classes {
		if size <= c {
			return i
		}
	}
	return -1
}

// Get returns a pooled buffer of length size.
func Get(size int) PooledBuffer {
	return take(size)
}

func take(size int) *chunkBuffer {
	i := classFor(size)
	if i < 0 {
		return &chunkBuffer{buf: make([]byte, size)}
	}
	if b, ok := pools[i].Get().(*chunkBuffer); ok {
		b.buf = b.buf[:size]
		return b
	}
	return &chunkBuffer{buf: make([]byte, size, classes[i])}
}

type chunkBuffer struct {
	buf []byte
}

func (b *chunkBuffer) Data() []byte {
	return b.buf
}

func (b *chunkBuffer) Len() int {
	return len(b.buf)
}

func (b *chunkBuffer) Grow(size int) {
	switch {
	case size <= len(b.buf):
	case size <= cap(b.buf):
		b.buf = b.buf[:size]
	default:
		// swap in a bigger slice and hand the old one back to its pool
		next := take(size)
		b.buf, next.buf = next.buf, b.buf
		next.Release()
	}
}

func (b *chunkBuffer) Release() {
	// a slice goes back to the largest class it can serve
	i := len(classes) - 1
	for i >= 0 && cap(b.buf) < classes[i] {
		i--
	}
	if i < 0 || cap(b.buf) > classes[len(classes)-1] {
		return
	}

	b.buf = b.buf[:0]
	pools[i].Put(b)
}
