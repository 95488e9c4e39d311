package rule

import (
	"bytes"
	"sync"
)

// BufferPool manages line buffer reuse
type BufferPool struct {
	pool sync.Pool
}

// NewBufferPool creates a new buffer pool
func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 256))
			},
		},
	}
}

// Get retrieves an empty buffer from the pool
func (p *BufferPool) Get() *bytes.Buffer {
	return p.pool.Get().(*bytes.Buffer)
}

// Put returns a buffer to the pool
func (p *BufferPool) Put(buf *bytes.Buffer) {
	// Very long lines would pin their memory in the pool
	if buf.Cap() > 64<<10 {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}

var buffers = NewBufferPool()
