// Package pool provides a thread-safe pool of byte buffers used for
// decoder scanlines and streaming chunks.
package pool

import "sync"

// Pool reuses byte slices grouped by their exact length.
//
// Decoders tend to ask for the same few sizes over and over (one row of
// the current image, one transfer chunk), so buffers are bucketed by
// length rather than rounded to size classes.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max buffers per bucket
}

// New creates a pool retaining at most maxPerBucket buffers of each length.
// A maxPerBucket of 0 means unlimited.
func New(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed buffer of length n.
func (p *Pool) Get(n int) []byte {
	if n <= 0 {
		return nil
	}
	p.mu.Lock()
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[n] = bucket[:len(bucket)-1]
		p.mu.Unlock()
		clear(buf)
		return buf
	}
	p.mu.Unlock()
	return make([]byte, n)
}

// Put returns buf to the pool. Nil and empty buffers are ignored, as are
// buffers whose bucket is full.
func (p *Pool) Put(buf []byte) {
	n := len(buf)
	if n == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[n]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[n] = append(bucket, buf[:n:n])
}

// Len returns the number of idle buffers of length n.
func (p *Pool) Len(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[n])
}

var defaultPool = New(4)

// Get retrieves a buffer from the default pool.
func Get(n int) []byte { return defaultPool.Get(n) }

// Put returns a buffer to the default pool.
func Put(buf []byte) { defaultPool.Put(buf) }
