// SPDX-License-Identifier: EPL-2.0

package audio

import "sync"

// Cache stores decoded clips keyed by their opaque source reference, so a
// source fetched for duration discovery is not decoded again for rendering.
// Entries are idempotent and may be evicted at any time without affecting
// correctness; re-decoding the same reference yields the same buffer.
type Cache struct {
	buffers map[string]*SampleBuffer

	mtx *sync.Mutex
}

func NewCache() *Cache {
	return &Cache{
		buffers: make(map[string]*SampleBuffer),
		mtx:     &sync.Mutex{},
	}
}

func (c *Cache) Put(source string, buf *SampleBuffer) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.buffers[source] = buf
}

func (c *Cache) Get(source string) (*SampleBuffer, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	buf, ok := c.buffers[source]
	return buf, ok
}

// Evict removes a single entry.
func (c *Cache) Evict(source string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	delete(c.buffers, source)
}

// Clear drops every cached buffer.
func (c *Cache) Clear() {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.buffers = make(map[string]*SampleBuffer)
}

// Len reports the number of cached clips.
func (c *Cache) Len() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return len(c.buffers)
}
