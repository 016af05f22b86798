package dct

import (
	"sync"
)

// Cache keeps DCT plans per sequence length.
// Plans carry scratch space, so each length has a pool and a plan is held by one caller at a time.
type Cache struct {
	data sync.Map
}

func NewCache() *Cache {
	var c Cache
	return &c
}

// Get returns a plan for length n. Return it with Put when done.
func (c *Cache) Get(n int) *DCT {
	return c.pool(n).Get().(*DCT)
}

// Put hands a plan back to the cache.
func (c *Cache) Put(dct *DCT) {
	c.pool(dct.n).Put(dct)
}

func (c *Cache) pool(n int) *sync.Pool {
	if v, ok := c.data.Load(n); ok {
		return v.(*sync.Pool)
	}
	p := &sync.Pool{New: func() any { return New(n) }}
	actual, _ := c.data.LoadOrStore(n, p)
	return actual.(*sync.Pool)
}
