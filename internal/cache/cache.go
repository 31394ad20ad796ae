// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache implements a bounded, insert-only cache to memoize expensive
// operations.
//
// Elements are never evicted. Once the cache is full, Get keeps working but
// hands out freshly filled values without storing them.
package cache

import (
	"sync"
	"sync/atomic"
)

// DefaultSize is the default size of a cache.
const DefaultSize = 500

// Cache is a bounded cache suitable to memoize expensive operations whose
// results are immutable and can be shared.
//
// Its zero value is safe to use. It is safe for concurrent use. A Cache must
// not be copied after first use.
type Cache[K comparable, V any] struct {
	// MaxSize is the maximum number of elements in the cache. If it is zero
	// or negative, DefaultSize is used.
	//
	// MaxSize is not safe to mutate concurrently with calls to Get.
	MaxSize int64

	m sync.Map
	// n counts reserved slots. It is incremented before an element is
	// stored and decremented again if the store lost a race, so it is
	// always at least the number of stored elements and never above the
	// maximum size.
	n atomic.Int64
}

// Load returns the element associated with k, if it is cached.
func (c *Cache[K, V]) Load(k K) (v V, ok bool) {
	e, ok := c.m.Load(k)
	if !ok {
		return v, false
	}
	return e.(V), true
}

// Get the element associated with k from the cache, using fill to populate
// missing elements. stored reports whether the returned element is held by
// the cache, so that later calls for k return the same element.
//
// fill is called without holding any lock, so a slow fill for one key never
// delays Get for other keys. If two goroutines fill the same key
// concurrently, the first one to store wins and the other result is
// discarded. If fill fails, its error is returned and nothing is stored.
func (c *Cache[K, V]) Get(k K, fill func(K) (V, error)) (v V, stored bool, err error) {
	if v, ok := c.Load(k); ok {
		return v, true, nil
	}

	nv, err := fill(k)
	if err != nil {
		return v, false, err
	}

	if !c.reserve() {
		// another goroutine might have stored k while we were filling
		if v, ok := c.Load(k); ok {
			return v, true, nil
		}
		return nv, false, nil
	}
	e, loaded := c.m.LoadOrStore(k, nv)
	if loaded {
		// another goroutine filled the cache in the meantime
		c.n.Add(-1)
	}
	return e.(V), true, nil
}

// Len returns the number of cached elements. While Get calls are in flight,
// the result may include slots reserved for elements not yet stored.
func (c *Cache[K, V]) Len() int {
	return int(c.n.Load())
}

// Full reports whether the cache has reached its maximum size.
func (c *Cache[K, V]) Full() bool {
	return c.n.Load() >= c.maxSize()
}

// Cap returns the maximum number of elements in the cache.
func (c *Cache[K, V]) Cap() int {
	return int(c.maxSize())
}

// reserve claims a slot for a new element. It returns false if the cache is
// full.
func (c *Cache[K, V]) reserve() bool {
	m := c.maxSize()
	for {
		n := c.n.Load()
		if n >= m {
			return false
		}
		if c.n.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (c *Cache[K, V]) maxSize() int64 {
	if c.MaxSize <= 0 {
		return DefaultSize
	}
	return c.MaxSize
}
