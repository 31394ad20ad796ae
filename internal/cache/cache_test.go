// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type box struct{ s string }

func newBox(s string) (*box, error) {
	return &box{s: s}, nil
}

func TestGetMemoizes(t *testing.T) {
	var c Cache[string, *box]

	first, stored, err := c.Get("a", newBox)
	require.NoError(t, err)
	assert.True(t, stored)

	calls := 0
	second, stored, err := c.Get("a", func(s string) (*box, error) {
		calls++
		return newBox(s)
	})
	require.NoError(t, err)
	assert.True(t, stored)
	assert.Same(t, first, second)
	assert.Zero(t, calls, "fill called on a hit")
	assert.Equal(t, 1, c.Len())
}

func TestGetFillError(t *testing.T) {
	var c Cache[string, *box]
	boom := errors.New("boom")

	_, stored, err := c.Get("a", func(string) (*box, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, stored)
	assert.Zero(t, c.Len())

	_, ok := c.Load("a")
	assert.False(t, ok)
}

func TestGetFull(t *testing.T) {
	c := Cache[string, *box]{MaxSize: 3}
	for i := 0; i < 3; i++ {
		_, stored, err := c.Get(strconv.Itoa(i), newBox)
		require.NoError(t, err)
		require.True(t, stored)
	}
	require.True(t, c.Full())

	v1, stored, err := c.Get("overflow", newBox)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.Equal(t, "overflow", v1.s)

	v2, stored, err := c.Get("overflow", newBox)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.NotSame(t, v1, v2)
	assert.Equal(t, 3, c.Len())

	// cached elements are still served
	v, stored, err := c.Get("1", newBox)
	require.NoError(t, err)
	assert.True(t, stored)
	assert.Equal(t, "1", v.s)
}

func TestDefaultSize(t *testing.T) {
	var c Cache[int, int]
	assert.Equal(t, DefaultSize, c.Cap())
	for i := 0; i < DefaultSize+10; i++ {
		v, _, err := c.Get(i, func(k int) (int, error) { return k * 2, nil })
		require.NoError(t, err)
		require.Equal(t, i*2, v)
	}
	assert.Equal(t, DefaultSize, c.Len())
	_, ok := c.Load(DefaultSize)
	assert.False(t, ok)
}

// TestGetConcurrentSameKey checks that all goroutines racing on one key end
// up with the same element.
func TestGetConcurrentSameKey(t *testing.T) {
	var (
		c     Cache[string, *box]
		fills atomic.Int64
		wg    sync.WaitGroup
	)
	const N = 64
	got := make([]*box, N)
	start := make(chan struct{})
	for i := 0; i < N; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			v, stored, err := c.Get("k", func(s string) (*box, error) {
				fills.Add(1)
				return newBox(s)
			})
			assert.NoError(t, err)
			assert.True(t, stored)
			got[i] = v
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 1; i < N; i++ {
		assert.Same(t, got[0], got[i], "goroutine %d", i)
	}
	assert.GreaterOrEqual(t, fills.Load(), int64(1))
	assert.Equal(t, 1, c.Len())
}

// TestGetConcurrentBound checks that racing inserts of distinct keys never
// push the cache beyond its maximum size.
func TestGetConcurrentBound(t *testing.T) {
	c := Cache[int, int]{MaxSize: 50}
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := g*1000 + i
				v, _, err := c.Get(k, func(k int) (int, error) { return k + 1, nil })
				assert.NoError(t, err)
				assert.Equal(t, k+1, v)
				assert.LessOrEqual(t, c.Len(), 50)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
	n := 0
	c.m.Range(func(any, any) bool {
		n++
		return true
	})
	assert.Equal(t, 50, n)
}
