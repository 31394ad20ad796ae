// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datefmt

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCacheGet(t *testing.T) {
	var c Cache
	f1, err := c.Get(PatternFull)
	if err != nil {
		t.Fatalf("Get(%q) = _, %v, want <nil>", PatternFull, err)
	}
	f2, err := c.Get(PatternFull)
	if err != nil {
		t.Fatalf("Get(%q) = _, %v, want <nil>", PatternFull, err)
	}
	if f1 != f2 {
		t.Errorf("Get(%q) returned different formatters %p and %p", PatternFull, f1, f2)
	}
	if !c.Cached(PatternFull) {
		t.Errorf("Cached(%q) = false, want true", PatternFull)
	}
	if got := c.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
	if got := c.Cap(); got != DefaultCacheCapacity {
		t.Errorf("Cap() = %d, want %d", got, DefaultCacheCapacity)
	}
}

func TestCacheInvalid(t *testing.T) {
	var c Cache
	for _, p := range []string{"", "yyyy-MM-dd b", "'open", "[HH]"} {
		if _, err := c.Get(p); !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("Get(%q) = _, %v, want ErrInvalidPattern", p, err)
		}
		if c.Cached(p) {
			t.Errorf("Cached(%q) = true, want false", p)
		}
	}
	if got := c.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestCacheFull(t *testing.T) {
	tm := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c := NewCache(3, nil)
	for i := 0; i < 3; i++ {
		if _, err := c.Get(fmt.Sprintf("'p%d' yyyy", i)); err != nil {
			t.Fatal(err)
		}
	}
	const overflow = "'p3' yyyy"
	f1, err := c.Get(overflow)
	if err != nil {
		t.Fatalf("Get(%q) = _, %v, want <nil>", overflow, err)
	}
	if got, want := f1.Format(tm), "p3 2024"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
	f2, err := c.Get(overflow)
	if err != nil {
		t.Fatalf("Get(%q) = _, %v, want <nil>", overflow, err)
	}
	if f1 == f2 {
		t.Errorf("Get(%q) returned the same formatter twice, want a fresh one", overflow)
	}
	if c.Cached(overflow) {
		t.Errorf("Cached(%q) = true, want false", overflow)
	}
	if got := c.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	// Patterns cached before the cache filled up are still shared.
	a, _ := c.Get("'p0' yyyy")
	b, _ := c.Get("'p0' yyyy")
	if a != b {
		t.Errorf("Get returned different formatters for a cached pattern")
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	tm := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	var c Cache
	for i := 0; i <= DefaultCacheCapacity; i++ {
		p := fmt.Sprintf("'p%d' yyyy", i)
		f, err := c.Get(p)
		if err != nil {
			t.Fatalf("Get(%q) = _, %v, want <nil>", p, err)
		}
		if got, want := f.Format(tm), fmt.Sprintf("p%d 2024", i); got != want {
			t.Fatalf("Format = %q, want %q", got, want)
		}
	}
	if got := c.Len(); got != DefaultCacheCapacity {
		t.Errorf("Len() = %d, want %d", got, DefaultCacheCapacity)
	}
	if last := fmt.Sprintf("'p%d' yyyy", DefaultCacheCapacity); c.Cached(last) {
		t.Errorf("Cached(%q) = true, want false", last)
	}
}

func TestCacheConcurrent(t *testing.T) {
	const (
		capacity   = 50
		patterns   = 100
		goroutines = 16
	)
	c := NewCache(capacity, nil)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < patterns; i++ {
				if _, err := c.Get(fmt.Sprintf("'p%d' HH:mm", (i+g)%patterns)); err != nil {
					t.Error(err)
					return
				}
				if n := c.Len(); n > capacity {
					t.Errorf("Len() = %d, want at most %d", n, capacity)
				}
			}
		}(g)
	}
	wg.Wait()

	for i := 0; i < patterns; i++ {
		p := fmt.Sprintf("'p%d' HH:mm", i)
		f1, _ := c.Get(p)
		f2, _ := c.Get(p)
		if c.Cached(p) != (f1 == f2) {
			t.Errorf("Cached(%q) = %v, but Get returned the same formatter: %v", p, c.Cached(p), f1 == f2)
		}
	}
	if got := c.Len(); got != capacity {
		t.Errorf("Len() = %d, want %d", got, capacity)
	}
}

func TestCacheLogsOverflow(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := NewCache(1, logger)
	c.Get("yyyy")
	if buf.Len() != 0 {
		t.Errorf("Get logged %q for a cached pattern, want nothing", buf.String())
	}
	c.Get("MM")
	if got := buf.String(); !strings.Contains(got, "pattern not retained") || !strings.Contains(got, "pattern=MM") {
		t.Errorf("Get logged %q, want overflow message for MM", got)
	}
}
