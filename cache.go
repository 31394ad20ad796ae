// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datefmt

import (
	"log/slog"

	"gonih.org/datefmt/internal/cache"
	"gonih.org/datefmt/internal/logging"
)

// DefaultCacheCapacity is the number of distinct patterns a Cache retains
// unless configured otherwise.
const DefaultCacheCapacity = cache.DefaultSize

// Cache memoizes compiled formatters by pattern.
//
// The first lookup of a pattern compiles it, later lookups return the same
// *Formatter. Entries are never evicted. Once the capacity is reached,
// patterns not yet cached are compiled on every lookup and not retained.
//
// Its zero value is safe to use and has capacity DefaultCacheCapacity. It is
// safe for concurrent use. A Cache must not be copied after first use.
type Cache struct {
	c   cache.Cache[string, *Formatter]
	log *slog.Logger
}

// NewCache returns a Cache holding at most capacity formatters. A capacity
// of zero or less means DefaultCacheCapacity. If logger is nil, nothing is
// logged.
func NewCache(capacity int, logger *slog.Logger) *Cache {
	c := &Cache{log: logger}
	c.c.MaxSize = int64(capacity)
	return c
}

// Get returns the formatter for pattern, compiling it on first use. It
// returns an error matching ErrInvalidPattern if pattern is empty or
// malformed. Invalid patterns are never cached.
func (c *Cache) Get(pattern string) (*Formatter, error) {
	if pattern == "" {
		return nil, &PatternError{Message: "empty pattern"}
	}
	f, stored, err := c.c.Get(pattern, NewFormatter)
	if err != nil {
		return nil, err
	}
	if !stored {
		c.logger().Debug("formatter cache full, pattern not retained",
			logging.Pattern(pattern),
			logging.Int("capacity", c.c.Cap()))
	}
	return f, nil
}

// Cached reports whether a formatter for pattern is retained.
func (c *Cache) Cached(pattern string) bool {
	_, ok := c.c.Load(pattern)
	return ok
}

// Len returns the number of retained formatters.
func (c *Cache) Len() int {
	return c.c.Len()
}

// Cap returns the maximum number of retained formatters.
func (c *Cache) Cap() int {
	return c.c.Cap()
}

func (c *Cache) logger() *slog.Logger {
	if c.log == nil {
		return logging.Discard()
	}
	return c.log
}
