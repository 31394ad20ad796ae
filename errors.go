// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datefmt

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPattern is matched by every error returned for an empty or
	// malformed pattern. Use errors.As with a *PatternError for details.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrParse is matched by every error returned for text that does not
	// conform to a pattern. Use errors.As with a *ParseError for details.
	ErrParse = errors.New("cannot parse")
)

// PatternError describes a pattern that cannot be compiled.
type PatternError struct {
	Pattern string
	// Offset is the byte offset in Pattern at which compiling failed.
	Offset  int
	Message string
}

// Error returns the string representation of a PatternError.
func (e *PatternError) Error() string {
	if e.Pattern == "" {
		return "invalid pattern: " + e.Message
	}
	return fmt.Sprintf("invalid pattern %q at offset %d: %s", e.Pattern, e.Offset, e.Message)
}

// Is reports whether target is ErrInvalidPattern.
func (e *PatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// ParseError describes a problem parsing a time string.
type ParseError struct {
	Pattern     string
	Value       string
	PatternElem string
	ValueElem   string
	Message     string
}

// Error returns the string representation of a ParseError.
func (e *ParseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("parsing time %q as %q: cannot parse %q as %q", e.Value, e.Pattern, e.ValueElem, e.PatternElem)
	}
	return fmt.Sprintf("parsing time %q: %s", e.Value, e.Message)
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
