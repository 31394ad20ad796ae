// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datefmt

import (
	"fmt"
	"strings"
	"time"
)

// Step is the calendar unit advanced between two labels of an enumerated
// range.
type Step int

const (
	Day Step = iota
	Hour
	Week
	Month
)

var stepNames = [...]string{
	Day:   "day",
	Hour:  "hour",
	Week:  "week",
	Month: "month",
}

// String implements fmt.Stringer.
func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

// ParseStep returns the Step named s, ignoring case. Plural names are
// accepted.
func ParseStep(s string) (Step, error) {
	name := strings.TrimSuffix(strings.ToLower(s), "s")
	for i, n := range stepNames {
		if n == name {
			return Step(i), nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", s)
}

func (s Step) valid() bool {
	return s >= Day && s <= Month
}

// add advances t by n steps. Days, weeks and months are calendar units, so
// a day is not always 24 hours long.
func (s Step) add(t time.Time, n int) time.Time {
	switch s {
	case Hour:
		return t.Add(time.Duration(n) * time.Hour)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Month:
		return t.AddDate(0, n, 0)
	}
	return t.AddDate(0, 0, n)
}

// bounds returns the first point and the exclusive upper bound of the walk
// from begin to end.
//
// For months, begin is moved to the first and end to the second day of its
// month, so the month of end is always included and offset is ignored. For
// the other steps, end is moved by offset steps; an offset of 1 makes end
// itself part of the range.
func (s Step) bounds(begin, end time.Time, offset int) (first, bound time.Time) {
	if s != Month {
		return begin, s.add(end, offset)
	}
	y, m, _ := begin.Date()
	first = time.Date(y, m, 1, begin.Hour(), begin.Minute(), begin.Second(), begin.Nanosecond(), begin.Location())
	y, m, _ = end.Date()
	bound = time.Date(y, m, 2, end.Hour(), end.Minute(), end.Second(), end.Nanosecond(), end.Location())
	return first, bound
}

// enumerate formats every step from begin up to, but excluding, the bound
// computed by Step.bounds. The result is empty, not nil, if begin is not
// before the bound.
func enumerate(f *Formatter, begin, end time.Time, step Step, offset int) []string {
	first, bound := step.bounds(begin, end, offset)
	labels := []string{}
	for i := 0; ; i++ {
		cur := step.add(first, i)
		if !cur.Before(bound) {
			break
		}
		labels = append(labels, f.Format(cur))
	}
	return labels
}
