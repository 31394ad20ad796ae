// Copyright 2009 The Go Authors.
// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package datefmt formats and parses times using caller-supplied patterns,
// computes calendar boundaries and enumerates labelled ranges of days, hours,
// weeks and months.
//
// Compiling a pattern into a [Formatter] is comparatively expensive, so
// formatters are memoized in a bounded [Cache]. Formatters are immutable and
// shared by all callers. A [Service] ties a cache to a location and a clock
// and provides the convenience operations most callers want:
//
//	svc := datefmt.NewService()
//	s := svc.FormatFull(time.Now())                    // 2024-01-02 15:04:05
//	days, err := svc.EnumerateDays(from, to, 1, "yyyy-MM-dd")
//
// Calendar boundaries are computed on calendar fields, not on durations, so
// they are correct across daylight saving transitions. The week starts on
// Monday.
package datefmt

import (
	"time"
)

// daysBefore[m] counts the number of days in a non-leap year before month m
// begins. There is an entry for m=12, counting the number of days before
// January of next year (365).
var daysBefore = [...]int{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30 + 31,
}

func daysIn(m time.Month, year int) int {
	if m < time.January || m > time.December {
		return 0
	}
	if m == time.February && isLeap(year) {
		return 29
	}
	return daysBefore[m] - daysBefore[m-1]
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// yearDayDate returns the month and day of the yday'th day (1-based) of
// year. ok is false if yday is out of range for year.
func yearDayDate(year, yday int) (month time.Month, day int, ok bool) {
	if isLeap(year) {
		switch {
		case yday == 31+29:
			return time.February, 29, true
		case yday > 31+29:
			// After leap day; pretend it wasn't there.
			yday--
		}
	}
	if yday < 1 || yday > 365 {
		return 0, 0, false
	}

	// Estimate month on assumption that every month has 31 days.
	// The estimate may be too low by at most one month, so adjust.
	m := (yday-1)/31 + 1
	if daysBefore[m] < yday {
		m++
	}
	return time.Month(m), yday - daysBefore[m-1], true
}

// isoWeekStart returns the Monday starting the given ISO week of year, in
// UTC. January 4th always lies in week 1.
func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	return jan4.AddDate(0, 0, (week-1)*7-daysSinceMonday(jan4.Weekday()))
}

// daysSinceMonday returns the number of days between the Monday starting a
// week and wd.
func daysSinceMonday(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// StartOfDay returns midnight (00:00:00.000) of the day of t, in the
// location of t.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last millisecond (23:59:59.999) of the day of t, in
// the location of t.
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// StartOfWeek returns midnight of the Monday of the week of t, in the
// location of t.
func StartOfWeek(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day-daysSinceMonday(t.Weekday()), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight of the first day of the month of t, in the
// location of t.
func StartOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

// StartOfYear returns midnight of January 1st of the year of t, in the
// location of t.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}
