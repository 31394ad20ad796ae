// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datefmt

import (
	"testing"
	"time"
)

func TestYearDayDate(t *testing.T) {
	for _, year := range []int{1900, 2000, 2023, 2024} {
		d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		for ; d.Year() == year; d = d.AddDate(0, 0, 1) {
			m, day, ok := yearDayDate(year, d.YearDay())
			if !ok || m != d.Month() || day != d.Day() {
				t.Errorf("yearDayDate(%d, %d) = %v, %d, %v, want %v, %d, true", year, d.YearDay(), m, day, ok, d.Month(), d.Day())
			}
		}
	}
	tcs := []struct {
		year, yday int
	}{
		{2023, 0},
		{2023, 366},
		{2024, 367},
		{2024, -1},
	}
	for _, tc := range tcs {
		if m, d, ok := yearDayDate(tc.year, tc.yday); ok {
			t.Errorf("yearDayDate(%d, %d) = %v, %d, true, want false", tc.year, tc.yday, m, d)
		}
	}
}

func TestISOWeekStart(t *testing.T) {
	for year := 1999; year <= 2030; year++ {
		for week := 1; week <= 52; week++ {
			d := isoWeekStart(year, week)
			if d.Weekday() != time.Monday {
				t.Errorf("isoWeekStart(%d, %d) = %v, a %v", year, week, d, d.Weekday())
			}
			if y, w := d.ISOWeek(); y != year || w != week {
				t.Errorf("isoWeekStart(%d, %d) = %v, which is in week %d-W%02d", year, week, d, y, w)
			}
		}
	}
}

func TestDaysIn(t *testing.T) {
	tcs := []struct {
		month time.Month
		year  int
		want  int
	}{
		{time.January, 2023, 31},
		{time.February, 2023, 28},
		{time.February, 2024, 29},
		{time.February, 1900, 28},
		{time.February, 2000, 29},
		{time.April, 2024, 30},
		{time.December, 2024, 31},
		{0, 2024, 0},
		{13, 2024, 0},
	}
	for _, tc := range tcs {
		if got := daysIn(tc.month, tc.year); got != tc.want {
			t.Errorf("daysIn(%v, %d) = %d, want %d", tc.month, tc.year, got, tc.want)
		}
	}
}

func TestBoundaries(t *testing.T) {
	cest := time.FixedZone("CEST", 2*3600)
	tcs := []struct {
		name string
		f    func(time.Time) time.Time
		in   time.Time
		want time.Time
	}{
		{"StartOfDay", StartOfDay, time.Date(2024, 3, 15, 13, 45, 12, 500, cest), time.Date(2024, 3, 15, 0, 0, 0, 0, cest)},
		{"StartOfDay", StartOfDay, time.Date(2024, 3, 15, 0, 0, 0, 0, cest), time.Date(2024, 3, 15, 0, 0, 0, 0, cest)},
		{"EndOfDay", EndOfDay, time.Date(2024, 3, 15, 13, 45, 12, 500, cest), time.Date(2024, 3, 15, 23, 59, 59, 999000000, cest)},
		{"EndOfDay", EndOfDay, time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC), time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.UTC)},
		{"StartOfWeek", StartOfWeek, time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		{"StartOfWeek", StartOfWeek, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		{"StartOfWeek", StartOfWeek, time.Date(2024, 3, 17, 23, 0, 0, 0, time.UTC), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		{"StartOfWeek", StartOfWeek, time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"StartOfWeek", StartOfWeek, time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC), time.Date(2022, 12, 26, 0, 0, 0, 0, time.UTC)},
		{"StartOfMonth", StartOfMonth, time.Date(2024, 2, 29, 18, 0, 0, 0, cest), time.Date(2024, 2, 1, 0, 0, 0, 0, cest)},
		{"StartOfYear", StartOfYear, time.Date(2024, 7, 4, 18, 0, 0, 0, cest), time.Date(2024, 1, 1, 0, 0, 0, 0, cest)},
		{"StartOfYear", StartOfYear, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tcs {
		got := tc.f(tc.in)
		if !got.Equal(tc.want) || got.Location() != tc.want.Location() {
			t.Errorf("%s(%v) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

// TestBoundariesDST checks that boundaries are computed on calendar fields
// across daylight saving transitions.
func TestBoundariesDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("time zone database not available: %v", err)
	}
	// Clocks went forward on 2024-03-31, so that day is 23 hours long.
	in := time.Date(2024, 3, 31, 12, 0, 0, 0, loc)
	start, end := StartOfDay(in), EndOfDay(in)
	if got, want := end.Sub(start), 23*time.Hour-time.Millisecond; got != want {
		t.Errorf("EndOfDay - StartOfDay = %v, want %v", got, want)
	}
	if h, m, s := start.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("StartOfDay(%v) = %v, want midnight", in, start)
	}
	week := StartOfWeek(time.Date(2024, 4, 2, 12, 0, 0, 0, loc))
	if want := time.Date(2024, 4, 1, 0, 0, 0, 0, loc); !week.Equal(want) {
		t.Errorf("StartOfWeek = %v, want %v", week, want)
	}
}

// TestDayOrdering checks that StartOfDay is never after EndOfDay for the
// same day.
func TestDayOrdering(t *testing.T) {
	d := time.Date(2023, 12, 25, 17, 3, 0, 0, time.UTC)
	for i := 0; i < 800; i++ {
		in := d.Add(time.Duration(i) * 11 * time.Hour)
		start, end := StartOfDay(in), EndOfDay(in)
		if start.After(in) || end.Before(in.Truncate(time.Millisecond)) || !start.Before(end) {
			t.Fatalf("StartOfDay(%v) = %v, EndOfDay = %v", in, start, end)
		}
		if start.YearDay() != end.YearDay() {
			t.Fatalf("StartOfDay(%v) and EndOfDay are on different days: %v, %v", in, start, end)
		}
		if w := StartOfWeek(in); w.Weekday() != time.Monday || w.After(start) || start.Sub(w) >= 7*24*time.Hour {
			t.Fatalf("StartOfWeek(%v) = %v", in, w)
		}
	}
}
