// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datefmt

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"gonih.org/datefmt/internal/logging"
)

// Service formats, parses and computes calendar boundaries in one location,
// sharing one formatter cache between all calls.
//
// A Service is meant to be constructed once at process start and passed to
// whoever needs it. It is safe for concurrent use.
type Service struct {
	cache *Cache
	loc   *time.Location
	clock clockwork.Clock
	log   *slog.Logger
}

type options struct {
	cache    *Cache
	capacity int
	loc      *time.Location
	clock    clockwork.Clock
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*options)

// WithCache makes the Service use c, so that several services can share
// their formatters. It takes precedence over WithCapacity.
func WithCache(c *Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithCapacity sets the capacity of the formatter cache created for the
// Service. The default is DefaultCacheCapacity.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithLocation sets the location calendar fields are computed in. The
// default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

// WithClock sets the clock used by the operations relative to the current
// time. The default is the system clock.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the logger of the Service and of the cache it creates.
// The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// NewService returns a Service configured by opts.
func NewService(opts ...Option) *Service {
	o := options{
		loc:   time.Local,
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logging.Discard()
	}
	if o.loc == nil {
		o.loc = time.Local
	}
	if o.clock == nil {
		o.clock = clockwork.NewRealClock()
	}
	if o.cache == nil {
		o.cache = NewCache(o.capacity, o.log)
	}
	return &Service{
		cache: o.cache,
		loc:   o.loc,
		clock: o.clock,
		log:   o.log,
	}
}

// Cache returns the formatter cache of s.
func (s *Service) Cache() *Cache {
	return s.cache
}

// Location returns the location calendar fields are computed in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Now returns the current time in the location of s.
func (s *Service) Now() time.Time {
	return s.clock.Now().In(s.loc)
}

// Format formats t, converted to the location of s, according to pattern.
func (s *Service) Format(t time.Time, pattern string) (string, error) {
	f, err := s.cache.Get(pattern)
	if err != nil {
		return "", err
	}
	return f.Format(t.In(s.loc)), nil
}

// ParseDate parses text according to pattern. Unless the pattern contains
// a zone offset, the result is in the location of s.
func (s *Service) ParseDate(text, pattern string) (time.Time, error) {
	f, err := s.cache.Get(pattern)
	if err != nil {
		return time.Time{}, err
	}
	return f.ParseInLocation(text, s.loc)
}

// formatFixed formats t with one of the predefined patterns, which always
// compile.
func (s *Service) formatFixed(t time.Time, pattern string) string {
	str, err := s.Format(t, pattern)
	if err != nil {
		panic(fmt.Sprintf("datefmt: predefined pattern %q: %v", pattern, err))
	}
	return str
}

// FormatFull formats t as "yyyy-MM-dd HH:mm:ss".
func (s *Service) FormatFull(t time.Time) string {
	return s.formatFixed(t, PatternFull)
}

// FormatDateOnly formats t as "yyyy-MM-dd".
func (s *Service) FormatDateOnly(t time.Time) string {
	return s.formatFixed(t, PatternDateOnly)
}

// FormatMonthDayHourMinute formats t as "MM-dd HH:mm".
func (s *Service) FormatMonthDayHourMinute(t time.Time) string {
	return s.formatFixed(t, PatternMonthDayHourMinute)
}

// StartOfDay returns midnight of the day of t in the location of s.
func (s *Service) StartOfDay(t time.Time) time.Time {
	return StartOfDay(t.In(s.loc))
}

// EndOfDay returns 23:59:59.999 of the day of t in the location of s.
func (s *Service) EndOfDay(t time.Time) time.Time {
	return EndOfDay(t.In(s.loc))
}

// StartOfWeek returns midnight of the Monday of the current week.
func (s *Service) StartOfWeek() time.Time {
	return StartOfWeek(s.Now())
}

// StartOfMonth returns midnight of the first day of the current month.
func (s *Service) StartOfMonth() time.Time {
	return StartOfMonth(s.Now())
}

// StartOfYear returns midnight of January 1st of the current year.
func (s *Service) StartOfYear() time.Time {
	return StartOfYear(s.Now())
}

// WeekStartOf is like StartOfWeek, but for the week of t.
func (s *Service) WeekStartOf(t time.Time) time.Time {
	return StartOfWeek(t.In(s.loc))
}

// MonthStartOf is like StartOfMonth, but for the month of t.
func (s *Service) MonthStartOf(t time.Time) time.Time {
	return StartOfMonth(t.In(s.loc))
}

// YearStartOf is like StartOfYear, but for the year of t.
func (s *Service) YearStartOf(t time.Time) time.Time {
	return StartOfYear(t.In(s.loc))
}

// ZeroPointString returns the start of the day of t, formatted as
// "yyyy-MM-dd HH:mm:ss".
func (s *Service) ZeroPointString(t time.Time) string {
	return s.FormatFull(s.StartOfDay(t))
}

// LastPointString returns the end of the day of t, formatted as
// "yyyy-MM-dd HH:mm:ss".
func (s *Service) LastPointString(t time.Time) string {
	return s.FormatFull(s.EndOfDay(t))
}

// ZeroPointEpochMillis returns the start of the day of t in milliseconds
// since the Unix epoch.
func (s *Service) ZeroPointEpochMillis(t time.Time) int64 {
	return s.StartOfDay(t).UnixMilli()
}

// LastPointEpochMillis returns the end of the day of t in milliseconds
// since the Unix epoch.
func (s *Service) LastPointEpochMillis(t time.Time) int64 {
	return s.EndOfDay(t).UnixMilli()
}

// AuditNow returns the current time truncated to the minute, as it reads
// when formatted with PatternDateHourMinute.
func (s *Service) AuditNow() time.Time {
	now := s.Now()
	year, month, day := now.Date()
	return time.Date(year, month, day, now.Hour(), now.Minute(), 0, 0, s.loc)
}

// Enumerate returns the labels of the range from begin to end, formatted
// according to pattern, one per step. begin and end are converted to the
// location of s first.
//
// The walk starts at begin and stops before a bound derived from end: for
// Day, Hour and Week the bound is end moved by offset steps, so end is
// excluded unless offset is positive. For Month, begin is moved to the first
// and end to the second day of their months and offset is ignored, so every
// month touched by the range is included. If begin is not before the bound,
// the result is empty.
func (s *Service) Enumerate(begin, end time.Time, step Step, offset int, pattern string) ([]string, error) {
	if !step.valid() {
		return nil, fmt.Errorf("datefmt: invalid step %v", step)
	}
	f, err := s.cache.Get(pattern)
	if err != nil {
		return nil, err
	}
	labels := enumerate(f, begin.In(s.loc), end.In(s.loc), step, offset)
	s.log.Debug("enumerated range",
		slog.String("step", step.String()),
		logging.Pattern(pattern),
		logging.Int("labels", len(labels)))
	return labels, nil
}

// EnumerateDays enumerates the days from begin to end. See Enumerate.
func (s *Service) EnumerateDays(begin, end time.Time, offset int, pattern string) ([]string, error) {
	return s.Enumerate(begin, end, Day, offset, pattern)
}

// EnumerateHours enumerates the hours from begin to end. See Enumerate.
func (s *Service) EnumerateHours(begin, end time.Time, offset int, pattern string) ([]string, error) {
	return s.Enumerate(begin, end, Hour, offset, pattern)
}

// EnumerateWeeks enumerates the weeks from begin to end. See Enumerate.
func (s *Service) EnumerateWeeks(begin, end time.Time, offset int, pattern string) ([]string, error) {
	return s.Enumerate(begin, end, Week, offset, pattern)
}

// EnumerateMonths enumerates the months from begin to end. See Enumerate.
func (s *Service) EnumerateMonths(begin, end time.Time, pattern string) ([]string, error) {
	return s.Enumerate(begin, end, Month, 0, pattern)
}
