// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datefmt

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// These are predefined patterns for use in [Service.Format] and
// [Service.ParseDate].
//
// A pattern is made of letters, where a run of the same letter is one field
// and the length of the run selects its width or style. The recognized
// letters are
//
//	Year: "y" "yy" "yyyy" (also "u"), ISO week-based year: "Y" "YYYY"
//	Month: "M" "MM" "MMM" "MMMM"
//	Day of the month: "d" "dd", day of the year: "D" "DD" "DDD"
//	ISO week: "w" "ww", day of the week: "E" "EEE" "EEEE"
//	Hour: "H" "HH" (0-23), "k" "kk" (1-24), "h" "hh" (1-12), "K" "KK" (0-11)
//	AM/PM: "a", minute: "m" "mm", second: "s" "ss"
//	Fraction of a second: "S" through "SSSSSSSSS"
//	Zone offset: "Z" (+0700), "X" "XX" "XXX" (Z for UTC), "x" "xx" "xxx"
//
// Text in single quotes is copied verbatim, and two single quotes produce
// one. Any other letter, as well as the characters '#', '{', '}', '[' and
// ']', is reserved and makes the pattern invalid. All other characters are
// literals.
const (
	PatternFull               = "yyyy-MM-dd HH:mm:ss"
	PatternDateOnly           = "yyyy-MM-dd"
	PatternMonthDayHourMinute = "MM-dd HH:mm"
	PatternDateHourMinute     = "yyyy-MM-dd HH:mm"
	PatternYearMonth          = "yyyy-MM"
	PatternRFC3339Milli       = "yyyy-MM-dd'T'HH:mm:ss.SSSXXX"
)

var longDayNames = []string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

var shortDayNames = []string{
	"Sun",
	"Mon",
	"Tue",
	"Wed",
	"Thu",
	"Fri",
	"Sat",
}

var shortMonthNames = []string{
	"Jan",
	"Feb",
	"Mar",
	"Apr",
	"May",
	"Jun",
	"Jul",
	"Aug",
	"Sep",
	"Oct",
	"Nov",
	"Dec",
}

var longMonthNames = []string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

var meridiems = []string{"AM", "PM"}

// inst is a single component of a pattern, either a literal string, or a
// formatting operator repeated n times.
type inst struct {
	op     fmtOp
	n      int
	letter byte
	lit    string
}

// String implements fmt.Stringer. It returns the pattern text the
// instruction was compiled from.
func (i inst) String() string {
	if i.op == opLiteral {
		return i.lit
	}
	return strings.Repeat(string(i.letter), i.n)
}

// fmtOp is a formatting operator.
type fmtOp int

const (
	opLiteral fmtOp = iota

	opYear
	opWeekYear
	opMonth
	opDay
	opYearDay
	opISOWeek
	opWeekDay
	opAMPM
	opHour
	opHour24
	opHour12
	opHour11
	opMinute
	opSecond
	opFraction
	opOffset
	opOffsetZ
	opOffsetNoZ

	opInvalid
)

// letterOp returns the operator for a pattern letter and the maximum number
// of times the letter may be repeated. It returns opInvalid for reserved
// letters.
func letterOp(c byte) (op fmtOp, max int) {
	switch c {
	case 'y', 'u':
		return opYear, 9
	case 'Y':
		return opWeekYear, 9
	case 'M':
		return opMonth, 4
	case 'd':
		return opDay, 2
	case 'D':
		return opYearDay, 3
	case 'w':
		return opISOWeek, 2
	case 'E':
		return opWeekDay, 4
	case 'a':
		return opAMPM, 1
	case 'H':
		return opHour, 2
	case 'k':
		return opHour24, 2
	case 'h':
		return opHour12, 2
	case 'K':
		return opHour11, 2
	case 'm':
		return opMinute, 2
	case 's':
		return opSecond, 2
	case 'S':
		return opFraction, 9
	case 'Z':
		return opOffset, 3
	case 'X':
		return opOffsetZ, 3
	case 'x':
		return opOffsetNoZ, 3
	}
	return opInvalid, 0
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// compile parses pattern into a set of instructions to parse or format
// according to it.
func compile(pattern string) ([]inst, error) {
	if pattern == "" {
		return nil, &PatternError{Message: "empty pattern"}
	}
	var (
		prog []inst
		lit  []byte
	)
	flush := func() {
		if len(lit) > 0 {
			prog = append(prog, inst{lit: string(lit)})
			lit = lit[:0]
		}
	}
	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '\'':
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				lit = append(lit, '\'')
				i += 2
				continue
			}
			j, err := quoted(pattern, i, &lit)
			if err != nil {
				return nil, err
			}
			i = j
		case isLetter(c):
			n := 1
			for i+n < len(pattern) && pattern[i+n] == c {
				n++
			}
			op, max := letterOp(c)
			if op == opInvalid {
				return nil, &PatternError{Pattern: pattern, Offset: i, Message: "unknown pattern letter " + strconv.QuoteRune(rune(c))}
			}
			if n > max {
				return nil, &PatternError{Pattern: pattern, Offset: i, Message: "too many pattern letters " + strconv.QuoteRune(rune(c))}
			}
			flush()
			prog = append(prog, inst{op: op, n: n, letter: c})
			i += n
		case strings.IndexByte("#{}[]", c) >= 0:
			return nil, &PatternError{Pattern: pattern, Offset: i, Message: "reserved character " + strconv.QuoteRune(rune(c))}
		default:
			lit = append(lit, c)
			i++
		}
	}
	flush()
	return prog, nil
}

// quoted appends the quoted literal starting at pattern[i] to lit and
// returns the offset just after its closing quote.
func quoted(pattern string, i int, lit *[]byte) (int, error) {
	j := i + 1
	for {
		k := strings.IndexByte(pattern[j:], '\'')
		if k < 0 {
			return 0, &PatternError{Pattern: pattern, Offset: i, Message: "unterminated quote"}
		}
		*lit = append(*lit, pattern[j:j+k]...)
		j += k + 1
		if j < len(pattern) && pattern[j] == '\'' {
			*lit = append(*lit, '\'')
			j++
			continue
		}
		return j, nil
	}
}

// Formatter converts between time.Time values and strings according to one
// fixed pattern. A Formatter is immutable and safe for concurrent use.
type Formatter struct {
	pattern string
	prog    []inst
}

// NewFormatter compiles pattern. It returns an error matching
// ErrInvalidPattern if the pattern is empty or malformed.
func NewFormatter(pattern string) (*Formatter, error) {
	prog, err := compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Formatter{pattern: pattern, prog: prog}, nil
}

// Pattern returns the pattern f was compiled from.
func (f *Formatter) Pattern() string {
	return f.pattern
}

// Format returns a textual representation of t formatted according to the
// pattern of f. The calendar fields are those of t in its own location.
func (f *Formatter) Format(t time.Time) string {
	const bufSize = 64
	var b []byte
	max := len(f.pattern) + 10
	if max < bufSize {
		var buf [bufSize]byte
		b = buf[:0]
	} else {
		b = make([]byte, 0, max)
	}
	return string(f.AppendFormat(b, t))
}

// AppendFormat is like Format but appends the textual representation to b and
// returns the extended buffer.
func (f *Formatter) AppendFormat(b []byte, t time.Time) []byte {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	for _, i := range f.prog {
		switch i.op {
		case opLiteral:
			b = append(b, i.lit...)
		case opYear:
			b = appendYear(b, year, i.n)
		case opWeekYear:
			y, _ := t.ISOWeek()
			b = appendYear(b, y, i.n)
		case opMonth:
			switch i.n {
			case 1, 2:
				b = appendInt(b, int(month), i.n)
			case 3:
				b = append(b, month.String()[:3]...)
			default:
				b = append(b, month.String()...)
			}
		case opDay:
			b = appendInt(b, day, i.n)
		case opYearDay:
			b = appendInt(b, t.YearDay(), i.n)
		case opISOWeek:
			_, w := t.ISOWeek()
			b = appendInt(b, w, i.n)
		case opWeekDay:
			if i.n == 4 {
				b = append(b, t.Weekday().String()...)
			} else {
				b = append(b, t.Weekday().String()[:3]...)
			}
		case opAMPM:
			b = append(b, meridiems[hour/12]...)
		case opHour:
			b = appendInt(b, hour, i.n)
		case opHour24:
			h := hour
			if h == 0 {
				h = 24
			}
			b = appendInt(b, h, i.n)
		case opHour12:
			h := hour % 12
			if h == 0 {
				h = 12
			}
			b = appendInt(b, h, i.n)
		case opHour11:
			b = appendInt(b, hour%12, i.n)
		case opMinute:
			b = appendInt(b, min, i.n)
		case opSecond:
			b = appendInt(b, sec, i.n)
		case opFraction:
			b = appendInt(b, t.Nanosecond()/pow10[9-i.n], i.n)
		case opOffset, opOffsetZ, opOffsetNoZ:
			_, off := t.Zone()
			b = appendOffset(b, off, i)
		default:
			panic(errors.New("invalid inst " + i.String()))
		}
	}
	return b
}

var pow10 = [...]int{1, 10, 100, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9}

// appendYear appends year, either reduced to two digits (n == 2) or padded
// to n digits.
func appendYear(b []byte, year, n int) []byte {
	if n == 2 {
		y := year % 100
		if y < 0 {
			y = -y
		}
		return appendInt(b, y, 2)
	}
	return appendInt(b, year, n)
}

// appendInt appends the decimal form of x to b, padded with zeros to width
// digits.
func appendInt(b []byte, x int, width int) []byte {
	u := uint(x)
	if x < 0 {
		b = append(b, '-')
		u = uint(-x)
	}

	var buf [20]byte
	i := len(buf)
	for u >= 10 {
		i--
		q := u / 10
		buf[i] = byte('0' + u - q*10)
		u = q
	}
	i--
	buf[i] = byte('0' + u)

	for w := len(buf) - i; w < width; w++ {
		b = append(b, '0')
	}
	return append(b, buf[i:]...)
}

// appendOffset appends the zone offset off, in seconds east of UTC, in the
// style selected by i.
func appendOffset(b []byte, off int, i inst) []byte {
	if i.op == opOffsetZ && off == 0 {
		return append(b, 'Z')
	}
	sign := byte('+')
	if off < 0 {
		sign = '-'
		off = -off
	}
	hh, mm := off/3600, off/60%60
	b = append(b, sign)
	b = appendInt(b, hh, 2)
	switch {
	case i.op == opOffset:
		b = appendInt(b, mm, 2)
	case i.n == 1:
		if mm != 0 {
			b = appendInt(b, mm, 2)
		}
	case i.n == 2:
		b = appendInt(b, mm, 2)
	default:
		b = append(b, ':')
		b = appendInt(b, mm, 2)
	}
	return b
}

// Parse parses a formatted string and returns the time it represents,
// interpreted in the local time zone unless the pattern has a zone offset.
// See ParseInLocation.
func (f *Formatter) Parse(value string) (time.Time, error) {
	return f.ParseInLocation(value, time.Local)
}

// ParseInLocation parses a formatted string and returns the time it
// represents. The value must match the pattern of f completely, otherwise
// an error matching ErrParse is returned.
//
// Elements omitted from the pattern are assumed to be zero or, when zero is
// impossible, one. Years must be in the range 0000…9999. The day of the week
// is checked for syntax but is otherwise ignored. If the pattern contains a
// zone offset, the result is in a fixed zone with that offset, otherwise it
// is in loc.
//
// For patterns specifying the two-digit year yy, a value NN >= 69 will be
// treated as 19NN and a value NN < 69 will be treated as 20NN.
func (f *Formatter) ParseInLocation(value string, loc *time.Location) (time.Time, error) {
	p := newParser(value)
	var (
		// kept around for error reporting
		apattern, avalue = f.pattern, value

		year     int
		hasYear  bool
		weekYear = -1
		month    = -1
		day      = -1
		yday     = -1
		week     = -1
		weekday  = -1
		hour     int
		hour12   = -1
		pm       = -1
		min      int
		sec      int
		nsec     int
		offset   int
		hasZone  bool
	)

	// Execute the parsing instructions
	for _, i := range f.prog {
		p.setInst(i)
		switch i.op {
		case opLiteral:
			p.accept(i.lit)
		case opYear:
			year, hasYear = p.year(i.n), true
		case opWeekYear:
			weekYear = p.year(i.n)
		case opMonth:
			switch i.n {
			case 1, 2:
				month = p.num(i.n == 2)
				if !p.hasErr && (month < 1 || 12 < month) {
					return time.Time{}, p.err(apattern, avalue, "month out of range")
				}
			case 3:
				month = p.lookup(shortMonthNames) + 1
			default:
				month = p.lookup(longMonthNames) + 1
			}
		case opDay:
			day = p.num(i.n == 2)
		case opYearDay:
			yday = p.getnum(i.n, 3)
		case opISOWeek:
			week = p.num(i.n == 2)
			if !p.hasErr && (week < 1 || 53 < week) {
				return time.Time{}, p.err(apattern, avalue, "week out of range")
			}
		case opWeekDay:
			if i.n == 4 {
				weekday = p.lookup(longDayNames)
			} else {
				weekday = p.lookup(shortDayNames)
			}
		case opAMPM:
			pm = p.lookup(meridiems)
		case opHour, opHour24, opHour12, opHour11:
			h := p.num(i.n == 2)
			if p.hasErr {
				break
			}
			lo, hi := hourRange(i.op)
			if h < lo || hi < h {
				return time.Time{}, p.err(apattern, avalue, "hour out of range")
			}
			switch i.op {
			case opHour:
				hour = h
			case opHour24:
				hour = h % 24
			default:
				hour12 = h % 12
			}
		case opMinute:
			min = p.num(i.n == 2)
			if !p.hasErr && min > 59 {
				return time.Time{}, p.err(apattern, avalue, "minute out of range")
			}
		case opSecond:
			sec = p.num(i.n == 2)
			if !p.hasErr && sec > 59 {
				return time.Time{}, p.err(apattern, avalue, "second out of range")
			}
		case opFraction:
			nsec = p.getnum(i.n, i.n) * pow10[9-i.n]
		case opOffset, opOffsetZ, opOffsetNoZ:
			offset, hasZone = p.offset(i), true
		default:
			panic(errors.New("invalid inst " + i.String()))
		}
		if p.hasErr {
			return time.Time{}, p.err(apattern, avalue, "")
		}
	}
	if len(p.value) > 0 {
		return time.Time{}, p.err(apattern, avalue, "extra text: "+strconv.Quote(p.value))
	}
	p.finish()

	if hour12 >= 0 {
		hour = hour12
		if pm == 1 {
			hour += 12
		}
	}
	if !hasYear && weekYear >= 0 {
		year = weekYear
	}

	// Validate the parsed date
	switch {
	case yday >= 0:
		m, d, ok := yearDayDate(year, yday)
		if !ok {
			return time.Time{}, p.err(apattern, avalue, "day-of-year out of range")
		}
		// If month, day already seen, yday's m, d must match.
		// Otherwise, set them from m, d.
		if month >= 0 && month != int(m) {
			return time.Time{}, p.err(apattern, avalue, "day-of-year does not match month")
		}
		month = int(m)
		if day >= 0 && day != d {
			return time.Time{}, p.err(apattern, avalue, "day-of-year does not match day")
		}
		day = d
	case week >= 0 && month < 0 && day < 0:
		wy := year
		if weekYear >= 0 {
			wy = weekYear
		}
		d := isoWeekStart(wy, week)
		if weekday >= 0 {
			d = d.AddDate(0, 0, (weekday+6)%7)
		}
		if y, w := d.ISOWeek(); y != wy || w != week {
			return time.Time{}, p.err(apattern, avalue, "week out of range")
		}
		var mm time.Month
		year, mm, day = d.Date()
		month = int(mm)
	default:
		if month < 0 {
			month = int(time.January)
		}
		if day < 0 {
			day = 1
		}
	}
	// Validate the day of the month.
	if day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, p.err(apattern, avalue, "day out of range")
	}

	if hasZone {
		loc = fixedZone(offset)
	}
	return time.Date(year, time.Month(month), day, hour, min, sec, nsec, loc), nil
}

// hourRange returns the valid range of the hour field parsed by op.
func hourRange(op fmtOp) (lo, hi int) {
	switch op {
	case opHour24:
		return 1, 24
	case opHour12:
		return 1, 12
	case opHour11:
		return 0, 11
	}
	return 0, 23
}

func fixedZone(offset int) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone("", offset)
}

// match reports whether s1 and s2 match ignoring case.
// It is assumed s1 and s2 are the same length.
func match(s1, s2 string) bool {
	for i := 0; i < len(s1); i++ {
		c1 := s1[i]
		c2 := s2[i]
		if c1 != c2 {
			// Switch to lower-case; 'a'-'A' is known to be a single bit.
			c1 |= 'a' - 'A'
			c2 |= 'a' - 'A'
			if c1 != c2 || c1 < 'a' || c1 > 'z' {
				return false
			}
		}
	}
	return true
}

func isDigit(s string, i int) bool {
	if len(s) <= i {
		return false
	}
	return '0' <= s[i] && s[i] <= '9'
}

type parser struct {
	inst   inst
	hasErr bool
	value  string
	valEl  string
}

func newParser(value string) *parser {
	return &parser{
		value: value,
	}
}

// setInst sets the current instruction and input offset for error reporting.
func (p *parser) setInst(i inst) {
	p.inst = i
	p.valEl = p.value
}

// finish signals that parsing is finished and the parser is only being kept
// around for error reporting.
func (p *parser) finish() {
	p.inst = inst{op: opInvalid}
	p.valEl = ""
}

// parseFailed signals that the parse has failed at the current instruction.
func (p *parser) parseFailed() {
	p.hasErr = true
}

func (p *parser) err(pattern, value, msg string) error {
	// Parts of the input appear in the error message. Cloning them here
	// keeps the input itself from escaping, so the happy path does not
	// allocate.
	v := strings.Clone(value)
	if msg == "" {
		ve := strings.Clone(p.valEl)
		pe := strings.Clone(p.inst.String())
		return &ParseError{
			Pattern:     pattern,
			Value:       v,
			PatternElem: pe,
			ValueElem:   ve,
		}
	}
	return &ParseError{
		Pattern: pattern,
		Value:   v,
		Message: msg,
	}
}

// trimByte skips a run of the given byte.
func (p *parser) trimByte(b byte) {
	for len(p.value) > 0 && p.value[0] == b {
		p.value = p.value[1:]
	}
}

// accept a literal string, treating runs of space characters as equivalent.
func (p *parser) accept(lit string) {
	for len(lit) > 0 {
		if lit[0] == ' ' {
			if p.value != "" && p.value[0] != ' ' {
				p.parseFailed()
				return
			}
			p.trimByte(' ')
			lit = strings.TrimLeft(lit, " ")
			continue
		}
		if p.value == "" || p.value[0] != lit[0] {
			p.parseFailed()
			return
		}
		lit, p.value = lit[1:], p.value[1:]
	}
}

// getnum parses between min and max leading digits as a decimal integer.
func (p *parser) getnum(min, max int) int {
	var n, i int
	for i = 0; i < max && isDigit(p.value, i); i++ {
		n = n*10 + int(p.value[i]-'0')
	}
	if i == 0 || i < min {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	return n
}

// num parses s[:1] or s[:2] (fixed forces s[:2]) as a decimal integer.
func (p *parser) num(fixed bool) int {
	if fixed {
		return p.getnum(2, 2)
	}
	return p.getnum(1, 2)
}

// year parses a year field repeated n times.
func (p *parser) year(n int) int {
	switch {
	case n == 2:
		y := p.getnum(2, 2)
		if y >= 69 { // Unix time starts Dec 31 1969 in some time zones
			return y + 1900
		}
		return y + 2000
	case n <= 4:
		return p.getnum(n, 4)
	}
	return p.getnum(n, n)
}

// offset parses a zone offset in the style selected by i and returns it in
// seconds east of UTC.
func (p *parser) offset(i inst) int {
	if i.op == opOffsetZ && len(p.value) > 0 && p.value[0] == 'Z' {
		p.value = p.value[1:]
		return 0
	}
	if len(p.value) == 0 || (p.value[0] != '+' && p.value[0] != '-') {
		p.parseFailed()
		return 0
	}
	neg := p.value[0] == '-'
	p.value = p.value[1:]

	hh := p.getnum(2, 2)
	var mm int
	switch {
	case i.op == opOffset || i.n == 2:
		mm = p.getnum(2, 2)
	case i.n == 1:
		if isDigit(p.value, 0) {
			mm = p.getnum(2, 2)
		}
	default:
		p.accept(":")
		mm = p.getnum(2, 2)
	}
	if hh > 18 || mm > 59 {
		p.parseFailed()
		return 0
	}
	off := hh*3600 + mm*60
	if neg {
		off = -off
	}
	return off
}

// lookup a value from a table and accept a case-insensitive match.
func (p *parser) lookup(table []string) int {
	for i, v := range table {
		if len(p.value) >= len(v) && match(p.value[0:len(v)], v) {
			p.value = p.value[len(v):]
			return i
		}
	}
	p.parseFailed()
	return 0
}
