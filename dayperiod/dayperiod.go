// Package dayperiod models named sub-divisions of the 24-hour day, such as
// the conventional AM/PM pair or culture-specific sets like
// morning/noon/afternoon/evening/night. A Period knows its bounds within the
// day and how an absolute hour maps to an "hour within the period" label;
// a Registry resolves which period a clock time belongs to.
//
// All period behavior is data-driven. The offset pair carried by a Period is
// what turns 13:00 into "1 PM" or 00:00 into "12 AM"; alternate cultural
// configurations need different data, never different code.
package dayperiod

import (
	"github.com/go-timeuri/timeuri/civil"
)

// NameFormat selects which of a period's names to use.
type NameFormat int

const (
	LongName NameFormat = iota
	ShortName
	NarrowName
)

// Translator looks up localized text by key, returning "" when the key has
// no translation. A nil Translator falls back to built-in English literals.
type Translator interface {
	Translate(key string) string
}

// Period is one named, possibly wrapping sub-division of the day.
// The zero Period is the invalid sentinel: it contains no time and answers
// every hour-mapping query with -1.
type Period struct {
	code       string
	longName   string
	shortName  string
	narrowName string
	start      civil.TimeOfDay
	end        civil.TimeOfDay
	// offsetFromStart shifts an absolute hour into the period-local count;
	// offsetIfZero re-bases non-positive results (12 turns hour 0 into "12").
	offsetFromStart int
	offsetIfZero    int
}

// New returns a period spanning start..end inclusive. end < start is legal
// and means the period wraps past midnight.
func New(code, long, short, narrow string, start, end civil.TimeOfDay, offsetFromStart, offsetIfZero int) Period {
	return Period{
		code:            code,
		longName:        long,
		shortName:       short,
		narrowName:      narrow,
		start:           start,
		end:             end,
		offsetFromStart: offsetFromStart,
		offsetIfZero:    offsetIfZero,
	}
}

// Code returns the period's unique key, e.g. "am".
func (p Period) Code() string { return p.code }

// Start returns the inclusive lower bound of the period.
func (p Period) Start() civil.TimeOfDay { return p.start }

// End returns the inclusive upper bound of the period.
func (p Period) End() civil.TimeOfDay { return p.end }

// Name returns the period's name in the requested format.
func (p Period) Name(f NameFormat) string {
	switch f {
	case ShortName:
		return p.shortName
	case NarrowName:
		return p.narrowName
	default:
		return p.longName
	}
}

// IsValid reports whether p is a usable period definition.
func (p Period) IsValid() bool {
	return p.code != "" && p.start.IsValid() && p.end.IsValid()
}

// Contains reports whether t falls within the period. For a wrapping period
// membership is [start, 23:59:59.999] plus [00:00:00, end].
func (p Period) Contains(t civil.TimeOfDay) bool {
	if !p.IsValid() || !t.IsValid() {
		return false
	}
	if p.start.Compare(p.end) <= 0 {
		return t.Compare(p.start) >= 0 && t.Compare(p.end) <= 0
	}
	return t.Compare(p.start) >= 0 || t.Compare(p.end) <= 0
}

// hourLabel maps an absolute hour of day to the period-local hour count.
func (p Period) hourLabel(hour int) int {
	h := hour - p.start.Hour + p.offsetFromStart
	for p.offsetIfZero > 0 && h <= 0 {
		h += p.offsetIfZero
	}
	return h
}

// HourInPeriod returns the 1-based hour label for t within the period,
// or -1 if p is invalid or t is not a member.
func (p Period) HourInPeriod(t civil.TimeOfDay) int {
	if !p.Contains(t) {
		return -1
	}
	return p.hourLabel(t.Hour)
}

// Time is the inverse of HourInPeriod: it reconstructs the absolute clock
// time for an hour-in-period label and the remaining components. The second
// return value is false if the resulting time would not be a valid member
// of the period.
func (p Period) Time(hourInPeriod, minute, second, millisecond int) (civil.TimeOfDay, bool) {
	if !p.IsValid() {
		return civil.TimeOfDay{}, false
	}
	if hourInPeriod == p.offsetIfZero && p.offsetIfZero > 0 {
		hourInPeriod = 0
	}
	hour := hourInPeriod + p.start.Hour - p.offsetFromStart
	if p.start.Compare(p.end) > 0 {
		// The period wraps midnight. The direct formula only applies to the
		// portion before midnight; labels outside that window name an hour
		// in the early-morning tail directly.
		lo := p.hourLabel(p.start.Hour)
		hi := p.hourLabel(23)
		if lo > hi {
			lo, hi = hi, lo
		}
		if hourInPeriod < lo || hourInPeriod > hi {
			hour = hourInPeriod
		}
	}
	t := civil.TimeOfDay{Hour: hour, Minute: minute, Second: second, Millisecond: millisecond}
	if !t.IsValid() || !p.Contains(t) {
		return civil.TimeOfDay{}, false
	}
	return t, true
}
