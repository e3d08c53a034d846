// Package datetime provides a date/time value type that models absolute and
// clock time across time zones, UTC offsets and date-only values.
//
// A Time combines a wall-clock reading with a time specification (Spec)
// saying how that reading is anchored: UTC, a fixed offset, a time zone, or
// floating "clock time" resolved against whatever the local zone currently
// is. Conversion between specifications goes through the tzone.Zone
// capability; the computed UTC equivalent is cached on the value.
//
// Formatting and parsing, including the %-token pattern engine and the
// fixed RFC 822 and ISO 8601 formats, live in this package as well.
package datetime

import (
	"time"

	"github.com/go-timeuri/timeuri/civil"
	"github.com/go-timeuri/timeuri/tzone"
)

// nowFunc supplies the current instant; tests substitute a fixed clock.
var nowFunc = time.Now

// SpecKind discriminates the time specification variants.
type SpecKind int

const (
	// SpecInvalid marks a malformed value.
	SpecInvalid SpecKind = iota
	// SpecUTC anchors the wall clock directly to UTC.
	SpecUTC
	// SpecOffsetFromUTC anchors the wall clock at a fixed offset east of UTC.
	SpecOffsetFromUTC
	// SpecTimeZone anchors the wall clock in a time zone.
	SpecTimeZone
	// SpecClockTime is floating local time, resolved against the current
	// system zone whenever a conversion needs an instant.
	SpecClockTime
	// SpecTooEarly marks a well-formed date before the representable range.
	SpecTooEarly
	// SpecTooLate marks a well-formed date after the representable range.
	SpecTooLate
)

// Spec is a time specification: a kind plus its payload (offset seconds for
// SpecOffsetFromUTC, a zone for SpecTimeZone).
type Spec struct {
	kind   SpecKind
	offset int
	zone   tzone.Zone
}

// UTCSpec returns the UTC specification.
func UTCSpec() Spec { return Spec{kind: SpecUTC} }

// OffsetSpec returns a fixed-offset specification, in seconds east of UTC.
func OffsetSpec(seconds int) Spec { return Spec{kind: SpecOffsetFromUTC, offset: seconds} }

// ZoneSpec returns a time-zone specification. A nil zone yields the invalid
// specification.
func ZoneSpec(z tzone.Zone) Spec {
	if z == nil {
		return Spec{}
	}
	return Spec{kind: SpecTimeZone, zone: z}
}

// LocalSpec returns a time-zone specification for the current system zone.
func LocalSpec() Spec { return ZoneSpec(tzone.Local()) }

// ClockSpec returns the floating clock-time specification.
func ClockSpec() Spec { return Spec{kind: SpecClockTime} }

// Kind returns the specification variant.
func (s Spec) Kind() SpecKind { return s.kind }

// Offset returns the offset in seconds for SpecOffsetFromUTC, else 0.
func (s Spec) Offset() int { return s.offset }

// Zone returns the zone for SpecTimeZone, else nil.
func (s Spec) Zone() tzone.Zone { return s.zone }

// IsValid reports whether s is one of the four usable specifications.
func (s Spec) IsValid() bool {
	switch s.kind {
	case SpecUTC, SpecOffsetFromUTC, SpecTimeZone, SpecClockTime:
		return true
	default:
		return false
	}
}

// Equal reports whether two specifications denote the same anchoring:
// same kind, and same offset or zone where the kind carries one.
func (s Spec) Equal(other Spec) bool {
	if s.kind != other.kind {
		return false
	}
	switch s.kind {
	case SpecTimeZone:
		return tzone.Same(s.zone, other.zone)
	case SpecOffsetFromUTC:
		return s.offset == other.offset
	default:
		return true
	}
}

// utcCache memoizes the UTC equivalent of a value's wall clock. It is shared
// between copies of a value and filled lazily; it is not safe to fill from
// multiple goroutines at once, matching the package's ownership contract.
type utcCache struct {
	valid bool
	utc   civil.DateTime
	// zone records which local zone produced the cached value when the
	// owning Time is clock time, so a system zone change invalidates it.
	zone tzone.Zone
}

// Time is a wall-clock date and time together with its specification.
// The zero Time is invalid. Values are immutable: every mutator and
// arithmetic operation returns a new value.
type Time struct {
	dt       civil.DateTime
	spec     Spec
	dateOnly bool
	cache    *utcCache
}

// New returns the value for the given wall-clock date and time in spec.
func New(d civil.Date, t civil.TimeOfDay, spec Spec) Time {
	if !spec.IsValid() {
		return Time{}
	}
	return Time{dt: civil.NewDateTime(d, t), spec: spec, cache: &utcCache{}}
}

// NewDate returns a date-only value in spec. Its time component is the
// start-of-day sentinel.
func NewDate(d civil.Date, spec Spec) Time {
	if !spec.IsValid() {
		return Time{}
	}
	return Time{dt: civil.NewDateTime(d, civil.StartOfDay), spec: spec, dateOnly: true, cache: &utcCache{}}
}

// FromUTC returns the value whose UTC equivalent is utc, expressed in spec.
func FromUTC(utc civil.DateTime, spec Spec) Time {
	switch spec.kind {
	case SpecUTC:
		return Time{dt: utc, spec: spec, cache: &utcCache{valid: true, utc: utc}}
	case SpecOffsetFromUTC:
		wall := utc.AddSeconds(int64(spec.offset))
		return Time{dt: wall, spec: spec, cache: &utcCache{valid: true, utc: utc}}
	case SpecTimeZone:
		wall := spec.zone.FromUTC(utc)
		return Time{dt: wall, spec: spec, cache: &utcCache{valid: true, utc: utc}}
	case SpecClockTime:
		local := tzone.Local()
		wall := local.FromUTC(utc)
		return Time{dt: wall, spec: spec, cache: &utcCache{valid: true, utc: utc, zone: local}}
	default:
		return Time{}
	}
}

// Now returns the current date and time in the local zone.
func Now() Time {
	dt := civil.FromTime(nowFunc())
	return New(dt.Date, dt.Time, LocalSpec())
}

// statusTime returns the sentinel for a well-formed but out-of-range date.
func statusTime(kind SpecKind) Time {
	return Time{spec: Spec{kind: kind}}
}

// IsNull reports whether t is the zero value.
func (t Time) IsNull() bool {
	return t.dt.IsZero() && t.spec == Spec{} && t.cache == nil
}

// IsValid reports whether t holds a usable date and time.
func (t Time) IsValid() bool {
	if !t.spec.IsValid() || !t.dt.Date.IsValid() {
		return false
	}
	return t.dt.Time.IsValid()
}

// IsTooEarly reports whether t was classified as before the representable range.
func (t Time) IsTooEarly() bool { return t.spec.kind == SpecTooEarly }

// IsTooLate reports whether t was classified as after the representable range.
func (t Time) IsTooLate() bool { return t.spec.kind == SpecTooLate }

// IsDateOnly reports whether the time component is meaningless.
func (t Time) IsDateOnly() bool { return t.dateOnly }

// Date returns the wall-clock date.
func (t Time) Date() civil.Date { return t.dt.Date }

// TimeOfDay returns the wall-clock time component.
func (t Time) TimeOfDay() civil.TimeOfDay { return t.dt.Time }

// DateTime returns the wall-clock reading.
func (t Time) DateTime() civil.DateTime { return t.dt }

// Spec returns the time specification.
func (t Time) Spec() Spec { return t.spec }

// IsUTC reports whether t is anchored to UTC, either directly or through
// the UTC zone.
func (t Time) IsUTC() bool {
	if t.spec.kind == SpecUTC {
		return true
	}
	return t.spec.kind == SpecTimeZone && tzone.Same(t.spec.zone, tzone.UTC)
}

// IsLocalZone reports whether t is anchored in the current system zone.
func (t Time) IsLocalZone() bool {
	return t.spec.kind == SpecTimeZone && tzone.Same(t.spec.zone, tzone.Local())
}

// IsClockTime reports whether t is floating clock time.
func (t Time) IsClockTime() bool { return t.spec.kind == SpecClockTime }

// IsOffsetFromUTC reports whether t is anchored at a fixed offset.
func (t Time) IsOffsetFromUTC() bool { return t.spec.kind == SpecOffsetFromUTC }

// TimeZone returns the zone t is anchored in: its own zone for
// SpecTimeZone, the UTC zone for SpecUTC, nil otherwise.
func (t Time) TimeZone() tzone.Zone {
	switch t.spec.kind {
	case SpecTimeZone:
		return t.spec.zone
	case SpecUTC:
		return tzone.UTC
	default:
		return nil
	}
}

// UTCOffset returns the offset from UTC in seconds at t's wall-clock
// reading. Clock time and UTC report 0.
func (t Time) UTCOffset() int {
	switch t.spec.kind {
	case SpecTimeZone:
		return t.spec.zone.OffsetAt(t.dt)
	case SpecOffsetFromUTC:
		return t.spec.offset
	default:
		return 0
	}
}

// utc returns t's wall clock converted to UTC, computing and caching it on
// first use. For clock time the cache additionally remembers which local
// zone produced it and is bypassed when the system zone has changed since.
func (t Time) utc(local tzone.Zone) (civil.DateTime, bool) {
	if c := t.cache; c != nil && c.valid {
		if t.spec.kind == SpecClockTime {
			if local == nil {
				local = tzone.Local()
			}
			if tzone.Same(c.zone, local) {
				return c.utc, true
			}
		} else {
			return c.utc, true
		}
	}
	if !t.IsValid() {
		return civil.DateTime{}, false
	}
	var (
		u    civil.DateTime
		zone tzone.Zone
	)
	switch t.spec.kind {
	case SpecUTC:
		return t.dt, true
	case SpecOffsetFromUTC:
		u = t.dt.AddSeconds(int64(-t.spec.offset))
	case SpecClockTime:
		if local == nil {
			local = tzone.Local()
		}
		zone = local
		u = local.ToUTC(t.dt)
	case SpecTimeZone:
		u = t.spec.zone.ToUTC(t.dt)
	default:
		return civil.DateTime{}, false
	}
	if c := t.cache; c != nil {
		c.utc, c.zone, c.valid = u, zone, true
	}
	return u, true
}

// ToUTC converts t to the UTC specification. Date-only values are
// re-anchored without going through a time of day.
func (t Time) ToUTC() Time {
	if t.spec.kind == SpecUTC {
		return t
	}
	if !t.IsValid() {
		return Time{}
	}
	if t.dateOnly {
		return NewDate(t.dt.Date, UTCSpec())
	}
	u, ok := t.utc(nil)
	if !ok {
		return Time{}
	}
	return FromUTC(u, UTCSpec())
}

// ToLocalZone converts t to the current system zone.
func (t Time) ToLocalZone() Time {
	local := tzone.Local()
	if t.spec.kind == SpecTimeZone && tzone.Same(t.spec.zone, local) {
		return t
	}
	if !t.IsValid() {
		return Time{}
	}
	if t.dateOnly {
		return NewDate(t.dt.Date, ZoneSpec(local))
	}
	if t.spec.kind == SpecClockTime {
		// Clock time already reads as local wall-clock time.
		return New(t.dt.Date, t.dt.Time, ZoneSpec(local))
	}
	u, _ := t.utc(local)
	return FromUTC(u, ZoneSpec(local))
}

// ToClockTime converts t to floating clock time, keeping the wall-clock
// reading it has in the local zone.
func (t Time) ToClockTime() Time {
	if t.spec.kind == SpecClockTime {
		return t
	}
	if !t.IsValid() {
		return Time{}
	}
	if t.dateOnly {
		return NewDate(t.dt.Date, ClockSpec())
	}
	local := tzone.Local()
	u, _ := t.utc(local)
	wall := local.FromUTC(u)
	return Time{dt: wall, spec: ClockSpec(), cache: &utcCache{valid: true, utc: u, zone: local}}
}

// ToZone converts t to the given zone.
func (t Time) ToZone(z tzone.Zone) Time {
	if z == nil {
		return Time{}
	}
	if t.spec.kind == SpecTimeZone && tzone.Same(t.spec.zone, z) {
		return t
	}
	if !t.IsValid() {
		return Time{}
	}
	if t.dateOnly {
		return NewDate(t.dt.Date, ZoneSpec(z))
	}
	u, ok := t.utc(nil)
	if !ok {
		return Time{}
	}
	return FromUTC(u, ZoneSpec(z))
}

// ToOffsetFromUTC converts t to a fixed-offset specification using the
// offset in force at its own wall-clock reading.
func (t Time) ToOffsetFromUTC() Time {
	if t.spec.kind == SpecOffsetFromUTC {
		return t
	}
	return t.ToSpec(OffsetSpec(t.UTCOffset()))
}

// ToSpec converts t to an arbitrary specification.
func (t Time) ToSpec(spec Spec) Time {
	if t.spec.Equal(spec) {
		return t
	}
	if !t.IsValid() || !spec.IsValid() {
		return Time{}
	}
	if t.dateOnly {
		return NewDate(t.dt.Date, spec)
	}
	u, ok := t.utc(nil)
	if !ok {
		return Time{}
	}
	return FromUTC(u, spec)
}

// ToSpecOf converts t to the specification of another value.
func (t Time) ToSpecOf(other Time) Time {
	return t.ToSpec(other.spec)
}

// Unix returns the number of seconds since the Unix epoch for t's UTC
// equivalent, or 0 if t is invalid.
func (t Time) Unix() int64 {
	u, ok := t.utc(nil)
	if !ok {
		return 0
	}
	return civil.DateTime{Date: civil.NewDate(1970, 1, 1)}.SecondsTo(u)
}

// WithDate returns a copy of t with the date replaced.
func (t Time) WithDate(d civil.Date) Time {
	t.dt.Date = d
	t.cache = &utcCache{}
	return t
}

// WithTime returns a copy of t with the time of day replaced. The result is
// no longer date-only.
func (t Time) WithTime(tod civil.TimeOfDay) Time {
	t.dt.Time = tod
	t.dateOnly = false
	t.cache = &utcCache{}
	return t
}

// WithDateOnly returns a copy of t with the date-only flag set as given.
// Making a value date-only forces its time to the start-of-day sentinel.
func (t Time) WithDateOnly(dateOnly bool) Time {
	if dateOnly == t.dateOnly {
		return t
	}
	t.dateOnly = dateOnly
	if dateOnly && t.dt.Time != civil.StartOfDay {
		t.dt.Time = civil.StartOfDay
		t.cache = &utcCache{}
	}
	return t
}

// WithSpec returns a copy of t whose wall clock is reinterpreted in the
// given specification, without conversion.
func (t Time) WithSpec(spec Spec) Time {
	if t.spec.Equal(spec) {
		return t
	}
	t.spec = spec
	t.cache = &utcCache{}
	return t
}

// AddSeconds returns t shifted by n seconds. Date-only values move by whole
// days (truncating), clock time adds naively on the wall clock so that DST
// transitions are not observed, and anchored values convert through UTC.
func (t Time) AddSeconds(n int64) Time {
	if !t.IsValid() {
		return Time{}
	}
	if t.dateOnly {
		return t.WithDate(t.dt.Date.AddDays(int(n / 86400)))
	}
	if t.spec.kind == SpecClockTime {
		wall := t.dt.AddSeconds(n)
		return New(wall.Date, wall.Time, ClockSpec())
	}
	u, _ := t.utc(nil)
	return FromUTC(u.AddSeconds(n), t.spec)
}

// AddDays returns t with the date component moved by n days. The time of
// day and the specification are untouched.
func (t Time) AddDays(n int) Time {
	if !t.IsValid() {
		return Time{}
	}
	return t.WithDate(t.dt.Date.AddDays(n))
}

// AddMonths returns t with the date component moved by n months.
func (t Time) AddMonths(n int) Time {
	if !t.IsValid() {
		return Time{}
	}
	return t.WithDate(t.dt.Date.AddMonths(n))
}

// AddYears returns t with the date component moved by n years.
func (t Time) AddYears(n int) Time {
	if !t.IsValid() {
		return Time{}
	}
	return t.WithDate(t.dt.Date.AddYears(n))
}

// SecsTo returns the number of seconds from t to other. If either value is
// date-only the difference is computed at day granularity. Two clock times
// subtract naively to avoid counting DST shifts. Invalid operands yield 0.
func (t Time) SecsTo(other Time) int64 {
	if !t.IsValid() || !other.IsValid() {
		return 0
	}
	if t.dateOnly {
		d2 := other.dt.Date
		if !other.dateOnly {
			d2 = other.ToSpec(t.spec).dt.Date
		}
		return int64(t.dt.Date.DaysTo(d2)) * 86400
	}
	if other.dateOnly {
		return int64(t.ToSpec(other.spec).dt.Date.DaysTo(other.dt.Date)) * 86400
	}
	if t.spec.kind == SpecClockTime && other.spec.kind == SpecClockTime {
		return t.dt.SecondsTo(other.dt)
	}
	u1, _ := t.utc(nil)
	u2, _ := other.utc(nil)
	return u1.SecondsTo(u2)
}

// DaysTo returns the number of days from t to other, evaluated in t's own
// specification.
func (t Time) DaysTo(other Time) int {
	if !t.IsValid() || !other.IsValid() {
		return 0
	}
	if t.dateOnly {
		d2 := other.dt.Date
		if !other.dateOnly {
			d2 = other.ToSpec(t.spec).dt.Date
		}
		return t.dt.Date.DaysTo(d2)
	}
	if other.dateOnly {
		return t.ToSpec(other.spec).dt.Date.DaysTo(other.dt.Date)
	}
	var d2 civil.Date
	switch t.spec.kind {
	case SpecUTC:
		u2, _ := other.utc(nil)
		d2 = u2.Date
	case SpecOffsetFromUTC:
		u2, _ := other.utc(nil)
		d2 = u2.AddSeconds(int64(t.spec.offset)).Date
	case SpecTimeZone:
		u2, _ := other.utc(nil)
		d2 = t.spec.zone.FromUTC(u2).Date
	case SpecClockTime:
		local := tzone.Local()
		u2, _ := other.utc(local)
		d2 = local.FromUTC(u2).Date
	default:
		return 0
	}
	return t.dt.Date.DaysTo(d2)
}

// Comparison describes how the intervals occupied by two values relate.
// A date-only value occupies its whole day; other values are single
// instants.
type Comparison int

const (
	// Before: this interval ends before the other starts.
	Before Comparison = iota + 1
	// BeforeOverlap: this starts first and the intervals overlap.
	BeforeOverlap
	// Equal: identical intervals.
	Equal
	// ContainedBy: this interval lies within the other.
	ContainedBy
	// Contains: the other interval lies within this one.
	Contains
	// AfterOverlap: this ends last and the intervals overlap.
	AfterOverlap
	// After: this interval starts after the other ends.
	After
)

// endOfDayUTC returns the UTC equivalent of a date-only value's last
// instant.
func (t Time) endOfDayUTC() civil.DateTime {
	end := t.WithTime(civil.EndOfDay)
	u, _ := end.utc(nil)
	return u
}

// Compare relates t and other as intervals. Two date-only values compare by
// raw date regardless of their specifications: a date-only value is a
// spec-agnostic whole-day marker.
func (t Time) Compare(other Time) Comparison {
	if t.dateOnly && other.dateOnly {
		switch t.dt.Date.Compare(other.dt.Date) {
		case -1:
			return Before
		case 1:
			return After
		default:
			return Equal
		}
	}
	conv := !t.spec.Equal(other.spec)
	var start1, start2 civil.DateTime
	if conv {
		start1, _ = t.utc(nil)
		start2, _ = other.utc(nil)
	} else {
		start1, start2 = t.dt, other.dt
	}
	if t.dateOnly || other.dateOnly {
		var end1, end2 civil.DateTime
		if conv {
			if t.dateOnly {
				end1 = t.endOfDayUTC()
			} else {
				end1 = start1
			}
			if other.dateOnly {
				end2 = other.endOfDayUTC()
			} else {
				end2 = start2
			}
		} else {
			if t.dateOnly {
				end1 = civil.NewDateTime(t.dt.Date, civil.EndOfDay)
			} else {
				end1 = t.dt
			}
			if other.dateOnly {
				end2 = civil.NewDateTime(other.dt.Date, civil.EndOfDay)
			} else {
				end2 = other.dt
			}
		}
		switch {
		case start1.Compare(start2) == 0:
			switch {
			case end1.Compare(end2) == 0:
				return Equal
			case end1.Compare(end2) < 0:
				return ContainedBy
			default:
				return Contains
			}
		case start1.Compare(start2) < 0:
			switch {
			case end1.Compare(start2) < 0:
				return Before
			case end1.Compare(end2) < 0:
				return BeforeOverlap
			default:
				return Contains
			}
		default:
			switch {
			case start1.Compare(end2) > 0:
				return After
			case end1.Compare(end2) > 0:
				return AfterOverlap
			default:
				return ContainedBy
			}
		}
	}
	switch {
	case start1.Compare(start2) == 0:
		return Equal
	case start1.Compare(start2) < 0:
		return Before
	default:
		return After
	}
}

// Equal reports whether t and other denote the same time. A date-only value
// equals a date/time value when the instant falls within the day.
func (t Time) Equal(other Time) bool {
	dates := t.dateOnly || other.dateOnly
	if t.dateOnly && other.dateOnly {
		return t.dt.Date == other.dt.Date
	}
	if t.spec.Equal(other.spec) {
		if dates {
			return t.dt.Date == other.dt.Date
		}
		return t.dt.Compare(other.dt) == 0
	}
	if dates {
		dtime, donly := t, other
		if t.dateOnly {
			dtime, donly = other, t
		}
		u, _ := dtime.utc(nil)
		day, _ := donly.utc(nil)
		return u.Compare(day) >= 0 && u.Compare(day.AddSeconds(86400)) < 0
	}
	u1, _ := t.utc(nil)
	u2, _ := other.utc(nil)
	return u1.Compare(u2) == 0
}

// Less reports whether t is before other. A date-only t counts as its last
// instant for the purpose of ordering against a date/time value.
func (t Time) Less(other Time) bool {
	if t.dateOnly && other.dateOnly {
		return t.dt.Date.Compare(other.dt.Date) < 0
	}
	if t.spec.Equal(other.spec) {
		if t.dateOnly || other.dateOnly {
			return t.dt.Date.Compare(other.dt.Date) < 0
		}
		return t.dt.Compare(other.dt) < 0
	}
	u1, _ := t.utc(nil)
	if t.dateOnly {
		u1 = u1.AddSeconds(86400 - 1)
	}
	u2, _ := other.utc(nil)
	return u1.Compare(u2) < 0
}

// String renders t in the fixed ISO 8601 layout, or "" if invalid.
func (t Time) String() string {
	return Format(t, ISODate)
}
