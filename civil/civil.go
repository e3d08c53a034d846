// Package civil provides zone-naive calendar and clock primitives used by the
// datetime and dayperiod packages: a proleptic Gregorian Date, a TimeOfDay
// with millisecond precision, and their combination DateTime.
//
// Values in this package carry no time zone. Interpreting them as instants is
// the job of the tzone package.
package civil

import (
	"fmt"
	"time"
)

// The range of years for which a Date is considered representable.
// Dates outside the range are still well-formed and support arithmetic,
// but callers classify them as too early or too late rather than invalid.
const (
	MinYear = 1753
	MaxYear = 7999
)

// Date is a calendar date in the proleptic Gregorian calendar.
// The zero Date is treated as null.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// IsZero reports whether d is the null date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// IsValid reports whether d names an existing calendar day.
// Validity is independent of the MinYear..MaxYear range.
func (d Date) IsValid() bool {
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month)
}

// InRange reports whether d falls within the representable year range.
func (d Date) InRange() bool {
	return d.Year >= MinYear && d.Year <= MaxYear
}

// IsLeapYear determines if the year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in a given month for a specific year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// DayNumber returns the number of days between the Unix epoch day
// (1970-01-01) and d. Earlier dates yield negative numbers.
func (d Date) DayNumber() int {
	y := d.Year
	m := int(d.Month)
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	var doy int
	if m > 2 {
		doy = (153*(m-3)+2)/5 + d.Day - 1
	} else {
		doy = (153*(m+9)+2)/5 + d.Day - 1
	}
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// DateFromDayNumber is the inverse of DayNumber.
func DateFromDayNumber(n int) Date {
	z := n + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return Date{Year: y, Month: time.Month(m), Day: day}
}

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() time.Weekday {
	return time.Weekday(floorMod(d.DayNumber()+4, 7))
}

// DayOfYear returns the ordinal day within d's year, 1-based.
func (d Date) DayOfYear() int {
	return d.DayNumber() - Date{Year: d.Year, Month: time.January, Day: 1}.DayNumber() + 1
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return DateFromDayNumber(d.DayNumber() + n)
}

// AddMonths returns the date n months after d, clamping the day
// to the length of the target month.
func (d Date) AddMonths(n int) Date {
	m := int(d.Month) - 1 + n
	y := d.Year + floorDiv(m, 12)
	m = floorMod(m, 12) + 1
	day := d.Day
	if max := DaysInMonth(y, time.Month(m)); day > max {
		day = max
	}
	return Date{Year: y, Month: time.Month(m), Day: day}
}

// AddYears returns the date n years after d, clamping Feb 29 to Feb 28
// in non-leap target years.
func (d Date) AddYears(n int) Date {
	y := d.Year + n
	day := d.Day
	if max := DaysInMonth(y, d.Month); day > max {
		day = max
	}
	return Date{Year: y, Month: d.Month, Day: day}
}

// DaysTo returns the number of days from d to other.
func (d Date) DaysTo(other Date) int {
	return other.DayNumber() - d.DayNumber()
}

// Compare returns -1, 0 or +1 ordering d against other chronologically.
func (d Date) Compare(other Date) int {
	a, b := d.DayNumber(), other.DayNumber()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String renders the date in ISO 8601 extended form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// TimeOfDay is a clock time with millisecond precision.
type TimeOfDay struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

// Clock times marking the bounds of a day.
var (
	StartOfDay = TimeOfDay{}
	EndOfDay   = TimeOfDay{Hour: 23, Minute: 59, Second: 59, Millisecond: 999}
)

// NewTimeOfDay returns the clock time for the given components.
func NewTimeOfDay(hour, minute, second, millisecond int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute, Second: second, Millisecond: millisecond}
}

// IsValid reports whether t is a real clock time within a 24-hour day.
func (t TimeOfDay) IsValid() bool {
	return t.Hour >= 0 && t.Hour < 24 &&
		t.Minute >= 0 && t.Minute < 60 &&
		t.Second >= 0 && t.Second < 60 &&
		t.Millisecond >= 0 && t.Millisecond < 1000
}

// MillisOfDay returns the number of milliseconds since the start of the day.
func (t TimeOfDay) MillisOfDay() int {
	return ((t.Hour*60+t.Minute)*60+t.Second)*1000 + t.Millisecond
}

// TimeOfDayFromMillis is the inverse of MillisOfDay.
func TimeOfDayFromMillis(ms int) TimeOfDay {
	return TimeOfDay{
		Hour:        ms / 3600000,
		Minute:      ms / 60000 % 60,
		Second:      ms / 1000 % 60,
		Millisecond: ms % 1000,
	}
}

// Compare returns -1, 0 or +1 ordering t against other within a day.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	a, b := t.MillisOfDay(), other.MillisOfDay()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String renders the clock time as HH:MM:SS with milliseconds appended
// only when non-zero.
func (t TimeOfDay) String() string {
	if t.Millisecond != 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hour, t.Minute, t.Second, t.Millisecond)
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// DateTime is a calendar date combined with a clock time.
// Like Date and TimeOfDay it is zone-naive.
type DateTime struct {
	Date Date
	Time TimeOfDay
}

// NewDateTime combines a date and a clock time.
func NewDateTime(d Date, t TimeOfDay) DateTime {
	return DateTime{Date: d, Time: t}
}

// IsZero reports whether dt is the null date/time.
func (dt DateTime) IsZero() bool {
	return dt.Date.IsZero() && dt.Time == TimeOfDay{}
}

// IsValid reports whether both the date and the clock time are valid.
func (dt DateTime) IsValid() bool {
	return dt.Date.IsValid() && dt.Time.IsValid()
}

// epochMillis positions dt on a continuous millisecond scale anchored at
// the Unix epoch, without any zone interpretation.
func (dt DateTime) epochMillis() int64 {
	return int64(dt.Date.DayNumber())*86400000 + int64(dt.Time.MillisOfDay())
}

func dateTimeFromEpochMillis(ms int64) DateTime {
	day := ms / 86400000
	rem := ms % 86400000
	if rem < 0 {
		day--
		rem += 86400000
	}
	return DateTime{
		Date: DateFromDayNumber(int(day)),
		Time: TimeOfDayFromMillis(int(rem)),
	}
}

// AddSeconds returns dt shifted by n seconds on the naive time scale.
func (dt DateTime) AddSeconds(n int64) DateTime {
	return dateTimeFromEpochMillis(dt.epochMillis() + n*1000)
}

// AddMillis returns dt shifted by n milliseconds on the naive time scale.
func (dt DateTime) AddMillis(n int64) DateTime {
	return dateTimeFromEpochMillis(dt.epochMillis() + n)
}

// SecondsTo returns the number of whole seconds from dt to other on the
// naive time scale. Sub-second remainders are truncated toward zero.
func (dt DateTime) SecondsTo(other DateTime) int64 {
	return (other.epochMillis() - dt.epochMillis()) / 1000
}

// Compare returns -1, 0 or +1 ordering dt against other on the naive scale.
func (dt DateTime) Compare(other DateTime) int {
	a, b := dt.epochMillis(), other.epochMillis()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ToTime interprets dt in the given location.
func (dt DateTime) ToTime(loc *time.Location) time.Time {
	return time.Date(dt.Date.Year, dt.Date.Month, dt.Date.Day,
		dt.Time.Hour, dt.Time.Minute, dt.Time.Second, dt.Time.Millisecond*int(time.Millisecond), loc)
}

// FromTime extracts the wall-clock reading of t, truncated to milliseconds.
func FromTime(t time.Time) DateTime {
	y, m, d := t.Date()
	return DateTime{
		Date: Date{Year: y, Month: m, Day: d},
		Time: TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Millisecond: t.Nanosecond() / int(time.Millisecond)},
	}
}

// String renders the date/time in ISO 8601 extended form.
func (dt DateTime) String() string {
	return dt.Date.String() + "T" + dt.Time.String()
}
