package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-timeuri/timeuri/dayperiod"
	"github.com/go-timeuri/timeuri/tzone"
)

// TimeFormat selects one of the fixed output layouts.
type TimeFormat int

const (
	// ISODate is ISO 8601 extended format: 2002-05-03T10:20:30+02:00.
	// Date-only values render as the bare date. UTC is marked "Z"; clock
	// time carries no zone suffix.
	ISODate TimeFormat = iota
	// RFCDate is RFC 2822 format without the weekday: 03 May 2002 10:20:30 +0200.
	RFCDate
	// RFCDateDay is RFC 2822 format with the weekday: Fri, 03 May 2002 10:20:30 +0200.
	RFCDateDay
	// TextDate is the plain text layout Fri May 3 10:20:30 2002 +0200.
	TextDate
	// LocalDate is like TextDate but with localized long names:
	// 3 May 2002 10:20:30 +0200.
	LocalDate
)

// Formatter renders and parses Time values. The zero Formatter uses the
// Gregorian calendar, English names, the standard AM/PM day periods, and
// clock time for parsed input carrying no zone information.
type Formatter struct {
	// Calendar supplies names, validity and date arithmetic. Nil means
	// Gregorian without localization.
	Calendar Calendar
	// Locale localizes day-period names and the Calendar's names when the
	// calendar is the default. Nil means English.
	Locale dayperiod.Translator
	// Periods resolves day-period tokens. An empty registry means the
	// standard AM/PM pair built from Locale.
	Periods dayperiod.Registry
	// Default is the specification given to parsed values that carry no
	// zone or offset information. The zero Spec means clock time.
	Default Spec
}

func (f Formatter) calendar() Calendar {
	if f.Calendar != nil {
		return f.Calendar
	}
	return Gregorian{Locale: f.Locale}
}

func (f Formatter) registry() dayperiod.Registry {
	if len(f.Periods.Periods()) > 0 {
		return f.Periods
	}
	return dayperiod.Default(f.Locale)
}

func (f Formatter) defaultSpec() Spec {
	if f.Default.IsValid() {
		return f.Default
	}
	return ClockSpec()
}

// Format renders t in one of the fixed layouts using the default formatter.
func Format(t Time, layout TimeFormat) string {
	return Formatter{}.Format(t, layout)
}

// FormatPattern renders t against a %-token pattern using the default
// formatter.
func FormatPattern(t Time, pattern string) string {
	return Formatter{}.FormatPattern(t, pattern)
}

// zoneOffset returns the offset to print for zone tokens and whether the
// value has one at all. Clock time has none.
func zoneOffset(t Time) (int, bool) {
	switch t.spec.kind {
	case SpecUTC:
		return 0, true
	case SpecOffsetFromUTC:
		return t.spec.offset, true
	case SpecTimeZone:
		return t.spec.zone.OffsetAt(t.dt), true
	default:
		return 0, false
	}
}

func appendOffset(b *strings.Builder, offset int, colon bool) {
	sign := '+'
	if offset < 0 {
		sign, offset = '-', -offset
	}
	if colon {
		fmt.Fprintf(b, "%c%02d:%02d", sign, offset/3600, offset/60%60)
	} else {
		fmt.Fprintf(b, "%c%02d%02d", sign, offset/3600, offset/60%60)
	}
}

// zoneAbbreviation returns the designation to print for %Z. Fixed-offset
// and clock-time values have none.
func (f Formatter) zoneAbbreviation(t Time) string {
	switch t.spec.kind {
	case SpecUTC:
		return "UTC"
	case SpecTimeZone:
		u, ok := t.utc(nil)
		if !ok {
			return ""
		}
		return t.spec.zone.Abbreviation(u)
	default:
		return ""
	}
}

func (f Formatter) zoneName(t Time) string {
	switch t.spec.kind {
	case SpecUTC:
		return "UTC"
	case SpecTimeZone:
		return t.spec.zone.Name()
	default:
		return ""
	}
}

func (f Formatter) amPm(t Time, upper, localized bool) string {
	var s string
	if localized {
		if p := f.registry().Resolve(t.dt.Time); p.IsValid() {
			s = p.Name(dayperiod.ShortName)
		}
	}
	if s == "" {
		if t.dt.Time.Hour < 12 {
			s = "am"
		} else {
			s = "pm"
		}
	}
	if upper {
		return strings.ToUpper(s)
	}
	return strings.ToLower(s)
}

// FormatPattern renders t against a %-token pattern. Unrecognized tokens
// are copied through literally.
func (f Formatter) FormatPattern(t Time, pattern string) string {
	if !t.IsValid() {
		return ""
	}
	cal := f.calendar()
	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' || i+1 == len(runes) {
			b.WriteRune(runes[i])
			continue
		}
		i++
		escaped := false
		if runes[i] == ':' && i+1 < len(runes) {
			escaped = true
			i++
		}
		ch := runes[i]
		if escaped {
			f.formatEscapedToken(&b, t, cal, ch)
		} else {
			f.formatToken(&b, t, cal, ch)
		}
	}
	return b.String()
}

func (f Formatter) formatToken(b *strings.Builder, t Time, cal Calendar, ch rune) {
	d, tod := t.dt.Date, t.dt.Time
	switch ch {
	case '%':
		b.WriteByte('%')
	case 'Y':
		fmt.Fprintf(b, "%d", d.Year)
	case 'y':
		fmt.Fprintf(b, "%02d", ((d.Year%100)+100)%100)
	case 'm':
		fmt.Fprintf(b, "%02d", int(d.Month))
	case 'B':
		b.WriteString(cal.MonthName(d.Month, false))
	case 'b':
		b.WriteString(cal.MonthName(d.Month, true))
	case 'd':
		fmt.Fprintf(b, "%02d", d.Day)
	case 'e':
		fmt.Fprintf(b, "%2d", d.Day)
	case 'A':
		b.WriteString(cal.WeekdayName(cal.DayOfWeek(d), false))
	case 'a':
		b.WriteString(cal.WeekdayName(cal.DayOfWeek(d), true))
	case 'H':
		fmt.Fprintf(b, "%02d", tod.Hour)
	case 'k':
		fmt.Fprintf(b, "%2d", tod.Hour)
	case 'I':
		fmt.Fprintf(b, "%02d", (tod.Hour+11)%12+1)
	case 'l':
		fmt.Fprintf(b, "%2d", (tod.Hour+11)%12+1)
	case 'M':
		fmt.Fprintf(b, "%02d", tod.Minute)
	case 'S':
		fmt.Fprintf(b, "%02d", tod.Second)
	case 'P':
		b.WriteString(f.amPm(t, false, true))
	case 'p':
		b.WriteString(f.amPm(t, true, true))
	case 'z':
		if offset, ok := zoneOffset(t); ok {
			appendOffset(b, offset, false)
		}
	case 'Z':
		b.WriteString(f.zoneAbbreviation(t))
	default:
		b.WriteByte('%')
		b.WriteRune(ch)
	}
}

func (f Formatter) formatEscapedToken(b *strings.Builder, t Time, cal Calendar, ch rune) {
	d, tod := t.dt.Date, t.dt.Time
	switch ch {
	case 'A':
		b.WriteString(englishWeekdayName(d.Weekday(), false))
	case 'a':
		b.WriteString(englishWeekdayName(d.Weekday(), true))
	case 'B':
		b.WriteString(englishMonthName(d.Month, false))
	case 'b':
		b.WriteString(englishMonthName(d.Month, true))
	case 'm':
		fmt.Fprintf(b, "%d", int(d.Month))
	case 'P':
		b.WriteString(f.amPm(t, false, false))
	case 'p':
		b.WriteString(f.amPm(t, true, false))
	case 'S':
		// Seconds only when they matter.
		if tod.Second != 0 || tod.Millisecond != 0 {
			fmt.Fprintf(b, ":%02d", tod.Second)
		}
	case 's':
		fmt.Fprintf(b, "%03d", tod.Millisecond)
	case 'u':
		if offset, ok := zoneOffset(t); ok {
			sign := '+'
			if offset < 0 {
				sign, offset = '-', -offset
			}
			fmt.Fprintf(b, "%c%02d", sign, offset/3600)
			if m := offset / 60 % 60; m != 0 {
				fmt.Fprintf(b, "%02d", m)
			}
		}
	case 'z':
		if offset, ok := zoneOffset(t); ok {
			appendOffset(b, offset, true)
		}
	case 'Z':
		b.WriteString(f.zoneName(t))
	default:
		b.WriteString("%:")
		b.WriteRune(ch)
	}
}

// Format renders t in one of the fixed layouts. Invalid values render as "".
func (f Formatter) Format(t Time, layout TimeFormat) string {
	if !t.IsValid() {
		return ""
	}
	d, tod := t.dt.Date, t.dt.Time
	var b strings.Builder
	switch layout {
	case ISODate:
		fmt.Fprintf(&b, "%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
		if t.dateOnly {
			break
		}
		fmt.Fprintf(&b, "T%02d:%02d:%02d", tod.Hour, tod.Minute, tod.Second)
		if tod.Millisecond != 0 {
			fmt.Fprintf(&b, ".%03d", tod.Millisecond)
		}
		switch t.spec.kind {
		case SpecUTC:
			b.WriteByte('Z')
		case SpecClockTime:
		default:
			offset, _ := zoneOffset(t)
			appendOffset(&b, offset, true)
		}

	case RFCDate, RFCDateDay:
		offset := t.rfcOffset()
		if layout == RFCDateDay {
			fmt.Fprintf(&b, "%s, ", englishWeekdayName(d.Weekday(), true))
		}
		fmt.Fprintf(&b, "%02d %s %04d %02d:%02d",
			d.Day, englishMonthName(d.Month, true), d.Year, tod.Hour, tod.Minute)
		if tod.Second != 0 {
			fmt.Fprintf(&b, ":%02d", tod.Second)
		}
		b.WriteByte(' ')
		appendOffset(&b, offset, false)

	case TextDate:
		fmt.Fprintf(&b, "%s %s %d",
			englishWeekdayName(d.Weekday(), true), englishMonthName(d.Month, true), d.Day)
		if !t.dateOnly {
			fmt.Fprintf(&b, " %02d:%02d:%02d", tod.Hour, tod.Minute, tod.Second)
		}
		fmt.Fprintf(&b, " %d", d.Year)
		if offset, ok := zoneOffset(t); ok {
			b.WriteByte(' ')
			appendOffset(&b, offset, false)
		}

	case LocalDate:
		cal := f.calendar()
		fmt.Fprintf(&b, "%d %s %d", d.Day, cal.MonthName(d.Month, false), d.Year)
		if !t.dateOnly {
			fmt.Fprintf(&b, " %02d:%02d:%02d", tod.Hour, tod.Minute, tod.Second)
		}
		if offset, ok := zoneOffset(t); ok {
			b.WriteByte(' ')
			appendOffset(&b, offset, false)
		}
	}
	return b.String()
}

// rfcOffset returns the offset rendered by the RFC layouts. Unlike the
// %-token engine, clock time borrows the local zone's offset here so that
// the output is always a complete RFC date.
func (t Time) rfcOffset() int {
	if offset, ok := zoneOffset(t); ok {
		return offset
	}
	return tzone.Local().OffsetAt(t.dt)
}

// monthByName resolves a month name, long or short, case-insensitively.
// Localized names are tried first when a calendar is given.
func monthByName(cal Calendar, name string) time.Month {
	for m := time.January; m <= time.December; m++ {
		if cal != nil {
			if strings.EqualFold(name, cal.MonthName(m, false)) || strings.EqualFold(name, cal.MonthName(m, true)) {
				return m
			}
		}
		if strings.EqualFold(name, englishMonthName(m, false)) || strings.EqualFold(name, englishMonthName(m, true)) {
			return m
		}
	}
	return 0
}

// weekdayByName resolves a weekday name, long or short, case-insensitively.
func weekdayByName(cal Calendar, name string) (time.Weekday, bool) {
	for w := time.Sunday; w <= time.Saturday; w++ {
		if cal != nil {
			if strings.EqualFold(name, cal.WeekdayName(w, false)) || strings.EqualFold(name, cal.WeekdayName(w, true)) {
				return w, true
			}
		}
		if strings.EqualFold(name, englishWeekdayName(w, false)) || strings.EqualFold(name, englishWeekdayName(w, true)) {
			return w, true
		}
	}
	return 0, false
}
