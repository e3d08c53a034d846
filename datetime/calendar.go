package datetime

import (
	"time"

	"github.com/go-timeuri/timeuri/civil"
	"github.com/go-timeuri/timeuri/dayperiod"
)

// Calendar is the calendar-system capability consulted by the formatter and
// the pattern parser for names, validity and date arithmetic. The built-in
// implementation is Gregorian; alternative systems plug in here without the
// formatter knowing which calendar it is talking to.
type Calendar interface {
	// IsValidDate reports whether the components name an existing day.
	IsValidDate(year int, month time.Month, day int) bool
	// DayOfWeek returns the weekday a date falls on.
	DayOfWeek(d civil.Date) time.Weekday
	// AddDays, AddMonths and AddYears move a date by calendar units.
	AddDays(d civil.Date, n int) civil.Date
	AddMonths(d civil.Date, n int) civil.Date
	AddYears(d civil.Date, n int) civil.Date
	// MonthName returns the possibly localized name of a month.
	MonthName(m time.Month, short bool) string
	// WeekdayName returns the possibly localized name of a weekday.
	WeekdayName(w time.Weekday, short bool) string
}

// English month and weekday names. These are also the fixed vocabulary of
// the RFC 822 formats, independent of any locale.
var (
	longMonths = [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	shortMonths = [12]string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}
	longDays = [7]string{
		"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
	}
	shortDays = [7]string{
		"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat",
	}
)

func englishMonthName(m time.Month, short bool) string {
	if m < time.January || m > time.December {
		return ""
	}
	if short {
		return shortMonths[m-1]
	}
	return longMonths[m-1]
}

func englishWeekdayName(w time.Weekday, short bool) string {
	if w < time.Sunday || w > time.Saturday {
		return ""
	}
	if short {
		return shortDays[w]
	}
	return longDays[w]
}

// Gregorian is the proleptic Gregorian calendar. A non-nil Locale localizes
// month and weekday names by looking the English name up as a key; missing
// translations fall back to English.
type Gregorian struct {
	Locale dayperiod.Translator
}

func (g Gregorian) IsValidDate(year int, month time.Month, day int) bool {
	return civil.Date{Year: year, Month: month, Day: day}.IsValid()
}

func (g Gregorian) DayOfWeek(d civil.Date) time.Weekday { return d.Weekday() }

func (g Gregorian) AddDays(d civil.Date, n int) civil.Date   { return d.AddDays(n) }
func (g Gregorian) AddMonths(d civil.Date, n int) civil.Date { return d.AddMonths(n) }
func (g Gregorian) AddYears(d civil.Date, n int) civil.Date  { return d.AddYears(n) }

func (g Gregorian) MonthName(m time.Month, short bool) string {
	return g.localize(englishMonthName(m, short))
}

func (g Gregorian) WeekdayName(w time.Weekday, short bool) string {
	return g.localize(englishWeekdayName(w, short))
}

func (g Gregorian) localize(english string) string {
	if english == "" || g.Locale == nil {
		return english
	}
	if s := g.Locale.Translate(english); s != "" {
		return s
	}
	return english
}

// isoDayOfWeek converts to ISO 8601 numbering, Monday=1 through Sunday=7.
func isoDayOfWeek(w time.Weekday) int {
	if w == time.Sunday {
		return 7
	}
	return int(w)
}
