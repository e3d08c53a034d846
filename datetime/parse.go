package datetime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"

	"github.com/go-timeuri/timeuri/civil"
	"github.com/go-timeuri/timeuri/dayperiod"
	"github.com/go-timeuri/timeuri/tzone"
)

// ParseError describes why an input string failed to parse.
type ParseError struct {
	Input string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Msg)
}

func parseErr(input, format string, args ...interface{}) error {
	return &ParseError{Input: input, Msg: fmt.Sprintf(format, args...)}
}

// classify validates an assembled date, mapping well-formed dates outside
// the representable year range to the too-early / too-late sentinels.
func classify(t Time, input string) (Time, error) {
	d := t.dt.Date
	if d.IsValid() && d.InRange() {
		return t, nil
	}
	if d.Year < civil.MinYear || d.Year > civil.MaxYear {
		// The month/day pair is checked against a leap-matched in-range
		// year, so 'Feb 29 1500' still classifies rather than failing.
		sub := 2000
		if !civil.IsLeapYear(d.Year) {
			sub = 2001
		}
		if (civil.Date{Year: sub, Month: d.Month, Day: d.Day}).IsValid() {
			if d.Year < civil.MinYear {
				return statusTime(SpecTooEarly), parseErr(input, "year %d is before the representable range", d.Year)
			}
			return statusTime(SpecTooLate), parseErr(input, "year %d is after the representable range", d.Year)
		}
	}
	return Time{}, parseErr(input, "invalid date %04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// simplify trims the input and collapses internal whitespace runs to a
// single space, so patterns never have to anticipate formatting noise.
func simplify(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// parsed holds the fields extracted by the %-token pattern parser before
// assembly into a Time.
type parsed struct {
	year, month, day         int
	hour, minute, second, ms int
	weekday                  time.Weekday
	weekdaySet               bool
	amPm                     int // 0 unset, 1 am, 2 pm
	offset                   int
	offsetSet                bool
	zoneName                 string
	zoneAbbrev               string
}

type patternParser struct {
	f     Formatter
	input string
	str   []rune
	s     int
	out   parsed
}

func (p *patternParser) fail(format string, args ...interface{}) error {
	return parseErr(p.input, format, args...)
}

// setNum records a field value, rejecting contradictions between repeated
// tokens for the same field.
func (p *patternParser) setNum(field *int, v int, name string) error {
	if *field >= 0 && *field != v {
		return p.fail("conflicting values for %s: %d and %d", name, *field, v)
	}
	*field = v
	return nil
}

// number reads between min and max digits, requiring the value to fall in
// [lo, hi]. hi < 0 disables the bounds check.
func (p *patternParser) number(min, max, lo, hi int) (int, bool) {
	start := p.s
	for p.s < len(p.str) && p.s-start < max && p.str[p.s] >= '0' && p.str[p.s] <= '9' {
		p.s++
	}
	if p.s-start < min {
		p.s = start
		return 0, false
	}
	v, err := strconv.Atoi(string(p.str[start:p.s]))
	if err != nil || (hi >= 0 && (v < lo || v > hi)) {
		p.s = start
		return 0, false
	}
	return v, true
}

// word matches the longest candidate name at the current position,
// case-insensitively, returning its index in values.
func (p *patternParser) word(names []string, values []int) (int, bool) {
	rest := string(p.str[p.s:])
	best, bestLen := -1, 0
	for i, name := range names {
		if name == "" || len(name) <= bestLen {
			continue
		}
		if len(rest) >= len(name) && strings.EqualFold(rest[:len(name)], name) {
			best, bestLen = values[i], len(name)
		}
	}
	if best < 0 {
		return 0, false
	}
	p.s += len([]rune(rest[:bestLen]))
	return best, true
}

func (p *patternParser) matchMonth(localized bool) (time.Month, bool) {
	var names []string
	var values []int
	add := func(name string, m time.Month) {
		if name != "" {
			names = append(names, name)
			values = append(values, int(m))
		}
	}
	for m := time.January; m <= time.December; m++ {
		if localized {
			cal := p.f.calendar()
			add(cal.MonthName(m, false), m)
			add(cal.MonthName(m, true), m)
		}
		add(englishMonthName(m, false), m)
		add(englishMonthName(m, true), m)
	}
	v, ok := p.word(names, values)
	return time.Month(v), ok
}

func (p *patternParser) matchWeekday(localized bool) (time.Weekday, bool) {
	var names []string
	var values []int
	add := func(name string, w time.Weekday) {
		if name != "" {
			names = append(names, name)
			values = append(values, int(w))
		}
	}
	for w := time.Sunday; w <= time.Saturday; w++ {
		if localized {
			cal := p.f.calendar()
			add(cal.WeekdayName(w, false), w)
			add(cal.WeekdayName(w, true), w)
		}
		add(englishWeekdayName(w, false), w)
		add(englishWeekdayName(w, true), w)
	}
	v, ok := p.word(names, values)
	return time.Weekday(v), ok
}

func (p *patternParser) matchAmPm(localized bool) (int, bool) {
	names := []string{"am", "pm"}
	values := []int{1, 2}
	if localized {
		for _, period := range p.f.registry().Periods() {
			v := 0
			switch period.Code() {
			case "am":
				v = 1
			case "pm":
				v = 2
			default:
				continue
			}
			for _, nf := range []dayperiod.NameFormat{dayperiod.LongName, dayperiod.ShortName} {
				if name := period.Name(nf); name != "" {
					names = append(names, name)
					values = append(values, v)
				}
			}
		}
	}
	return p.word(names, values)
}

// utcOffset reads a ±HH[MM] or ±HH[:MM] offset. The colon flavor requires
// the colon when minutes are present.
func (p *patternParser) utcOffset(colon bool) (int, bool) {
	start := p.s
	if p.s >= len(p.str) || (p.str[p.s] != '+' && p.str[p.s] != '-') {
		return 0, false
	}
	neg := p.str[p.s] == '-'
	p.s++
	hours, ok := p.number(1, 2, 0, 23)
	if !ok {
		p.s = start
		return 0, false
	}
	minutes := 0
	if colon {
		if p.s < len(p.str) && p.str[p.s] == ':' {
			p.s++
			if minutes, ok = p.number(2, 2, 0, 59); !ok {
				p.s = start
				return 0, false
			}
		}
	} else if m, ok := p.number(2, 2, 0, 59); ok {
		minutes = m
	}
	offset := hours*3600 + minutes*60
	if neg {
		offset = -offset
	}
	return offset, true
}

// run consumes the input against the pattern, filling p.out.
func (p *patternParser) run(pattern string) error {
	format := []rune(pattern)
	for i := 0; i < len(format); i++ {
		fc := format[i]
		if fc != '%' {
			if unicode.IsSpace(fc) {
				// A literal space in the pattern matches at most one
				// input space, and matches nothing at all.
				if p.s < len(p.str) && unicode.IsSpace(p.str[p.s]) {
					p.s++
				}
				continue
			}
			if p.s >= len(p.str) || p.str[p.s] != fc {
				return p.fail("expected %q at offset %d", string(fc), p.s)
			}
			p.s++
			continue
		}
		i++
		if i >= len(format) {
			return p.fail("pattern ends with a bare %%")
		}
		escaped := false
		if format[i] == ':' && i+1 < len(format) {
			escaped = true
			i++
		}
		var next rune
		if i+1 < len(format) {
			next = format[i+1]
		}
		if err := p.token(format[i], escaped, next); err != nil {
			return err
		}
	}
	return nil
}

func (p *patternParser) token(ch rune, escaped bool, next rune) error {
	o := &p.out
	switch {
	case !escaped && ch == '%':
		if p.s >= len(p.str) || p.str[p.s] != '%' {
			return p.fail("expected literal %% at offset %d", p.s)
		}
		p.s++
	case !escaped && ch == 'Y':
		v, ok := p.number(4, 4, -1, -1)
		if !ok {
			return p.fail("expected 4-digit year at offset %d", p.s)
		}
		return p.setNum(&o.year, v, "year")
	case !escaped && ch == 'y':
		v, ok := p.number(2, 2, 0, 99)
		if !ok {
			return p.fail("expected 2-digit year at offset %d", p.s)
		}
		if v <= 50 {
			v += 2000
		} else {
			v += 1900
		}
		return p.setNum(&o.year, v, "year")
	case ch == 'm' && !escaped:
		v, ok := p.number(2, 2, 1, 12)
		if !ok {
			return p.fail("expected 2-digit month at offset %d", p.s)
		}
		return p.setNum(&o.month, v, "month")
	case ch == 'm' && escaped:
		v, ok := p.number(1, 2, 1, 12)
		if !ok {
			return p.fail("expected month number at offset %d", p.s)
		}
		return p.setNum(&o.month, v, "month")
	case ch == 'B' || ch == 'b':
		m, ok := p.matchMonth(!escaped)
		if !ok {
			return p.fail("expected month name at offset %d", p.s)
		}
		return p.setNum(&o.month, int(m), "month")
	case !escaped && (ch == 'd' || ch == 'e'):
		min := 2
		if ch == 'e' {
			min = 1
			// %e tolerates the space padding its formatter twin emits.
			if p.s < len(p.str) && p.str[p.s] == ' ' {
				p.s++
			}
		}
		v, ok := p.number(min, 2, 1, 31)
		if !ok {
			return p.fail("expected day of month at offset %d", p.s)
		}
		return p.setNum(&o.day, v, "day")
	case ch == 'A' || ch == 'a':
		w, ok := p.matchWeekday(!escaped)
		if !ok {
			return p.fail("expected weekday name at offset %d", p.s)
		}
		if o.weekdaySet && o.weekday != w {
			return p.fail("conflicting weekdays")
		}
		o.weekday, o.weekdaySet = w, true
	case !escaped && (ch == 'H' || ch == 'k'):
		if ch == 'k' && p.s < len(p.str) && p.str[p.s] == ' ' {
			p.s++
		}
		v, ok := p.number(1, 2, 0, 23)
		if !ok {
			return p.fail("expected hour at offset %d", p.s)
		}
		return p.setNum(&o.hour, v, "hour")
	case !escaped && (ch == 'I' || ch == 'l'):
		if ch == 'l' && p.s < len(p.str) && p.str[p.s] == ' ' {
			p.s++
		}
		v, ok := p.number(1, 2, 1, 12)
		if !ok {
			return p.fail("expected 12-hour value at offset %d", p.s)
		}
		return p.setNum(&o.hour, v, "hour")
	case !escaped && ch == 'M':
		v, ok := p.number(1, 2, 0, 59)
		if !ok {
			return p.fail("expected minute at offset %d", p.s)
		}
		return p.setNum(&o.minute, v, "minute")
	case ch == 'S' && !escaped:
		v, ok := p.number(1, 2, 0, 59)
		if !ok {
			return p.fail("expected second at offset %d", p.s)
		}
		return p.setNum(&o.second, v, "second")
	case ch == 'S' && escaped:
		// Optional ":SS": matches only when the input continues with one.
		if p.s+1 < len(p.str) && p.str[p.s] == ':' {
			p.s++
			v, ok := p.number(1, 2, 0, 59)
			if !ok {
				return p.fail("expected second after ':' at offset %d", p.s)
			}
			return p.setNum(&o.second, v, "second")
		}
		return p.setNum(&o.second, 0, "second")
	case ch == 's':
		start := p.s
		v, ok := p.number(1, 3, 0, 999)
		if !ok {
			return p.fail("expected milliseconds at offset %d", p.s)
		}
		for n := p.s - start; n < 3; n++ {
			v *= 10
		}
		return p.setNum(&o.ms, v, "milliseconds")
	case ch == 'P' || ch == 'p':
		v, ok := p.matchAmPm(!escaped)
		if !ok {
			return p.fail("expected am/pm at offset %d", p.s)
		}
		if o.amPm != 0 && o.amPm != v {
			return p.fail("conflicting am/pm markers")
		}
		o.amPm = v
	case !escaped && ch == 't':
		if p.s >= len(p.str) || !unicode.IsSpace(p.str[p.s]) {
			return p.fail("expected whitespace at offset %d", p.s)
		}
		p.s++
	case ch == 'z' || (escaped && ch == 'u'):
		v, ok := p.utcOffset(escaped && ch == 'z')
		if !ok {
			return p.fail("expected UTC offset at offset %d", p.s)
		}
		if o.zoneName != "" || o.zoneAbbrev != "" {
			return p.fail("UTC offset conflicts with a named zone")
		}
		o.offset, o.offsetSet = v, true
	case ch == 'Z' && !escaped:
		start := p.s
		for p.s < len(p.str) && (unicode.IsLetter(p.str[p.s]) || unicode.IsDigit(p.str[p.s])) {
			p.s++
		}
		if p.s == start {
			return p.fail("expected zone abbreviation at offset %d", p.s)
		}
		if o.offsetSet || o.zoneName != "" {
			return p.fail("zone abbreviation conflicts with other zone fields")
		}
		o.zoneAbbrev = string(p.str[start:p.s])
	case ch == 'Z' && escaped:
		// A zone name runs until the next literal pattern character, or to
		// the end of the input if the pattern ends here.
		term := rune(0)
		switch next {
		case 0:
		case '%':
			term = ' '
		default:
			term = next
		}
		start := p.s
		for p.s < len(p.str) && (term == 0 || p.str[p.s] != term) {
			p.s++
		}
		if p.s == start {
			return p.fail("expected zone name at offset %d", p.s)
		}
		if o.offsetSet || o.zoneAbbrev != "" {
			return p.fail("zone name conflicts with other zone fields")
		}
		o.zoneName = strings.TrimSpace(string(p.str[start:p.s]))
	default:
		tok := string(ch)
		if escaped {
			tok = ":" + tok
		}
		return p.fail("unsupported pattern token %%%s", tok)
	}
	return nil
}

// assemble turns the parsed fields into a Time, applying defaults and the
// am/pm adjustment.
func (p *patternParser) assemble() (Time, error) {
	o := p.out
	dateOnly := o.hour < 0 && o.minute < 0 && o.second < 0 && o.ms < 0 && o.amPm == 0
	hour, minute, second, ms := o.hour, o.minute, o.second, o.ms
	if hour < 0 {
		hour = 0
	}
	if minute < 0 {
		minute = 0
	}
	if second < 0 {
		second = 0
	}
	if ms < 0 {
		ms = 0
	}
	if o.amPm != 0 {
		if o.hour < 1 || o.hour > 12 {
			return Time{}, p.fail("hour %d out of range for am/pm", o.hour)
		}
		if o.amPm == 1 && hour == 12 {
			hour = 0
		} else if o.amPm == 2 && hour < 12 {
			hour += 12
		}
	}
	year := o.year
	if year < 0 {
		year = nowFunc().Year()
	}
	month := o.month
	if month < 0 {
		month = 1
	}
	day := o.day
	cal := p.f.calendar()
	if day < 0 {
		day = 1
		if o.weekdaySet {
			// An unset day with a weekday names the first matching day of
			// the month.
			d := civil.Date{Year: year, Month: time.Month(month), Day: 1}
			for i := 0; i < 7; i++ {
				if cal.DayOfWeek(d) == o.weekday {
					break
				}
				d = cal.AddDays(d, 1)
			}
			day = d.Day
		}
	}
	d := civil.Date{Year: year, Month: time.Month(month), Day: day}
	if o.weekdaySet && o.day >= 0 && d.IsValid() && cal.DayOfWeek(d) != o.weekday {
		return Time{}, p.fail("weekday does not match the date")
	}
	tod := civil.NewTimeOfDay(hour, minute, second, ms)
	spec := p.f.defaultSpec()
	if o.offsetSet {
		if o.offset == 0 {
			spec = UTCSpec()
		} else {
			spec = OffsetSpec(o.offset)
		}
	}
	var t Time
	if dateOnly {
		t = NewDate(d, spec)
	} else {
		t = New(d, tod, spec)
	}
	return classify(t, p.input)
}

func (f Formatter) parsePattern(text, pattern string) (*patternParser, error) {
	input := simplify(text)
	p := &patternParser{
		f:     f,
		input: input,
		str:   []rune(input),
		out: parsed{
			year: -1, month: -1, day: -1,
			hour: -1, minute: -1, second: -1, ms: -1,
		},
	}
	if err := p.run(pattern); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse interprets text against a %-token pattern. Trailing input beyond
// the pattern is ignored; use ParseStrict to reject it. Input carrying no
// offset is given the formatter's default specification; zone names and
// abbreviations are matched syntactically but need ParseInZones to be
// resolved to a zone.
func (f Formatter) Parse(text, pattern string) (Time, error) {
	p, err := f.parsePattern(text, pattern)
	if err != nil {
		return Time{}, err
	}
	return p.assemble()
}

// ParseStrict is Parse but requires the pattern to consume the entire
// input.
func (f Formatter) ParseStrict(text, pattern string) (Time, error) {
	p, err := f.parsePattern(text, pattern)
	if err != nil {
		return Time{}, err
	}
	if p.s != len(p.str) {
		return Time{}, p.fail("trailing input at offset %d", p.s)
	}
	return p.assemble()
}

// ParseInZones is Parse with zone resolution: a zone name or abbreviation
// in the input is looked up in zones and the result is anchored there.
// An abbreviation naming several zones, or an offset in force in several
// zones, is an error unless offsetIfAmbiguous allows falling back to a
// plain offset specification.
func (f Formatter) ParseInZones(text, pattern string, zones *tzone.Zones, offsetIfAmbiguous bool) (Time, error) {
	p, err := f.parsePattern(text, pattern)
	if err != nil {
		return Time{}, err
	}
	t, err := p.assemble()
	if err != nil {
		return t, err
	}
	o := p.out
	switch {
	case o.zoneName != "":
		zone, ok := zones.Zone(o.zoneName)
		if !ok {
			return Time{}, errors.Wrapf(parseErr(p.input, "unknown time zone %q", o.zoneName), "resolving zone")
		}
		return t.WithSpec(ZoneSpec(zone)), nil

	case o.zoneAbbrev != "":
		var matches []tzone.Zone
		var offsets []int
		for _, zone := range zones.All() {
			offset := zone.OffsetAt(t.dt)
			utc := t.dt.AddSeconds(int64(-offset))
			if strings.EqualFold(zone.Abbreviation(utc), o.zoneAbbrev) {
				matches = append(matches, zone)
				offsets = append(offsets, offset)
			}
		}
		switch len(matches) {
		case 0:
			return Time{}, parseErr(p.input, "no zone uses abbreviation %q at that time", o.zoneAbbrev)
		case 1:
			return t.WithSpec(ZoneSpec(matches[0])), nil
		default:
			if offsetIfAmbiguous && allEqual(offsets) {
				return t.WithSpec(OffsetSpec(offsets[0])), nil
			}
			return Time{}, parseErr(p.input, "abbreviation %q is ambiguous", o.zoneAbbrev)
		}

	case o.offsetSet:
		var matches []tzone.Zone
		for _, zone := range zones.All() {
			if zone.OffsetAt(t.dt) == o.offset {
				matches = append(matches, zone)
			}
		}
		if len(matches) == 1 && o.offset != 0 {
			return t.WithSpec(ZoneSpec(matches[0])), nil
		}
		if len(matches) <= 1 || offsetIfAmbiguous {
			return t, nil // keep the offset (or UTC) specification
		}
		return Time{}, parseErr(p.input, "offset %+d is ambiguous between zones", o.offset)
	}
	return t, nil
}

func allEqual(v []int) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}

// RFC 2822 zone designations with defined offsets. All other alphabetic
// designations are unreliable and parse as -0000.
var rfcZones = map[string]int{
	"UT": 0, "GMT": 0,
	"EDT": -4 * 3600,
	"EST": -5 * 3600, "CDT": -5 * 3600,
	"CST": -6 * 3600, "MDT": -6 * 3600,
	"MST": -7 * 3600, "PDT": -7 * 3600,
	"PST": -8 * 3600,
}

var (
	rfcDateRx = regexp.MustCompile(`^(?:([A-Z][a-z]+),\s*)?(\d{1,2})(\s+|-)([^-\s]+)(\s+|-)(\d{2,4})\s+(\d\d):(\d\d)(?::(\d\d))?\s+(\S+)$`)
	rfcObsRx  = regexp.MustCompile(`^([A-Z][a-z]+)\s+(\S+)\s+(\d\d)\s+(\d\d):(\d\d):(\d\d)\s+(\d{4})$`)
)

// ParseRFC interprets an RFC 2822 date, including the obsolete asctime
// form. negZero reports the "-0000" convention (and unreliable zone names)
// meaning the true zone is unknown.
func ParseRFC(text string) (t Time, negZero bool, err error) {
	input := simplify(text)
	var dayName, monthName, zone string
	var day, year, hour, minute, second int
	if m := rfcDateRx.FindStringSubmatch(input); m != nil {
		sep1, sep2 := strings.TrimSpace(m[3]), strings.TrimSpace(m[5])
		if sep1 != sep2 {
			return Time{}, false, parseErr(input, "mismatched date separators")
		}
		dayName, monthName, zone = m[1], m[4], m[10]
		day, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[6])
		if len(m[6]) == 2 {
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
		}
		hour, _ = strconv.Atoi(m[7])
		minute, _ = strconv.Atoi(m[8])
		if m[9] != "" {
			second, _ = strconv.Atoi(m[9])
		}
	} else if m := rfcObsRx.FindStringSubmatch(input); m != nil {
		dayName, monthName = m[1], m[2]
		day, _ = strconv.Atoi(m[3])
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
		second, _ = strconv.Atoi(m[6])
		year, _ = strconv.Atoi(m[7])
		zone = "-0000"
	} else {
		return Time{}, false, parseErr(input, "not an RFC 2822 date")
	}

	month := monthByName(nil, monthName)
	if month == 0 {
		return Time{}, false, parseErr(input, "unknown month %q", monthName)
	}

	offset := 0
	switch {
	case len(zone) >= 5 && (zone[0] == '+' || zone[0] == '-'):
		hh, err1 := strconv.Atoi(zone[1:3])
		mm, err2 := strconv.Atoi(zone[3:5])
		if err1 != nil || err2 != nil || len(zone) != 5 {
			return Time{}, false, parseErr(input, "malformed zone %q", zone)
		}
		offset = hh*3600 + mm*60
		if zone[0] == '-' {
			offset = -offset
			negZero = offset == 0
		}
	case len(zone) == 1 && zone[0] >= 'A' && zone[0] <= 'Z' && zone != "J":
		// Military designations carry no reliable offset.
		negZero = true
	default:
		if known, ok := rfcZones[strings.ToUpper(zone)]; ok {
			offset = known
		} else if isAlpha(zone) {
			negZero = true
		} else {
			return Time{}, false, parseErr(input, "malformed zone %q", zone)
		}
	}

	leap := false
	if second == 60 {
		leap, second = true, 59
	}
	d := civil.Date{Year: year, Month: month, Day: day}
	spec := OffsetSpec(offset)
	if offset == 0 {
		spec = UTCSpec()
	}
	t, err = classify(New(d, civil.NewTimeOfDay(hour, minute, second, 0), spec), input)
	if err != nil {
		return t, negZero, err
	}
	if dayName != "" {
		w, ok := weekdayByName(nil, dayName)
		if !ok || w != d.Weekday() {
			return Time{}, false, parseErr(input, "weekday %q does not match the date", dayName)
		}
	}
	if leap && (hour*3600+minute*60+60-offset+86400*5)%86400 != 0 {
		return Time{}, false, parseErr(input, "leap second at a time other than 23:59:60 UTC")
	}
	return t, negZero, nil
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

var (
	isoExtDateRx   = regexp.MustCompile(`^(\d{4})-(\d\d)-(\d\d)$`)
	isoExtOrdRx    = regexp.MustCompile(`^(\d{4})-(\d{3})$`)
	isoBasicDateRx = regexp.MustCompile(`^(\d{4})(\d\d)(\d\d)$`)
	isoBasicOrdRx  = regexp.MustCompile(`^(\d{4})(\d{3})$`)
	isoExtTimeRx   = regexp.MustCompile(`^(\d\d)(?::(\d\d)(?::(\d\d)(?:[.,](\d+))?)?)?$`)
	isoBasicTimeRx = regexp.MustCompile(`^(\d\d)(?:(\d\d)(?:(\d\d)(?:[.,](\d+))?)?)?$`)
	isoExtZoneRx   = regexp.MustCompile(`^(?:Z|([+-])(\d\d)(?::(\d\d))?)$`)
	isoBasicZoneRx = regexp.MustCompile(`^(?:Z|([+-])(\d\d)(?:(\d\d))?)$`)
)

// ParseISO interprets an ISO 8601 date/time, in either extended or basic
// format, including ordinal dates, fractional seconds, the 24:00 end-of-day
// notation and leap seconds. A missing zone designator yields the
// formatter's default specification; a date without a time parses as a
// date-only value.
func (f Formatter) ParseISO(text string) (Time, error) {
	input := strings.TrimSpace(text)
	datePart := input
	timePart := ""
	if i := strings.IndexAny(input, "T "); i >= 0 {
		datePart, timePart = input[:i], input[i+1:]
	}

	var d civil.Date
	var basic bool
	switch {
	case isoExtDateRx.MatchString(datePart):
		m := isoExtDateRx.FindStringSubmatch(datePart)
		d = dateFromStrings(m[1], m[2], m[3])
	case isoExtOrdRx.MatchString(datePart):
		m := isoExtOrdRx.FindStringSubmatch(datePart)
		var err error
		if d, err = ordinalDate(input, m[1], m[2]); err != nil {
			return Time{}, err
		}
	case isoBasicDateRx.MatchString(datePart):
		m := isoBasicDateRx.FindStringSubmatch(datePart)
		d, basic = dateFromStrings(m[1], m[2], m[3]), true
	case isoBasicOrdRx.MatchString(datePart):
		m := isoBasicOrdRx.FindStringSubmatch(datePart)
		var err error
		if d, err = ordinalDate(input, m[1], m[2]); err != nil {
			return Time{}, err
		}
		basic = true
	default:
		return Time{}, parseErr(input, "not an ISO 8601 date")
	}

	if timePart == "" {
		return classify(NewDate(d, f.defaultSpec()), input)
	}

	// Split a trailing zone designator off the time.
	timeStr, zoneStr := timePart, ""
	if i := strings.IndexAny(timePart, "Z+-"); i >= 0 {
		timeStr, zoneStr = timePart[:i], timePart[i:]
	}
	timeRx, zoneRx := isoExtTimeRx, isoExtZoneRx
	if basic {
		timeRx, zoneRx = isoBasicTimeRx, isoBasicZoneRx
	}
	tm := timeRx.FindStringSubmatch(timeStr)
	if tm == nil {
		return Time{}, parseErr(input, "malformed ISO 8601 time %q", timeStr)
	}
	hour, _ := strconv.Atoi(tm[1])
	minute, second, ms := 0, 0, 0
	if tm[2] != "" {
		minute, _ = strconv.Atoi(tm[2])
	}
	if tm[3] != "" {
		second, _ = strconv.Atoi(tm[3])
	}
	if tm[4] != "" {
		frac := tm[4]
		for len(frac) < 3 {
			frac += "0"
		}
		ms, _ = strconv.Atoi(frac[:3])
	}

	spec := f.defaultSpec()
	offset := 0
	haveZone := false
	if zoneStr != "" {
		zm := zoneRx.FindStringSubmatch(zoneStr)
		if zm == nil {
			return Time{}, parseErr(input, "malformed ISO 8601 zone %q", zoneStr)
		}
		haveZone = true
		if zm[1] != "" {
			hh, _ := strconv.Atoi(zm[2])
			offset = hh * 3600
			if zm[3] != "" {
				mm, _ := strconv.Atoi(zm[3])
				offset += mm * 60
			}
			if zm[1] == "-" {
				offset = -offset
			}
		}
		if offset == 0 {
			spec = UTCSpec()
		} else {
			spec = OffsetSpec(offset)
		}
	}

	leap := false
	if second == 60 {
		leap, second = true, 59
	}
	if hour == 24 {
		if minute != 0 || second != 0 || ms != 0 {
			return Time{}, parseErr(input, "hour 24 is only valid at 24:00:00")
		}
		hour = 0
		d = d.AddDays(1)
	}
	if hour > 23 || minute > 59 || second > 59 {
		return Time{}, parseErr(input, "time component out of range")
	}
	if leap {
		if haveZone && (hour*3600+minute*60+60-offset+86400*5)%86400 != 0 {
			return Time{}, parseErr(input, "leap second at a time other than 23:59:60 UTC")
		}
		if !haveZone && (hour != 23 || minute != 59) {
			return Time{}, parseErr(input, "leap second at a time other than 23:59:60")
		}
	}
	return classify(New(d, civil.NewTimeOfDay(hour, minute, second, ms), spec), input)
}

// ParseISO interprets an ISO 8601 date/time with default settings.
func ParseISO(text string) (Time, error) {
	return Formatter{}.ParseISO(text)
}

func dateFromStrings(y, m, d string) civil.Date {
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)
	return civil.Date{Year: year, Month: time.Month(month), Day: day}
}

func ordinalDate(input, y, ddd string) (civil.Date, error) {
	year, _ := strconv.Atoi(y)
	doy, _ := strconv.Atoi(ddd)
	max := 365
	if civil.IsLeapYear(year) {
		max = 366
	}
	if doy < 1 || doy > max {
		return civil.Date{}, parseErr(input, "day of year %d out of range", doy)
	}
	return civil.Date{Year: year, Month: time.January, Day: 1}.AddDays(doy - 1), nil
}

var textDateRx = regexp.MustCompile(`^([A-Za-z]+) ([A-Za-z]+) (\d{1,2})(?: (\d\d):(\d\d)(?::(\d\d))?)? (\d{4})(?: ([+-])(\d\d):?(\d\d))?$`)

// ParseText interprets the plain text layout produced by the TextDate
// format: Fri May 3 10:20:30 2002 +0200. The time and the offset are both
// optional.
func ParseText(text string) (Time, error) {
	input := simplify(text)
	m := textDateRx.FindStringSubmatch(input)
	if m == nil {
		return Time{}, parseErr(input, "not a text-format date")
	}
	month := monthByName(nil, m[2])
	if month == 0 {
		return Time{}, parseErr(input, "unknown month %q", m[2])
	}
	day, _ := strconv.Atoi(m[3])
	year, _ := strconv.Atoi(m[7])
	d := civil.Date{Year: year, Month: month, Day: day}

	spec := ClockSpec()
	if m[8] != "" {
		hh, _ := strconv.Atoi(m[9])
		mm, _ := strconv.Atoi(m[10])
		offset := hh*3600 + mm*60
		if m[8] == "-" {
			offset = -offset
		}
		if offset == 0 {
			spec = UTCSpec()
		} else {
			spec = OffsetSpec(offset)
		}
	}

	var t Time
	if m[4] == "" {
		t = NewDate(d, spec)
	} else {
		hour, _ := strconv.Atoi(m[4])
		minute, _ := strconv.Atoi(m[5])
		second := 0
		if m[6] != "" {
			second, _ = strconv.Atoi(m[6])
		}
		if hour > 23 || minute > 59 || second > 59 {
			return Time{}, parseErr(input, "time component out of range")
		}
		t = New(d, civil.NewTimeOfDay(hour, minute, second, 0), spec)
	}
	t, err := classify(t, input)
	if err != nil {
		return t, err
	}
	if w, ok := weekdayByName(nil, m[1]); !ok || w != d.Weekday() {
		return Time{}, parseErr(input, "weekday %q does not match the date", m[1])
	}
	return t, nil
}
