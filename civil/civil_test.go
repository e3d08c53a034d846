package civil

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDayNumberRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		date Date
		num  int
	}{
		{"epoch", NewDate(1970, time.January, 1), 0},
		{"day after epoch", NewDate(1970, time.January, 2), 1},
		{"day before epoch", NewDate(1969, time.December, 31), -1},
		{"gregorian start", NewDate(1753, time.January, 1), -79257},
		{"y2k", NewDate(2000, time.March, 1), 11017},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.DayNumber(); got != tt.num {
				t.Errorf("DayNumber() = %d, want %d", got, tt.num)
			}
			if got := DateFromDayNumber(tt.num); got != tt.date {
				t.Errorf("DateFromDayNumber(%d) = %v, want %v", tt.num, got, tt.date)
			}
		})
	}
}

func TestDayNumberInverse(t *testing.T) {
	for n := -800000; n <= 800000; n += 7919 {
		if got := DateFromDayNumber(n).DayNumber(); got != n {
			t.Fatalf("DayNumber(DateFromDayNumber(%d)) = %d", n, got)
		}
	}
}

func TestWeekday(t *testing.T) {
	tests := []struct {
		date Date
		want time.Weekday
	}{
		{NewDate(1970, time.January, 1), time.Thursday},
		{NewDate(2002, time.May, 3), time.Friday},
		{NewDate(2000, time.January, 1), time.Saturday},
		{NewDate(1900, time.February, 28), time.Wednesday},
	}
	for _, tt := range tests {
		if got := tt.date.Weekday(); got != tt.want {
			t.Errorf("%v.Weekday() = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestAddMonthsClamps(t *testing.T) {
	tests := []struct {
		name string
		date Date
		n    int
		want Date
	}{
		{"plain", NewDate(2002, time.May, 3), 1, NewDate(2002, time.June, 3)},
		{"year wrap", NewDate(2002, time.November, 15), 3, NewDate(2003, time.February, 15)},
		{"clamp to feb", NewDate(2002, time.January, 31), 1, NewDate(2002, time.February, 28)},
		{"clamp leap feb", NewDate(2000, time.January, 31), 1, NewDate(2000, time.February, 29)},
		{"negative", NewDate(2002, time.January, 15), -2, NewDate(2001, time.November, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.AddMonths(tt.n); got != tt.want {
				t.Errorf("AddMonths(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestAddYearsClampsLeapDay(t *testing.T) {
	got := NewDate(2000, time.February, 29).AddYears(1)
	want := NewDate(2001, time.February, 28)
	if got != want {
		t.Errorf("AddYears(1) = %v, want %v", got, want)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		date Date
		want bool
	}{
		{NewDate(2002, time.May, 3), true},
		{NewDate(2000, time.February, 29), true},
		{NewDate(1900, time.February, 29), false},
		{NewDate(2002, time.April, 31), false},
		{NewDate(2002, 0, 1), false},
		{NewDate(2002, 13, 1), false},
		{Date{}, false},
	}
	for _, tt := range tests {
		if got := tt.date.IsValid(); got != tt.want {
			t.Errorf("%v.IsValid() = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestTimeOfDayMillisRoundTrip(t *testing.T) {
	tests := []TimeOfDay{
		StartOfDay,
		EndOfDay,
		NewTimeOfDay(10, 20, 30, 0),
		NewTimeOfDay(23, 0, 0, 1),
	}
	for _, tod := range tests {
		if got := TimeOfDayFromMillis(tod.MillisOfDay()); got != tod {
			t.Errorf("round trip of %v = %v", tod, got)
		}
	}
}

func TestDateTimeAddSeconds(t *testing.T) {
	tests := []struct {
		name string
		dt   DateTime
		n    int64
		want DateTime
	}{
		{
			"within day",
			NewDateTime(NewDate(2002, time.May, 3), NewTimeOfDay(10, 20, 30, 0)),
			60,
			NewDateTime(NewDate(2002, time.May, 3), NewTimeOfDay(10, 21, 30, 0)),
		},
		{
			"across midnight",
			NewDateTime(NewDate(2002, time.May, 3), NewTimeOfDay(23, 59, 30, 0)),
			60,
			NewDateTime(NewDate(2002, time.May, 4), NewTimeOfDay(0, 0, 30, 0)),
		},
		{
			"backwards across midnight",
			NewDateTime(NewDate(2002, time.May, 3), NewTimeOfDay(0, 0, 30, 0)),
			-60,
			NewDateTime(NewDate(2002, time.May, 2), NewTimeOfDay(23, 59, 30, 0)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.dt.AddSeconds(tt.n)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AddSeconds(%d) mismatch (-want +got):\n%s", tt.n, diff)
			}
		})
	}
}

func TestDateTimeSecondsTo(t *testing.T) {
	a := NewDateTime(NewDate(2002, time.May, 3), NewTimeOfDay(10, 0, 0, 0))
	b := NewDateTime(NewDate(2002, time.May, 4), NewTimeOfDay(10, 0, 30, 0))
	if got := a.SecondsTo(b); got != 86430 {
		t.Errorf("SecondsTo = %d, want 86430", got)
	}
	if got := b.SecondsTo(a); got != -86430 {
		t.Errorf("reverse SecondsTo = %d, want -86430", got)
	}
}

func TestDateTimeToTimeRoundTrip(t *testing.T) {
	dt := NewDateTime(NewDate(2002, time.May, 3), NewTimeOfDay(10, 20, 30, 125))
	if got := FromTime(dt.ToTime(time.UTC)); got != dt {
		t.Errorf("FromTime(ToTime()) = %v, want %v", got, dt)
	}
}

func TestDateString(t *testing.T) {
	if got := NewDate(2002, time.May, 3).String(); got != "2002-05-03" {
		t.Errorf("String() = %q", got)
	}
	dt := NewDateTime(NewDate(2002, time.May, 3), NewTimeOfDay(10, 20, 30, 0))
	if got := dt.String(); got != "2002-05-03T10:20:30" {
		t.Errorf("DateTime.String() = %q", got)
	}
}
