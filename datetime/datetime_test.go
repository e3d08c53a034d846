package datetime

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-timeuri/timeuri/civil"
	"github.com/go-timeuri/timeuri/tzone"
)

func withLocal(t *testing.T, z tzone.Zone) {
	t.Helper()
	old := tzone.Local
	tzone.Local = func() tzone.Zone { return z }
	t.Cleanup(func() { tzone.Local = old })
}

func withNow(t *testing.T, now time.Time) {
	t.Helper()
	old := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = old })
}

func mustDate(y int, m time.Month, d int) civil.Date { return civil.NewDate(y, m, d) }

func at(y int, m time.Month, d, hh, mm, ss int, spec Spec) Time {
	return New(mustDate(y, m, d), civil.NewTimeOfDay(hh, mm, ss, 0), spec)
}

func TestSpecEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Spec
		want bool
	}{
		{"utc", UTCSpec(), UTCSpec(), true},
		{"utc vs clock", UTCSpec(), ClockSpec(), false},
		{"same offset", OffsetSpec(3600), OffsetSpec(3600), true},
		{"different offset", OffsetSpec(3600), OffsetSpec(7200), false},
		{"same zone name", ZoneSpec(tzone.FixedZone("X", 1)), ZoneSpec(tzone.FixedZone("X", 2)), true},
		{"different zone", ZoneSpec(tzone.FixedZone("X", 1)), ZoneSpec(tzone.FixedZone("Y", 1)), false},
		{"zone vs offset", ZoneSpec(tzone.FixedZone("X", 0)), OffsetSpec(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZeroTimeIsInvalid(t *testing.T) {
	var zero Time
	if zero.IsValid() {
		t.Error("zero Time reports valid")
	}
	if !zero.IsNull() {
		t.Error("zero Time not null")
	}
	if got := zero.ToUTC(); got.IsValid() {
		t.Error("conversion of invalid value is valid")
	}
	if got := zero.AddSeconds(60); got.IsValid() {
		t.Error("arithmetic on invalid value is valid")
	}
}

func TestToUTCFromOffset(t *testing.T) {
	v := at(2002, time.May, 3, 10, 20, 30, OffsetSpec(2*3600))
	got := v.ToUTC()
	want := civil.NewDateTime(mustDate(2002, time.May, 3), civil.NewTimeOfDay(8, 20, 30, 0))
	if diff := cmp.Diff(want, got.DateTime()); diff != "" {
		t.Errorf("ToUTC mismatch (-want +got):\n%s", diff)
	}
	if got.Spec().Kind() != SpecUTC {
		t.Errorf("spec = %v, want UTC", got.Spec().Kind())
	}
}

func TestToZoneRoundTrip(t *testing.T) {
	z := tzone.FixedZone("UTC+3", 3*3600)
	v := at(2002, time.May, 3, 10, 20, 30, UTCSpec())
	there := v.ToZone(z)
	if got := there.TimeOfDay().Hour; got != 13 {
		t.Errorf("hour in zone = %d, want 13", got)
	}
	back := there.ToUTC()
	if !back.Equal(v) || back.DateTime() != v.DateTime() {
		t.Errorf("round trip = %v, want %v", back, v)
	}
}

func TestClockTimeResolvesAgainstLocal(t *testing.T) {
	withLocal(t, tzone.FixedZone("LOC+2", 2*3600))
	v := at(2002, time.May, 3, 10, 20, 30, ClockSpec())
	u := v.ToUTC()
	if got := u.TimeOfDay().Hour; got != 8 {
		t.Errorf("UTC hour = %d, want 8", got)
	}
}

func TestClockTimeCacheFollowsZoneChange(t *testing.T) {
	local := tzone.FixedZone("LOC+2", 2*3600)
	old := tzone.Local
	tzone.Local = func() tzone.Zone { return local }
	t.Cleanup(func() { tzone.Local = old })

	v := at(2002, time.May, 3, 10, 0, 0, ClockSpec())
	if got := v.ToUTC().TimeOfDay().Hour; got != 8 {
		t.Fatalf("first resolution hour = %d, want 8", got)
	}
	// The system zone changes under the value; the cached UTC equivalent
	// must not be reused.
	local = tzone.FixedZone("LOC+5", 5*3600)
	if got := v.ToUTC().TimeOfDay().Hour; got != 5 {
		t.Errorf("after zone change hour = %d, want 5", got)
	}
}

func TestDateOnlyConversionKeepsDate(t *testing.T) {
	v := NewDate(mustDate(2002, time.May, 3), ZoneSpec(tzone.FixedZone("UTC+10", 10*3600)))
	got := v.ToUTC()
	if !got.IsDateOnly() {
		t.Fatal("date-only flag lost")
	}
	if got.Date() != mustDate(2002, time.May, 3) {
		t.Errorf("date = %v, want unchanged", got.Date())
	}
}

func TestToClockTimeKeepsLocalReading(t *testing.T) {
	withLocal(t, tzone.FixedZone("LOC+2", 2*3600))
	v := at(2002, time.May, 3, 8, 0, 0, UTCSpec())
	got := v.ToClockTime()
	if !got.IsClockTime() {
		t.Fatal("not clock time")
	}
	if got.TimeOfDay().Hour != 10 {
		t.Errorf("hour = %d, want 10", got.TimeOfDay().Hour)
	}
}

func TestToOffsetFromUTC(t *testing.T) {
	z := tzone.FixedZone("UTC+3", 3*3600)
	v := at(2002, time.May, 3, 13, 20, 30, ZoneSpec(z))
	got := v.ToOffsetFromUTC()
	if got.Spec().Kind() != SpecOffsetFromUTC || got.Spec().Offset() != 3*3600 {
		t.Fatalf("spec = %v/%d", got.Spec().Kind(), got.Spec().Offset())
	}
	if got.DateTime() != v.DateTime() {
		t.Errorf("wall clock changed: %v", got.DateTime())
	}
}

func TestAddSeconds(t *testing.T) {
	tests := []struct {
		name string
		in   Time
		n    int64
		want civil.DateTime
	}{
		{
			"offset spec goes through utc",
			at(2002, time.May, 3, 23, 59, 30, OffsetSpec(2*3600)),
			60,
			civil.NewDateTime(mustDate(2002, time.May, 4), civil.NewTimeOfDay(0, 0, 30, 0)),
		},
		{
			"clock time is naive",
			at(2002, time.May, 3, 10, 0, 0, ClockSpec()),
			3600,
			civil.NewDateTime(mustDate(2002, time.May, 3), civil.NewTimeOfDay(11, 0, 0, 0)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.AddSeconds(tt.n)
			if diff := cmp.Diff(tt.want, got.DateTime()); diff != "" {
				t.Errorf("AddSeconds mismatch (-want +got):\n%s", diff)
			}
			if !got.Spec().Equal(tt.in.Spec()) {
				t.Errorf("spec changed to %v", got.Spec().Kind())
			}
		})
	}
}

func TestAddSecondsDateOnlyTruncates(t *testing.T) {
	v := NewDate(mustDate(2002, time.May, 3), UTCSpec())
	if got := v.AddSeconds(86399).Date(); got != mustDate(2002, time.May, 3) {
		t.Errorf("+86399s moved a date-only value to %v", got)
	}
	if got := v.AddSeconds(86400).Date(); got != mustDate(2002, time.May, 4) {
		t.Errorf("+86400s = %v, want next day", got)
	}
}

func TestAddDaysKeepsTimeAndSpec(t *testing.T) {
	v := at(2002, time.May, 3, 10, 20, 30, OffsetSpec(3600))
	got := v.AddDays(30)
	if got.Date() != mustDate(2002, time.June, 2) {
		t.Errorf("date = %v", got.Date())
	}
	if got.TimeOfDay() != v.TimeOfDay() || !got.Spec().Equal(v.Spec()) {
		t.Error("time of day or spec changed")
	}
	if got := v.AddMonths(2).Date(); got != mustDate(2002, time.July, 3) {
		t.Errorf("AddMonths = %v", got)
	}
	if got := v.AddYears(-1).Date(); got != mustDate(2001, time.May, 3) {
		t.Errorf("AddYears = %v", got)
	}
}

func TestSecsTo(t *testing.T) {
	utc := at(2002, time.May, 3, 8, 20, 30, UTCSpec())
	offset := at(2002, time.May, 3, 10, 20, 30, OffsetSpec(2*3600))
	if got := utc.SecsTo(offset); got != 0 {
		t.Errorf("same instant SecsTo = %d", got)
	}
	later := at(2002, time.May, 3, 9, 20, 30, UTCSpec())
	if got := utc.SecsTo(later); got != 3600 {
		t.Errorf("SecsTo = %d, want 3600", got)
	}

	c1 := at(2002, time.May, 3, 10, 0, 0, ClockSpec())
	c2 := at(2002, time.May, 3, 11, 0, 0, ClockSpec())
	if got := c1.SecsTo(c2); got != 3600 {
		t.Errorf("clock SecsTo = %d, want 3600", got)
	}

	day := NewDate(mustDate(2002, time.May, 3), UTCSpec())
	nextDay := NewDate(mustDate(2002, time.May, 5), UTCSpec())
	if got := day.SecsTo(nextDay); got != 2*86400 {
		t.Errorf("date-only SecsTo = %d, want 172800", got)
	}
}

func TestDaysTo(t *testing.T) {
	v := at(2002, time.May, 3, 10, 0, 0, UTCSpec())
	other := at(2002, time.May, 4, 0, 30, 0, OffsetSpec(2*3600)) // 2002-05-03T22:30Z
	if got := v.DaysTo(other); got != 0 {
		t.Errorf("DaysTo = %d, want 0 (same UTC day)", got)
	}
	if got := other.DaysTo(v); got != -1 {
		t.Errorf("reverse DaysTo = %d, want -1 (different day at +02:00)", got)
	}
}

func TestCompare(t *testing.T) {
	utc := UTCSpec()
	day := NewDate(mustDate(2002, time.May, 3), utc)
	inside := at(2002, time.May, 3, 10, 0, 0, utc)
	tests := []struct {
		name string
		a, b Time
		want Comparison
	}{
		{"instants equal", inside, at(2002, time.May, 3, 10, 0, 0, OffsetSpec(0)), Equal},
		{"instant before", inside, at(2002, time.May, 3, 11, 0, 0, utc), Before},
		{"instant after", inside, at(2002, time.May, 3, 9, 0, 0, utc), After},
		{"day contains instant", day, inside, Contains},
		{"instant contained by day", inside, day, ContainedBy},
		{"day before next day", day, NewDate(mustDate(2002, time.May, 4), utc), Before},
		{"days equal across specs", day, NewDate(mustDate(2002, time.May, 3), ClockSpec()), Equal},
		{"day equals itself", day, NewDate(mustDate(2002, time.May, 3), utc), Equal},
		{"day after instant of previous day", day, at(2002, time.May, 2, 23, 0, 0, utc), After},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqualAndLess(t *testing.T) {
	utc := at(2002, time.May, 3, 8, 20, 30, UTCSpec())
	offset := at(2002, time.May, 3, 10, 20, 30, OffsetSpec(2*3600))
	if !utc.Equal(offset) {
		t.Error("same instant across specs not Equal")
	}
	if utc.Less(offset) || offset.Less(utc) {
		t.Error("equal instants ordered")
	}

	day := NewDate(mustDate(2002, time.May, 3), UTCSpec())
	inside := at(2002, time.May, 3, 15, 0, 0, OffsetSpec(0))
	if !day.Equal(inside) {
		t.Error("instant within the day not Equal to the date-only value")
	}
	outside := at(2002, time.May, 4, 0, 0, 0, OffsetSpec(0))
	if day.Equal(outside) {
		t.Error("instant outside the day Equal to the date-only value")
	}
	if !day.Less(NewDate(mustDate(2002, time.May, 4), ClockSpec())) {
		t.Error("date-only ordering across specs failed")
	}
}

func TestWithSpecReinterprets(t *testing.T) {
	v := at(2002, time.May, 3, 10, 20, 30, UTCSpec())
	got := v.WithSpec(OffsetSpec(2 * 3600))
	if got.DateTime() != v.DateTime() {
		t.Error("wall clock changed")
	}
	if got.ToUTC().TimeOfDay().Hour != 8 {
		t.Errorf("reinterpreted UTC hour = %d, want 8", got.ToUTC().TimeOfDay().Hour)
	}
}

func TestWithDateOnlyCanonicalizes(t *testing.T) {
	v := at(2002, time.May, 3, 10, 20, 30, UTCSpec()).WithDateOnly(true)
	if !v.IsDateOnly() || v.TimeOfDay() != civil.StartOfDay {
		t.Errorf("date-only value carries time %v", v.TimeOfDay())
	}
}

func TestUnix(t *testing.T) {
	v := at(1970, time.January, 1, 0, 0, 0, UTCSpec())
	if got := v.Unix(); got != 0 {
		t.Errorf("Unix = %d, want 0", got)
	}
	if got := at(1970, time.January, 2, 0, 0, 1, OffsetSpec(0)).Unix(); got != 86401 {
		t.Errorf("Unix = %d, want 86401", got)
	}
}

func TestNow(t *testing.T) {
	withLocal(t, tzone.FixedZone("LOC", 0))
	withNow(t, time.Date(2002, time.May, 3, 10, 20, 30, 0, time.UTC))
	v := Now()
	if !v.IsValid() || v.Date() != mustDate(2002, time.May, 3) {
		t.Errorf("Now() = %v", v)
	}
	if !v.IsLocalZone() {
		t.Error("Now() is not in the local zone")
	}
}
