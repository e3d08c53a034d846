package dayperiod

import (
	"testing"

	"github.com/go-timeuri/timeuri/civil"
)

func amPM() (Period, Period) {
	r := Default(nil)
	periods := r.Periods()
	return periods[0], periods[1]
}

func TestHourInPeriodBoundaries(t *testing.T) {
	am, pm := amPM()
	tests := []struct {
		name   string
		period Period
		time   civil.TimeOfDay
		want   int
	}{
		{"midnight", am, civil.NewTimeOfDay(0, 0, 0, 0), 12},
		{"one am", am, civil.NewTimeOfDay(1, 0, 0, 0), 1},
		{"late morning", am, civil.NewTimeOfDay(11, 59, 59, 999), 11},
		{"noon", pm, civil.NewTimeOfDay(12, 0, 0, 0), 12},
		{"one pm", pm, civil.NewTimeOfDay(13, 0, 0, 0), 1},
		{"end of day", pm, civil.NewTimeOfDay(23, 59, 59, 999), 11},
		{"noon not in am", am, civil.NewTimeOfDay(12, 0, 0, 0), -1},
		{"morning not in pm", pm, civil.NewTimeOfDay(3, 0, 0, 0), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.period.HourInPeriod(tt.time); got != tt.want {
				t.Errorf("HourInPeriod(%v) = %d, want %d", tt.time, got, tt.want)
			}
		})
	}
}

func TestDefaultRegistryPartition(t *testing.T) {
	r := Default(nil)
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 30, 59} {
			tod := civil.NewTimeOfDay(h, m, 59, 999)
			matches := 0
			for _, p := range r.Periods() {
				if p.Contains(tod) {
					matches++
				}
			}
			if matches != 1 {
				t.Errorf("%v matched %d periods, want exactly 1", tod, matches)
			}
		}
	}
}

func TestResolve(t *testing.T) {
	r := Default(nil)
	if got := r.Resolve(civil.NewTimeOfDay(9, 30, 0, 0)).Code(); got != "am" {
		t.Errorf("Resolve(09:30) = %q, want am", got)
	}
	if got := r.Resolve(civil.NewTimeOfDay(12, 0, 0, 0)).Code(); got != "pm" {
		t.Errorf("Resolve(12:00) = %q, want pm", got)
	}
	if p := (Registry{}).Resolve(civil.NewTimeOfDay(9, 0, 0, 0)); p.IsValid() {
		t.Error("empty registry resolved to a valid period")
	}
}

func TestTimeInversesHourInPeriod(t *testing.T) {
	r := Default(nil)
	for h := 0; h < 24; h++ {
		tod := civil.NewTimeOfDay(h, 15, 30, 250)
		p := r.Resolve(tod)
		label := p.HourInPeriod(tod)
		if label < 0 {
			t.Fatalf("HourInPeriod(%v) failed", tod)
		}
		got, ok := p.Time(label, 15, 30, 250)
		if !ok || got != tod {
			t.Errorf("Time(%d) = %v, %v; want %v", label, got, ok, tod)
		}
	}
}

func TestTimeRejectsNonMembers(t *testing.T) {
	_, pm := amPM()
	if _, ok := pm.Time(13, 0, 0, 0); ok {
		t.Error("hour label 13 accepted by the pm period")
	}
	if _, ok := (Period{}).Time(1, 0, 0, 0); ok {
		t.Error("invalid period produced a time")
	}
}

func TestWrappingPeriod(t *testing.T) {
	night := New("night", "Night", "night", "n",
		civil.NewTimeOfDay(22, 0, 0, 0), civil.NewTimeOfDay(4, 59, 59, 999), 0, 0)
	tests := []struct {
		time civil.TimeOfDay
		want bool
	}{
		{civil.NewTimeOfDay(23, 0, 0, 0), true},
		{civil.NewTimeOfDay(22, 0, 0, 0), true},
		{civil.NewTimeOfDay(3, 0, 0, 0), true},
		{civil.NewTimeOfDay(4, 59, 59, 999), true},
		{civil.NewTimeOfDay(5, 0, 0, 0), false},
		{civil.NewTimeOfDay(12, 0, 0, 0), false},
	}
	for _, tt := range tests {
		if got := night.Contains(tt.time); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.time, got, tt.want)
		}
	}
}

type mapTranslator map[string]string

func (m mapTranslator) Translate(key string) string { return m[key] }

func TestDefaultRegistryTranslated(t *testing.T) {
	r := Default(mapTranslator{"am": "vorm.", "pm": "nachm."})
	am := r.Periods()[0]
	if got := am.Name(ShortName); got != "vorm." {
		t.Errorf("short name = %q, want vorm.", got)
	}
	if got := am.Name(LongName); got != "VORM." {
		t.Errorf("long name = %q, want VORM.", got)
	}
	if got := am.Name(NarrowName); got != "v" {
		t.Errorf("narrow name = %q, want v", got)
	}
}

func TestDefaultRegistryMultibyteNarrowName(t *testing.T) {
	r := Default(mapTranslator{"am": "午前", "pm": "午後"})
	am, pm := r.Periods()[0], r.Periods()[1]
	if got := am.Name(NarrowName); got != "午" {
		t.Errorf("am narrow name = %q, want 午", got)
	}
	if got := pm.Name(NarrowName); got != "午" {
		t.Errorf("pm narrow name = %q, want 午", got)
	}
}
