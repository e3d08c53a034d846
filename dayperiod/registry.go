package dayperiod

import (
	"strings"

	"github.com/go-timeuri/timeuri/civil"
)

// Registry is an ordered collection of periods for one locale.
// Insertion order is evaluation order: when period ranges overlap, the
// first period containing a time wins.
type Registry struct {
	periods []Period
}

// NewRegistry builds a registry from the given periods, kept in order.
func NewRegistry(periods ...Period) Registry {
	return Registry{periods: append([]Period(nil), periods...)}
}

// Periods returns the registered periods in evaluation order.
func (r Registry) Periods() []Period {
	return append([]Period(nil), r.periods...)
}

// Resolve returns the first registered period containing t, or the invalid
// sentinel period if none matches.
func (r Registry) Resolve(t civil.TimeOfDay) Period {
	for _, p := range r.periods {
		if p.Contains(t) {
			return p
		}
	}
	return Period{}
}

func translate(tr Translator, key, fallback string) string {
	if tr != nil {
		if s := tr.Translate(key); s != "" {
			return s
		}
	}
	return fallback
}

// firstRune returns the first rune of s, so a multibyte translation still
// yields a valid narrow name.
func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return s
}

// Default returns the standard two-period AM/PM registry for the 12-hour
// clock. Period names come from the translator when one is supplied,
// falling back to English.
func Default(tr Translator) Registry {
	am := translate(tr, "am", "am")
	pm := translate(tr, "pm", "pm")
	return NewRegistry(
		New("am", strings.ToUpper(am), am, firstRune(am),
			civil.StartOfDay, civil.NewTimeOfDay(11, 59, 59, 999), 0, 12),
		New("pm", strings.ToUpper(pm), pm, firstRune(pm),
			civil.NewTimeOfDay(12, 0, 0, 0), civil.EndOfDay, 0, 12),
	)
}
