// Package tzone defines the time-zone capability consumed by the datetime
// package, together with the standard implementations: UTC, fixed-offset
// zones, and an adapter over *time.Location for real IANA zones.
//
// datetime only ever talks to the Zone interface; it never owns a zone or
// inspects transition data itself.
package tzone

import (
	"time"

	"github.com/go-timeuri/timeuri/civil"
)

// Zone converts between a zone's wall clock and UTC and reports the offset
// and designation in force at a given moment.
type Zone interface {
	// Name returns the zone identifier, e.g. "Europe/Zurich" or "UTC".
	Name() string
	// Abbreviation returns the designation in force at the given UTC instant,
	// e.g. "CEST".
	Abbreviation(utc civil.DateTime) string
	// OffsetAt returns the UTC offset in seconds in force at the given
	// wall-clock reading in the zone.
	OffsetAt(wall civil.DateTime) int
	// ToUTC converts a wall-clock reading in the zone to UTC.
	ToUTC(wall civil.DateTime) civil.DateTime
	// FromUTC converts a UTC reading to the zone's wall clock.
	FromUTC(utc civil.DateTime) civil.DateTime
}

// Local returns the current system zone. It is a variable so that clock-time
// resolution can observe system zone changes at runtime, and so tests can
// substitute a fixed zone.
var Local = func() Zone {
	return FromLocation(time.Local)
}

// Same reports whether two zones are the same zone, by identifier.
func Same(a, b Zone) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name() == b.Name()
}

type utcZone struct{}

// UTC is the Coordinated Universal Time zone.
var UTC Zone = utcZone{}

func (utcZone) Name() string                                  { return "UTC" }
func (utcZone) Abbreviation(civil.DateTime) string            { return "UTC" }
func (utcZone) OffsetAt(civil.DateTime) int                   { return 0 }
func (utcZone) ToUTC(wall civil.DateTime) civil.DateTime      { return wall }
func (utcZone) FromUTC(utc civil.DateTime) civil.DateTime     { return utc }

type fixedZone struct {
	name   string
	offset int
}

// FixedZone returns a zone at a constant offset east of UTC, in seconds.
func FixedZone(name string, offsetSeconds int) Zone {
	return fixedZone{name: name, offset: offsetSeconds}
}

func (z fixedZone) Name() string                       { return z.name }
func (z fixedZone) Abbreviation(civil.DateTime) string { return z.name }
func (z fixedZone) OffsetAt(civil.DateTime) int        { return z.offset }

func (z fixedZone) ToUTC(wall civil.DateTime) civil.DateTime {
	return wall.AddSeconds(int64(-z.offset))
}

func (z fixedZone) FromUTC(utc civil.DateTime) civil.DateTime {
	return utc.AddSeconds(int64(z.offset))
}

type locationZone struct {
	loc *time.Location
}

// FromLocation adapts a *time.Location, giving datetime access to the IANA
// zone database through the standard library.
func FromLocation(loc *time.Location) Zone {
	return locationZone{loc: loc}
}

func (z locationZone) Name() string {
	return z.loc.String()
}

func (z locationZone) Abbreviation(utc civil.DateTime) string {
	abbr, _ := utc.ToTime(time.UTC).In(z.loc).Zone()
	return abbr
}

func (z locationZone) OffsetAt(wall civil.DateTime) int {
	_, offset := wall.ToTime(z.loc).Zone()
	return offset
}

func (z locationZone) ToUTC(wall civil.DateTime) civil.DateTime {
	return civil.FromTime(wall.ToTime(z.loc).UTC())
}

func (z locationZone) FromUTC(utc civil.DateTime) civil.DateTime {
	return civil.FromTime(utc.ToTime(time.UTC).In(z.loc))
}

// Zones is an ordered collection of zones used by zone-aware parsing to
// look up names, abbreviations and offsets.
type Zones struct {
	order  []Zone
	byName map[string]Zone
}

// NewZones builds a collection from the given zones, kept in order.
func NewZones(zones ...Zone) *Zones {
	z := &Zones{byName: make(map[string]Zone, len(zones))}
	for _, zone := range zones {
		if _, dup := z.byName[zone.Name()]; dup {
			continue
		}
		z.order = append(z.order, zone)
		z.byName[zone.Name()] = zone
	}
	return z
}

// Zone returns the zone with the given name.
func (z *Zones) Zone(name string) (Zone, bool) {
	zone, ok := z.byName[name]
	return zone, ok
}

// All returns the zones in insertion order.
func (z *Zones) All() []Zone {
	return append([]Zone(nil), z.order...)
}
