// Package aspects compares a natal chart with a transit chart and scores the
// angular relationships between them. Detection is a pure function: it never
// filters by strength, that is left to the narrative selector.
package aspects

import (
	"math"
	"sort"
	"time"

	"github.com/talgya/star-omens/internal/astro"
	"github.com/talgya/star-omens/internal/ephemeris"
	"github.com/talgya/star-omens/internal/phi"
)

// Aspect names an angular relationship.
type Aspect string

// Aspect types.
const (
	Conjunction Aspect = "conjunction"
	Opposition  Aspect = "opposition"
	Trine       Aspect = "trine"
	Square      Aspect = "square"
	Sextile     Aspect = "sextile"
)

// Definition is one row of the aspect table.
type Definition struct {
	Type   Aspect
	Angle  float64 // nominal separation, degrees
	MaxOrb float64 // inclusive tolerance, degrees
	Weight float64 // felt intensity
	Verb   string  // "Saturn opposes your Sun"
}

var definitions = [...]Definition{
	{Conjunction, 0, 8, phi.Nous, "meets"},
	{Opposition, 180, 8, phi.Being, "opposes"},
	{Trine, 120, 6, phi.Matter, "trines"},
	{Square, 90, 6, phi.Monad, "squares"},
	{Sextile, 60, 4, phi.Psyche, "sextiles"},
}

// Lookup returns the definition for an aspect type.
func Lookup(a Aspect) (Definition, bool) {
	for _, d := range definitions {
		if d.Type == a {
			return d, true
		}
	}
	return Definition{}, false
}

// Signal is one transit-to-natal aspect in orb.
type Signal struct {
	TransitPlanet ephemeris.Body `json:"transitPlanet"`
	NatalPlanet   ephemeris.Body `json:"natalPlanet"`
	Aspect        Aspect         `json:"aspectType"`
	Distance      float64        `json:"distance"` // shortest separation, degrees
	Orb           float64        `json:"orb"`      // |distance - nominal angle|
	Score         float64        `json:"score"`
	Theme         Theme          `json:"theme"`

	// Applying is true while the transit body closes on exactness. Only
	// meaningful when the transit position carried a speed.
	Applying bool `json:"applying,omitempty"`
}

// Separation returns the shortest angular distance between two longitudes,
// in [0, 180].
func Separation(a, b float64) float64 {
	d := math.Abs(a - b)
	d = math.Mod(d, 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Score weighs an aspect at a given orb between two bodies. Tighter orbs
// always score higher for the same pair and aspect.
func Score(def Definition, orb float64, transit, natal ephemeris.Body) float64 {
	closeness := 1 - orb/def.MaxOrb
	return def.Weight * closeness * TransitWeight(transit) * NatalWeight(natal)
}

// Detect returns every aspect in orb between each transit and natal position,
// strongest first. Equal scores keep transit, natal, then table order.
// Degenerate positions carry no real longitude and are skipped.
func Detect(natal, transit []astro.PlanetPosition) []Signal {
	var signals []Signal
	for _, tp := range transit {
		if tp.Degenerate {
			continue
		}
		for _, np := range natal {
			if np.Degenerate {
				continue
			}
			signals = append(signals, detectPair(tp, np)...)
		}
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Score > signals[j].Score
	})
	return signals
}

// detectPair checks every aspect; windows do not overlap with the default
// table, but all matches are reported regardless.
func detectPair(tp, np astro.PlanetPosition) []Signal {
	dist := Separation(tp.Longitude, np.Longitude)

	var out []Signal
	for _, def := range definitions {
		orb := math.Abs(dist - def.Angle)
		if orb > def.MaxOrb {
			continue
		}
		out = append(out, Signal{
			TransitPlanet: tp.Name,
			NatalPlanet:   np.Name,
			Aspect:        def.Type,
			Distance:      dist,
			Orb:           orb,
			Score:         Score(def, orb, tp.Name, np.Name),
			Theme:         ThemeFor(tp.Name, np.Name),
			Applying:      applying(tp, np, def, orb),
		})
	}
	return out
}

// applying looks an hour ahead along the transit body's motion.
func applying(tp, np astro.PlanetPosition, def Definition, orb float64) bool {
	if tp.Speed == 0 {
		return false
	}
	next := tp.Longitude + tp.Speed/24
	return math.Abs(Separation(next, np.Longitude)-def.Angle) < orb
}

// TimeToExact estimates the offset from the chart instant to exactness:
// positive while applying, negative once separating. ok is false when the
// transit speed is unknown.
func TimeToExact(s Signal, transitSpeed float64) (offset time.Duration, ok bool) {
	if s.Orb == 0 {
		return 0, true
	}
	if transitSpeed == 0 || math.IsNaN(transitSpeed) {
		return 0, false
	}
	days := s.Orb / math.Abs(transitSpeed)
	offset = time.Duration(days * float64(24*time.Hour))
	if !s.Applying {
		offset = -offset
	}
	return offset, true
}
