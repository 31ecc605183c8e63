// Package ephemeris supplies geocentric ecliptic longitudes for the bodies the
// engine tracks. Precision is arc-minute class: enough for symbolic readings,
// not for navigation.
package ephemeris

import (
	"math"
	"time"
)

// Body identifies a tracked body or chart point.
type Body string

// Tracked bodies, in chart order.
const (
	Sun     Body = "Sun"
	Moon    Body = "Moon"
	Mercury Body = "Mercury"
	Venus   Body = "Venus"
	Mars    Body = "Mars"
	Jupiter Body = "Jupiter"
	Saturn  Body = "Saturn"
	Uranus  Body = "Uranus"
	Neptune Body = "Neptune"
	Pluto   Body = "Pluto"

	// Ascendant is a chart point, not a body; providers never return it.
	Ascendant Body = "Ascendant"
)

var trackedBodies = [...]Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

// TrackedBodies returns the ten bodies every provider reports, in chart order.
func TrackedBodies() []Body {
	out := make([]Body, len(trackedBodies))
	copy(out, trackedBodies[:])
	return out
}

// Location is a geographic position in degrees (north and east positive).
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Reading is one body's position at an instant.
type Reading struct {
	Body      Body
	Longitude float64 // ecliptic longitude of date, degrees in [0, 360)
	Speed     float64 // degrees per day; negative while retrograde
}

// Provider computes positions for every tracked body.
type Provider interface {
	Positions(t time.Time, loc Location) ([]Reading, error)
}

// NormalizeDegrees wraps deg into [0, 360). NaN and ±Inf pass through as NaN.
func NormalizeDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return math.NaN()
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -1e-15 + 360 rounds to 360.
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// deltaDegrees returns b-a folded into (-180, 180].
func deltaDegrees(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

func sinDeg(d float64) float64 { return math.Sin(d * math.Pi / 180) }
func cosDeg(d float64) float64 { return math.Cos(d * math.Pi / 180) }
