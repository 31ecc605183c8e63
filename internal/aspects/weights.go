package aspects

import (
	"github.com/talgya/star-omens/internal/ephemeris"
	"github.com/talgya/star-omens/internal/phi"
)

// Slow bodies dominate as transiting influences.
var transitRank = map[ephemeris.Body]int{
	ephemeris.Moon:    0,
	ephemeris.Sun:     1,
	ephemeris.Mercury: 2,
	ephemeris.Venus:   3,
	ephemeris.Mars:    4,
	ephemeris.Jupiter: 5,
	ephemeris.Saturn:  6,
	ephemeris.Uranus:  7,
	ephemeris.Neptune: 8,
	ephemeris.Pluto:   9,
}

// Luminaries and personal points dominate as natal anchors.
var natalWeight = map[ephemeris.Body]float64{
	ephemeris.Sun:       phi.Being,
	ephemeris.Moon:      phi.Being,
	ephemeris.Ascendant: phi.Being,
	ephemeris.Mercury:   phi.Monad,
	ephemeris.Venus:     phi.Monad,
	ephemeris.Mars:      phi.Monad,
	ephemeris.Jupiter:   phi.Matter,
	ephemeris.Saturn:    phi.Matter,
	ephemeris.Uranus:    phi.Psyche,
	ephemeris.Neptune:   phi.Psyche,
	ephemeris.Pluto:     phi.Psyche,
}

// TransitWeight returns the influence of b as a transiting body.
func TransitWeight(b ephemeris.Body) float64 {
	rank, ok := transitRank[b]
	if !ok {
		return phi.Monad
	}
	return phi.Step(rank)
}

// NatalWeight returns the sensitivity of b as a natal point.
func NatalWeight(b ephemeris.Body) float64 {
	w, ok := natalWeight[b]
	if !ok {
		return phi.Psyche
	}
	return w
}
