// Package astro turns raw ephemeris longitudes into zodiac positions and
// charts: sign derivation, the ascendant, and natal and transit snapshots.
package astro

import (
	"log/slog"
	"math"

	"github.com/talgya/star-omens/internal/ephemeris"
)

// Sign is a zodiac sign label.
type Sign string

// The twelve signs, Aries first.
const (
	Aries       Sign = "aries"
	Taurus      Sign = "taurus"
	Gemini      Sign = "gemini"
	Cancer      Sign = "cancer"
	Leo         Sign = "leo"
	Virgo       Sign = "virgo"
	Libra       Sign = "libra"
	Scorpio     Sign = "scorpio"
	Sagittarius Sign = "sagittarius"
	Capricorn   Sign = "capricorn"
	Aquarius    Sign = "aquarius"
	Pisces      Sign = "pisces"
)

// DefaultSign is what a non-finite longitude maps to. Narrative lookups are
// keyed by sign, so a degenerate position must still land on a real one.
const DefaultSign = Aries

var zodiac = [12]Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// Normalize wraps a longitude into [0, 360).
func Normalize(deg float64) float64 {
	return ephemeris.NormalizeDegrees(deg)
}

// SignIndex returns the 0-based sign index for lon, and false when lon is not
// finite.
func SignIndex(lon float64) (int, bool) {
	n := Normalize(lon)
	if math.IsNaN(n) {
		return 0, false
	}
	return int(math.Floor(n/30)) % 12, true
}

// SignFor returns the sign containing lon. Boundaries belong to the later
// sign: 30.0 is Taurus. Non-finite input yields DefaultSign.
func SignFor(lon float64) Sign {
	idx, ok := SignIndex(lon)
	if !ok {
		slog.Warn("non-finite longitude, using default sign", "longitude", lon, "sign", DefaultSign)
		return DefaultSign
	}
	return zodiac[idx]
}

// DegreeInSign returns how far lon lies into its sign, in [0, 30).
func DegreeInSign(lon float64) float64 {
	n := Normalize(lon)
	if math.IsNaN(n) {
		return 0
	}
	return math.Mod(n, 30)
}
