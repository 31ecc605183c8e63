package astro

import (
	"math"
	"time"

	"github.com/talgya/star-omens/internal/ephemeris"
)

// LocalSiderealTime returns local apparent sidereal time in hours for an
// east-positive geographic longitude.
func LocalSiderealTime(t time.Time, longitude float64) float64 {
	lst := math.Mod(ephemeris.GreenwichApparentSiderealTime(t)+longitude/15, 24)
	if lst < 0 {
		lst += 24
	}
	return lst
}

// AscendantFromRAMC returns the ecliptic longitude rising on the eastern
// horizon for a right ascension of the meridian (degrees) and latitude.
func AscendantFromRAMC(ramc, latitude float64) float64 {
	const rad = math.Pi / 180
	eps := ephemeris.Obliquity * rad
	r := ramc * rad
	phi := latitude * rad

	asc := math.Atan2(math.Cos(r), -(math.Sin(r)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps)))
	return Normalize(asc / rad)
}

// Ascendant returns the rising ecliptic longitude at t for the given place.
func Ascendant(t time.Time, latitude, longitude float64) float64 {
	ramc := LocalSiderealTime(t, longitude) * 15
	return AscendantFromRAMC(ramc, latitude)
}
