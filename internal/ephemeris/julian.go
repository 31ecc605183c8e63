package ephemeris

import (
	"math"
	"time"
)

// J2000 is the Julian day of 2000-01-01 12:00 TT.
const J2000 = 2451545.0

// Obliquity is the mean obliquity of the ecliptic (degrees) used throughout.
// Its drift over the supported date range is a few arc-seconds.
const Obliquity = 23.4393

// JulianDay converts t to a Julian day number. UTC stands in for TT; the
// difference (about a minute) is below the model's precision.
func JulianDay(t time.Time) float64 {
	return float64(t.Unix())/86400 + float64(t.Nanosecond())/86400e9 + 2440587.5
}

// JulianCenturies returns Julian centuries since J2000.
func JulianCenturies(t time.Time) float64 {
	return (JulianDay(t) - J2000) / 36525
}

// GreenwichMeanSiderealTime returns GMST in degrees (Meeus eq. 12.4).
func GreenwichMeanSiderealTime(t time.Time) float64 {
	jd := JulianDay(t)
	T := (jd - J2000) / 36525
	theta := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000
	return NormalizeDegrees(theta)
}

// NutationInLongitude returns Δψ in degrees from the four largest terms.
func NutationInLongitude(t time.Time) float64 {
	T := JulianCenturies(t)
	omega := 125.04452 - 1934.136261*T
	sunL := 280.4665 + 36000.7698*T
	moonL := 218.3165 + 481267.8813*T
	arcsec := -17.20*sinDeg(omega) -
		1.32*sinDeg(2*sunL) -
		0.23*sinDeg(2*moonL) +
		0.21*sinDeg(2*omega)
	return arcsec / 3600
}

// GreenwichApparentSiderealTime returns GAST in hours, in [0, 24).
func GreenwichApparentSiderealTime(t time.Time) float64 {
	gast := GreenwichMeanSiderealTime(t) + NutationInLongitude(t)*cosDeg(Obliquity)
	return math.Mod(NormalizeDegrees(gast)/15, 24)
}
