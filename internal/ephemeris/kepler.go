package ephemeris

import (
	"log/slog"
	"math"
	"time"
)

// elements are J2000 Keplerian elements and their per-century rates, from the
// JPL "Approximate Positions of the Planets" table valid for 1800–2050.
// Angles in degrees, a in AU.
type elements struct {
	a, e, i, l, peri, node                   float64
	aDot, eDot, iDot, lDot, periDot, nodeDot float64
}

var (
	earthBary = elements{
		1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
		0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0,
	}

	planetElements = map[Body]elements{
		Mercury: {
			0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
			0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081,
		},
		Venus: {
			0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
			0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418,
		},
		Mars: {
			1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
			0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343,
		},
		Jupiter: {
			5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
			-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106,
		},
		Saturn: {
			9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
			-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794,
		},
		Uranus: {
			19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503,
			-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589,
		},
		Neptune: {
			30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
			0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664,
		},
		Pluto: {
			39.48211675, 0.24882730, 17.14001206, 238.92903833, 224.06891629, 110.30393684,
			-0.00031596, 0.00005170, 0.00004818, 145.20780515, -0.04062942, -0.01183482,
		},
	}
)

// precessionRate is general precession in longitude, degrees per century. The
// element table is referred to the J2000 equinox; charts use the equinox of date.
const precessionRate = 1.396971

// speedWindow is the half-width of the central difference used for speeds.
const speedWindow = 12 * time.Hour

// Kepler is a Provider built on mean orbital elements. Positions are
// geocentric, so the location argument is ignored.
type Kepler struct {
	bodies []Body
}

// NewKepler returns the default provider.
func NewKepler() *Kepler {
	return &Kepler{bodies: TrackedBodies()}
}

// Positions returns every tracked body at t. A body whose longitude cannot be
// computed comes back as NaN rather than failing the whole chart; callers map
// it to a default sign.
func (k *Kepler) Positions(t time.Time, _ Location) ([]Reading, error) {
	out := make([]Reading, 0, len(k.bodies))
	for _, b := range k.bodies {
		lon := Longitude(b, t)
		before := Longitude(b, t.Add(-speedWindow))
		after := Longitude(b, t.Add(speedWindow))
		speed := deltaDegrees(before, after) / (2 * speedWindow.Hours() / 24)

		if math.IsNaN(lon) || math.IsNaN(speed) {
			slog.Warn("non-finite ephemeris position", "body", b, "instant", t.UTC())
		}
		out = append(out, Reading{Body: b, Longitude: lon, Speed: speed})
	}
	return out, nil
}

// Longitude returns the geocentric ecliptic longitude of date for a tracked
// body, or NaN for anything else.
func Longitude(b Body, t time.Time) float64 {
	T := JulianCenturies(t)

	if b == Moon {
		return moonLongitude(T)
	}

	ex, ey, _ := heliocentric(earthBary, T)
	var x, y float64
	if b == Sun {
		x, y = -ex, -ey
	} else {
		el, ok := planetElements[b]
		if !ok {
			return math.NaN()
		}
		px, py, _ := heliocentric(el, T)
		x, y = px-ex, py-ey
	}

	lon := math.Atan2(y, x) * 180 / math.Pi
	return NormalizeDegrees(lon + precessionRate*T)
}

// heliocentric returns J2000 ecliptic rectangular coordinates in AU.
func heliocentric(el elements, T float64) (x, y, z float64) {
	a := el.a + el.aDot*T
	e := el.e + el.eDot*T
	inc := el.i + el.iDot*T
	l := el.l + el.lDot*T
	peri := el.peri + el.periDot*T
	node := el.node + el.nodeDot*T

	argPeri := peri - node
	m := NormalizeDegrees(l - peri)
	if m > 180 {
		m -= 360
	}

	E := solveKepler(m*math.Pi/180, e)
	xp := a * (math.Cos(E) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(E)

	cw, sw := cosDeg(argPeri), sinDeg(argPeri)
	cn, sn := cosDeg(node), sinDeg(node)
	ci, si := cosDeg(inc), sinDeg(inc)

	x = (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp
	y = (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp
	z = (sw*si)*xp + (cw*si)*yp
	return x, y, z
}

// solveKepler solves M = E - e·sin E by Newton iteration (radians).
func solveKepler(m, e float64) float64 {
	E := m + e*math.Sin(m)
	for range 30 {
		dE := (m - (E - e*math.Sin(E))) / (1 - e*math.Cos(E))
		E += dE
		if math.Abs(dE) < 1e-12 {
			break
		}
	}
	return E
}
