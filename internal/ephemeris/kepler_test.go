package ephemeris

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readingFor(t *testing.T, readings []Reading, b Body) Reading {
	t.Helper()
	for _, r := range readings {
		if r.Body == b {
			return r
		}
	}
	t.Fatalf("no reading for %s", b)
	return Reading{}
}

func TestKepler_J2000Positions(t *testing.T) {
	at := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	readings, err := NewKepler().Positions(at, Location{})
	require.NoError(t, err)
	require.Len(t, readings, 10)

	want := map[Body]float64{
		Sun:     280.3802,
		Moon:    223.3109,
		Mercury: 271.9064,
		Venus:   241.5783,
		Mars:    327.9761,
		Jupiter: 25.3533,
		Saturn:  40.2396,
		Uranus:  314.8002,
		Neptune: 303.1911,
		Pluto:   251.4542,
	}
	for i, b := range TrackedBodies() {
		assert.Equal(t, b, readings[i].Body, "chart order")
		assert.InDelta(t, want[b], readings[i].Longitude, 0.01, "%s longitude", b)
	}
}

func TestKepler_KnownSkyEvents(t *testing.T) {
	k := NewKepler()

	// March equinox 2000: Sun crosses 0° Aries.
	equinox, err := k.Positions(time.Date(2000, 3, 20, 7, 35, 0, 0, time.UTC), Location{})
	require.NoError(t, err)
	sun := readingFor(t, equinox, Sun).Longitude
	assert.InDelta(t, 0, math.Min(sun, 360-sun), 0.05)

	// New moon of 2000-01-06 18:14 UTC.
	newMoon, err := k.Positions(time.Date(2000, 1, 6, 18, 14, 0, 0, time.UTC), Location{})
	require.NoError(t, err)
	assert.InDelta(t, readingFor(t, newMoon, Sun).Longitude, readingFor(t, newMoon, Moon).Longitude, 0.1)

	// Great conjunction of 2020-12-21 near 0°30' Aquarius.
	gc, err := k.Positions(time.Date(2020, 12, 21, 18, 20, 0, 0, time.UTC), Location{})
	require.NoError(t, err)
	jup := readingFor(t, gc, Jupiter).Longitude
	sat := readingFor(t, gc, Saturn).Longitude
	assert.InDelta(t, jup, sat, 0.1)
	assert.InDelta(t, 300.5, jup, 0.1)
}

func TestKepler_SpeedsAndRetrograde(t *testing.T) {
	readings, err := NewKepler().Positions(time.Date(1990, 7, 15, 14, 30, 0, 0, time.UTC), Location{})
	require.NoError(t, err)

	assert.InDelta(t, 0.954, readingFor(t, readings, Sun).Speed, 0.005)
	assert.InDelta(t, 14.06, readingFor(t, readings, Moon).Speed, 0.05)
	assert.Less(t, readingFor(t, readings, Saturn).Speed, 0.0, "Saturn retrograde in July 1990")
	assert.Less(t, readingFor(t, readings, Pluto).Speed, 0.0, "Pluto retrograde in July 1990")
	assert.Greater(t, readingFor(t, readings, Jupiter).Speed, 0.0)
}

func TestKepler_Deterministic(t *testing.T) {
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	a, err := NewKepler().Positions(at, Location{})
	require.NoError(t, err)
	b, err := NewKepler().Positions(at, Location{Latitude: 40, Longitude: -74})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLongitude_UnknownBody(t *testing.T) {
	assert.True(t, math.IsNaN(Longitude(Ascendant, time.Now())))
}

func TestKepler_NonFiniteBodyIsNotAnError(t *testing.T) {
	k := &Kepler{bodies: []Body{Sun, Ascendant}}
	readings, err := k.Positions(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Location{})
	require.NoError(t, err)
	require.Len(t, readings, 2)

	assert.False(t, math.IsNaN(readings[0].Longitude))
	assert.Equal(t, Ascendant, readings[1].Body)
	assert.True(t, math.IsNaN(readings[1].Longitude))
}

func TestNormalizeDegrees(t *testing.T) {
	cases := map[float64]float64{
		0:      0,
		360:    0,
		720.5:  0.5,
		-30:    330,
		-360:   0,
		359.99: 359.99,
	}
	for in, want := range cases {
		assert.InDelta(t, want, NormalizeDegrees(in), 1e-9, "NormalizeDegrees(%v)", in)
	}
	assert.Equal(t, 0.0, NormalizeDegrees(-1e-15))
	assert.True(t, math.IsNaN(NormalizeDegrees(math.NaN())))
	assert.True(t, math.IsNaN(NormalizeDegrees(math.Inf(1))))
}

func TestSiderealTime(t *testing.T) {
	at := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.InDelta(t, 2451545.0, JulianDay(at), 1e-9)
	assert.InDelta(t, 280.46061837, GreenwichMeanSiderealTime(at), 1e-6)
	assert.InDelta(t, 18.697136, GreenwichApparentSiderealTime(at), 1e-5)

	gast := GreenwichApparentSiderealTime(time.Date(1990, 7, 15, 14, 30, 0, 0, time.UTC))
	assert.InDelta(t, 10.045596, gast, 1e-5)
}
