package astro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignFor_Boundaries(t *testing.T) {
	signs := zodiac
	for k := 0; k < 12; k++ {
		start := float64(30 * k)
		assert.Equal(t, signs[k], SignFor(start), "exactly %v°", start)
		assert.Equal(t, signs[k], SignFor(start+29.9999), "just below %v°", start+30)
		assert.Equal(t, signs[(k+1)%12], SignFor(start+30), "exactly %v°", start+30)
	}
	assert.Equal(t, Aries, SignFor(360))
	assert.Equal(t, Aries, SignFor(720))
	assert.Equal(t, Pisces, SignFor(-0.5))
	assert.Equal(t, Leo, SignFor(125))
}

func TestSignFor_NonFiniteFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultSign, SignFor(math.NaN()))
	assert.Equal(t, DefaultSign, SignFor(math.Inf(1)))
	assert.Equal(t, DefaultSign, SignFor(math.Inf(-1)))

	_, ok := SignIndex(math.NaN())
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(360))
	assert.InDelta(t, 350.0, Normalize(-10), 1e-12)
	assert.InDelta(t, 10.0, Normalize(370), 1e-12)
	assert.True(t, math.IsNaN(Normalize(math.NaN())))
}

func TestDegreeInSign(t *testing.T) {
	assert.InDelta(t, 5.0, DegreeInSign(125), 1e-12)
	assert.InDelta(t, 0.0, DegreeInSign(30), 1e-12)
	assert.Equal(t, 0.0, DegreeInSign(math.NaN()))
}
