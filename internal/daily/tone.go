package daily

import (
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/star-omens/internal/entropy"
)

// Tone is a one-word mood for the sky over a profile on a given day.
type Tone string

// Tones, calmest first.
const (
	Still    Tone = "still"
	Stirring Tone = "stirring"
	Charged  Tone = "charged"
)

const (
	toneFrequency   = 0.15
	toneOctaves     = 2
	tonePersistence = 0.5
	stillBelow      = 0.42
	chargedAbove    = 0.58
)

// ToneLevel returns the noise level in [0,1] behind ToneFor. Neighbouring
// days sit close together on the noise field, so the level drifts rather
// than jumps.
func ToneLevel(astroProfile, dayKey string) float64 {
	noise := opensimplex.NewNormalized(int64(entropy.Hash53(astroProfile)))
	return octaveNoise(noise, dayIndex(dayKey), 0, toneOctaves, toneFrequency, tonePersistence)
}

// ToneFor buckets ToneLevel into a word.
func ToneFor(astroProfile, dayKey string) Tone {
	switch v := ToneLevel(astroProfile, dayKey); {
	case v < stillBelow:
		return Still
	case v > chargedAbove:
		return Charged
	default:
		return Stirring
	}
}

// dayIndex is days since the Unix epoch for a YYYY-MM-DD key. Overrides that
// are not dates still land somewhere stable on the field.
func dayIndex(dayKey string) float64 {
	if t, err := time.Parse(entropy.DayKeyLayout, dayKey); err == nil {
		return float64(t.Unix() / 86400)
	}
	return float64(entropy.Hash53(dayKey) % 100000)
}

// octaveNoise layers several frequencies of the same field.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
