// Package phi holds the golden-ratio ladder that every scoring weight in the
// engine is drawn from. Weights only need a stable relative order, so rather
// than hand-tuned magic numbers each one is a power of Φ.
package phi

import "math"

// Phi is the golden ratio.
const Phi = 1.6180339887498948

// The ladder, lowest to highest.
var (
	// Psyche (Φ⁻²): faint influence.
	Psyche = math.Pow(Phi, -2) // 0.38197...

	// Matter (Φ⁻¹): muted influence.
	Matter = math.Pow(Phi, -1) // 0.61803...

	// Monad: unity, the neutral baseline.
	Monad = 1.0

	// Being (Φ¹): pronounced influence.
	Being = Phi // 1.61803...

	// Nous (Φ²): dominant influence.
	Nous = math.Pow(Phi, 2) // 2.61803...
)

// Step returns Φ^(rank/4). Ranks a quarter-power apart keep a ten-step
// ordering within a factor of about three.
func Step(rank int) float64 {
	return math.Pow(Phi, float64(rank)/4)
}
