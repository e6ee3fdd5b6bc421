package risk

import (
	"fmt"
	"math"

	"backend/internal/artifact"
)

// Normalize converts a raw artifact output into the canonical risk
// probability in [0,1]. Probability outputs are taken as-is (the
// positive-class probability for pairs), regression scores are clamped
// into [0,1]. Non-finite or out-of-domain probabilities are rejected
// rather than coerced.
func Normalize(out artifact.Output) (float64, error) {
	switch out.Shape {
	case artifact.ShapeProbPair:
		if !isProbability(out.P0) || !isProbability(out.P1) {
			return 0, fmt.Errorf("invalid probability pair (%v, %v)", out.P0, out.P1)
		}
		return out.P1, nil
	case artifact.ShapeProbability:
		if !isProbability(out.Value) {
			return 0, fmt.Errorf("invalid probability %v", out.Value)
		}
		return out.Value, nil
	case artifact.ShapeScore:
		if math.IsNaN(out.Value) || math.IsInf(out.Value, 0) {
			return 0, fmt.Errorf("non-finite regression score %v", out.Value)
		}
		return math.Max(0.0, math.Min(1.0, out.Value)), nil
	default:
		return 0, fmt.Errorf("unknown output shape %d", out.Shape)
	}
}

func isProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

// Label maps a canonical risk probability to its qualitative label.
// Bands are inclusive on the upper end, first match wins.
func Label(prob float64) string {
	p := prob * 100
	switch {
	case p == 0:
		return "No immediate cardiac risk detected based on current input."
	case p > 0 && p <= 20:
		return "Low cardiac risk. Maintain a healthy lifestyle."
	case p > 20 && p <= 50:
		return "Moderate cardiac risk. Lifestyle changes and monitoring recommended."
	case p > 50 && p <= 80:
		return "High cardiac risk. Medical consultation advised."
	case p > 80 && p < 100:
		return "Very high cardiac risk. Seek medical attention soon."
	default: // p >= 100
		return "Extremely high cardiac risk detected. Please visit the nearest hospital immediately."
	}
}

// Tier is the notification routing bucket. It is derived from the same
// probability as Label but uses its own three-band thresholds; the two
// schemes are separate policies and must not be merged.
type Tier int

const (
	TierInformational Tier = iota
	TierModerate
	TierUrgent
)

// TierFor selects the notification tier for a canonical risk
// probability: <40% informational, 40-70% moderate, >70% urgent.
func TierFor(prob float64) Tier {
	p := prob * 100
	switch {
	case p < 40:
		return TierInformational
	case p <= 70:
		return TierModerate
	default:
		return TierUrgent
	}
}
