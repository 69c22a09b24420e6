package plan

import "fmt"

// RPEBand is the perceived-exertion range a workout intensity should land in
// on the 1-10 scale.
type RPEBand struct {
	Min int
	Max int
}

// targetRPE maps each intensity to its expected effort band. Easy rides
// should stay genuinely easy; hard sessions should genuinely hurt.
var targetRPE = map[IntensityTier]RPEBand{
	IntensityEasy:     {Min: 3, Max: 5},
	IntensityModerate: {Min: 5, Max: 7},
	IntensityHard:     {Min: 7, Max: 9},
}

// RPE advice types.
const (
	AdviceIncrease = "increase"
	AdviceDecrease = "decrease"
	AdviceMaintain = "maintain"
)

const (
	maxIncreasePercent = 10
	maxDecreasePercent = 15
	percentPerRPEPoint = 5
)

// RPEAdvice suggests an intensity correction based on how a workout felt.
type RPEAdvice struct {
	Type       string `json:"type"`
	Percentage int    `json:"percentage"`
	Message    string `json:"message"`
}

// EvaluateRPE compares a reported RPE against the target band for the
// workout's intensity. Below the band suggests increasing intensity (5% per
// point, capped at 10%), above it decreasing (capped at 15%).
func EvaluateRPE(intensity IntensityTier, rpe int) (RPEAdvice, error) {
	if rpe < 1 || rpe > 10 {
		return RPEAdvice{}, fmt.Errorf("rpe %d out of range 1-10", rpe)
	}
	band, ok := targetRPE[intensity]
	if !ok {
		return RPEAdvice{}, fmt.Errorf("no target rpe band for intensity %q", intensity)
	}

	switch {
	case rpe < band.Min:
		pct := min(maxIncreasePercent, (band.Min-rpe)*percentPerRPEPoint)
		return RPEAdvice{
			Type:       AdviceIncrease,
			Percentage: pct,
			Message: fmt.Sprintf("This %s workout felt too easy (RPE %d). Consider increasing intensity by %d%%",
				intensity, rpe, pct),
		}, nil
	case rpe > band.Max:
		pct := min(maxDecreasePercent, (rpe-band.Max)*percentPerRPEPoint)
		return RPEAdvice{
			Type:       AdviceDecrease,
			Percentage: pct,
			Message: fmt.Sprintf("This %s workout felt too hard (RPE %d). Consider decreasing intensity by %d%%",
				intensity, rpe, pct),
		}, nil
	default:
		return RPEAdvice{
			Type:       AdviceMaintain,
			Percentage: 0,
			Message:    fmt.Sprintf("Perfect intensity! This %s workout felt just right (RPE %d).", intensity, rpe),
		}, nil
	}
}
