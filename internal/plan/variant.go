package plan

import "math"

// selectVariant picks the variant whose duration is closest to the target,
// after scaling the target for the peak and recovery weeks. Ties go to the
// shorter variant because variantSizes is iterated short-first with a strict
// comparison.
func selectVariant(t WorkoutTemplate, targetMinutes int, week int, program ProgramConfig) (Variant, VariantSize) {
	adjusted := float64(targetMinutes)
	switch week {
	case program.PeakWeek:
		adjusted *= program.PeakFactor
	case program.RecoveryWeek:
		adjusted *= program.RecoveryFactor
	}

	best := t.Variants.Short
	bestSize := VariantShort
	smallestDiff := math.Inf(1)
	for _, size := range variantSizes {
		v := t.Variants.Get(size)
		diff := math.Abs(float64(v.Duration) - adjusted)
		if diff < smallestDiff {
			smallestDiff = diff
			best = v
			bestSize = size
		}
	}
	return best, bestSize
}

// resolveWorkout flattens a template and one of its variants into a
// scheduled workout.
func resolveWorkout(t WorkoutTemplate, v Variant, size VariantSize, intensity IntensityTier) *ResolvedWorkout {
	name := v.DisplayName
	if name == "" {
		name = t.Name
	}
	return &ResolvedWorkout{
		Name:             name,
		BaseName:         t.Name,
		Intensity:        intensity,
		Description:      t.Description,
		Tips:             t.Tips,
		PowerZone:        t.PowerZone,
		Duration:         v.Duration,
		Details:          v.Details,
		VariantSize:      size,
		Adapted:          false,
		OriginalDuration: v.Duration,
	}
}
