package plan

import (
	"fmt"
	"math"
)

// Adaptation type labels stored on adapted workouts.
const (
	AdaptationCompressed = "compressed"
	AdaptationExtended   = "extended"
)

// Duration adjustment thresholds. A workout is compressed when the slot
// offers less than 80% of its planned duration, and an easy workout is
// extended when the slot offers more than 130%, capped at 150%.
const (
	compressThreshold = 0.8
	extendThreshold   = 1.3
	extendCap         = 1.5
)

// Slot-fit scores per intensity. Hard sessions want medium slots (interval
// length), easy sessions want the long endurance slots.
const (
	hardMediumScore = 10
	hardShortScore  = 7
	hardLongScore   = 5

	moderateMediumScore = 8
	moderateLongScore   = 7
	moderateShortScore  = 4

	easyExtraScore  = 10
	easyLongScore   = 9
	easyMediumScore = 5
	easyShortScore  = 2

	adapterPreferredBonus   = 2
	adapterWeekendEasyBonus = 2
	adjacentHardPenalty     = 3
)

// IntensityBreakdown counts workouts per intensity tier.
type IntensityBreakdown struct {
	Easy     int `json:"easy"`
	Moderate int `json:"moderate"`
	Hard     int `json:"hard"`
}

// AdaptationSummary reports how well an adapted week preserves the original
// training load and polarized distribution.
type AdaptationSummary struct {
	OriginalWorkouts  int                `json:"original_workouts"`
	AdaptedWorkouts   int                `json:"adapted_workouts"`
	WorkoutRetention  int                `json:"workout_retention_percent"`
	OriginalMinutes   int                `json:"original_minutes"`
	AdaptedMinutes    int                `json:"adapted_minutes"`
	VolumeRetention   int                `json:"volume_retention_percent"`
	PolarizationScore int                `json:"polarization_score"`
	Distribution      IntensityBreakdown `json:"distribution"`
	Recommendation    string             `json:"recommendation"`
}

// AdaptationResult is the full outcome of adapting one week.
type AdaptationResult struct {
	Schedule   WeekSchedule      `json:"schedule"`
	Analysis   Availability      `json:"analysis"`
	Summary    AdaptationSummary `json:"summary"`
	Strategies []string          `json:"strategies"`
}

// AdaptWeek redistributes a planned week over the athlete's actual time
// slots. Hard workouts are placed first to preserve the training stimulus,
// then moderate, then easy. Workouts that fit no slot are dropped. The
// original week is never modified.
func AdaptWeek(week WeekSchedule, slots TimeSlotMap, preferredDays []Weekday) AdaptationResult {
	analysis := AnalyzeAvailability(slots)

	preferred := make(map[Weekday]bool, len(preferredDays))
	for _, day := range preferredDays {
		preferred[day] = true
	}

	// Bucket workouts by intensity in day order.
	buckets := map[IntensityTier][]*ResolvedWorkout{}
	for _, day := range weekdays {
		if w := week[day]; w != nil {
			buckets[w.Intensity] = append(buckets[w.Intensity], w)
		}
	}

	adapted := emptyWeek()
	for _, intensity := range intensityDrawOrder {
		for _, w := range buckets[intensity] {
			day, ok := findBestDay(slots, adapted, intensity, preferred)
			if !ok {
				continue
			}
			adapted[day] = adjustToTime(w, slots[day])
		}
	}

	return AdaptationResult{
		Schedule:   adapted,
		Analysis:   analysis,
		Summary:    summarizeAdaptation(week, adapted, analysis),
		Strategies: appliedStrategies(week, adapted),
	}
}

// findBestDay scores every free day with remaining time and returns the best
// one. A day only qualifies with a positive score.
func findBestDay(
	slots TimeSlotMap,
	current WeekSchedule,
	intensity IntensityTier,
	preferred map[Weekday]bool,
) (Weekday, bool) {
	var bestDay Weekday
	bestScore := 0
	found := false

	for idx, day := range weekdays {
		available := slots[day]
		if available <= 0 || current[day] != nil {
			continue
		}

		score := slotFitScore(intensity, slotCategory(available))
		if preferred[day] {
			score += adapterPreferredBonus
		}
		if idx > 0 {
			if prev := current[weekdays[idx-1]]; prev != nil && prev.Intensity == IntensityHard {
				score -= adjacentHardPenalty
			}
		}
		if idx < len(weekdays)-1 {
			if next := current[weekdays[idx+1]]; next != nil && next.Intensity == IntensityHard {
				score -= adjacentHardPenalty
			}
		}
		if (day == Saturday || day == Sunday) && intensity == IntensityEasy {
			score += adapterWeekendEasyBonus
		}

		if score > bestScore {
			bestScore = score
			bestDay = day
			found = true
		}
	}
	return bestDay, found
}

func slotFitScore(intensity IntensityTier, category SlotCategory) int {
	switch intensity {
	case IntensityHard:
		switch category {
		case SlotMedium:
			return hardMediumScore
		case SlotShort:
			return hardShortScore
		case SlotLong:
			return hardLongScore
		}
	case IntensityModerate:
		switch category {
		case SlotMedium:
			return moderateMediumScore
		case SlotLong:
			return moderateLongScore
		case SlotShort:
			return moderateShortScore
		}
	case IntensityEasy:
		switch category {
		case SlotExtra:
			return easyExtraScore
		case SlotLong:
			return easyLongScore
		case SlotMedium:
			return easyMediumScore
		case SlotShort:
			return easyShortScore
		}
	}
	return 0
}

// adjustToTime fits a workout into the available minutes, returning a copy.
func adjustToTime(w *ResolvedWorkout, availableMinutes int) *ResolvedWorkout {
	adapted := *w
	original := w.OriginalDuration
	if original == 0 {
		original = w.Duration
	}
	if original == 0 {
		original = 60
	}

	ratio := float64(availableMinutes) / float64(original)
	switch {
	case ratio < compressThreshold:
		adapted.Duration = availableMinutes
		adapted.Adapted = true
		adapted.AdaptationType = AdaptationCompressed
		pct := int(math.Round(float64(availableMinutes) / float64(original) * 100))
		adapted.Description = fmt.Sprintf("%s (%d%% duration)", w.Description, pct)
		if w.Intensity == IntensityHard {
			adapted.Tips = w.Tips + " Focus on quality over quantity in this compressed session."
		}
	case ratio > extendThreshold && w.Intensity == IntensityEasy:
		adapted.Duration = min(availableMinutes, int(math.Round(float64(original)*extendCap)))
		adapted.Adapted = true
		adapted.AdaptationType = AdaptationExtended
		adapted.Description = w.Description + " (extended endurance)"
	default:
		adapted.Duration = original
	}
	return &adapted
}

func summarizeAdaptation(original, adapted WeekSchedule, analysis Availability) AdaptationSummary {
	var s AdaptationSummary
	for _, day := range weekdays {
		if w := original[day]; w != nil {
			s.OriginalWorkouts++
			s.OriginalMinutes += w.Duration
		}
		if w := adapted[day]; w != nil {
			s.AdaptedWorkouts++
			s.AdaptedMinutes += w.Duration
			switch w.Intensity {
			case IntensityHard:
				s.Distribution.Hard++
			case IntensityModerate:
				s.Distribution.Moderate++
			case IntensityEasy:
				s.Distribution.Easy++
			}
		}
	}
	if s.OriginalWorkouts > 0 {
		s.WorkoutRetention = int(math.Round(float64(s.AdaptedWorkouts) / float64(s.OriginalWorkouts) * 100))
	}
	if s.OriginalMinutes > 0 {
		s.VolumeRetention = int(math.Round(float64(s.AdaptedMinutes) / float64(s.OriginalMinutes) * 100))
	}
	s.PolarizationScore = polarizationScore(s.Distribution)
	s.Recommendation = recommendation(s.PolarizationScore, analysis)
	return s
}

// polarizationScore measures how close the intensity mix stays to the ideal
// 20% hard share: 100 minus twice the deviation, floored at zero.
func polarizationScore(d IntensityBreakdown) int {
	total := d.Easy + d.Moderate + d.Hard
	if total == 0 {
		return 0
	}
	hardShare := float64(d.Hard+d.Moderate) / float64(total) * 100
	score := 100 - math.Abs(20-hardShare)*2
	if score < 0 {
		score = 0
	}
	return int(math.Round(score))
}

// Recommendation thresholds.
const (
	scarcityHoursThreshold    = 3
	compromisedScoreThreshold = 60
	goodScoreThreshold        = 80
)

func recommendation(score int, analysis Availability) string {
	switch {
	case analysis.TotalHours < scarcityHoursThreshold:
		return "Very limited time. Focus on quality over quantity. Prioritize hard intervals."
	case score < compromisedScoreThreshold:
		return "Polarization compromised. Try to add more easy volume or reduce hard sessions."
	case score < goodScoreThreshold:
		return "Good adaptation. Close to the ideal 80/20 distribution."
	default:
		return "Excellent. Maintaining a proper polarized distribution."
	}
}

func appliedStrategies(original, adapted WeekSchedule) []string {
	var compressed, extended, maintained, skipped int
	for _, day := range weekdays {
		orig := original[day]
		adap := adapted[day]
		switch {
		case orig != nil && adap == nil:
			skipped++
		case adap != nil && adap.AdaptationType == AdaptationCompressed:
			compressed++
		case adap != nil && adap.AdaptationType == AdaptationExtended:
			extended++
		case adap != nil:
			maintained++
		}
	}

	var strategies []string
	if compressed > 0 {
		strategies = append(strategies, fmt.Sprintf("%d workouts compressed", compressed))
	}
	if extended > 0 {
		strategies = append(strategies, fmt.Sprintf("%d workouts extended", extended))
	}
	if maintained > 0 {
		strategies = append(strategies, fmt.Sprintf("%d workouts unchanged", maintained))
	}
	if skipped > 0 {
		strategies = append(strategies, fmt.Sprintf("%d workouts skipped", skipped))
	}
	return strategies
}
