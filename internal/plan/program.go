package plan

import "fmt"

// WeekIntensityPlan is the workout mix for a single week.
type WeekIntensityPlan struct {
	Easy     int `json:"easy"`
	Moderate int `json:"moderate"`
	Hard     int `json:"hard"`
}

// Total returns the number of workouts in the week.
func (p WeekIntensityPlan) Total() int {
	return p.Easy + p.Moderate + p.Hard
}

func (p WeekIntensityPlan) count(intensity IntensityTier) int {
	switch intensity {
	case IntensityModerate:
		return p.Moderate
	case IntensityHard:
		return p.Hard
	default:
		return p.Easy
	}
}

// TargetDurations guides variant selection per intensity, in minutes.
type TargetDurations struct {
	Easy     int `json:"easy"`
	Moderate int `json:"moderate"`
	Hard     int `json:"hard"`
}

func (t TargetDurations) forIntensity(intensity IntensityTier) int {
	switch intensity {
	case IntensityModerate:
		return t.Moderate
	case IntensityHard:
		return t.Hard
	default:
		return t.Easy
	}
}

// ProgramConfig parameterizes the periodization of a training program: how
// many weeks it runs, which weeks peak and recover, and the per-tier workout
// counts and intensity mixes.
type ProgramConfig struct {
	TotalWeeks   int `json:"total_weeks"`
	PeakWeek     int `json:"peak_week"`
	RecoveryWeek int `json:"recovery_week"`

	// PeakFactor and RecoveryFactor scale variant target durations on the
	// peak and recovery weeks.
	PeakFactor     float64 `json:"peak_factor"`
	RecoveryFactor float64 `json:"recovery_factor"`

	WeeklyWorkouts   map[Tier][]int               `json:"weekly_workouts"`
	IntensityPlans   map[Tier][]WeekIntensityPlan `json:"intensity_plans"`
	TargetDurations  map[Tier]TargetDurations     `json:"target_durations"`
	WeekDescriptions map[int]string               `json:"week_descriptions"`
}

// DefaultProgram returns the reference six-week polarized program.
func DefaultProgram() ProgramConfig {
	return ProgramConfig{
		TotalWeeks:     6,
		PeakWeek:       3,
		RecoveryWeek:   4,
		PeakFactor:     1.1,
		RecoveryFactor: 0.7,
		WeeklyWorkouts: map[Tier][]int{
			TierStarter: {3, 3, 4, 3, 3, 3},
			TierRegular: {4, 4, 5, 4, 4, 4},
			TierSerious: {5, 5, 6, 5, 5, 4},
		},
		IntensityPlans: map[Tier][]WeekIntensityPlan{
			TierStarter: {
				{Easy: 2, Moderate: 1, Hard: 0},
				{Easy: 2, Moderate: 0, Hard: 1},
				{Easy: 3, Moderate: 0, Hard: 1},
				{Easy: 3, Moderate: 0, Hard: 0}, // recovery week
				{Easy: 2, Moderate: 0, Hard: 1},
				{Easy: 2, Moderate: 1, Hard: 0},
			},
			TierRegular: {
				{Easy: 3, Moderate: 1, Hard: 0},
				{Easy: 3, Moderate: 0, Hard: 1},
				{Easy: 3, Moderate: 1, Hard: 1},
				{Easy: 4, Moderate: 0, Hard: 0}, // recovery week
				{Easy: 3, Moderate: 0, Hard: 1},
				{Easy: 3, Moderate: 1, Hard: 0},
			},
			TierSerious: {
				{Easy: 4, Moderate: 1, Hard: 0},
				{Easy: 4, Moderate: 0, Hard: 1},
				{Easy: 4, Moderate: 1, Hard: 1},
				{Easy: 5, Moderate: 0, Hard: 0}, // recovery week
				{Easy: 3, Moderate: 1, Hard: 1},
				{Easy: 3, Moderate: 1, Hard: 0},
			},
		},
		TargetDurations: map[Tier]TargetDurations{
			TierStarter: {Easy: 60, Moderate: 55, Hard: 50},
			TierRegular: {Easy: 90, Moderate: 70, Hard: 60},
			TierSerious: {Easy: 120, Moderate: 80, Hard: 65},
		},
		WeekDescriptions: map[int]string{
			1: "Base building",
			2: "Progressive overload",
			3: "Peak training",
			4: "Recovery week",
			5: "Build back",
			6: "Taper",
		},
	}
}

// Validate checks the internal consistency of the program tables. Every tier
// must cover every week, and the intensity mix of a week must add up to its
// workout count.
func (c ProgramConfig) Validate() error {
	if c.TotalWeeks < 1 {
		return fmt.Errorf("total weeks must be positive, got %d", c.TotalWeeks)
	}
	if c.PeakWeek < 1 || c.PeakWeek > c.TotalWeeks {
		return fmt.Errorf("peak week %d out of range 1-%d", c.PeakWeek, c.TotalWeeks)
	}
	if c.RecoveryWeek < 1 || c.RecoveryWeek > c.TotalWeeks {
		return fmt.Errorf("recovery week %d out of range 1-%d", c.RecoveryWeek, c.TotalWeeks)
	}
	for tier, counts := range c.WeeklyWorkouts {
		if len(counts) != c.TotalWeeks {
			return fmt.Errorf("tier %s: %d weekly workout counts for %d weeks", tier, len(counts), c.TotalWeeks)
		}
		plans, ok := c.IntensityPlans[tier]
		if !ok {
			return fmt.Errorf("tier %s: missing intensity plans", tier)
		}
		if len(plans) != c.TotalWeeks {
			return fmt.Errorf("tier %s: %d intensity plans for %d weeks", tier, len(plans), c.TotalWeeks)
		}
		for i, p := range plans {
			if p.Total() != counts[i] {
				return fmt.Errorf("tier %s week %d: intensity mix sums to %d, expected %d workouts",
					tier, i+1, p.Total(), counts[i])
			}
		}
		if _, ok = c.TargetDurations[tier]; !ok {
			return fmt.Errorf("tier %s: missing target durations", tier)
		}
	}
	return nil
}

// weekPlan returns the intensity mix for a 1-based week of a tier.
func (c ProgramConfig) weekPlan(tier Tier, week int) (WeekIntensityPlan, error) {
	plans, ok := c.IntensityPlans[tier]
	if !ok {
		return WeekIntensityPlan{}, fmt.Errorf("time commitment %q: %w", tier, ErrUnknownTier)
	}
	if week < 1 || week > len(plans) {
		return WeekIntensityPlan{}, fmt.Errorf("week %d out of range 1-%d", week, len(plans))
	}
	return plans[week-1], nil
}
