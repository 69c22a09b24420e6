package plan

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func plannedWorkout(name string, intensity IntensityTier, duration int) *ResolvedWorkout {
	return &ResolvedWorkout{
		Name:             name,
		BaseName:         name,
		Intensity:        intensity,
		Description:      name + " description",
		Tips:             name + " tips",
		Duration:         duration,
		OriginalDuration: duration,
		VariantSize:      VariantMedium,
	}
}

func TestAdaptWeekDoesNotMutateInput(t *testing.T) {
	week := emptyWeek()
	week[Tuesday] = plannedWorkout("Threshold Repeats", IntensityHard, 60)
	week[Saturday] = plannedWorkout("Endurance Spin", IntensityEasy, 90)
	snapshot := week.Clone()

	AdaptWeek(week, TimeSlotMap{Monday: 40, Sunday: 120}, []Weekday{Tuesday, Saturday})

	if diff := cmp.Diff(snapshot, week); diff != "" {
		t.Errorf("AdaptWeek modified its input week (-before +after):\n%s", diff)
	}
}

func TestAdaptWeekCompressesIntoShortSlot(t *testing.T) {
	week := emptyWeek()
	week[Tuesday] = plannedWorkout("Threshold Repeats", IntensityHard, 60)

	result := AdaptWeek(week, TimeSlotMap{Wednesday: 40}, nil)

	w := result.Schedule[Wednesday]
	if w == nil {
		t.Fatal("workout not placed on the only available day")
	}
	if w.Duration != 40 {
		t.Errorf("Duration = %d, want 40 (compressed to the slot)", w.Duration)
	}
	if !w.Adapted || w.AdaptationType != AdaptationCompressed {
		t.Errorf("Adapted/AdaptationType = %v/%q, want compressed", w.Adapted, w.AdaptationType)
	}
	if !strings.Contains(w.Description, "(67% duration)") {
		t.Errorf("Description = %q, want compression percentage noted", w.Description)
	}
	if !strings.Contains(w.Tips, "quality over quantity") {
		t.Errorf("Tips = %q, want compressed-session tip for hard workouts", w.Tips)
	}
}

func TestAdaptWeekKeepsDurationWithinTolerance(t *testing.T) {
	week := emptyWeek()
	week[Tuesday] = plannedWorkout("Tempo Blocks", IntensityModerate, 60)

	// 50/60 = 0.83 is above the compression threshold.
	result := AdaptWeek(week, TimeSlotMap{Wednesday: 50}, nil)

	w := result.Schedule[Wednesday]
	if w == nil {
		t.Fatal("workout not placed")
	}
	if w.Duration != 60 {
		t.Errorf("Duration = %d, want original 60", w.Duration)
	}
	if w.Adapted {
		t.Error("Adapted = true for a workout that fits its slot")
	}
}

func TestAdaptWeekExtendsEasyIntoLongSlot(t *testing.T) {
	week := emptyWeek()
	week[Saturday] = plannedWorkout("Endurance Spin", IntensityEasy, 60)

	// 100/60 = 1.67 triggers extension, capped at 60 * 1.5 = 90.
	result := AdaptWeek(week, TimeSlotMap{Sunday: 100}, nil)

	w := result.Schedule[Sunday]
	if w == nil {
		t.Fatal("workout not placed")
	}
	if w.Duration != 90 {
		t.Errorf("Duration = %d, want 90 (extended, capped at 150%%)", w.Duration)
	}
	if w.AdaptationType != AdaptationExtended {
		t.Errorf("AdaptationType = %q, want extended", w.AdaptationType)
	}
	if !strings.Contains(w.Description, "(extended endurance)") {
		t.Errorf("Description = %q, want extension noted", w.Description)
	}
}

func TestAdaptWeekNeverExtendsHardWorkouts(t *testing.T) {
	week := emptyWeek()
	week[Tuesday] = plannedWorkout("VO2 Intervals", IntensityHard, 45)

	result := AdaptWeek(week, TimeSlotMap{Wednesday: 90}, nil)

	w := result.Schedule[Wednesday]
	if w == nil {
		t.Fatal("workout not placed")
	}
	if w.Duration != 45 || w.Adapted {
		t.Errorf("hard workout extended: Duration = %d, Adapted = %v", w.Duration, w.Adapted)
	}
}

func TestAdaptWeekSkipsWhenNoSlotFits(t *testing.T) {
	week := emptyWeek()
	week[Tuesday] = plannedWorkout("Threshold Repeats", IntensityHard, 60)
	week[Thursday] = plannedWorkout("Endurance Spin", IntensityEasy, 75)

	result := AdaptWeek(week, TimeSlotMap{}, nil)

	for _, day := range Weekdays() {
		if result.Schedule[day] != nil {
			t.Errorf("%s: workout placed with no available time", day)
		}
	}
	if got, want := result.Summary.WorkoutRetention, 0; got != want {
		t.Errorf("WorkoutRetention = %d, want %d", got, want)
	}
	if diff := cmp.Diff([]string{"2 workouts skipped"}, result.Strategies); diff != "" {
		t.Errorf("Strategies mismatch (-want +got):\n%s", diff)
	}
}

func TestAdaptWeekPlacesHardWorkoutsFirst(t *testing.T) {
	week := emptyWeek()
	week[Monday] = plannedWorkout("Endurance Spin", IntensityEasy, 75)
	week[Wednesday] = plannedWorkout("Threshold Repeats", IntensityHard, 60)

	// A single medium slot: the hard workout must win it.
	result := AdaptWeek(week, TimeSlotMap{Tuesday: 60}, nil)

	w := result.Schedule[Tuesday]
	if w == nil {
		t.Fatal("no workout placed")
	}
	if w.Intensity != IntensityHard {
		t.Errorf("placed intensity = %s, want hard to take the only slot", w.Intensity)
	}
}

func TestPolarizationScore(t *testing.T) {
	tests := []struct {
		name string
		d    IntensityBreakdown
		want int
	}{
		{"ideal 80/20 split", IntensityBreakdown{Easy: 4, Hard: 1}, 100},
		{"too much intensity", IntensityBreakdown{Easy: 3, Moderate: 1, Hard: 1}, 60},
		{"all hard", IntensityBreakdown{Hard: 3}, 0},
		{"empty week", IntensityBreakdown{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := polarizationScore(tt.d); got != tt.want {
				t.Errorf("polarizationScore(%+v) = %d, want %d", tt.d, got, tt.want)
			}
		})
	}
}

func TestAdaptWeekScarcityRecommendation(t *testing.T) {
	week := emptyWeek()
	week[Tuesday] = plannedWorkout("Threshold Repeats", IntensityHard, 60)

	// Under three total hours triggers the scarcity recommendation.
	result := AdaptWeek(week, TimeSlotMap{Wednesday: 60, Friday: 45}, nil)

	if !strings.Contains(result.Summary.Recommendation, "Very limited time") {
		t.Errorf("Recommendation = %q, want scarcity advice", result.Summary.Recommendation)
	}
}

func TestAdaptWeekSummaryRetention(t *testing.T) {
	week := emptyWeek()
	week[Tuesday] = plannedWorkout("Threshold Repeats", IntensityHard, 60)
	week[Thursday] = plannedWorkout("Tempo Blocks", IntensityModerate, 70)
	week[Saturday] = plannedWorkout("Endurance Spin", IntensityEasy, 90)

	result := AdaptWeek(week, TimeSlotMap{Monday: 60, Wednesday: 70, Sunday: 120}, nil)

	if got, want := result.Summary.OriginalWorkouts, 3; got != want {
		t.Errorf("OriginalWorkouts = %d, want %d", got, want)
	}
	if got, want := result.Summary.AdaptedWorkouts, 3; got != want {
		t.Errorf("AdaptedWorkouts = %d, want %d", got, want)
	}
	if got, want := result.Summary.WorkoutRetention, 100; got != want {
		t.Errorf("WorkoutRetention = %d, want %d", got, want)
	}
	want := IntensityBreakdown{Easy: 1, Moderate: 1, Hard: 1}
	if diff := cmp.Diff(want, result.Summary.Distribution); diff != "" {
		t.Errorf("Distribution mismatch (-want +got):\n%s", diff)
	}
}
