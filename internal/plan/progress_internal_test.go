package plan

import "testing"

func TestWorkoutTSS(t *testing.T) {
	tests := []struct {
		name      string
		intensity IntensityTier
		duration  int
		want      int
	}{
		{"hour at threshold intensity", IntensityHard, 60, 90},
		{"long easy ride", IntensityEasy, 120, 50},
		{"moderate session", IntensityModerate, 60, 56},
		{"short hard session", IntensityHard, 30, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := plannedWorkout("Workout", tt.intensity, tt.duration)
			if got := WorkoutTSS(w); got != tt.want {
				t.Errorf("WorkoutTSS(%s, %d min) = %d, want %d", tt.intensity, tt.duration, got, tt.want)
			}
		})
	}
}

func TestBuildProgress(t *testing.T) {
	schedule := Schedule{
		1: emptyWeek(),
		2: emptyWeek(),
	}
	schedule[1][Tuesday] = plannedWorkout("Threshold Repeats", IntensityHard, 60)
	schedule[1][Saturday] = plannedWorkout("Endurance Spin", IntensityEasy, 90)
	schedule[2][Tuesday] = plannedWorkout("Tempo Blocks", IntensityModerate, 70)
	schedule[2][Saturday] = plannedWorkout("Aerobic Base", IntensityEasy, 120)

	completions := map[int]map[Weekday]bool{
		1: {Tuesday: true, Saturday: true},
		2: {Tuesday: true},
	}

	p := BuildProgress(schedule, completions, 2)

	if p.TotalWorkouts != 4 {
		t.Errorf("TotalWorkouts = %d, want 4", p.TotalWorkouts)
	}
	if p.CompletedWorkouts != 3 {
		t.Errorf("CompletedWorkouts = %d, want 3", p.CompletedWorkouts)
	}
	if p.CompletionRate != 75 {
		t.Errorf("CompletionRate = %d, want 75", p.CompletionRate)
	}
	if p.TotalMinutes != 220 {
		t.Errorf("TotalMinutes = %d, want 220", p.TotalMinutes)
	}
	// 90 (hard hour) + 38 (easy 90 min) + 66 (moderate 70 min).
	if p.TotalTSS != 194 {
		t.Errorf("TotalTSS = %d, want 194", p.TotalTSS)
	}
	if p.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", p.CurrentStreak)
	}
	if len(p.Weeks) != 2 {
		t.Fatalf("len(Weeks) = %d, want 2", len(p.Weeks))
	}
	if p.Weeks[0].Rate != 100 || p.Weeks[1].Rate != 50 {
		t.Errorf("week rates = %d/%d, want 100/50", p.Weeks[0].Rate, p.Weeks[1].Rate)
	}
}

func TestBuildProgressStreakBrokenByMiss(t *testing.T) {
	schedule := Schedule{1: emptyWeek()}
	schedule[1][Monday] = plannedWorkout("A", IntensityEasy, 60)
	schedule[1][Wednesday] = plannedWorkout("B", IntensityEasy, 60)
	schedule[1][Friday] = plannedWorkout("C", IntensityEasy, 60)

	completions := map[int]map[Weekday]bool{
		1: {Monday: true, Friday: true},
	}

	p := BuildProgress(schedule, completions, 1)
	if p.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1 (missed Wednesday breaks the run)", p.CurrentStreak)
	}
}

func TestBuildProgressEmptySchedule(t *testing.T) {
	p := BuildProgress(Schedule{}, nil, 6)

	if p.TotalWorkouts != 0 || p.CompletionRate != 0 || p.CurrentStreak != 0 {
		t.Errorf("BuildProgress(empty) = %+v, want zero totals", p)
	}
	if len(p.Weeks) != 6 {
		t.Errorf("len(Weeks) = %d, want 6", len(p.Weeks))
	}
}
