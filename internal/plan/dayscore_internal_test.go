package plan

import "testing"

func TestScoreDay(t *testing.T) {
	tests := []struct {
		name      string
		day       Weekday
		scheduled map[Weekday]bool
		preferred map[Weekday]bool
		intensity IntensityTier
		want      int
	}{
		{
			name:      "preferred day bonus",
			day:       Tuesday,
			scheduled: map[Weekday]bool{},
			preferred: map[Weekday]bool{Tuesday: true},
			intensity: IntensityEasy,
			want:      10,
		},
		{
			name:      "weekend easy bonus",
			day:       Saturday,
			scheduled: map[Weekday]bool{},
			preferred: map[Weekday]bool{},
			intensity: IntensityEasy,
			want:      5,
		},
		{
			name:      "weekend bonus only for easy",
			day:       Saturday,
			scheduled: map[Weekday]bool{},
			preferred: map[Weekday]bool{},
			intensity: IntensityHard,
			want:      0,
		},
		{
			name:      "fourth consecutive day penalized",
			day:       Thursday,
			scheduled: map[Weekday]bool{Monday: true, Tuesday: true, Wednesday: true},
			preferred: map[Weekday]bool{},
			intensity: IntensityEasy,
			want:      -20,
		},
		{
			name:      "three consecutive days not penalized",
			day:       Wednesday,
			scheduled: map[Weekday]bool{Monday: true, Tuesday: true},
			preferred: map[Weekday]bool{},
			intensity: IntensityEasy,
			want:      0,
		},
		{
			name:      "hard workout next to scheduled day penalized",
			day:       Wednesday,
			scheduled: map[Weekday]bool{Tuesday: true},
			preferred: map[Weekday]bool{},
			intensity: IntensityHard,
			want:      -15,
		},
		{
			name:      "moderate workout next to scheduled day penalized",
			day:       Wednesday,
			scheduled: map[Weekday]bool{Thursday: true},
			preferred: map[Weekday]bool{},
			intensity: IntensityModerate,
			want:      -15,
		},
		{
			name:      "easy workout unaffected by adjacency",
			day:       Wednesday,
			scheduled: map[Weekday]bool{Tuesday: true},
			preferred: map[Weekday]bool{},
			intensity: IntensityEasy,
			want:      0,
		},
		{
			name:      "bonuses and penalties combine",
			day:       Saturday,
			scheduled: map[Weekday]bool{Friday: true},
			preferred: map[Weekday]bool{Saturday: true},
			intensity: IntensityHard,
			want:      10 - 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreDay(tt.day, tt.scheduled, tt.preferred, tt.intensity); got != tt.want {
				t.Errorf("scoreDay() = %d, want %d", got, tt.want)
			}
		})
	}
}
