package plan

import "math"

// intensityFactors approximate the physiological load of each tier as a
// fraction of threshold effort, used for the training stress estimate.
var intensityFactors = map[IntensityTier]float64{
	IntensityEasy:     0.5,
	IntensityModerate: 0.75,
	IntensityHard:     0.95,
}

// WorkoutTSS estimates the training stress of one workout:
// hours x IF^2 x 100, rounded.
func WorkoutTSS(w *ResolvedWorkout) int {
	factor := intensityFactors[w.Intensity]
	hours := float64(w.Duration) / 60
	return int(math.Round(hours * factor * factor * 100))
}

// WeekStats summarizes completion for one week of the program.
type WeekStats struct {
	Week      int `json:"week"`
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Minutes   int `json:"minutes"`
	Rate      int `json:"rate_percent"`
}

// Progress aggregates completion over the whole program.
type Progress struct {
	TotalWorkouts     int         `json:"total_workouts"`
	CompletedWorkouts int         `json:"completed_workouts"`
	TotalMinutes      int         `json:"total_minutes"`
	CompletionRate    int         `json:"completion_rate_percent"`
	TotalTSS          int         `json:"total_tss"`
	CurrentStreak     int         `json:"current_streak"`
	Weeks             []WeekStats `json:"weeks"`
}

// BuildProgress computes completion stats for a schedule. Completions are
// keyed week then day; minutes and training stress only count completed
// workouts. The streak is the run of consecutively completed scheduled
// workouts ending at the most recent completion.
func BuildProgress(schedule Schedule, completions map[int]map[Weekday]bool, totalWeeks int) Progress {
	var p Progress
	var scheduledDone []bool

	for week := 1; week <= totalWeeks; week++ {
		stats := WeekStats{Week: week}
		ws := schedule[week]
		for _, day := range weekdays {
			w := ws[day]
			if w == nil {
				continue
			}
			stats.Total++
			p.TotalWorkouts++
			done := completions[week][day]
			scheduledDone = append(scheduledDone, done)
			if done {
				stats.Completed++
				stats.Minutes += w.Duration
				p.CompletedWorkouts++
				p.TotalMinutes += w.Duration
				p.TotalTSS += WorkoutTSS(w)
			}
		}
		if stats.Total > 0 {
			stats.Rate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
		}
		p.Weeks = append(p.Weeks, stats)
	}

	if p.TotalWorkouts > 0 {
		p.CompletionRate = int(math.Round(float64(p.CompletedWorkouts) / float64(p.TotalWorkouts) * 100))
	}
	p.CurrentStreak = currentStreak(scheduledDone)
	return p
}

// currentStreak counts consecutive completions backwards from the last
// completed workout, ignoring workouts scheduled after it.
func currentStreak(done []bool) int {
	last := -1
	for i, d := range done {
		if d {
			last = i
		}
	}
	streak := 0
	for i := last; i >= 0 && done[i]; i-- {
		streak++
	}
	return streak
}
