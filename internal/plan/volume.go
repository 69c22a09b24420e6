package plan

import (
	"fmt"
	"math"
)

// VolumeLevel selects how aggressively to cut a week's training volume.
type VolumeLevel string

// Volume adjustment levels.
const (
	// VolumeMinimal keeps only the most important workouts, at most three,
	// prioritizing hard over moderate over easy.
	VolumeMinimal VolumeLevel = "minimal"
	// VolumeReduced shortens every workout by 30%.
	VolumeReduced VolumeLevel = "reduced"
)

const (
	minimalMaxWorkouts = 3
	reducedFactor      = 0.7
)

// AdjustWeekVolume returns a copy of the week with its volume cut down.
func AdjustWeekVolume(week WeekSchedule, level VolumeLevel) (WeekSchedule, error) {
	switch level {
	case VolumeMinimal:
		return minimalWeek(week), nil
	case VolumeReduced:
		return reducedWeek(week), nil
	default:
		return nil, fmt.Errorf("unknown volume level %q", level)
	}
}

func minimalWeek(week WeekSchedule) WeekSchedule {
	adjusted := week.Clone()
	kept := 0
	for _, intensity := range intensityDrawOrder {
		for _, day := range weekdays {
			w := adjusted[day]
			if w == nil || w.Intensity != intensity {
				continue
			}
			if kept < minimalMaxWorkouts {
				kept++
			} else {
				adjusted[day] = nil
			}
		}
	}
	return adjusted
}

func reducedWeek(week WeekSchedule) WeekSchedule {
	adjusted := week.Clone()
	for _, day := range weekdays {
		w := adjusted[day]
		if w == nil {
			continue
		}
		w.Duration = int(math.Round(float64(w.Duration) * reducedFactor))
		w.Description += " (-30% volume)"
		w.ReducedVolume = true
		w.Adapted = true
	}
	return adjusted
}
