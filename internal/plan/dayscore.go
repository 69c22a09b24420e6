package plan

// Day placement scoring constants.
const (
	// preferredDayBonus rewards the athlete's chosen training days.
	preferredDayBonus = 10
	// weekendEasyBonus favors long easy rides on the weekend.
	weekendEasyBonus = 5
	// consecutiveDayPenalty discourages a fourth training day in a row.
	consecutiveDayPenalty = 20
	// consecutiveDayLimit is the run length at which the penalty kicks in.
	consecutiveDayLimit = 4
	// adjacencyPenalty keeps moderate and hard sessions away from other
	// training days so recovery fits between hard efforts.
	adjacencyPenalty = 15
)

// scoreDay rates how suitable a day is for the next workout given what is
// already scheduled this week. Higher is better; scores can go negative and
// the generator still picks the least bad day.
func scoreDay(day Weekday, scheduled map[Weekday]bool, preferred map[Weekday]bool, intensity IntensityTier) int {
	idx := dayIndex(day)
	score := 0

	if preferred[day] {
		score += preferredDayBonus
	}

	if (day == Saturday || day == Sunday) && intensity == IntensityEasy {
		score += weekendEasyBonus
	}

	// Backward scan for a run of scheduled days ending just before this one.
	consecutive := 1
	for j := idx - 1; j >= 0 && j >= idx-3; j-- {
		if !scheduled[weekdays[j]] {
			break
		}
		consecutive++
	}
	if consecutive >= consecutiveDayLimit {
		score -= consecutiveDayPenalty
	}

	if intensity == IntensityHard || intensity == IntensityModerate {
		adjacent := false
		if idx > 0 && scheduled[weekdays[idx-1]] {
			adjacent = true
		}
		if idx < len(weekdays)-1 && scheduled[weekdays[idx+1]] {
			adjacent = true
		}
		if adjacent {
			score -= adjacencyPenalty
		}
	}

	return score
}
