package plan

import "math"

// SlotCategory buckets a day's available minutes.
type SlotCategory string

// Slot categories.
const (
	SlotNone   SlotCategory = "none"
	SlotShort  SlotCategory = "short"  // up to 45 min
	SlotMedium SlotCategory = "medium" // 46-90 min
	SlotLong   SlotCategory = "long"   // 91-120 min
	SlotExtra  SlotCategory = "extra"  // over 2 hours
)

// slotCategory classifies the available minutes of one day.
func slotCategory(minutes int) SlotCategory {
	switch {
	case minutes <= 0:
		return SlotNone
	case minutes <= 45:
		return SlotShort
	case minutes <= 90:
		return SlotMedium
	case minutes <= 120:
		return SlotLong
	default:
		return SlotExtra
	}
}

// Availability summarizes how much training time a week offers.
type Availability struct {
	TotalMinutes         int     `json:"total_minutes"`
	TotalHours           float64 `json:"total_hours"`
	AvailableDays        int     `json:"available_days"`
	LongSlots            int     `json:"long_slots"`
	MediumSlots          int     `json:"medium_slots"`
	ShortSlots           int     `json:"short_slots"`
	AverageMinutesPerDay int     `json:"average_minutes_per_day"`
}

// AnalyzeAvailability aggregates a week of time slots. Hours are rounded to
// one decimal; extra-long slots count as long.
func AnalyzeAvailability(slots TimeSlotMap) Availability {
	var a Availability
	for _, day := range weekdays {
		minutes := slots[day]
		if minutes <= 0 {
			continue
		}
		a.TotalMinutes += minutes
		a.AvailableDays++
		switch slotCategory(minutes) {
		case SlotLong, SlotExtra:
			a.LongSlots++
		case SlotMedium:
			a.MediumSlots++
		case SlotShort:
			a.ShortSlots++
		}
	}
	a.TotalHours = math.Round(float64(a.TotalMinutes)/60*10) / 10
	if a.AvailableDays > 0 {
		a.AverageMinutesPerDay = int(math.Round(float64(a.TotalMinutes) / float64(a.AvailableDays)))
	}
	return a
}
