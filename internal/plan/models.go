// Package plan generates polarized six-week cycling training schedules and
// adapts individual weeks to the athlete's actual time availability.
package plan

import "github.com/vivelevelo/polarized/internal/ptr"

// Goal represents the training goal an athlete is working towards.
type Goal string

// Training goal constants. Each goal has its own workout catalog section.
const (
	GoalFTP       Goal = "ftp"
	GoalClimbing  Goal = "climbing"
	GoalGranFondo Goal = "granfondo"
)

// Tier represents the weekly time commitment level.
type Tier string

// Time commitment constants.
const (
	TierStarter Tier = "starter"
	TierRegular Tier = "regular"
	TierSerious Tier = "serious"
)

// IntensityTier classifies a workout by effort. The 80/20 principle lives in
// how many workouts of each tier a week carries.
type IntensityTier string

// Intensity constants.
const (
	IntensityEasy     IntensityTier = "easy"
	IntensityModerate IntensityTier = "moderate"
	IntensityHard     IntensityTier = "hard"
)

// VariantSize identifies one of the three duration variants of a workout.
type VariantSize string

// Variant size constants.
const (
	VariantShort  VariantSize = "short"
	VariantMedium VariantSize = "medium"
	VariantLong   VariantSize = "long"
)

// variantSizes is iterated short to medium to long so that a duration tie
// resolves to the shorter variant.
var variantSizes = [3]VariantSize{VariantShort, VariantMedium, VariantLong}

// Weekday is a three-letter day name. Weeks start on Monday.
type Weekday string

// Weekday constants.
const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// weekdays holds the days of the week in scheduling order.
var weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Weekdays returns the days of the week in order, Monday first.
func Weekdays() []Weekday {
	days := make([]Weekday, len(weekdays))
	copy(days, weekdays[:])
	return days
}

// ParseWeekday validates a day name.
func ParseWeekday(s string) (Weekday, bool) {
	for _, day := range weekdays {
		if string(day) == s {
			return day, true
		}
	}
	return "", false
}

func dayIndex(day Weekday) int {
	for i, d := range weekdays {
		if d == day {
			return i
		}
	}
	return -1
}

// Variant is one duration rendition of a workout template.
type Variant struct {
	Duration    int    `yaml:"duration" json:"duration_minutes"`
	DisplayName string `yaml:"display_name" json:"display_name"`
	Details     string `yaml:"details" json:"details"`
}

// VariantSet holds the three variants every workout template must provide.
type VariantSet struct {
	Short  Variant `yaml:"short" json:"short"`
	Medium Variant `yaml:"medium" json:"medium"`
	Long   Variant `yaml:"long" json:"long"`
}

// Get returns the variant for a size.
func (vs VariantSet) Get(size VariantSize) Variant {
	switch size {
	case VariantMedium:
		return vs.Medium
	case VariantLong:
		return vs.Long
	default:
		return vs.Short
	}
}

// WorkoutTemplate is a catalog entry: one workout with its three variants.
type WorkoutTemplate struct {
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	PowerZone   string     `yaml:"power_zone" json:"power_zone"`
	Tips        string     `yaml:"tips" json:"tips"`
	Variants    VariantSet `yaml:"variants" json:"variants"`
}

// ResolvedWorkout is a template flattened to a single scheduled variant.
type ResolvedWorkout struct {
	Name        string        `json:"name"`
	BaseName    string        `json:"base_name"`
	Intensity   IntensityTier `json:"intensity"`
	Description string        `json:"description"`
	Tips        string        `json:"tips"`
	PowerZone   string        `json:"power_zone"`
	Duration    int           `json:"duration_minutes"`
	Details     string        `json:"details"`
	VariantSize VariantSize   `json:"variant"`

	// Adaptation metadata. OriginalDuration keeps the planned duration when
	// the weekly adapter compresses or extends the workout.
	Adapted          bool   `json:"adapted"`
	AdaptationType   string `json:"adaptation_type,omitempty"`
	ReducedVolume    bool   `json:"reduced_volume,omitempty"`
	OriginalDuration int    `json:"original_duration_minutes"`
}

// WeekSchedule maps every day of one week to a workout or nil for rest.
type WeekSchedule map[Weekday]*ResolvedWorkout

// Clone returns a deep copy of the week.
func (ws WeekSchedule) Clone() WeekSchedule {
	clone := make(WeekSchedule, len(ws))
	for day, w := range ws {
		if w == nil {
			clone[day] = nil
			continue
		}
		clone[day] = ptr.Ref(*w)
	}
	return clone
}

// emptyWeek returns a week with all seven days set to rest.
func emptyWeek() WeekSchedule {
	week := make(WeekSchedule, len(weekdays))
	for _, day := range weekdays {
		week[day] = nil
	}
	return week
}

// Schedule is a full training program keyed by week number, starting at 1.
type Schedule map[int]WeekSchedule

// TimeSlotMap holds the minutes an athlete has available per day.
type TimeSlotMap map[Weekday]int

// Preferences stores the athlete's intake answers and power settings.
type Preferences struct {
	Goal           Goal      `json:"goal"`
	TimeCommitment Tier      `json:"time_commitment"`
	PreferredDays  []Weekday `json:"preferred_days"`
	AthleteName    string    `json:"athlete_name"`
	FTPWatts       int       `json:"ftp_watts"`
}

// DefaultPreferences mirrors the intake defaults for a fresh athlete.
func DefaultPreferences() Preferences {
	return Preferences{
		Goal:           "",
		TimeCommitment: "",
		PreferredDays:  []Weekday{Tuesday, Thursday, Saturday},
		AthleteName:    "Rebel",
		FTPWatts:       200,
	}
}
