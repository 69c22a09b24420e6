package plan

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

// intensityDrawOrder fills the weekly pool hard-first so the scarce high
// intensity sessions get first pick of the best days.
var intensityDrawOrder = [3]IntensityTier{IntensityHard, IntensityModerate, IntensityEasy}

// Generator builds full training schedules from a validated catalog and
// program. Randomness is injected through the seed: the same
// (goal, tier, preferred days, seed) always yields the same schedule.
type Generator struct {
	catalog Catalog
	program ProgramConfig
	rng     *rand.Rand
}

// NewGenerator creates a seeded generator. The catalog and program are
// assumed to be validated.
func NewGenerator(catalog Catalog, program ProgramConfig, seed uint64) *Generator {
	return &Generator{
		catalog: catalog,
		program: program,
		rng:     rand.New(rand.NewPCG(seed, seed)),
	}
}

// Generate produces the complete schedule for a goal and time commitment.
// Every week gets the exact workout count and intensity mix from the program
// tables; placement follows the day scorer.
func (g *Generator) Generate(goal Goal, tier Tier, preferredDays []Weekday) (Schedule, error) {
	if _, ok := g.catalog.Goals[goal]; !ok {
		return nil, fmt.Errorf("goal %q: %w", goal, ErrUnknownGoal)
	}
	if _, ok := g.program.IntensityPlans[tier]; !ok {
		return nil, fmt.Errorf("time commitment %q: %w", tier, ErrUnknownTier)
	}

	preferred := make(map[Weekday]bool, len(preferredDays))
	for _, day := range preferredDays {
		preferred[day] = true
	}

	schedule := make(Schedule, g.program.TotalWeeks)
	for week := 1; week <= g.program.TotalWeeks; week++ {
		weekPlan, err := g.program.weekPlan(tier, week)
		if err != nil {
			return nil, fmt.Errorf("week %d: %w", week, err)
		}
		schedule[week] = g.generateWeek(goal, tier, week, weekPlan, preferred)
	}
	return schedule, nil
}

func (g *Generator) generateWeek(
	goal Goal,
	tier Tier,
	week int,
	weekPlan WeekIntensityPlan,
	preferred map[Weekday]bool,
) WeekSchedule {
	ws := emptyWeek()
	targets := g.program.TargetDurations[tier]

	// Build the workout pool with resolved variants, hard workouts first.
	var pool []*ResolvedWorkout
	for _, intensity := range intensityDrawOrder {
		templates := g.catalog.Goals[goal][intensity]
		if len(templates) == 0 {
			continue
		}
		for range weekPlan.count(intensity) {
			t := templates[g.rng.IntN(len(templates))]
			v, size := selectVariant(t, targets.forIntensity(intensity), week, g.program)
			pool = append(pool, resolveWorkout(t, v, size, intensity))
		}
	}

	g.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	// Preferred days first; order within each group stays Mon..Sun.
	sortedDays := Weekdays()
	sort.SliceStable(sortedDays, func(i, j int) bool {
		return preferred[sortedDays[i]] && !preferred[sortedDays[j]]
	})

	scheduled := make(map[Weekday]bool, len(pool))
	count := weekPlan.Total()
	for i := 0; i < count && i < len(pool); i++ {
		var bestDay Weekday
		bestScore := math.MinInt
		for _, day := range sortedDays {
			if scheduled[day] {
				continue
			}
			score := scoreDay(day, scheduled, preferred, pool[i].Intensity)
			if score > bestScore {
				bestScore = score
				bestDay = day
			}
		}
		if bestDay != "" {
			ws[bestDay] = pool[i]
			scheduled[bestDay] = true
		}
	}
	return ws
}
