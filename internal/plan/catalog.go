package plan

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for the planning domain.
var (
	// ErrUnknownGoal signals a goal with no catalog section. It is a
	// configuration error and fatal to schedule generation.
	ErrUnknownGoal = errors.New("unknown training goal")
	// ErrUnknownTier signals a time commitment the program tables don't cover.
	ErrUnknownTier = errors.New("unknown time commitment")
	// ErrNotFound signals a missing schedule, workout or record.
	ErrNotFound = errors.New("not found")
)

// Catalog holds every workout template, organized by goal and intensity.
type Catalog struct {
	Goals map[Goal]map[IntensityTier][]WorkoutTemplate `yaml:"goals"`
}

// ParseCatalog decodes and validates a YAML catalog. Invalid catalogs are
// rejected up front so generation never has to skip malformed entries.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("validate catalog: %w", err)
	}
	return c, nil
}

// LoadCatalog reads a catalog from a YAML file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Validate checks that every goal covers all three intensity tiers and that
// every template carries a name and three complete variants.
func (c Catalog) Validate() error {
	if len(c.Goals) == 0 {
		return errors.New("catalog has no goals")
	}
	for goal, tiers := range c.Goals {
		for _, intensity := range []IntensityTier{IntensityEasy, IntensityModerate, IntensityHard} {
			templates, ok := tiers[intensity]
			if !ok || len(templates) == 0 {
				return fmt.Errorf("goal %s: no %s workouts", goal, intensity)
			}
			for _, t := range templates {
				if err := t.validate(); err != nil {
					return fmt.Errorf("goal %s, %s workouts: %w", goal, intensity, err)
				}
			}
		}
	}
	return nil
}

func (t WorkoutTemplate) validate() error {
	if t.Name == "" {
		return errors.New("workout without a name")
	}
	for _, size := range variantSizes {
		v := t.Variants.Get(size)
		if v.Duration <= 0 {
			return fmt.Errorf("workout %q: %s variant has no duration", t.Name, size)
		}
		if v.DisplayName == "" {
			return fmt.Errorf("workout %q: %s variant has no display name", t.Name, size)
		}
	}
	return nil
}

// Templates returns the workouts for a goal and intensity.
func (c Catalog) Templates(goal Goal, intensity IntensityTier) ([]WorkoutTemplate, error) {
	tiers, ok := c.Goals[goal]
	if !ok {
		return nil, fmt.Errorf("goal %q: %w", goal, ErrUnknownGoal)
	}
	return tiers[intensity], nil
}
