package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vivelevelo/polarized/internal/sqlite"
)

// Service handles the business logic for training plan management. The
// engine itself stays pure; the service composes it with persistence.
type Service struct {
	repo    *repository
	catalog Catalog
	program ProgramConfig
	logger  *slog.Logger
}

// NewService creates a plan service. The catalog and program are validated
// eagerly so configuration errors surface at startup, not mid-request.
func NewService(db *sqlite.Database, catalog Catalog, program ProgramConfig, logger *slog.Logger) (*Service, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	if err := program.Validate(); err != nil {
		return nil, fmt.Errorf("validate program: %w", err)
	}
	return &Service{
		repo:    newRepository(db, logger),
		catalog: catalog,
		program: program,
		logger:  logger,
	}, nil
}

// Program exposes the program metadata (week count, descriptions).
func (s *Service) Program() ProgramConfig {
	return s.program
}

// CreateAthlete registers a new athlete identity for a session.
func (s *Service) CreateAthlete(ctx context.Context) (int64, error) {
	id, err := s.repo.athletes.Create(ctx)
	if err != nil {
		return 0, fmt.Errorf("create athlete: %w", err)
	}
	return id, nil
}

// AthleteExists reports whether an athlete ID is still valid.
func (s *Service) AthleteExists(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repo.athletes.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check athlete: %w", err)
	}
	return exists, nil
}

// GenerateParams describes a plan generation request. A zero Seed asks the
// service to pick one, which it logs so runs stay reproducible.
type GenerateParams struct {
	Goal           Goal
	TimeCommitment Tier
	PreferredDays  []Weekday
	Seed           uint64
}

// GeneratePlan creates and persists a new training program for the athlete,
// replacing any previous plan together with its adaptations and log.
func (s *Service) GeneratePlan(ctx context.Context, params GenerateParams) (Schedule, error) {
	preferredDays := params.PreferredDays
	if len(preferredDays) == 0 {
		preferredDays = DefaultPreferences().PreferredDays
	}
	seed := params.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec // schedule variety, not crypto
	}

	gen := NewGenerator(s.catalog, s.program, seed)
	schedule, err := gen.Generate(params.Goal, params.TimeCommitment, preferredDays)
	if err != nil {
		return nil, fmt.Errorf("generate schedule: %w", err)
	}

	prefs, err := s.repo.prefs.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	prefs.Goal = params.Goal
	prefs.TimeCommitment = params.TimeCommitment
	prefs.PreferredDays = preferredDays
	if err = s.repo.prefs.Set(ctx, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}

	if err = s.repo.schedules.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear previous plan: %w", err)
	}
	if err = s.repo.schedules.Save(ctx, schedule); err != nil {
		return nil, fmt.Errorf("save schedule: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "plan generated",
		slog.String("goal", string(params.Goal)),
		slog.String("tier", string(params.TimeCommitment)),
		slog.Uint64("seed", seed))
	return schedule, nil
}

// GetSchedule returns the athlete's full schedule.
func (s *Service) GetSchedule(ctx context.Context) (Schedule, error) {
	schedule, err := s.repo.schedules.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return schedule, nil
}

// GetWeek returns one week of the schedule.
func (s *Service) GetWeek(ctx context.Context, week int) (WeekSchedule, error) {
	if err := s.checkWeek(week); err != nil {
		return nil, err
	}
	ws, err := s.repo.schedules.GetWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("get week %d: %w", week, err)
	}
	return ws, nil
}

// GetAdaptation returns the active adaptation record of a week, or
// ErrNotFound when the week runs as planned.
func (s *Service) GetAdaptation(ctx context.Context, week int) (AdaptationRecord, error) {
	record, err := s.repo.adaptations.Get(ctx, week)
	if err != nil {
		return AdaptationRecord{}, fmt.Errorf("get adaptation week %d: %w", week, err)
	}
	return record, nil
}

// AdaptWeek fits a week to the athlete's available time slots. The original
// week is archived before its first adaptation so it can be restored.
func (s *Service) AdaptWeek(ctx context.Context, week int, slots TimeSlotMap) (AdaptationResult, error) {
	if err := s.checkWeek(week); err != nil {
		return AdaptationResult{}, err
	}
	ws, err := s.repo.schedules.GetWeek(ctx, week)
	if err != nil {
		return AdaptationResult{}, fmt.Errorf("get week %d: %w", week, err)
	}
	if err = s.repo.schedules.Archive(ctx, week, ws); err != nil {
		return AdaptationResult{}, fmt.Errorf("archive week %d: %w", week, err)
	}

	// Always adapt the archived original, never the current week: a second
	// adaptation must be able to re-place workouts the first one dropped,
	// and compressed durations must not compound. Archive is a no-op when a
	// snapshot already exists, so this is the first pre-adaptation week.
	original, err := s.repo.schedules.GetArchived(ctx, week)
	if err != nil {
		return AdaptationResult{}, fmt.Errorf("get archived week %d: %w", week, err)
	}

	prefs, err := s.repo.prefs.Get(ctx)
	if err != nil {
		return AdaptationResult{}, fmt.Errorf("get preferences: %w", err)
	}

	result := AdaptWeek(original, slots, prefs.PreferredDays)

	if err = s.repo.schedules.SaveWeek(ctx, week, result.Schedule); err != nil {
		return AdaptationResult{}, fmt.Errorf("save adapted week %d: %w", week, err)
	}
	if err = s.repo.adaptations.Set(ctx, AdaptationRecord{
		Week:       week,
		TimeSlots:  slots,
		Summary:    result.Summary,
		Strategies: result.Strategies,
		AppliedAt:  time.Now(),
	}); err != nil {
		return AdaptationResult{}, fmt.Errorf("save adaptation record week %d: %w", week, err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "week adapted",
		slog.Int("week", week),
		slog.Int("polarization_score", result.Summary.PolarizationScore),
		slog.Int("workout_retention", result.Summary.WorkoutRetention))
	return result, nil
}

// RestoreWeek puts the archived original week back and clears the
// adaptation record. ErrNotFound when the week was never adapted.
func (s *Service) RestoreWeek(ctx context.Context, week int) (WeekSchedule, error) {
	if err := s.checkWeek(week); err != nil {
		return nil, err
	}
	original, err := s.repo.schedules.GetArchived(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("get archived week %d: %w", week, err)
	}
	if err = s.repo.schedules.SaveWeek(ctx, week, original); err != nil {
		return nil, fmt.Errorf("restore week %d: %w", week, err)
	}
	if err = s.repo.schedules.DeleteArchived(ctx, week); err != nil {
		return nil, fmt.Errorf("drop archive week %d: %w", week, err)
	}
	if err = s.repo.adaptations.Delete(ctx, week); err != nil {
		return nil, fmt.Errorf("drop adaptation record week %d: %w", week, err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "week restored", slog.Int("week", week))
	return original, nil
}

// AdjustVolume cuts a week's volume. Like an adaptation, the original week
// is archived first so the adjustment can be undone with RestoreWeek.
func (s *Service) AdjustVolume(ctx context.Context, week int, level VolumeLevel) (WeekSchedule, error) {
	if err := s.checkWeek(week); err != nil {
		return nil, err
	}
	ws, err := s.repo.schedules.GetWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("get week %d: %w", week, err)
	}
	if err = s.repo.schedules.Archive(ctx, week, ws); err != nil {
		return nil, fmt.Errorf("archive week %d: %w", week, err)
	}

	adjusted, err := AdjustWeekVolume(ws, level)
	if err != nil {
		return nil, fmt.Errorf("adjust week %d: %w", week, err)
	}
	if err = s.repo.schedules.SaveWeek(ctx, week, adjusted); err != nil {
		return nil, fmt.Errorf("save adjusted week %d: %w", week, err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "week volume adjusted",
		slog.Int("week", week), slog.String("level", string(level)))
	return adjusted, nil
}

// WorkoutDetail returns the workout scheduled on a specific day.
// ErrNotFound for rest days.
func (s *Service) WorkoutDetail(ctx context.Context, week int, day Weekday) (*ResolvedWorkout, error) {
	ws, err := s.GetWeek(ctx, week)
	if err != nil {
		return nil, err
	}
	w := ws[day]
	if w == nil {
		return nil, fmt.Errorf("workout %s week %d: %w", day, week, ErrNotFound)
	}
	return w, nil
}

// CompleteWorkout marks a scheduled workout as done.
func (s *Service) CompleteWorkout(ctx context.Context, week int, day Weekday) error {
	if _, err := s.WorkoutDetail(ctx, week, day); err != nil {
		return err
	}
	if err := s.repo.log.MarkCompleted(ctx, week, day); err != nil {
		return fmt.Errorf("complete workout %s week %d: %w", day, week, err)
	}
	return nil
}

// SaveRPE records perceived exertion for a workout and returns intensity
// advice derived from the workout's target band.
func (s *Service) SaveRPE(ctx context.Context, week int, day Weekday, rpe int) (RPEAdvice, error) {
	w, err := s.WorkoutDetail(ctx, week, day)
	if err != nil {
		return RPEAdvice{}, err
	}
	advice, err := EvaluateRPE(w.Intensity, rpe)
	if err != nil {
		return RPEAdvice{}, fmt.Errorf("evaluate rpe: %w", err)
	}
	if err = s.repo.log.SaveRPE(ctx, week, day, rpe); err != nil {
		return RPEAdvice{}, fmt.Errorf("save rpe %s week %d: %w", day, week, err)
	}
	return advice, nil
}

// Progress computes completion stats over the whole program.
func (s *Service) Progress(ctx context.Context) (Progress, error) {
	schedule, err := s.repo.schedules.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		return Progress{}, fmt.Errorf("progress: %w", ErrNotFound)
	}
	if err != nil {
		return Progress{}, fmt.Errorf("get schedule: %w", err)
	}
	completions, err := s.repo.log.Completions(ctx)
	if err != nil {
		return Progress{}, fmt.Errorf("get completions: %w", err)
	}
	return BuildProgress(schedule, completions, s.program.TotalWeeks), nil
}

// GetPreferences returns the athlete's stored preferences or the defaults.
func (s *Service) GetPreferences(ctx context.Context) (Preferences, error) {
	prefs, err := s.repo.prefs.Get(ctx)
	if err != nil {
		return Preferences{}, fmt.Errorf("get preferences: %w", err)
	}
	return prefs, nil
}

// SavePreferences stores the athlete's preferences.
func (s *Service) SavePreferences(ctx context.Context, prefs Preferences) error {
	if err := s.repo.prefs.Set(ctx, prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (s *Service) checkWeek(week int) error {
	if week < 1 || week > s.program.TotalWeeks {
		return fmt.Errorf("week %d out of range 1-%d: %w", week, s.program.TotalWeeks, ErrNotFound)
	}
	return nil
}
