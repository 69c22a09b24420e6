package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vivelevelo/polarized/internal/contexthelpers"
	"github.com/vivelevelo/polarized/internal/sqlite"
)

// sqliteWorkoutLogRepository records workout completions and RPE feedback.
type sqliteWorkoutLogRepository struct {
	baseRepository
}

func newSQLiteWorkoutLogRepository(db *sqlite.Database, logger *slog.Logger) *sqliteWorkoutLogRepository {
	return &sqliteWorkoutLogRepository{baseRepository: newBaseRepository(db, logger)}
}

// MarkCompleted records that the athlete finished a workout. Completing an
// already completed workout keeps the first completion time.
func (r *sqliteWorkoutLogRepository) MarkCompleted(ctx context.Context, week int, day Weekday) error {
	athleteID := contexthelpers.AthleteID(ctx)
	completedAt := formatTimestamp(time.Now())

	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_log (athlete_id, week, day, completed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (athlete_id, week, day) DO UPDATE SET
			completed_at = COALESCE(workout_log.completed_at, excluded.completed_at)`,
		athleteID, week, string(day), completedAt); err != nil {
		return fmt.Errorf("mark workout completed: %w", err)
	}
	return nil
}

// SaveRPE stores the reported exertion for a workout.
func (r *sqliteWorkoutLogRepository) SaveRPE(ctx context.Context, week int, day Weekday, rpe int) error {
	athleteID := contexthelpers.AthleteID(ctx)
	savedAt := formatTimestamp(time.Now())

	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_log (athlete_id, week, day, rpe, rpe_saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (athlete_id, week, day) DO UPDATE SET
			rpe = excluded.rpe,
			rpe_saved_at = excluded.rpe_saved_at`,
		athleteID, week, string(day), rpe, savedAt); err != nil {
		return fmt.Errorf("save rpe: %w", err)
	}
	return nil
}

// Completions returns the completed workouts keyed by week and day.
func (r *sqliteWorkoutLogRepository) Completions(ctx context.Context) (_ map[int]map[Weekday]bool, err error) {
	athleteID := contexthelpers.AthleteID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT week, day
		FROM workout_log
		WHERE athlete_id = ? AND completed_at IS NOT NULL`, athleteID)
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	completions := map[int]map[Weekday]bool{}
	for rows.Next() {
		var (
			week   int
			dayStr string
		)
		if err = rows.Scan(&week, &dayStr); err != nil {
			return nil, fmt.Errorf("scan completion row: %w", err)
		}
		day, ok := ParseWeekday(dayStr)
		if !ok {
			continue
		}
		if completions[week] == nil {
			completions[week] = map[Weekday]bool{}
		}
		completions[week][day] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completion rows: %w", err)
	}
	return completions, nil
}
