package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vivelevelo/polarized/internal/contexthelpers"
	"github.com/vivelevelo/polarized/internal/sqlite"
)

// sqliteScheduleRepository persists training schedules and the pre-adaptation
// archives of individual weeks. Every day of a stored week has a row; rest
// days hold a NULL workout.
type sqliteScheduleRepository struct {
	baseRepository
}

func newSQLiteScheduleRepository(db *sqlite.Database, logger *slog.Logger) *sqliteScheduleRepository {
	return &sqliteScheduleRepository{baseRepository: newBaseRepository(db, logger)}
}

// Save replaces the athlete's entire schedule.
func (r *sqliteScheduleRepository) Save(ctx context.Context, schedule Schedule) (err error) {
	athleteID := contexthelpers.AthleteID(ctx)

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", rollbackErr))
		}
	}(tx)

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM schedule_weeks WHERE athlete_id = ?`, athleteID); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}

	for week, ws := range schedule {
		if err = insertWeek(ctx, tx, "schedule_weeks", athleteID, week, ws); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Get loads the athlete's full schedule. ErrNotFound when no plan exists.
func (r *sqliteScheduleRepository) Get(ctx context.Context) (_ Schedule, err error) {
	athleteID := contexthelpers.AthleteID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT week, day, workout
		FROM schedule_weeks
		WHERE athlete_id = ?
		ORDER BY week`, athleteID)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	schedule := Schedule{}
	for rows.Next() {
		var (
			week        int
			dayStr      string
			workoutJSON sql.NullString
		)
		if err = rows.Scan(&week, &dayStr, &workoutJSON); err != nil {
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		if err = applyScheduleRow(schedule, week, dayStr, workoutJSON); err != nil {
			return nil, err
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule rows: %w", err)
	}
	if len(schedule) == 0 {
		return nil, fmt.Errorf("schedule: %w", ErrNotFound)
	}
	return schedule, nil
}

// GetWeek loads one week of the schedule.
func (r *sqliteScheduleRepository) GetWeek(ctx context.Context, week int) (WeekSchedule, error) {
	return r.loadWeek(ctx, "schedule_weeks", week)
}

// SaveWeek replaces one week of the schedule.
func (r *sqliteScheduleRepository) SaveWeek(ctx context.Context, week int, ws WeekSchedule) error {
	return r.replaceWeek(ctx, "schedule_weeks", week, ws)
}

// Archive stores a pre-adaptation snapshot of a week. It does nothing if a
// snapshot already exists, so the archive always holds the first original.
func (r *sqliteScheduleRepository) Archive(ctx context.Context, week int, ws WeekSchedule) error {
	athleteID := contexthelpers.AthleteID(ctx)

	var existing int
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM original_weeks WHERE athlete_id = ? AND week = ?`,
		athleteID, week).Scan(&existing)
	if err != nil {
		return fmt.Errorf("query archive: %w", err)
	}
	if existing > 0 {
		return nil
	}
	return r.replaceWeek(ctx, "original_weeks", week, ws)
}

// GetArchived loads the archived original of a week. ErrNotFound when the
// week was never adapted.
func (r *sqliteScheduleRepository) GetArchived(ctx context.Context, week int) (WeekSchedule, error) {
	return r.loadWeek(ctx, "original_weeks", week)
}

// DeleteArchived drops the archived original of a week.
func (r *sqliteScheduleRepository) DeleteArchived(ctx context.Context, week int) error {
	athleteID := contexthelpers.AthleteID(ctx)
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		DELETE FROM original_weeks WHERE athlete_id = ? AND week = ?`,
		athleteID, week); err != nil {
		return fmt.Errorf("delete archived week %d: %w", week, err)
	}
	return nil
}

// Clear removes the schedule, archives and adaptation state of the athlete.
// Used when a new plan is generated.
func (r *sqliteScheduleRepository) Clear(ctx context.Context) (err error) {
	athleteID := contexthelpers.AthleteID(ctx)

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", rollbackErr))
		}
	}(tx)

	for _, table := range []string{"schedule_weeks", "original_weeks", "adaptation_records", "workout_log"} {
		if _, err = tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE athlete_id = ?`, table), athleteID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *sqliteScheduleRepository) loadWeek(ctx context.Context, table string, week int) (_ WeekSchedule, err error) {
	athleteID := contexthelpers.AthleteID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx,
		fmt.Sprintf(`SELECT day, workout FROM %s WHERE athlete_id = ? AND week = ?`, table),
		athleteID, week)
	if err != nil {
		return nil, fmt.Errorf("query week %d: %w", week, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	ws := emptyWeek()
	found := false
	for rows.Next() {
		var (
			dayStr      string
			workoutJSON sql.NullString
		)
		if err = rows.Scan(&dayStr, &workoutJSON); err != nil {
			return nil, fmt.Errorf("scan week row: %w", err)
		}
		found = true
		day, ok := ParseWeekday(dayStr)
		if !ok {
			return nil, fmt.Errorf("invalid day %q in week %d", dayStr, week)
		}
		if workoutJSON.Valid {
			var w ResolvedWorkout
			if err = json.Unmarshal([]byte(workoutJSON.String), &w); err != nil {
				return nil, fmt.Errorf("decode workout %s week %d: %w", dayStr, week, err)
			}
			ws[day] = &w
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate week rows: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("week %d: %w", week, ErrNotFound)
	}
	return ws, nil
}

func (r *sqliteScheduleRepository) replaceWeek(ctx context.Context, table string, week int, ws WeekSchedule) (err error) {
	athleteID := contexthelpers.AthleteID(ctx)

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", rollbackErr))
		}
	}(tx)

	if _, err = tx.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE athlete_id = ? AND week = ?`, table),
		athleteID, week); err != nil {
		return fmt.Errorf("clear week %d: %w", week, err)
	}
	if err = insertWeek(ctx, tx, table, athleteID, week, ws); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// insertWeek writes a week's rows. Every day gets a row so that a fully
// rested week is still distinguishable from a missing one; rest days store
// NULL workouts.
func insertWeek(ctx context.Context, tx *sql.Tx, table string, athleteID int64, week int, ws WeekSchedule) error {
	for _, day := range weekdays {
		var workoutJSON any
		if w := ws[day]; w != nil {
			encoded, err := json.Marshal(w)
			if err != nil {
				return fmt.Errorf("encode workout %s week %d: %w", day, week, err)
			}
			workoutJSON = string(encoded)
		}
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (athlete_id, week, day, workout) VALUES (?, ?, ?, ?)`, table),
			athleteID, week, string(day), workoutJSON); err != nil {
			return fmt.Errorf("insert workout %s week %d: %w", day, week, err)
		}
	}
	return nil
}

func applyScheduleRow(schedule Schedule, week int, dayStr string, workoutJSON sql.NullString) error {
	day, ok := ParseWeekday(dayStr)
	if !ok {
		return fmt.Errorf("invalid day %q in week %d", dayStr, week)
	}
	ws, ok := schedule[week]
	if !ok {
		ws = emptyWeek()
		schedule[week] = ws
	}
	if workoutJSON.Valid {
		var w ResolvedWorkout
		if err := json.Unmarshal([]byte(workoutJSON.String), &w); err != nil {
			return fmt.Errorf("decode workout %s week %d: %w", dayStr, week, err)
		}
		ws[day] = &w
	}
	return nil
}
