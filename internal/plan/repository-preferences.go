package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vivelevelo/polarized/internal/contexthelpers"
	"github.com/vivelevelo/polarized/internal/sqlite"
)

// sqlitePreferencesRepository persists athlete intake preferences.
type sqlitePreferencesRepository struct {
	baseRepository
}

func newSQLitePreferencesRepository(db *sqlite.Database, logger *slog.Logger) *sqlitePreferencesRepository {
	return &sqlitePreferencesRepository{baseRepository: newBaseRepository(db, logger)}
}

// Get retrieves the preferences of the athlete bound to the context,
// falling back to the intake defaults when none are stored yet.
func (r *sqlitePreferencesRepository) Get(ctx context.Context) (Preferences, error) {
	athleteID := contexthelpers.AthleteID(ctx)

	var (
		prefs   Preferences
		daysCSV string
		goalStr string
		tierStr string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT goal, tier, preferred_days, athlete_name, ftp_watts
		FROM athlete_preferences
		WHERE athlete_id = ?`, athleteID).Scan(
		&goalStr, &tierStr, &daysCSV, &prefs.AthleteName, &prefs.FTPWatts,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultPreferences(), nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("query preferences: %w", err)
	}

	prefs.Goal = Goal(goalStr)
	prefs.TimeCommitment = Tier(tierStr)
	prefs.PreferredDays = parseDaysCSV(daysCSV)
	return prefs, nil
}

// Set saves the preferences of the athlete bound to the context.
func (r *sqlitePreferencesRepository) Set(ctx context.Context, prefs Preferences) error {
	athleteID := contexthelpers.AthleteID(ctx)

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO athlete_preferences (
			athlete_id, goal, tier, preferred_days, athlete_name, ftp_watts
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (athlete_id) DO UPDATE SET
			goal = excluded.goal,
			tier = excluded.tier,
			preferred_days = excluded.preferred_days,
			athlete_name = excluded.athlete_name,
			ftp_watts = excluded.ftp_watts`,
		athleteID,
		string(prefs.Goal),
		string(prefs.TimeCommitment),
		formatDaysCSV(prefs.PreferredDays),
		prefs.AthleteName,
		prefs.FTPWatts,
	)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func formatDaysCSV(days []Weekday) string {
	parts := make([]string, len(days))
	for i, day := range days {
		parts[i] = string(day)
	}
	return strings.Join(parts, ",")
}

func parseDaysCSV(csv string) []Weekday {
	var days []Weekday
	for _, part := range strings.Split(csv, ",") {
		if day, ok := ParseWeekday(strings.TrimSpace(part)); ok {
			days = append(days, day)
		}
	}
	return days
}
