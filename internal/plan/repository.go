package plan

import (
	"log/slog"
	"time"

	"github.com/vivelevelo/polarized/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// baseRepository carries the shared database handle and logger.
type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{db: db, logger: logger}
}

// repository groups the per-aggregate repositories behind the service.
type repository struct {
	athletes    *sqliteAthleteRepository
	prefs       *sqlitePreferencesRepository
	schedules   *sqliteScheduleRepository
	adaptations *sqliteAdaptationRepository
	log         *sqliteWorkoutLogRepository
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	return &repository{
		athletes:    newSQLiteAthleteRepository(db, logger),
		prefs:       newSQLitePreferencesRepository(db, logger),
		schedules:   newSQLiteScheduleRepository(db, logger),
		adaptations: newSQLiteAdaptationRepository(db, logger),
		log:         newSQLiteWorkoutLogRepository(db, logger),
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}
