package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vivelevelo/polarized/internal/sqlite"
)

// sqliteAthleteRepository manages the session-scoped athlete identities.
type sqliteAthleteRepository struct {
	baseRepository
}

func newSQLiteAthleteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteAthleteRepository {
	return &sqliteAthleteRepository{baseRepository: newBaseRepository(db, logger)}
}

// Create inserts a new athlete and returns its ID.
func (r *sqliteAthleteRepository) Create(ctx context.Context) (int64, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO athletes (created_at) VALUES (?)`,
		formatTimestamp(time.Now()))
	if err != nil {
		return 0, fmt.Errorf("insert athlete: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("athlete insert id: %w", err)
	}
	return id, nil
}

// Exists reports whether an athlete ID is known.
func (r *sqliteAthleteRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var found int64
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id FROM athletes WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query athlete %d: %w", id, err)
	}
	return true, nil
}
