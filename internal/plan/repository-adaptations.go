package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vivelevelo/polarized/internal/contexthelpers"
	"github.com/vivelevelo/polarized/internal/sqlite"
)

// AdaptationRecord documents one applied weekly adaptation.
type AdaptationRecord struct {
	Week       int               `json:"week"`
	TimeSlots  TimeSlotMap       `json:"time_slots"`
	Summary    AdaptationSummary `json:"summary"`
	Strategies []string          `json:"strategies"`
	AppliedAt  time.Time         `json:"applied_at"`
}

// sqliteAdaptationRepository persists adaptation records.
type sqliteAdaptationRepository struct {
	baseRepository
}

func newSQLiteAdaptationRepository(db *sqlite.Database, logger *slog.Logger) *sqliteAdaptationRepository {
	return &sqliteAdaptationRepository{baseRepository: newBaseRepository(db, logger)}
}

// Set stores or replaces the adaptation record of a week.
func (r *sqliteAdaptationRepository) Set(ctx context.Context, record AdaptationRecord) error {
	athleteID := contexthelpers.AthleteID(ctx)

	slotsJSON, err := json.Marshal(record.TimeSlots)
	if err != nil {
		return fmt.Errorf("encode time slots: %w", err)
	}
	summaryJSON, err := json.Marshal(record.Summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	strategiesJSON, err := json.Marshal(record.Strategies)
	if err != nil {
		return fmt.Errorf("encode strategies: %w", err)
	}

	if _, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO adaptation_records (athlete_id, week, time_slots, summary, strategies, applied_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (athlete_id, week) DO UPDATE SET
			time_slots = excluded.time_slots,
			summary = excluded.summary,
			strategies = excluded.strategies,
			applied_at = excluded.applied_at`,
		athleteID, record.Week,
		string(slotsJSON), string(summaryJSON), string(strategiesJSON),
		formatTimestamp(record.AppliedAt),
	); err != nil {
		return fmt.Errorf("save adaptation record week %d: %w", record.Week, err)
	}
	return nil
}

// Get loads the adaptation record of a week. ErrNotFound when the week has
// no active adaptation.
func (r *sqliteAdaptationRepository) Get(ctx context.Context, week int) (AdaptationRecord, error) {
	athleteID := contexthelpers.AthleteID(ctx)

	var (
		slotsJSON      string
		summaryJSON    string
		strategiesJSON string
		appliedAtStr   string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT time_slots, summary, strategies, applied_at
		FROM adaptation_records
		WHERE athlete_id = ? AND week = ?`, athleteID, week).Scan(
		&slotsJSON, &summaryJSON, &strategiesJSON, &appliedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return AdaptationRecord{}, fmt.Errorf("adaptation record week %d: %w", week, ErrNotFound)
	}
	if err != nil {
		return AdaptationRecord{}, fmt.Errorf("query adaptation record week %d: %w", week, err)
	}

	record := AdaptationRecord{Week: week}
	if err = json.Unmarshal([]byte(slotsJSON), &record.TimeSlots); err != nil {
		return AdaptationRecord{}, fmt.Errorf("decode time slots: %w", err)
	}
	if err = json.Unmarshal([]byte(summaryJSON), &record.Summary); err != nil {
		return AdaptationRecord{}, fmt.Errorf("decode summary: %w", err)
	}
	if err = json.Unmarshal([]byte(strategiesJSON), &record.Strategies); err != nil {
		return AdaptationRecord{}, fmt.Errorf("decode strategies: %w", err)
	}
	record.AppliedAt, err = time.Parse(timestampFormat, appliedAtStr)
	if err != nil {
		return AdaptationRecord{}, fmt.Errorf("parse applied_at: %w", err)
	}
	return record, nil
}

// Delete removes the adaptation record of a week.
func (r *sqliteAdaptationRepository) Delete(ctx context.Context, week int) error {
	athleteID := contexthelpers.AthleteID(ctx)
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		DELETE FROM adaptation_records WHERE athlete_id = ? AND week = ?`,
		athleteID, week); err != nil {
		return fmt.Errorf("delete adaptation record week %d: %w", week, err)
	}
	return nil
}
