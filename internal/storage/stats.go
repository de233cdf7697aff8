package storage

import (
	"context"
	"fmt"
)

// DataStats holds aggregate statistics about all stored data.
type DataStats struct {
	TotalSessions     int64   `json:"total_sessions"`
	CompletedSessions int64   `json:"completed_sessions"`
	TrackedExercises  int64   `json:"tracked_exercises"`
	TrackedSchemas    int64   `json:"tracked_schemas"`
	EarliestDate      *string `json:"earliest_date"`
	LatestDate        *string `json:"latest_date"`
}

// GetDataStats returns aggregate statistics for the stored data.
func (db *DB) GetDataStats(ctx context.Context) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE completed) FROM sessions`,
	).Scan(&stats.TotalSessions, &stats.CompletedSessions)
	if err != nil {
		return nil, fmt.Errorf("counting sessions: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM personal_records`).Scan(&stats.TrackedExercises)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT schema_id) FROM sessions`).Scan(&stats.TrackedSchemas)
	if err != nil {
		return nil, fmt.Errorf("counting schemas: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT MIN(session_date)::text, MAX(session_date)::text FROM sessions`,
	).Scan(&stats.EarliestDate, &stats.LatestDate)
	if err != nil {
		return nil, fmt.Errorf("querying date range: %w", err)
	}

	return stats, nil
}
