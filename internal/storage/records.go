package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/claude/liftlog/internal/models"
)

// NamedRecord is a canonical personal record with the exercise it belongs to.
type NamedRecord struct {
	ExerciseName string                `json:"exerciseName"`
	Record       models.PersonalRecord `json:"record"`
}

// GetPersonalRecord retrieves the canonical record for an exercise, or
// ErrNotFound when none exists yet.
func (db *DB) GetPersonalRecord(ctx context.Context, exerciseName string) (*models.PersonalRecord, error) {
	var pr models.PersonalRecord
	err := db.Pool.QueryRow(ctx,
		`SELECT max_weight, max_reps, max_weight_date, max_reps_date
		 FROM personal_records WHERE exercise_name = $1`,
		exerciseName).Scan(&pr.MaxWeight, &pr.MaxReps, &pr.MaxWeightDate, &pr.MaxRepsDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying personal record: %w", err)
	}
	return &pr, nil
}

// ListPersonalRecords retrieves all canonical records ordered by exercise
// name.
func (db *DB) ListPersonalRecords(ctx context.Context) ([]NamedRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT exercise_name, max_weight, max_reps, max_weight_date, max_reps_date
		 FROM personal_records ORDER BY exercise_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying personal records: %w", err)
	}
	defer rows.Close()

	var result []NamedRecord
	for rows.Next() {
		var r NamedRecord
		if err := rows.Scan(&r.ExerciseName, &r.Record.MaxWeight, &r.Record.MaxReps,
			&r.Record.MaxWeightDate, &r.Record.MaxRepsDate); err != nil {
			return nil, fmt.Errorf("scanning personal record: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// MergePersonalRecord upserts the canonical record for an exercise as the
// pointwise maximum of the stored and proposed records. Each dimension keeps
// its own date: merging a heavier weight does not touch the reps date.
// Sync is one-way: session evaluation proposes, the canonical store decides.
func (db *DB) MergePersonalRecord(ctx context.Context, exerciseName string, pr models.PersonalRecord) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO personal_records (exercise_name, max_weight, max_reps, max_weight_date, max_reps_date)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (exercise_name) DO UPDATE SET
		   max_weight = GREATEST(personal_records.max_weight, EXCLUDED.max_weight),
		   max_weight_date = CASE WHEN EXCLUDED.max_weight > personal_records.max_weight
		                          THEN EXCLUDED.max_weight_date
		                          ELSE personal_records.max_weight_date END,
		   max_reps = GREATEST(personal_records.max_reps, EXCLUDED.max_reps),
		   max_reps_date = CASE WHEN EXCLUDED.max_reps > personal_records.max_reps
		                        THEN EXCLUDED.max_reps_date
		                        ELSE personal_records.max_reps_date END,
		   updated_at = now()`,
		exerciseName, pr.MaxWeight, pr.MaxReps, pr.MaxWeightDate, pr.MaxRepsDate)
	if err != nil {
		return fmt.Errorf("merging personal record: %w", err)
	}
	return nil
}

// CountWeightRecords counts exercises whose canonical record has a nonzero
// weight, used by the achievement rules.
func (db *DB) CountWeightRecords(ctx context.Context) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM personal_records WHERE max_weight > 0`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting weight records: %w", err)
	}
	return count, nil
}
