package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/claude/liftlog/internal/models"
)

// GetSettings retrieves the user settings, falling back to defaults when none
// have been saved yet.
func (db *DB) GetSettings(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	err := db.Pool.QueryRow(ctx,
		`SELECT body_weight_kg, default_met, progress_days_back, csv_import_enabled
		 FROM settings WHERE id = 1`).
		Scan(&s.BodyWeightKg, &s.DefaultMET, &s.ProgressDaysBack, &s.CSVImportEnabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("querying settings: %w", err)
	}
	return s, nil
}

// SaveSettings stores the user settings as the single settings row.
func (db *DB) SaveSettings(ctx context.Context, s models.Settings) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO settings (id, body_weight_kg, default_met, progress_days_back, csv_import_enabled)
		 VALUES (1, $1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
		   body_weight_kg     = EXCLUDED.body_weight_kg,
		   default_met        = EXCLUDED.default_met,
		   progress_days_back = EXCLUDED.progress_days_back,
		   csv_import_enabled = EXCLUDED.csv_import_enabled,
		   updated_at         = now()`,
		s.BodyWeightKg, s.DefaultMET, s.ProgressDaysBack, s.CSVImportEnabled)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
