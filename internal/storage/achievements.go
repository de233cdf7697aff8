package storage

import (
	"context"
	"fmt"
	"time"
)

// UnlockedAchievement is a persisted achievement unlock.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// UnlockAchievement records an achievement unlock. Returns true when the row
// was inserted, false when it was already unlocked.
func (db *DB) UnlockAchievement(ctx context.Context, id string, at time.Time) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO achievements (id, unlocked_at) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		id, at)
	if err != nil {
		return false, fmt.Errorf("unlocking achievement: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListAchievements retrieves all unlocked achievements, oldest first.
func (db *DB) ListAchievements(ctx context.Context) ([]UnlockedAchievement, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, unlocked_at FROM achievements ORDER BY unlocked_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying achievements: %w", err)
	}
	defer rows.Close()

	var result []UnlockedAchievement
	for rows.Next() {
		var a UnlockedAchievement
		if err := rows.Scan(&a.ID, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scanning achievement: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
