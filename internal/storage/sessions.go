package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/claude/liftlog/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// UpsertSession stores a session as a JSON document, replacing any existing
// session with the same ID. The date, schema and completed columns are
// denormalized for querying; the document is the source of truth.
func (db *DB) UpsertSession(ctx context.Context, session models.WorkoutSession) error {
	doc, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO sessions (id, session_date, schema_id, completed, document, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (id) DO UPDATE SET
		   session_date = EXCLUDED.session_date,
		   schema_id    = EXCLUDED.schema_id,
		   completed    = EXCLUDED.completed,
		   document     = EXCLUDED.document,
		   updated_at   = now()`,
		session.ID, session.Date, session.SchemaID, session.Completed, doc)
	if err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}
	return nil
}

// GetSession retrieves a single session by ID.
func (db *DB) GetSession(ctx context.Context, id string) (*models.WorkoutSession, error) {
	var doc []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT document FROM sessions WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	var session models.WorkoutSession
	if err := json.Unmarshal(doc, &session); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return &session, nil
}

// ListSessions retrieves all sessions ordered by date ascending. This is the
// snapshot the analytics core operates on.
func (db *DB) ListSessions(ctx context.Context) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT document FROM sessions ORDER BY session_date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	return scanSessionRows(rows)
}

// QuerySessions retrieves sessions whose date falls in [start, end).
func (db *DB) QuerySessions(ctx context.Context, start, end time.Time) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT document FROM sessions
		 WHERE session_date >= $1 AND session_date < $2
		 ORDER BY session_date ASC, id ASC`,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	return scanSessionRows(rows)
}

// DeleteSession removes a session. Deletion is an explicit user action; the
// application never deletes sessions on its own.
func (db *DB) DeleteSession(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteImportedSessions removes all sessions created by the CSV importer,
// identified by their "import-" ID prefix. Returns the number removed.
func (db *DB) DeleteImportedSessions(ctx context.Context) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM sessions WHERE id LIKE 'import-%'`)
	if err != nil {
		return 0, fmt.Errorf("deleting imported sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSessionRows(rows pgx.Rows) ([]models.WorkoutSession, error) {
	var result []models.WorkoutSession
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		var session models.WorkoutSession
		if err := json.Unmarshal(doc, &session); err != nil {
			return nil, fmt.Errorf("decoding session: %w", err)
		}
		result = append(result, session)
	}
	return result, rows.Err()
}
