package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed   int
	FilesSkipped     int
	FilesErrored     int
	SessionsImported int
	RecordsMerged    int
}

// Importer reads CSV exports from a directory and loads them into the store.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file is
// processed on every run.
func New(db *storage.DB, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, log: log, dryRun: dryRun}
}

// Import processes all .csv files under dir. Files already recorded in the
// state database with an unchanged hash are skipped. Parse failures are
// logged and counted, not fatal; storage failures abort.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return &imp.stats, fmt.Errorf("listing csv files: %w", err)
	}

	for _, f := range files {
		skip, size, hash, err := imp.alreadyImported(f)
		if err != nil {
			imp.log.Warn("state check failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}
		if skip {
			imp.stats.FilesSkipped++
			continue
		}

		if err := imp.importFile(ctx, f); err != nil {
			if isStorageErr(err) {
				return &imp.stats, err
			}
			imp.log.Warn("import failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}
		imp.stats.FilesProcessed++

		if imp.state != nil && !imp.dryRun {
			if err := imp.state.MarkImported(filepath.Base(f), size, hash); err != nil {
				imp.log.Warn("marking file imported failed", "file", f, "error", err)
			}
		}
	}

	return &imp.stats, nil
}

func (imp *Importer) alreadyImported(path string) (skip bool, size int64, hash string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, 0, "", err
	}
	hash, err = HashFile(path)
	if err != nil {
		return false, 0, "", err
	}
	if imp.state == nil {
		return false, info.Size(), hash, nil
	}
	skip, err = imp.state.IsImported(filepath.Base(path), info.Size(), hash)
	return skip, info.Size(), hash, err
}

// importFile parses one CSV file, stores its sessions and merges any personal
// records the imported history proves.
func (imp *Importer) importFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	result, err := ParseCSV(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	imp.log.Info("parsed csv",
		"file", filepath.Base(path),
		"sessions", len(result.Sessions),
		"rows", result.RowsParsed,
		"skipped_rows", result.RowsSkipped,
	)

	if imp.dryRun {
		imp.stats.SessionsImported += len(result.Sessions)
		return nil
	}

	for _, session := range result.Sessions {
		if err := imp.mergeRecords(ctx, session); err != nil {
			return &storageError{err}
		}
		if err := imp.db.UpsertSession(ctx, session); err != nil {
			return &storageError{fmt.Errorf("storing session %s: %w", session.ID, err)}
		}
		imp.stats.SessionsImported++
	}
	return nil
}

// mergeRecords evaluates each imported exercise against the canonical record
// store, so records set in the imported history survive.
func (imp *Importer) mergeRecords(ctx context.Context, session models.WorkoutSession) error {
	for _, ex := range session.Exercises {
		stored, err := imp.db.GetPersonalRecord(ctx, ex.Name)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("loading record for %s: %w", ex.Name, err)
		}
		ex.PersonalRecord = stored

		result := analytics.CheckForNewPRs(ex)
		if result == nil {
			continue
		}
		if err := imp.db.MergePersonalRecord(ctx, ex.Name, result.UpdatedPR); err != nil {
			return fmt.Errorf("merging record for %s: %w", ex.Name, err)
		}
		imp.stats.RecordsMerged++
	}
	return nil
}

// storageError marks failures that should abort the run instead of moving on
// to the next file.
type storageError struct{ err error }

func (e *storageError) Error() string { return e.err.Error() }
func (e *storageError) Unwrap() error { return e.err }

func isStorageErr(err error) bool {
	var se *storageError
	return errors.As(err, &se)
}
