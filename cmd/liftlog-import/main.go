package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/importer"
	"github.com/claude/liftlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	csvPath := flag.String("path", "", "path to directory of CSV exports (required unless -clear)")
	stateDir := flag.String("state-dir", ".liftlog-import", "directory for the import state database")
	dryRun := flag.Bool("dry-run", false, "report counts without writing to the database")
	clear := flag.Bool("clear", false, "delete previously imported sessions and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *csvPath == "" && !*clear {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-import -config config.yaml -path /path/to/exports [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	if *clear {
		removed, err := db.DeleteImportedSessions(ctx)
		if err != nil {
			log.Error("clearing imported sessions failed", "error", err)
			os.Exit(1)
		}
		log.Info("imported sessions cleared", "removed", removed)
		return
	}

	settings, err := db.GetSettings(ctx)
	if err != nil {
		log.Error("loading settings failed", "error", err)
		os.Exit(1)
	}
	if !settings.CSVImportEnabled {
		log.Error("CSV import is disabled in settings")
		os.Exit(1)
	}

	// Verify CSV directory exists
	info, err := os.Stat(*csvPath)
	if err != nil || !info.IsDir() {
		log.Error("CSV path does not exist or is not a directory", "path", *csvPath)
		os.Exit(1)
	}

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	}

	state, err := importer.OpenStateDB(*stateDir)
	if err != nil {
		log.Error("opening state db failed", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	// Run import
	imp := importer.New(db, state, log, *dryRun)
	stats, err := imp.Import(ctx, *csvPath)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"sessions_imported", stats.SessionsImported,
		"records_merged", stats.RecordsMerged,
	)
}
