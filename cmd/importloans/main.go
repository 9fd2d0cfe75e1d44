// Command importloans seeds the PostgreSQL loan store from the text records.
//
// It applies the embedded schema migrations, loads the loans file from data.dir and imports
// every loan whose ID is not stored yet. Running it twice imports nothing the second time.
//
// Usage:
//
//	LOANDESK_DATABASE_URL=postgres://... importloans [-config loandesk.yaml] [-migrate-only]
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/shell"
	"github.com/AntonStoeckl/library-lending-go/library/shell/config"
	"github.com/AntonStoeckl/library-lending-go/library/shell/storage"
	"github.com/AntonStoeckl/library-lending-go/loanstore/textfile"
)

var errDatabaseNotConfigured = errors.New("database.url is not configured")

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	migrateOnly := flag.Bool("migrate-only", false, "apply the schema migrations and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := shell.NewLogger(cfg.Log.Level, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if importErr := importLoans(ctx, cfg, logger, *migrateOnly); importErr != nil {
		logger.Error("import failed", "error", importErr.Error())
		stop()
		os.Exit(1) //nolint:gocritic // stop was called explicitly
	}
}

func importLoans(ctx context.Context, cfg config.Config, logger *slog.Logger, migrateOnly bool) error {
	if !cfg.UsesPostgres() {
		return errDatabaseNotConfigured
	}

	start := time.Now()

	if err := storage.MigratePostgres(ctx, cfg.Database, logger); err != nil {
		return err
	}

	if migrateOnly {
		logger.Info("migrations applied", "duration_ms", shell.DurationToMilliseconds(time.Since(start)))
		return nil
	}

	records, err := textfile.NewLoader(cfg.Data.Dir, textfile.WithLogger(logger)).Load()
	if err != nil {
		return err
	}

	store, closeStore, err := storage.OpenPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	imported, err := store.Import(ctx, records.Loans)
	if err != nil {
		return err
	}

	logger.Info("loans imported",
		"driver", cfg.Database.Driver,
		"loans_read", len(records.Loans),
		"loans_imported", imported,
		"loans_skipped", len(records.Loans)-imported,
		"duration_ms", shell.DurationToMilliseconds(time.Since(start)),
	)

	return nil
}
