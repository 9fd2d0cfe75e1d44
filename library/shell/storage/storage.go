// Package storage opens the configured loan store engine: the in-memory engine seeded from text records,
// or PostgreSQL through one of the pgx, database/sql and sqlx drivers.
package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/shell/config"
	"github.com/AntonStoeckl/library-lending-go/loanstore"
	"github.com/AntonStoeckl/library-lending-go/loanstore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/loanstore/postgresengine"
)

// ErrUnsupportedDriver is returned for a database driver other than pgx, sql and sqlx.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// LoanStore is what the application needs from a loan store engine.
type LoanStore interface {
	Query(ctx context.Context, filter loanstore.Filter) (loanstore.StorableLoans, error)
	Renew(
		ctx context.Context,
		loanID string,
		expectedRenewals int,
		newRenewals int,
		newDueOn time.Time,
	) error
	Import(ctx context.Context, loans loanstore.StorableLoans) (int, error)
	AppendJournal(ctx context.Context, entry loanstore.JournalEntry, additional ...loanstore.JournalEntry) error
}

// Closer releases the resources of an opened store.
type Closer func()

// OpenMemory creates an in-memory loan store holding the given loans.
func OpenMemory(ctx context.Context, loans loanstore.StorableLoans, logger *slog.Logger) (LoanStore, Closer, error) {
	var options []memoryengine.Option
	if logger != nil {
		options = append(options, memoryengine.WithLogger(logger))
	}

	store := memoryengine.NewLoanStore(options...)

	if _, err := store.Import(ctx, loans); err != nil {
		return nil, nil, err
	}

	return store, func() {}, nil
}

// OpenPostgres connects to the configured database with the configured driver.
// The schema is expected to be migrated already, see postgresengine.Migrate.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (LoanStore, Closer, error) {
	var options []postgresengine.Option
	if logger != nil {
		options = append(options, postgresengine.WithContextualLogger(logger))
	}

	switch cfg.Driver {
	case config.DriverPGX:
		pool, err := config.PostgresPGXPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewLoanStoreFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		return store, pool.Close, nil

	case config.DriverSQL:
		db, err := config.PostgresSQLDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewLoanStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case config.DriverSQLX:
		db, err := config.PostgresSQLX(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewLoanStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	default:
		return nil, nil, ErrUnsupportedDriver
	}
}

// MigratePostgres applies the embedded schema migrations to the configured database.
func MigratePostgres(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) error {
	db, err := config.PostgresSQLDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var migrationLogger loanstore.Logger
	if logger != nil {
		migrationLogger = logger
	}

	return postgresengine.Migrate(ctx, db, migrationLogger)
}
