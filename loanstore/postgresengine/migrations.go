package postgresengine

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/AntonStoeckl/library-lending-go/loanstore"
)

const (
	migrationsDir       = "migrations"
	migrationsTableName = "loandesk_schema_migrations"
)

// ErrMigrationFailed wraps any failure while applying the embedded migrations.
var ErrMigrationFailed = errors.New("running database migrations failed")

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// gooseLogger adapts the goose logger interface to a loanstore.Logger.
type gooseLogger struct {
	logger loanstore.Logger
}

// Printf forwards goose progress messages at info level.
func (l gooseLogger) Printf(format string, v ...any) {
	if l.logger != nil {
		l.logger.Info(fmt.Sprintf(format, v...))
	}
}

// Fatalf forwards goose failures at error level.
// It does NOT exit, the error is also returned by Migrate.
func (l gooseLogger) Fatalf(format string, v ...any) {
	if l.logger != nil {
		l.logger.Error(fmt.Sprintf(format, v...))
	}
}

// Migrate applies all embedded migrations that are not applied yet.
//
// goose needs a database/sql connection, so this works with the lib/pq driver (or sqlx.DB.DB)
// regardless of which adapter the LoanStore itself uses.
func Migrate(ctx context.Context, db *sql.DB, logger loanstore.Logger) error {
	if db == nil {
		return loanstore.ErrNilDatabaseConnection
	}

	goose.SetBaseFS(embeddedMigrations)
	goose.SetLogger(gooseLogger{logger: logger})
	goose.SetTableName(migrationsTableName)

	if err := goose.SetDialect(dialectPostgres); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	return nil
}
