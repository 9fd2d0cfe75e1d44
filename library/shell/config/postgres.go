package config

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const postgresDriverName = "postgres"

var (
	ErrParsingPostgresDSNFailed = errors.New("parsing postgres dsn failed")
	ErrConnectingPostgresFailed = errors.New("connecting to postgres failed")
)

// PostgresPGXPoolConfig creates a pgxpool.Config for the configured database.
func PostgresPGXPoolConfig(cfg DatabaseConfig) (*pgxpool.Config, error) {
	const defaultMaxConnections = int32(4)
	const defaultMinConnections = int32(1)
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	dbConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrParsingPostgresDSNFailed, err)
	}

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}

// PostgresPGXPool opens and pings a pgxpool.Pool for the configured database.
func PostgresPGXPool(ctx context.Context, cfg DatabaseConfig) (*pgxpool.Pool, error) {
	dbConfig, err := PostgresPGXPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, errors.Join(ErrConnectingPostgresFailed, err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, errors.Join(ErrConnectingPostgresFailed, pingErr)
	}

	return pool, nil
}

// PostgresSQLDB opens and pings a *sql.DB for the configured database.
func PostgresSQLDB(ctx context.Context, cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(postgresDriverName, cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrConnectingPostgresFailed, err)
	}

	configureSQLPool(db)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectingPostgresFailed, pingErr)
	}

	return db, nil
}

// PostgresSQLX opens and pings a *sqlx.DB for the configured database.
func PostgresSQLX(ctx context.Context, cfg DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open(postgresDriverName, cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrConnectingPostgresFailed, err)
	}

	configureSQLPool(db.DB)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectingPostgresFailed, pingErr)
	}

	return db, nil
}

func configureSQLPool(db *sql.DB) {
	const defaultMaxOpenConnections = 4
	const defaultMaxIdleConnections = 2
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5

	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
}
