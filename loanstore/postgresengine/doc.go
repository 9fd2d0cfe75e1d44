// Package postgresengine provides a PostgreSQL implementation of the loan store.
//
// This package implements loan persistence using PostgreSQL as the backend storage.
// It supports three database adapter types:
//   - pgx.Pool (recommended for performance)
//   - sql.DB (standard library, with the lib/pq driver)
//   - sqlx.DB (sqlx library)
//
// The schema is created by Migrate, which applies the embedded goose migrations.
//
// Renewals are guarded by an optimistic check: the UPDATE only matches an open loan
// whose renewal count still equals the expected one. If no row is affected,
// loanstore.ErrConcurrencyConflict is returned.
//
// Example usage:
//
//	pool, _ := pgxpool.New(ctx, databaseURL)
//	store, err := postgresengine.NewLoanStoreFromPGXPool(pool, postgresengine.WithLogger(logger))
//	if err != nil {
//		// handle error
//	}
//
//	loans, err := store.Query(ctx, loanstore.BuildLoanFilter().AnyBorrowerOf("U001").OnlyActive().Finalize())
package postgresengine
