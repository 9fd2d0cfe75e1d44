package adapters

import (
	"context"
	"database/sql"
)

// SQLAdapter runs the loan store's statements on a database/sql handle opened with lib/pq.
type SQLAdapter struct {
	db *sql.DB
}

// NewSQLAdapter wraps an open *sql.DB.
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

// Query runs a SELECT.
func (s *SQLAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

// Exec runs an UPDATE or INSERT.
func (s *SQLAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdResult{result: result}, nil
}
