package postgresengine

import (
	"github.com/AntonStoeckl/library-lending-go/loanstore"
)

// Option defines a functional option for configuring LoanStore.
type Option func(*LoanStore) error

// WithTableName sets the name of the loans table.
func WithTableName(tableName string) Option {
	return func(s *LoanStore) error {
		if tableName == "" {
			return loanstore.ErrEmptyTableNameSupplied
		}

		s.loansTableName = tableName

		return nil
	}
}

// WithJournalTableName sets the name of the journal table.
func WithJournalTableName(tableName string) Option {
	return func(s *LoanStore) error {
		if tableName == "" {
			return loanstore.ErrEmptyTableNameSupplied
		}

		s.journalTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the LoanStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Loan counts, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger loanstore.Logger) Option {
	return func(s *LoanStore) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger for the LoanStore.
// If set, it takes precedence over the logger set with WithLogger.
func WithContextualLogger(logger loanstore.ContextualLogger) Option {
	return func(s *LoanStore) error {
		s.contextualLogger = logger
		return nil
	}
}
