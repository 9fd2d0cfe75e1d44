package loanstore

import (
	"errors"
)

var (
	ErrEmptyTableNameSupplied = errors.New("empty table name supplied")
	ErrNilDatabaseConnection  = errors.New("database connection must not be nil")

	// ErrConcurrencyConflict is returned by Renew when the stored loan no longer has the expected
	// renewal count, is already closed, or does not exist.
	ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")

	ErrBuildingQueryFailed        = errors.New("building the query failed")
	ErrQueryingLoansFailed        = errors.New("querying loans failed")
	ErrScanningDBRowFailed        = errors.New("scanning the database row failed")
	ErrBuildingStorableLoanFailed = errors.New("building the storable loan from the database row failed")
	ErrRenewingLoanFailed         = errors.New("renewing the loan failed")
	ErrImportingLoansFailed       = errors.New("importing loans failed")
	ErrAppendingJournalFailed     = errors.New("appending to the journal failed")
	ErrGettingRowsAffectedFailed  = errors.New("getting the rows affected count failed")
)
