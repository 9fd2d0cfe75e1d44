package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-lending-go/loanstore"
	"github.com/AntonStoeckl/library-lending-go/loanstore/postgresengine/internal/adapters"
)

const (
	defaultLoansTableName         = "loans"
	defaultJournalTableName       = "loan_journal"
	logMsgBuildSelectQueryFailed  = "failed to build select query"
	logMsgBuildUpdateQueryFailed  = "failed to build update query"
	logMsgBuildInsertQueryFailed  = "failed to build insert query"
	logMsgDBQueryFailed           = "database query execution failed"
	logMsgDBExecFailed            = "database execution failed"
	logMsgCloseRowsFailed         = "failed to close database rows"
	logMsgScanRowFailed           = "failed to scan database row"
	logMsgBuildStorableLoanFailed = "failed to build storable loan from database row"
	logMsgRowsAffectedFailed      = "failed to get rows affected count"
	logMsgQueryCompleted          = "query completed"
	logMsgLoanRenewed             = "loan renewed"
	logMsgLoansImported           = "loans imported"
	logMsgJournalAppended         = "journal appended"
	logMsgConcurrencyConflict     = "concurrency conflict detected"
	logMsgSQLExecuted             = "executed sql for: "
	logMsgOperation               = "loanstore operation: "
	logAttrError                  = "error"
	logAttrQuery                  = "query"
	logAttrLoanID                 = "loan_id"
	logAttrLoanCount              = "loan_count"
	logAttrEntryCount             = "entry_count"
	logAttrDurationMS             = "duration_ms"
	logAttrRowsAffected           = "rows_affected"
	logAttrExpectedRenewals       = "expected_renewals"
	logActionQuery                = "query"
	logActionRenew                = "renew"
	logActionImport               = "import"
	logActionJournal              = "journal"
	colSequenceNumber             = "sequence_number"
	colLoanID                     = "loan_id"
	colBorrowerID                 = "borrower_id"
	colBookID                     = "book_id"
	colLentOn                     = "lent_on"
	colDueOn                      = "due_on"
	colReturnedOn                 = "returned_on"
	colFineChargedCents           = "fine_charged_cents"
	colRenewalsGranted            = "renewals_granted"
	colEventType                  = "event_type"
	colOccurredAt                 = "occurred_at"
	colPayload                    = "payload"
	colMetadata                   = "metadata"
	dialectPostgres               = "postgres"
	castTimestamp                 = "?::timestamp with time zone"
	castJsonb                     = "?::jsonb"
	dateLayout                    = "2006-01-02"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
	queryDuration     = time.Duration
)

// LoanStore persists loans and the decision journal in PostgreSQL.
type LoanStore struct {
	db               adapters.DBAdapter
	loansTableName   string
	journalTableName string
	logger           loanstore.Logger
	contextualLogger loanstore.ContextualLogger
}

type queryResultRow struct {
	loanID           string
	borrowerID       string
	bookID           string
	lentOn           time.Time
	dueOn            time.Time
	returnedOn       *time.Time
	fineChargedCents int64
	renewalsGranted  int
}

// NewLoanStoreFromPGXPool creates a new LoanStore using a pgx Pool with optional configuration.
func NewLoanStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (LoanStore, error) {
	if db == nil {
		return LoanStore{}, loanstore.ErrNilDatabaseConnection
	}

	return newLoanStore(adapters.NewPGXAdapter(db), options...)
}

// NewLoanStoreFromSQLDB creates a new LoanStore using a sql.DB with optional configuration.
func NewLoanStoreFromSQLDB(db *sql.DB, options ...Option) (LoanStore, error) {
	if db == nil {
		return LoanStore{}, loanstore.ErrNilDatabaseConnection
	}

	return newLoanStore(adapters.NewSQLAdapter(db), options...)
}

// NewLoanStoreFromSQLX creates a new LoanStore using a sqlx.DB with optional configuration.
func NewLoanStoreFromSQLX(db *sqlx.DB, options ...Option) (LoanStore, error) {
	if db == nil {
		return LoanStore{}, loanstore.ErrNilDatabaseConnection
	}

	return newLoanStore(adapters.NewSQLXAdapter(db), options...)
}

func newLoanStore(db adapters.DBAdapter, options ...Option) (LoanStore, error) {
	s := LoanStore{
		db:               db,
		loansTableName:   defaultLoansTableName,
		journalTableName: defaultJournalTableName,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return LoanStore{}, err
		}
	}

	return s, nil
}

// Query retrieves the loans matching the provided loanstore.Filter in insertion order.
func (s LoanStore) Query(ctx context.Context, filter loanstore.Filter) (loanstore.StorableLoans, error) {
	var empty loanstore.StorableLoans

	sqlQuery, buildQueryErr := s.buildSelectQuery(filter)
	if buildQueryErr != nil {
		s.logError(ctx, logMsgBuildSelectQueryFailed, logAttrError, buildQueryErr.Error())

		return empty, buildQueryErr
	}

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)

		return empty, errors.Join(loanstore.ErrQueryingLoansFailed, queryErr)
	}
	defer s.closeRows(ctx, rows)

	loans, scanErr := s.processQueryResults(ctx, rows)
	if scanErr != nil {
		return empty, scanErr
	}

	s.logOperation(
		ctx,
		logMsgQueryCompleted,
		logAttrLoanCount, len(loans),
		logAttrDurationMS, s.durationToMilliseconds(duration))

	return loans, nil
}

// processQueryResults converts database rows into storable loans.
func (s LoanStore) processQueryResults(ctx context.Context, rows adapters.DBRows) (loanstore.StorableLoans, error) {
	var empty loanstore.StorableLoans
	loans := make(loanstore.StorableLoans, 0)

	for rows.Next() {
		row := queryResultRow{}

		rowScanErr := rows.Scan(
			&row.loanID,
			&row.borrowerID,
			&row.bookID,
			&row.lentOn,
			&row.dueOn,
			&row.returnedOn,
			&row.fineChargedCents,
			&row.renewalsGranted,
		)
		if rowScanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, logAttrError, rowScanErr.Error())

			return empty, errors.Join(loanstore.ErrScanningDBRowFailed, rowScanErr)
		}

		loan, buildErr := loanstore.BuildStorableLoan(
			row.loanID,
			row.borrowerID,
			row.bookID,
			row.lentOn,
			row.dueOn,
			row.returnedOn,
			row.fineChargedCents,
			row.renewalsGranted,
		)
		if buildErr != nil {
			s.logError(ctx, logMsgBuildStorableLoanFailed, logAttrError, buildErr.Error(), logAttrLoanID, row.loanID)

			return empty, errors.Join(loanstore.ErrBuildingStorableLoanFailed, buildErr)
		}

		loans = append(loans, loan)
	}

	if iterErr := rows.Err(); iterErr != nil {
		s.logError(ctx, logMsgScanRowFailed, logAttrError, iterErr.Error())

		return empty, errors.Join(loanstore.ErrScanningDBRowFailed, iterErr)
	}

	return loans, nil
}

// Renew moves the due date of an open loan and sets its renewal count,
// provided the stored renewal count still equals expectedRenewals.
// Returns loanstore.ErrConcurrencyConflict if no row matched.
func (s LoanStore) Renew(
	ctx context.Context,
	loanID string,
	expectedRenewals int,
	newRenewals int,
	newDueOn time.Time,
) error {

	sqlQuery, buildQueryErr := s.buildRenewQuery(loanID, expectedRenewals, newRenewals, newDueOn)
	if buildQueryErr != nil {
		s.logError(ctx, logMsgBuildUpdateQueryFailed, logAttrError, buildQueryErr.Error(), logAttrLoanID, loanID)

		return buildQueryErr
	}

	rowsAffected, duration, execErr := s.executeStatement(ctx, sqlQuery, logActionRenew)
	if execErr != nil {
		return errors.Join(loanstore.ErrRenewingLoanFailed, execErr)
	}

	if rowsAffected < 1 {
		s.logOperation(
			ctx,
			logMsgConcurrencyConflict,
			logAttrLoanID, loanID,
			logAttrExpectedRenewals, expectedRenewals,
			logAttrRowsAffected, rowsAffected,
		)

		return loanstore.ErrConcurrencyConflict
	}

	s.logOperation(
		ctx,
		logMsgLoanRenewed,
		logAttrLoanID, loanID,
		logAttrDurationMS, s.durationToMilliseconds(duration),
	)

	return nil
}

// Import inserts the given loans in order and returns how many were stored.
// Loans whose ID already exists are skipped, so seeding the same records twice is harmless.
func (s LoanStore) Import(ctx context.Context, loans loanstore.StorableLoans) (int, error) {
	if len(loans) == 0 {
		return 0, nil
	}

	sqlQuery, buildQueryErr := s.buildImportQuery(loans)
	if buildQueryErr != nil {
		s.logError(ctx, logMsgBuildInsertQueryFailed, logAttrError, buildQueryErr.Error(), logAttrLoanCount, len(loans))

		return 0, buildQueryErr
	}

	rowsAffected, duration, execErr := s.executeStatement(ctx, sqlQuery, logActionImport)
	if execErr != nil {
		return 0, errors.Join(loanstore.ErrImportingLoansFailed, execErr)
	}

	s.logOperation(
		ctx,
		logMsgLoansImported,
		logAttrLoanCount, rowsAffected,
		logAttrDurationMS, s.durationToMilliseconds(duration),
	)

	return int(rowsAffected), nil
}

// AppendJournal records one or multiple journal entries atomically.
func (s LoanStore) AppendJournal(ctx context.Context, entry loanstore.JournalEntry, additional ...loanstore.JournalEntry) error {
	allEntries := append(loanstore.JournalEntries{entry}, additional...)

	sqlQuery, buildQueryErr := s.buildJournalInsertQuery(allEntries)
	if buildQueryErr != nil {
		s.logError(ctx, logMsgBuildInsertQueryFailed, logAttrError, buildQueryErr.Error(), logAttrEntryCount, len(allEntries))

		return buildQueryErr
	}

	_, duration, execErr := s.executeStatement(ctx, sqlQuery, logActionJournal)
	if execErr != nil {
		return errors.Join(loanstore.ErrAppendingJournalFailed, execErr)
	}

	s.logOperation(
		ctx,
		logMsgJournalAppended,
		logAttrEntryCount, len(allEntries),
		logAttrDurationMS, s.durationToMilliseconds(duration),
	)

	return nil
}

// executeStatement executes a data-modifying statement and returns rows affected and duration.
func (s LoanStore) executeStatement(ctx context.Context, sqlQuery string, action string) (
	rowsAffectedInt64,
	queryDuration,
	error,
) {

	start := time.Now()
	tag, execErr := s.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, action, duration)

	if execErr != nil {
		s.logError(ctx, logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)

		return 0, duration, execErr
	}

	rowsAffected, rowsAffectedErr := tag.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())

		return 0, duration, errors.Join(loanstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (s LoanStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func (s LoanStore) buildSelectQuery(filter loanstore.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.loansTableName).
		Select(
			colLoanID,
			colBorrowerID,
			colBookID,
			colLentOn,
			colDueOn,
			colReturnedOn,
			colFineChargedCents,
			colRenewalsGranted,
		).
		Order(goqu.I(colSequenceNumber).Asc())

	if conditions := s.whereExpressions(filter); len(conditions) > 0 {
		selectStmt = selectStmt.Where(conditions...)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// whereExpressions renders the filter: categories are ANDed, the IDs within one category are ORed with IN.
func (s LoanStore) whereExpressions(filter loanstore.Filter) []goqu.Expression {
	expressions := make([]goqu.Expression, 0)

	if ids := filter.LoanIDs(); len(ids) > 0 {
		expressions = append(expressions, goqu.C(colLoanID).In(ids))
	}

	if ids := filter.BorrowerIDs(); len(ids) > 0 {
		expressions = append(expressions, goqu.C(colBorrowerID).In(ids))
	}

	if ids := filter.BookIDs(); len(ids) > 0 {
		expressions = append(expressions, goqu.C(colBookID).In(ids))
	}

	if filter.OnlyActiveLoans() {
		expressions = append(expressions, goqu.C(colReturnedOn).IsNull())
	}

	return expressions
}

func (s LoanStore) buildRenewQuery(
	loanID string,
	expectedRenewals int,
	newRenewals int,
	newDueOn time.Time,
) (sqlQueryString, error) {

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.loansTableName).
		Set(goqu.Record{
			colDueOn:           newDueOn.Format(dateLayout),
			colRenewalsGranted: newRenewals,
		}).
		Where(
			goqu.C(colLoanID).Eq(loanID),
			goqu.C(colRenewalsGranted).Eq(expectedRenewals),
			goqu.C(colReturnedOn).IsNull(),
		)

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s LoanStore) buildImportQuery(loans loanstore.StorableLoans) (sqlQueryString, error) {
	rows := make([]any, 0, len(loans))

	for _, loan := range loans {
		var returnedOn any // NULL for open loans

		if loan.ReturnedOn != nil {
			returnedOn = loan.ReturnedOn.Format(dateLayout)
		}

		rows = append(rows, goqu.Record{
			colLoanID:           loan.LoanID,
			colBorrowerID:       loan.BorrowerID,
			colBookID:           loan.BookID,
			colLentOn:           loan.LentOn.Format(dateLayout),
			colDueOn:            loan.DueOn.Format(dateLayout),
			colReturnedOn:       returnedOn,
			colFineChargedCents: loan.FineChargedCents,
			colRenewalsGranted:  loan.RenewalsGranted,
		})
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.loansTableName).
		Rows(rows...).
		OnConflict(goqu.DoNothing())

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s LoanStore) buildJournalInsertQuery(entries loanstore.JournalEntries) (sqlQueryString, error) {
	rows := make([]any, 0, len(entries))

	for _, entry := range entries {
		rows = append(rows, goqu.Record{
			colEventType:  entry.EventType,
			colOccurredAt: goqu.L(castTimestamp, entry.OccurredAt),
			colPayload:    goqu.L(castJsonb, string(entry.PayloadJSON)),
			colMetadata:   goqu.L(castJsonb, string(entry.MetadataJSON)),
		})
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.journalTableName).
		Rows(rows...)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// logQueryWithDuration logs SQL queries with execution time at debug level if a logger is configured.
func (s LoanStore) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, s.durationToMilliseconds(duration), logAttrQuery, sqlQuery}

	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	case s.logger != nil:
		s.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (s LoanStore) logOperation(ctx context.Context, action string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	case s.logger != nil:
		s.logger.Info(logMsgOperation+action, args...)
	}
}

func (s LoanStore) logWarn(ctx context.Context, msg string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.WarnContext(ctx, msg, args...)
	case s.logger != nil:
		s.logger.Warn(msg, args...)
	}
}

func (s LoanStore) logError(ctx context.Context, msg string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.ErrorContext(ctx, msg, args...)
	case s.logger != nil:
		s.logger.Error(msg, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s LoanStore) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
