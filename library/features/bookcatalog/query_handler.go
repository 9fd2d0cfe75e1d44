package bookcatalog

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

// LoanLedger defines the ledger operation needed by the QueryHandler.
type LoanLedger interface {
	IsBookOnLoan(ctx context.Context, bookID core.BookIDString) (bool, error)
}

// QueryHandler orchestrates the query processing workflow.
// It reads from the ledger and delegates projection logic to the pure Project function.
type QueryHandler struct {
	ledger           LoanLedger
	catalog          Catalog
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithLogger sets the logger for the handler.
func WithLogger(logger shell.Logger) Option {
	return func(h *QueryHandler) {
		h.logger = logger
	}
}

// WithContextualLogger sets a context-aware logger, which takes precedence over the plain logger.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(h *QueryHandler) {
		h.contextualLogger = logger
	}
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(ledger LoanLedger, catalog Catalog, opts ...Option) QueryHandler {
	handler := QueryHandler{
		ledger:  ledger,
		catalog: catalog,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the query processing workflow: Read -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BookCatalog, error) {
	start := time.Now()
	shell.LogQueryStart(ctx, h.logger, h.contextualLogger, query)

	onLoan, err := h.booksOnLoan(ctx)
	if err != nil {
		shell.LogQueryError(ctx, h.logger, h.contextualLogger, queryType, err, time.Since(start))
		return BookCatalog{}, err
	}

	result := Project(h.catalog, onLoan, query)

	shell.LogQuerySuccess(ctx, h.logger, h.contextualLogger, queryType, result.Count, time.Since(start))

	return result, nil
}

func (h QueryHandler) booksOnLoan(ctx context.Context) (map[core.BookIDString]bool, error) {
	onLoan := make(map[core.BookIDString]bool)

	for _, book := range h.catalog.Books() {
		lent, err := h.ledger.IsBookOnLoan(ctx, book.ID)
		if err != nil {
			return nil, err
		}

		onLoan[book.ID] = lent
	}

	return onLoan, nil
}
