package activeloans

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

// LoanLedger defines the ledger operation needed by the QueryHandler.
type LoanLedger interface {
	ActiveLoansFor(ctx context.Context, borrowerID core.UserIDString) ([]core.LoanRecord, error)
}

// QueryHandler orchestrates the query processing workflow.
// It reads from the ledger and delegates projection logic to the pure Project function.
type QueryHandler struct {
	ledger           LoanLedger
	titles           BookTitles
	policy           core.Policy
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
func NewQueryHandler(ledger LoanLedger, titles BookTitles, policy core.Policy, opts ...Option) QueryHandler {
	handler := QueryHandler{
		ledger: ledger,
		titles: titles,
		policy: policy,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the query processing workflow: Read -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ActiveLoans, error) {
	start := time.Now()
	shell.LogQueryStart(ctx, h.logger, h.contextualLogger, query)

	loans, err := h.ledger.ActiveLoansFor(ctx, query.BorrowerID)
	if err != nil {
		shell.LogQueryError(ctx, h.logger, h.contextualLogger, queryType, err, time.Since(start))
		return ActiveLoans{}, err
	}

	result := Project(loans, h.titles, query, h.policy)

	shell.LogQuerySuccess(ctx, h.logger, h.contextualLogger, queryType, result.Count, time.Since(start))

	return result, nil
}
