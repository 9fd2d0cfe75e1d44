package renewloan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
	"github.com/AntonStoeckl/library-lending-go/loanstore"
)

// ErrUnexpectedDecisionEvent is returned when a granted decision does not carry a LoanRenewed event.
var ErrUnexpectedDecisionEvent = errors.New("granted renewal decision without LoanRenewed event")

// LoanLedger defines the ledger operations needed by the CommandHandler.
type LoanLedger interface {
	FindLoan(ctx context.Context, loanID core.LoanIDString) (core.LoanRecord, error)
	ApplyRenewal(
		ctx context.Context,
		loanID core.LoanIDString,
		expectedRenewals int,
		newRenewals int,
		newDueOn time.Time,
	) error
}

// Journal records renewal decisions.
type Journal interface {
	AppendJournal(ctx context.Context, entry loanstore.JournalEntry, additional ...loanstore.JournalEntry) error
}

// Result is the outcome of a renewal attempt.
// Loan is the loan as it stands after the attempt, with the new due date if the renewal was granted.
// When Handle returns an error only HandlerResult is populated.
type Result struct {
	Outcome       core.RenewalOutcome
	Loan          core.LoanRecord
	HandlerResult shell.HandlerResult
}

// Granted reports whether the loan was renewed.
func (r Result) Granted() bool {
	return r.Outcome == core.RenewalGranted
}

// CommandHandler orchestrates the renewal workflow with pure business logic and retry.
// It handles the workflow: FindLoan -> Decide -> ApplyRenewal -> Journal.
type CommandHandler struct {
	ledger           LoanLedger
	policy           core.Policy
	journal          Journal
	retryOptions     []shell.RetryOption
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithJournal records every decision in the given journal.
func WithJournal(journal Journal) Option {
	return func(h *CommandHandler) {
		h.journal = journal
	}
}

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithLogger sets the logger for the handler.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// WithContextualLogger sets a context-aware logger, which takes precedence over the plain logger.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(h *CommandHandler) {
		h.contextualLogger = logger
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(ledger LoanLedger, policy core.Policy, opts ...Option) CommandHandler {
	handler := CommandHandler{
		ledger: ledger,
		policy: policy,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// attemptOutcome carries the state of the last attempt out of the retry loop.
type attemptOutcome struct {
	decision core.DecisionResult
	loan     core.LoanRecord
}

// Handle executes the renewal workflow with retry logic.
//
// Business rejections are returned as Result.Outcome with a nil error.
// An error is returned for unknown loans (ledger.ErrLoanNotFound) and infrastructure failures.
// Concurrency conflicts re-read the loan and decide again until the retries are exhausted.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	start := time.Now()
	shell.LogCommandStart(ctx, h.logger, h.contextualLogger, command)

	var last attemptOutcome

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		outcome, execErr := h.executeCommand(retryCtx, command)
		last = outcome

		return execErr
	}, h.retryOptions...)

	if err != nil {
		handlerResult := shell.NewErrorResult(retryMetrics)
		shell.LogCommandError(ctx, h.logger, h.contextualLogger, commandType, err, time.Since(start), handlerResult)

		return Result{HandlerResult: handlerResult}, err
	}

	h.recordDecision(ctx, last.decision)

	outcome := core.RenewalOutcomeFrom(last.decision.HasError())

	handlerResult := shell.NewSuccessResult(retryMetrics)
	if !last.decision.IsSuccess() {
		handlerResult = shell.NewRejectedResult(retryMetrics)
	}

	shell.LogCommandSuccess(ctx, h.logger, h.contextualLogger, commandType, outcome.String(), time.Since(start), handlerResult)

	return Result{Outcome: outcome, Loan: last.loan, HandlerResult: handlerResult}, nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (attemptOutcome, error) {
	// Find phase
	loan, err := h.ledger.FindLoan(ctx, command.LoanID)
	if err != nil {
		return attemptOutcome{}, err
	}

	// Business logic phase - delegate to pure core function
	decision := Decide(loan, command, h.policy)

	if !decision.IsSuccess() {
		return attemptOutcome{decision: decision, loan: loan}, nil
	}

	renewed, ok := decision.Event.(core.LoanRenewed)
	if !ok {
		return attemptOutcome{}, ErrUnexpectedDecisionEvent
	}

	// Apply phase - optimistic on the renewal count read above
	err = h.ledger.ApplyRenewal(ctx, loan.LoanID, loan.RenewalsGranted, renewed.RenewalsGranted, renewed.NewDueOn)
	if err != nil {
		return attemptOutcome{}, err
	}

	return attemptOutcome{
		decision: decision,
		loan:     loan.WithRenewal(renewed.NewDueOn, renewed.RenewalsGranted),
	}, nil
}

// recordDecision appends the decision event to the journal, if one is configured.
// A failing journal never changes the outcome of the renewal.
func (h CommandHandler) recordDecision(ctx context.Context, decision core.DecisionResult) {
	if h.journal == nil || decision.Event == nil {
		return
	}

	entry, err := shell.JournalEntryFrom(decision.Event, shell.NewEventMetadataCausedBy(uuid.New()))
	if err == nil {
		err = h.journal.AppendJournal(ctx, entry)
	}

	if err != nil {
		shell.LogJournalError(ctx, h.logger, h.contextualLogger, commandType, err)
	}
}
