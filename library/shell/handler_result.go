package shell

import (
	"time"
)

// HandlerResult represents the outcome of a command handler execution.
// It captures both the business outcome (rejected or not) and execution metadata (retry information)
// without coupling the handler to specific observability implementations.
type HandlerResult struct {
	// Rejected indicates that a business rule denied the command and no state was changed.
	// This is a first-class business outcome, not an error condition.
	Rejected bool

	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in retry backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType describes the type of the final error encountered during retries.
	// Values: "none" (success), "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "other"
	LastErrorType string

	// RetriesExhausted indicates whether max retry attempts were reached with a retryable error.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for commands that changed state.
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(false, retryMetrics)
}

// NewRejectedResult creates a HandlerResult for commands a business rule denied.
func NewRejectedResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(true, retryMetrics)
}

// NewErrorResult creates a HandlerResult for failed operations.
// This is used when the handler returns an error but still wants to report retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(false, retryMetrics)
}

func newHandlerResult(rejected bool, retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Rejected:         rejected,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
