package core

// DecisionResult represents the outcome of a business decision in a Decide function.
// This enables type-safe, functional programming style decision modeling.
//
// IMPORTANT: DecisionResult should only be constructed using the provided factory methods:
// SuccessDecision(event) or ErrorDecision(event, err).
// Do not construct DecisionResult directly to ensure type safety.
type DecisionResult struct {
	Outcome string      // "success" or "error"
	Event   DomainEvent // the event to record, never nil
	Err     error       // the business rule violation, nil on success
}

const (
	successOutcome = "success"
	errorOutcome   = "error"
)

// SuccessDecision creates a DecisionResult indicating a successful state change with an event to record.
func SuccessDecision(event DomainEvent) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Event:   event,
	}
}

// ErrorDecision creates a DecisionResult indicating a business rule violation with an error event to record.
func ErrorDecision(event DomainEvent, err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Event:   event,
		Err:     err,
	}
}

// IsSuccess returns true if the decision allows the state change.
func (r DecisionResult) IsSuccess() bool {
	return r.Outcome == successOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
