package core

import (
	"time"
)

// RenewingLoanFailedEventType is the event type identifier.
const RenewingLoanFailedEventType = "RenewingLoanFailed"

// RenewingLoanFailed represents when a renewal was rejected by a business rule.
type RenewingLoanFailed struct {
	LoanID      LoanIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildRenewingLoanFailed creates a new RenewingLoanFailed event.
func BuildRenewingLoanFailed(
	loanID LoanIDString,
	failureInfo string,
	occurredAt time.Time,
) RenewingLoanFailed {

	return RenewingLoanFailed{
		LoanID:      loanID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e RenewingLoanFailed) EventType() string {
	return RenewingLoanFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RenewingLoanFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e RenewingLoanFailed) IsErrorEvent() bool {
	return true
}
