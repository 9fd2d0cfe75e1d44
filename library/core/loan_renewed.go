package core

import (
	"time"
)

// LoanRenewedEventType is the event type identifier.
const LoanRenewedEventType = "LoanRenewed"

// LoanRenewed represents when an active loan was extended.
type LoanRenewed struct {
	LoanID          LoanIDString
	BorrowerID      UserIDString
	PreviousDueOn   time.Time
	NewDueOn        time.Time
	RenewalsGranted int
	OccurredAt      OccurredAt
}

// BuildLoanRenewed creates a new LoanRenewed event.
func BuildLoanRenewed(
	loan LoanRecord,
	newDueOn time.Time,
	renewalsGranted int,
	occurredAt time.Time,
) LoanRenewed {

	return LoanRenewed{
		LoanID:          loan.LoanID,
		BorrowerID:      loan.BorrowerID,
		PreviousDueOn:   loan.DueOn,
		NewDueOn:        ToDate(newDueOn),
		RenewalsGranted: renewalsGranted,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanRenewed) EventType() string {
	return LoanRenewedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanRenewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanRenewed) IsErrorEvent() bool {
	return false
}
