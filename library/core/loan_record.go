package core

import (
	"time"
)

// LoanRecord is one loan of one book to one borrower, active or historical.
//
// DueOn is the scheduled return date and is only ever moved forward by a renewal.
// ReturnedOn is nil while the loan is still open.
// FineCharged is the historical amount recorded when the loan was closed;
// it is never recomputed (see FinePolicy.CurrentFine for the live amount).
type LoanRecord struct {
	LoanID          LoanIDString
	BorrowerID      UserIDString
	BookID          BookIDString
	LentOn          time.Time
	DueOn           time.Time
	ReturnedOn      *time.Time
	FineCharged     Money
	RenewalsGranted int
}

// IsActive reports whether the loan has not been returned yet.
func (l LoanRecord) IsActive() bool {
	return l.ReturnedOn == nil
}

// WithRenewal returns a copy of the loan with the new due date and renewal count applied.
func (l LoanRecord) WithRenewal(newDueOn time.Time, renewalsGranted int) LoanRecord {
	l.DueOn = ToDate(newDueOn)
	l.RenewalsGranted = renewalsGranted

	return l
}
