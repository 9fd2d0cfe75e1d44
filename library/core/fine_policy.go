package core

import (
	"time"
)

// FinePolicy computes the live fine of a loan as of a given moment.
type FinePolicy struct {
	finePerDay Money
}

// NewFinePolicy creates a FinePolicy from the lending rules.
func NewFinePolicy(policy Policy) FinePolicy {
	return FinePolicy{finePerDay: policy.FinePerDay}
}

// DaysLate returns how many whole days the loan is past its due date at asOf.
// Only the calendar date of asOf counts, so the value changes exactly once per day.
// Returned loans and loans not yet due are never late.
func (p FinePolicy) DaysLate(loan LoanRecord, asOf time.Time) int {
	if !loan.IsActive() {
		return 0
	}

	days := DaysBetween(loan.DueOn, asOf)
	if days < 0 {
		return 0
	}

	return days
}

// CurrentFine returns the fine owed on the loan at asOf.
//
// Business Rules:
//
//	GIVEN: a loan and a moment asOf
//	THEN: 0 if the loan was returned (the historical FineCharged is never recomputed)
//	THEN: 0 if today's date is on or before the due date
//	THEN: days late × fine per day otherwise
func (p FinePolicy) CurrentFine(loan LoanRecord, asOf time.Time) Money {
	return p.finePerDay.Times(p.DaysLate(loan, asOf))
}

// IsOverdue reports whether the loan accrues a fine at asOf.
func (p FinePolicy) IsOverdue(loan LoanRecord, asOf time.Time) bool {
	return p.CurrentFine(loan, asOf).IsPositive()
}

// TotalFine sums the current fines of all given loans.
func (p FinePolicy) TotalFine(loans []LoanRecord, asOf time.Time) Money {
	var total Money

	for _, loan := range loans {
		total += p.CurrentFine(loan, asOf)
	}

	return total
}
