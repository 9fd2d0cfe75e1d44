package core

import (
	"errors"
)

var (
	// ErrNotAuthorized is the rejection for callers that are not clients.
	ErrNotAuthorized = errors.New("only clients may renew loans")

	// ErrRenewalDeniedOverdue is the rejection for loans that are already overdue.
	ErrRenewalDeniedOverdue = errors.New("loan is overdue, settle the fine before renewing")

	// ErrRenewalLimitReached is the rejection for loans that used up all renewals.
	ErrRenewalLimitReached = errors.New("maximum number of renewals reached")

	// ErrLoanNotActive is the rejection for loans that were already returned.
	ErrLoanNotActive = errors.New("loan was already returned")
)

// RenewalOutcome is the business result of a renewal attempt.
// Rejections are expected outcomes, not errors.
type RenewalOutcome int

const (
	// RenewalUndecided is the zero value, no decision was made (e.g. the attempt failed with an error).
	RenewalUndecided RenewalOutcome = iota

	// RenewalGranted means the loan was extended.
	RenewalGranted

	// RenewalNotAuthorized means the caller's role does not allow renewals.
	RenewalNotAuthorized

	// RenewalDeniedOverdue means the loan is overdue.
	RenewalDeniedOverdue

	// RenewalLimitReached means the loan was already renewed the maximum number of times.
	RenewalLimitReached

	// RenewalLoanNotActive means the loan was already returned.
	RenewalLoanNotActive
)

// RenewalOutcomeFrom maps a decision error to its outcome.
// A nil error means the renewal was granted.
func RenewalOutcomeFrom(err error) RenewalOutcome {
	switch {
	case err == nil:
		return RenewalGranted
	case errors.Is(err, ErrNotAuthorized):
		return RenewalNotAuthorized
	case errors.Is(err, ErrRenewalDeniedOverdue):
		return RenewalDeniedOverdue
	case errors.Is(err, ErrRenewalLimitReached):
		return RenewalLimitReached
	case errors.Is(err, ErrLoanNotActive):
		return RenewalLoanNotActive
	default: // unrecognized rejections fail closed
		return RenewalNotAuthorized
	}
}

// String returns a stable label, used in logs and the journal.
func (o RenewalOutcome) String() string {
	switch o {
	case RenewalUndecided:
		return "undecided"
	case RenewalGranted:
		return "granted"
	case RenewalNotAuthorized:
		return "not_authorized"
	case RenewalDeniedOverdue:
		return "denied_overdue"
	case RenewalLimitReached:
		return "limit_reached"
	case RenewalLoanNotActive:
		return "loan_not_active"
	default:
		return "unknown"
	}
}
