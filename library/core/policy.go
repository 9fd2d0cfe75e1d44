package core

import (
	"errors"
)

const (
	defaultFinePerDayCents = 50
	defaultMaxRenewals     = 2
	defaultRenewalDays     = 7
	defaultInitialLoanDays = 7
)

var (
	// ErrNegativeFinePerDay is returned when the daily fine is below zero.
	ErrNegativeFinePerDay = errors.New("fine per day must not be negative")

	// ErrNegativeMaxRenewals is returned when the renewal limit is below zero.
	ErrNegativeMaxRenewals = errors.New("max renewals must not be negative")

	// ErrNonPositiveRenewalDays is returned when a renewal would not extend the loan.
	ErrNonPositiveRenewalDays = errors.New("renewal days must be positive")

	// ErrNonPositiveInitialLoanDays is returned when the initial loan period is not positive.
	ErrNonPositiveInitialLoanDays = errors.New("initial loan days must be positive")
)

// Policy holds the lending rules. It is an immutable value handed to the
// fine policy and the renewal handler at construction time.
type Policy struct {
	FinePerDay      Money
	MaxRenewals     int
	RenewalDays     int
	InitialLoanDays int
}

// DefaultPolicy returns the library's standard rules:
// 0.50 per day late, at most 2 renewals of 7 days each, 7 days initial loan period.
func DefaultPolicy() Policy {
	return Policy{
		FinePerDay:      Money(defaultFinePerDayCents),
		MaxRenewals:     defaultMaxRenewals,
		RenewalDays:     defaultRenewalDays,
		InitialLoanDays: defaultInitialLoanDays,
	}
}

// Validate checks that the policy values are usable.
func (p Policy) Validate() error {
	var errs []error

	if p.FinePerDay < 0 {
		errs = append(errs, ErrNegativeFinePerDay)
	}

	if p.MaxRenewals < 0 {
		errs = append(errs, ErrNegativeMaxRenewals)
	}

	if p.RenewalDays <= 0 {
		errs = append(errs, ErrNonPositiveRenewalDays)
	}

	if p.InitialLoanDays <= 0 {
		errs = append(errs, ErrNonPositiveInitialLoanDays)
	}

	return errors.Join(errs...)
}
