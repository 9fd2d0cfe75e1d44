package loanstore

import (
	"slices"
)

// FilterIDString is an alias type for the IDs a Filter matches on.
type FilterIDString = string

/***** Filter *****/

// Filter selects loans. Categories are combined with AND, values within a category with OR.
// An empty category does not restrict the result.
type Filter struct {
	loanIDs     []FilterIDString
	borrowerIDs []FilterIDString
	bookIDs     []FilterIDString
	onlyActive  bool
}

// LoanIDs returns the sanitized loan IDs, empty if loans are not restricted by ID.
func (f Filter) LoanIDs() []FilterIDString {
	return f.loanIDs
}

// BorrowerIDs returns the sanitized borrower IDs.
func (f Filter) BorrowerIDs() []FilterIDString {
	return f.borrowerIDs
}

// BookIDs returns the sanitized book IDs.
func (f Filter) BookIDs() []FilterIDString {
	return f.bookIDs
}

// OnlyActiveLoans reports whether returned loans are excluded.
func (f Filter) OnlyActiveLoans() bool {
	return f.onlyActive
}

// IsEmpty reports whether the filter matches every loan.
func (f Filter) IsEmpty() bool {
	return len(f.loanIDs) == 0 && len(f.borrowerIDs) == 0 && len(f.bookIDs) == 0 && !f.onlyActive
}

// Matches reports whether the loan satisfies the filter.
// Engines that cannot push the filter down to a query language use it directly.
func (f Filter) Matches(loan StorableLoan) bool {
	if f.onlyActive && loan.ReturnedOn != nil {
		return false
	}

	if len(f.loanIDs) > 0 && !slices.Contains(f.loanIDs, loan.LoanID) {
		return false
	}

	if len(f.borrowerIDs) > 0 && !slices.Contains(f.borrowerIDs, loan.BorrowerID) {
		return false
	}

	if len(f.bookIDs) > 0 && !slices.Contains(f.bookIDs, loan.BookID) {
		return false
	}

	return true
}

/***** FilterBuilder *****/

// FilterBuilder builds a generic loan filter to be used in the engine-specific LoanStore implementations
// to build queries for the specific query language, e.g.: Postgres, or to match in memory.
//
// Supported combinations:
//
//   - empty filter
//   - (loanID OR loanID...)
//   - (borrowerID OR borrowerID...)
//   - (bookID OR bookID...)
//   - any of the above AND each other
//   - any of the above AND only active loans
type FilterBuilder interface {
	// AnyLoanOf restricts the filter to one or multiple loan IDs.
	//
	// It sanitizes the input:
	//	- removing empty IDs ("")
	//	- sorting the IDs
	//	- removing duplicate IDs
	AnyLoanOf(loanID FilterIDString, loanIDs ...FilterIDString) FilterBuilder

	// AnyBorrowerOf restricts the filter to one or multiple borrower IDs, sanitized like AnyLoanOf.
	AnyBorrowerOf(borrowerID FilterIDString, borrowerIDs ...FilterIDString) FilterBuilder

	// AnyBookOf restricts the filter to one or multiple book IDs, sanitized like AnyLoanOf.
	AnyBookOf(bookID FilterIDString, bookIDs ...FilterIDString) FilterBuilder

	// OnlyActive restricts the filter to loans that were not returned yet.
	OnlyActive() FilterBuilder

	// Finalize returns the Filter.
	Finalize() Filter

	// MatchingAnyLoan directly creates an empty Filter, discarding anything added before.
	MatchingAnyLoan() Filter
}

// filterBuilder implements FilterBuilder
type filterBuilder struct {
	filter Filter
}

// BuildLoanFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnyLoan().
func BuildLoanFilter() FilterBuilder {
	return filterBuilder{}
}

// AnyLoanOf restricts the filter to one or multiple loan IDs.
//
// It sanitizes the input:
//   - removing empty IDs ("")
//   - sorting the IDs
//   - removing duplicate IDs
func (fb filterBuilder) AnyLoanOf(loanID FilterIDString, loanIDs ...FilterIDString) FilterBuilder {
	fb.filter.loanIDs = fb.sanitizeIDs(fb.filter.loanIDs, loanID, loanIDs...)

	return fb
}

// AnyBorrowerOf restricts the filter to one or multiple borrower IDs.
func (fb filterBuilder) AnyBorrowerOf(borrowerID FilterIDString, borrowerIDs ...FilterIDString) FilterBuilder {
	fb.filter.borrowerIDs = fb.sanitizeIDs(fb.filter.borrowerIDs, borrowerID, borrowerIDs...)

	return fb
}

// AnyBookOf restricts the filter to one or multiple book IDs.
func (fb filterBuilder) AnyBookOf(bookID FilterIDString, bookIDs ...FilterIDString) FilterBuilder {
	fb.filter.bookIDs = fb.sanitizeIDs(fb.filter.bookIDs, bookID, bookIDs...)

	return fb
}

// OnlyActive restricts the filter to loans that were not returned yet.
func (fb filterBuilder) OnlyActive() FilterBuilder {
	fb.filter.onlyActive = true

	return fb
}

// Finalize returns the Filter.
func (fb filterBuilder) Finalize() Filter {
	return fb.filter
}

// MatchingAnyLoan directly creates an empty filter.
func (fb filterBuilder) MatchingAnyLoan() Filter {
	return Filter{}
}

func (fb filterBuilder) sanitizeIDs(
	existing []FilterIDString,
	id FilterIDString,
	ids ...FilterIDString,
) []FilterIDString {

	allIDs := slices.Concat(existing, []FilterIDString{id}, ids)
	allIDs = slices.DeleteFunc(
		allIDs,
		func(e FilterIDString) bool {
			return e == ""
		})
	slices.Sort(allIDs)
	allIDs = slices.Compact(allIDs)
	allIDs = slices.Clip(allIDs)

	return allIDs
}
