// Package loanstore provides the storage-side abstractions for loan records.
//
// It is deliberately agnostic of the domain types in library/core: loans travel
// as StorableLoan DTOs built on scalars, so that different engines (in-memory,
// PostgreSQL) can persist and query them without knowing any business rules.
//
// Key types:
//   - Filter: criteria for querying loans (by loan, borrower, book, open/closed)
//   - StorableLoan: one loan record as stored
//   - JournalEntry: one recorded decision (e.g. a granted or rejected renewal)
//
// Common usage pattern:
//
//	filter := BuildLoanFilter().
//		AnyBorrowerOf(borrowerID).
//		OnlyActive().
//		Finalize()
//
//	loans, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	err = store.Renew(ctx, loanID, loan.RenewalsGranted, loan.RenewalsGranted+1, newDueOn)
//	if errors.Is(err, ErrConcurrencyConflict) {
//		// re-read and decide again
//	}
package loanstore
