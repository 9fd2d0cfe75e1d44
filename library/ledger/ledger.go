// Package ledger is the authoritative list of loan records.
//
// The Ledger translates between the domain's core.LoanRecord and the storage DTO,
// and delegates persistence to a LoanStore (in-memory or PostgreSQL).
// It never decides whether a renewal is allowed, it only applies one.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/loanstore"
)

// ErrLoanNotFound is returned when no loan with the requested ID exists.
var ErrLoanNotFound = errors.New("loan not found")

// LoanStore is implemented by the engines in loanstore/memoryengine and loanstore/postgresengine.
type LoanStore interface {
	Query(ctx context.Context, filter loanstore.Filter) (loanstore.StorableLoans, error)
	Renew(ctx context.Context, loanID string, expectedRenewals int, newRenewals int, newDueOn time.Time) error
}

// Ledger hands out copies of loan records, in the order they were stored.
type Ledger struct {
	store LoanStore
}

// New creates a Ledger on top of the given store.
func New(store LoanStore) Ledger {
	return Ledger{store: store}
}

// ActiveLoansFor returns the borrower's loans without a return date.
func (l Ledger) ActiveLoansFor(ctx context.Context, borrowerID core.UserIDString) ([]core.LoanRecord, error) {
	return l.query(ctx, loanstore.BuildLoanFilter().AnyBorrowerOf(borrowerID).OnlyActive().Finalize())
}

// AllLoans returns every loan, active and closed. Consumers sort as needed.
func (l Ledger) AllLoans(ctx context.Context) ([]core.LoanRecord, error) {
	return l.query(ctx, loanstore.BuildLoanFilter().MatchingAnyLoan())
}

// FindLoan returns the loan with the given ID or ErrLoanNotFound.
// If the store holds more than one record with that ID, the first one wins.
func (l Ledger) FindLoan(ctx context.Context, loanID core.LoanIDString) (core.LoanRecord, error) {
	if loanID == "" {
		return core.LoanRecord{}, ErrLoanNotFound
	}

	loans, err := l.query(ctx, loanstore.BuildLoanFilter().AnyLoanOf(loanID).Finalize())
	if err != nil {
		return core.LoanRecord{}, err
	}

	if len(loans) == 0 {
		return core.LoanRecord{}, ErrLoanNotFound
	}

	return loans[0], nil
}

// IsBookOnLoan reports whether any active loan references the book.
func (l Ledger) IsBookOnLoan(ctx context.Context, bookID core.BookIDString) (bool, error) {
	if bookID == "" {
		return false, nil
	}

	loans, err := l.query(ctx, loanstore.BuildLoanFilter().AnyBookOf(bookID).OnlyActive().Finalize())
	if err != nil {
		return false, err
	}

	return len(loans) > 0, nil
}

// ApplyRenewal sets the new due date and renewal count of an open loan.
// The store rejects the change with loanstore.ErrConcurrencyConflict if the loan
// no longer has expectedRenewals renewals or was closed in the meantime.
func (l Ledger) ApplyRenewal(
	ctx context.Context,
	loanID core.LoanIDString,
	expectedRenewals int,
	newRenewals int,
	newDueOn time.Time,
) error {

	return l.store.Renew(ctx, loanID, expectedRenewals, newRenewals, core.ToDate(newDueOn))
}

func (l Ledger) query(ctx context.Context, filter loanstore.Filter) ([]core.LoanRecord, error) {
	storableLoans, err := l.store.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	loans := make([]core.LoanRecord, 0, len(storableLoans))
	for _, storable := range storableLoans {
		loans = append(loans, LoanRecordFromStorableLoan(storable))
	}

	return loans, nil
}

// LoanRecordFromStorableLoan maps the storage DTO to the domain record.
func LoanRecordFromStorableLoan(storable loanstore.StorableLoan) core.LoanRecord {
	storable = storable.Copy()

	return core.LoanRecord{
		LoanID:          storable.LoanID,
		BorrowerID:      storable.BorrowerID,
		BookID:          storable.BookID,
		LentOn:          storable.LentOn,
		DueOn:           storable.DueOn,
		ReturnedOn:      storable.ReturnedOn,
		FineCharged:     core.Money(storable.FineChargedCents),
		RenewalsGranted: storable.RenewalsGranted,
	}
}
