package loanhistory

import (
	"slices"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// DisplayNames resolves book titles and borrower names, substituting placeholders for unknown references.
type DisplayNames interface {
	BookTitle(id core.BookIDString) string
	BorrowerName(id core.UserIDString) string
}

// Project implements the query logic to build the loan history.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: All loans in ledger order and the catalog
//	WHEN: LoanHistory query is executed
//	THEN: LoanHistory is returned sorted by LentOn, most recent first
//	INCLUDES: Open and returned loans; loans lent on the same day keep their ledger order
func Project(loans []core.LoanRecord, names DisplayNames, _ Query) LoanHistory {
	entries := make([]LoanEntry, 0, len(loans))

	for _, loan := range loans {
		status := StatusActive
		if !loan.IsActive() {
			status = StatusReturned
		}

		entries = append(entries, LoanEntry{
			LoanID:          loan.LoanID,
			Status:          status,
			BorrowerID:      loan.BorrowerID,
			BorrowerName:    names.BorrowerName(loan.BorrowerID),
			BookID:          loan.BookID,
			BookTitle:       names.BookTitle(loan.BookID),
			LentOn:          loan.LentOn,
			DueOn:           loan.DueOn,
			ReturnedOn:      loan.ReturnedOn,
			FineCharged:     loan.FineCharged,
			RenewalsGranted: loan.RenewalsGranted,
		})
	}

	slices.SortStableFunc(entries, func(a, b LoanEntry) int {
		return b.LentOn.Compare(a.LentOn)
	})

	return LoanHistory{
		Loans: entries,
		Count: len(entries),
	}
}
