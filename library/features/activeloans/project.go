package activeloans

import (
	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// BookTitles resolves book titles, substituting a placeholder for unknown books.
type BookTitles interface {
	BookTitle(id core.BookIDString) string
}

// Project implements the query logic to build the active loans view of one borrower.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: The loans of the borrower, the catalog and the lending policy
//	WHEN: ActiveLoans query is executed
//	THEN: ActiveLoans is returned in ledger order
//	INCLUDES: Open loans of the borrower, each with its current fine as of the query's AsOf
//	EXCLUDES: Returned loans and loans of other borrowers
func Project(loans []core.LoanRecord, titles BookTitles, query Query, policy core.Policy) ActiveLoans {
	finePolicy := core.NewFinePolicy(policy)
	result := ActiveLoans{
		BorrowerID:  query.BorrowerID,
		Loans:       make([]ActiveLoan, 0, len(loans)),
		MaxRenewals: policy.MaxRenewals,
	}

	active := make([]core.LoanRecord, 0, len(loans))

	for _, loan := range loans {
		if !loan.IsActive() || loan.BorrowerID != query.BorrowerID {
			continue
		}

		active = append(active, loan)
		fine := finePolicy.CurrentFine(loan, query.AsOf)

		result.Loans = append(result.Loans, ActiveLoan{
			LoanID:          loan.LoanID,
			BookID:          loan.BookID,
			BookTitle:       titles.BookTitle(loan.BookID),
			LentOn:          loan.LentOn,
			DueOn:           loan.DueOn,
			RenewalsGranted: loan.RenewalsGranted,
			Overdue:         fine.IsPositive(),
			CurrentFine:     fine,
		})
	}

	result.Count = len(result.Loans)
	result.TotalFine = finePolicy.TotalFine(active, query.AsOf)

	return result
}
