package activeloans

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// ActiveLoan is one open loan with its display and fine information.
type ActiveLoan struct {
	LoanID          core.LoanIDString
	BookID          core.BookIDString
	BookTitle       string
	LentOn          time.Time
	DueOn           time.Time
	RenewalsGranted int
	Overdue         bool
	CurrentFine     core.Money
}

// ActiveLoans represents the open loans of a borrower in ledger order.
type ActiveLoans struct {
	BorrowerID  core.UserIDString
	Loans       []ActiveLoan
	Count       int
	TotalFine   core.Money
	MaxRenewals int
}
