package loanhistory

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// LoanStatus tells open loans from returned ones.
type LoanStatus string

const (
	StatusActive   LoanStatus = "ACTIVE"
	StatusReturned LoanStatus = "RETURNED"
)

// LoanEntry is one loan with the names needed to display it.
type LoanEntry struct {
	LoanID          core.LoanIDString
	Status          LoanStatus
	BorrowerID      core.UserIDString
	BorrowerName    string
	BookID          core.BookIDString
	BookTitle       string
	LentOn          time.Time
	DueOn           time.Time
	ReturnedOn      *time.Time
	FineCharged     core.Money
	RenewalsGranted int
}

// LoanHistory represents all loans sorted by loan date, most recent first.
type LoanHistory struct {
	Loans []LoanEntry
	Count int
}
