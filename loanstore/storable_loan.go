package loanstore

import (
	"errors"
	"time"
)

var (
	// ErrEmptyLoanID is returned when a loan has no ID.
	ErrEmptyLoanID = errors.New("loan id must not be empty")

	// ErrEmptyBorrowerID is returned when a loan references no borrower.
	ErrEmptyBorrowerID = errors.New("borrower id must not be empty")

	// ErrEmptyBookID is returned when a loan references no book.
	ErrEmptyBookID = errors.New("book id must not be empty")
)

// StorableLoans is an alias type for a slice of StorableLoan
type StorableLoans = []StorableLoan

// StorableLoan is a DTO (data transfer object) used by the LoanStore engines to persist loans and query them back.
//
// It is built on scalars to be completely agnostic of the loan entity in the client code.
// Dates carry no time-of-day component.
//
// While its properties are exported, it should only be constructed with BuildStorableLoan.
type StorableLoan struct {
	LoanID           string
	BorrowerID       string
	BookID           string
	LentOn           time.Time
	DueOn            time.Time
	ReturnedOn       *time.Time
	FineChargedCents int64
	RenewalsGranted  int
}

// BuildStorableLoan is a factory method for StorableLoan.
//
// It populates the StorableLoan with the given scalar input, reducing all dates to midnight UTC.
// Only the identifying fields are validated, loans are stored as they were recorded
// even if their dates or amounts look inconsistent. Returns all missing identifiers joined into one error.
func BuildStorableLoan(
	loanID string,
	borrowerID string,
	bookID string,
	lentOn time.Time,
	dueOn time.Time,
	returnedOn *time.Time,
	fineChargedCents int64,
	renewalsGranted int,
) (StorableLoan, error) {

	lentOn = toDate(lentOn)
	dueOn = toDate(dueOn)

	var errs []error

	if loanID == "" {
		errs = append(errs, ErrEmptyLoanID)
	}

	if borrowerID == "" {
		errs = append(errs, ErrEmptyBorrowerID)
	}

	if bookID == "" {
		errs = append(errs, ErrEmptyBookID)
	}

	if len(errs) > 0 {
		return StorableLoan{}, errors.Join(errs...)
	}

	if returnedOn != nil {
		returned := toDate(*returnedOn)
		returnedOn = &returned
	}

	return StorableLoan{
		LoanID:           loanID,
		BorrowerID:       borrowerID,
		BookID:           bookID,
		LentOn:           lentOn,
		DueOn:            dueOn,
		ReturnedOn:       returnedOn,
		FineChargedCents: fineChargedCents,
		RenewalsGranted:  renewalsGranted,
	}, nil
}

// IsActive reports whether the loan has not been returned yet.
func (l StorableLoan) IsActive() bool {
	return l.ReturnedOn == nil
}

// Copy returns a deep copy, so that engines never hand out pointers into their own state.
func (l StorableLoan) Copy() StorableLoan {
	if l.ReturnedOn != nil {
		returnedOn := *l.ReturnedOn
		l.ReturnedOn = &returnedOn
	}

	return l
}

func toDate(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
