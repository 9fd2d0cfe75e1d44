package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/ledger"
	"github.com/AntonStoeckl/library-lending-go/loanstore"
	"github.com/AntonStoeckl/library-lending-go/loanstore/memoryengine"
)

func Test_Ledger_ActiveLoansFor(t *testing.T) {
	// arrange
	ctx := context.Background()
	l := givenLedgerWith(t,
		givenLoan(t, "E001", "U001", "L001", false, 0),
		givenLoan(t, "E002", "U001", "L002", true, 0),
		givenLoan(t, "E003", "U002", "L003", false, 0),
		givenLoan(t, "E004", "U001", "L004", false, 0),
	)

	// act
	loans, err := l.ActiveLoansFor(ctx, "U001")

	// assert
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, "E001", loans[0].LoanID)
	assert.Equal(t, "E004", loans[1].LoanID)

	for _, loan := range loans {
		assert.True(t, loan.IsActive())
	}
}

func Test_Ledger_ActiveLoansFor_UnknownBorrowerHasNone(t *testing.T) {
	l := givenLedgerWith(t, givenLoan(t, "E001", "U001", "L001", false, 0))

	loans, err := l.ActiveLoansFor(context.Background(), "U999")

	require.NoError(t, err)
	assert.Empty(t, loans)
}

func Test_Ledger_AllLoans_KeepsInsertionOrder(t *testing.T) {
	l := givenLedgerWith(t,
		givenLoan(t, "E002", "U001", "L001", true, 0),
		givenLoan(t, "E001", "U002", "L002", false, 0),
	)

	loans, err := l.AllLoans(context.Background())

	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, "E002", loans[0].LoanID)
	assert.Equal(t, "E001", loans[1].LoanID)
	assert.Equal(t, core.Money(150), loans[0].FineCharged)
}

func Test_Ledger_FindLoan(t *testing.T) {
	l := givenLedgerWith(t, givenLoan(t, "E001", "U001", "L001", false, 1))

	loan, err := l.FindLoan(context.Background(), "E001")
	require.NoError(t, err)
	assert.Equal(t, 1, loan.RenewalsGranted)

	_, err = l.FindLoan(context.Background(), "E999")
	assert.ErrorIs(t, err, ledger.ErrLoanNotFound)

	_, err = l.FindLoan(context.Background(), "")
	assert.ErrorIs(t, err, ledger.ErrLoanNotFound)
}

func Test_Ledger_IsBookOnLoan(t *testing.T) {
	l := givenLedgerWith(t,
		givenLoan(t, "E001", "U001", "L001", false, 0),
		givenLoan(t, "E002", "U001", "L002", true, 0),
	)
	ctx := context.Background()

	onLoan, err := l.IsBookOnLoan(ctx, "L001")
	require.NoError(t, err)
	assert.True(t, onLoan)

	onLoan, err = l.IsBookOnLoan(ctx, "L002")
	require.NoError(t, err)
	assert.False(t, onLoan, "returned loans do not count")

	onLoan, err = l.IsBookOnLoan(ctx, "L999")
	require.NoError(t, err)
	assert.False(t, onLoan)
}

func Test_Ledger_ApplyRenewal(t *testing.T) {
	// arrange
	ctx := context.Background()
	l := givenLedgerWith(t, givenLoan(t, "E001", "U001", "L001", false, 0))
	newDueOn := time.Date(2025, 1, 17, 15, 0, 0, 0, time.UTC)

	// act
	err := l.ApplyRenewal(ctx, "E001", 0, 1, newDueOn)

	// assert
	require.NoError(t, err)
	loan, err := l.FindLoan(ctx, "E001")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC), loan.DueOn)
	assert.Equal(t, 1, loan.RenewalsGranted)

	err = l.ApplyRenewal(ctx, "E001", 0, 1, newDueOn)
	assert.ErrorIs(t, err, loanstore.ErrConcurrencyConflict, "a stale renewal count must be rejected")
}

func Test_Ledger_HandsOutCopies(t *testing.T) {
	ctx := context.Background()
	l := givenLedgerWith(t, givenLoan(t, "E001", "U001", "L001", true, 0))

	loan, err := l.FindLoan(ctx, "E001")
	require.NoError(t, err)
	*loan.ReturnedOn = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	loan.DueOn = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	again, err := l.FindLoan(ctx, "E001")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), *again.ReturnedOn)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), again.DueOn)
}

func Test_Ledger_PropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("store is down")
	l := ledger.New(failingStore{err: storeErr})

	_, err := l.AllLoans(context.Background())
	assert.ErrorIs(t, err, storeErr)

	_, err = l.IsBookOnLoan(context.Background(), "L001")
	assert.ErrorIs(t, err, storeErr)
}

type failingStore struct {
	err error
}

func (s failingStore) Query(context.Context, loanstore.Filter) (loanstore.StorableLoans, error) {
	return nil, s.err
}

func (s failingStore) Renew(context.Context, string, int, int, time.Time) error {
	return s.err
}

func givenLedgerWith(t *testing.T, loans ...loanstore.StorableLoan) ledger.Ledger {
	t.Helper()

	store := memoryengine.NewLoanStore()
	_, err := store.Import(context.Background(), loans)
	require.NoError(t, err)

	return ledger.New(store)
}

func givenLoan(t *testing.T, loanID, borrowerID, bookID string, returned bool, renewals int) loanstore.StorableLoan {
	t.Helper()

	var returnedOn *time.Time
	var fine int64

	if returned {
		d := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
		returnedOn = &d
		fine = 150
	}

	loan, err := loanstore.BuildStorableLoan(
		loanID, borrowerID, bookID,
		time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		returnedOn, fine, renewals,
	)
	require.NoError(t, err)

	return loan
}
