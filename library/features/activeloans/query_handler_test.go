package activeloans_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/activeloans"
	"github.com/AntonStoeckl/library-lending-go/library/ledger"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ListsOpenLoansWithFines(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStoreWith(t,
		FixtureLoan(t, "E001", "U001", "L001", Date(2025, 1, 10), nil, 0),
		FixtureLoan(t, "E002", "U002", "L002", Date(2025, 1, 10), nil, 0),
		FixtureLoan(t, "E003", "U001", "L002", Date(2025, 1, 10), DatePtr(2025, 1, 9), 0),
		FixtureLoan(t, "E004", "U001", "L999", Date(2025, 1, 20), nil, 1),
	)
	logger, spy := NewSpyLogger()
	handler := activeloans.NewQueryHandler(ledger.New(store), FixtureCatalog(), core.DefaultPolicy(), activeloans.WithLogger(logger))

	// act
	result, err := handler.Handle(ctx, activeloans.BuildQuery("U001", FixtureToday))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, 2, result.MaxRenewals)

	overdue := result.Loans[0]
	assert.Equal(t, "E001", overdue.LoanID)
	assert.Equal(t, "Dom Casmurro", overdue.BookTitle)
	assert.True(t, overdue.Overdue)
	assert.Equal(t, "2.50", overdue.CurrentFine.String())

	onTime := result.Loans[1]
	assert.Equal(t, "E004", onTime.LoanID)
	assert.Equal(t, "[Book L999 Unknown]", onTime.BookTitle)
	assert.False(t, onTime.Overdue)
	assert.Equal(t, core.Money(0), onTime.CurrentFine)
	assert.Equal(t, 1, onTime.RenewalsGranted)

	assert.Equal(t, "2.50", result.TotalFine.String())
	assert.True(t, spy.HasInfoLogWithMessage(shell.LogMsgQueryCompleted).
		WithAttr(shell.LogAttrQueryType, "ActiveLoans").
		WithAttr(shell.LogAttrResultCount, "2").
		WithDurationMS().
		Assert())
}

func Test_QueryHandler_Handle_NoOpenLoans(t *testing.T) {
	store := GivenMemoryStoreWith(t, FixtureLoan(t, "E001", "U001", "L001", Date(2025, 1, 10), DatePtr(2025, 1, 10), 0))
	handler := activeloans.NewQueryHandler(ledger.New(store), FixtureCatalog(), core.DefaultPolicy())

	result, err := handler.Handle(context.Background(), activeloans.BuildQuery("U001", FixtureToday))

	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Loans)
	assert.Equal(t, core.Money(0), result.TotalFine)
}

func Test_QueryHandler_Handle_LedgerFailure(t *testing.T) {
	// arrange
	logger, spy := NewSpyLogger()
	handler := activeloans.NewQueryHandler(failingLedger{}, FixtureCatalog(), core.DefaultPolicy(), activeloans.WithContextualLogger(logger))

	// act
	_, err := handler.Handle(context.Background(), activeloans.BuildQuery("U001", FixtureToday))

	// assert
	assert.Error(t, err)
	assert.True(t, spy.HasErrorLogWithMessage(shell.LogMsgQueryFailed).WithAttr(shell.LogAttrQueryType, "ActiveLoans").Assert())
}

func Test_Project_SkipsLoansOfOtherBorrowersAndReturnedLoans(t *testing.T) {
	// arrange
	returnedOn := Date(2025, 1, 12)
	loans := []core.LoanRecord{
		{LoanID: "E001", BorrowerID: "U002", BookID: "L001", DueOn: Date(2025, 1, 10)},
		{LoanID: "E002", BorrowerID: "U001", BookID: "L001", DueOn: Date(2025, 1, 10), ReturnedOn: &returnedOn},
		{LoanID: "E003", BorrowerID: "U001", BookID: "L003", DueOn: Date(2025, 1, 12)},
	}

	// act
	result := activeloans.Project(loans, FixtureCatalog(), activeloans.BuildQuery("U001", FixtureToday), core.DefaultPolicy())

	// assert
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "E003", result.Loans[0].LoanID)
	assert.Equal(t, "A Hora da Estrela", result.Loans[0].BookTitle)
	assert.Equal(t, "1.50", result.TotalFine.String())
}

type failingLedger struct{}

func (failingLedger) ActiveLoansFor(context.Context, core.UserIDString) ([]core.LoanRecord, error) {
	return nil, errors.New("ledger unavailable")
}
