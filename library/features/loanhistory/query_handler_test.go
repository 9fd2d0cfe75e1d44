package loanhistory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/loanhistory"
	"github.com/AntonStoeckl/library-lending-go/library/ledger"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ListsAllLoansMostRecentFirst(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStoreWith(t,
		FixtureLoan(t, "E001", "U001", "L001", Date(2025, 1, 5), DatePtr(2025, 1, 4), 0),
		FixtureLoan(t, "E002", "U002", "L002", Date(2025, 1, 12), nil, 1),
		FixtureLoan(t, "E003", "U404", "L404", Date(2025, 1, 8), nil, 0),
	)
	logger, spy := NewSpyLogger()
	handler := loanhistory.NewQueryHandler(ledger.New(store), FixtureCatalog(), loanhistory.WithLogger(logger))

	// act
	result, err := handler.Handle(ctx, loanhistory.BuildQuery())

	// assert
	require.NoError(t, err)
	require.Equal(t, 3, result.Count)
	assert.Equal(t, []string{"E002", "E003", "E001"}, loanIDsOf(result))

	assert.Equal(t, loanhistory.StatusActive, result.Loans[0].Status)
	assert.Equal(t, "Bruno Lima", result.Loans[0].BorrowerName)
	assert.Equal(t, "Capitães da Areia", result.Loans[0].BookTitle)

	assert.Equal(t, "[Borrower U404 Unknown]", result.Loans[1].BorrowerName)
	assert.Equal(t, "[Book L404 Unknown]", result.Loans[1].BookTitle)

	assert.Equal(t, loanhistory.StatusReturned, result.Loans[2].Status)
	require.NotNil(t, result.Loans[2].ReturnedOn)
	assert.Equal(t, Date(2025, 1, 4), *result.Loans[2].ReturnedOn)

	assert.True(t, spy.HasInfoLogWithMessage(shell.LogMsgQueryCompleted).WithAttr(shell.LogAttrQueryType, "LoanHistory").Assert())
}

func Test_Project_KeepsLedgerOrderForLoansOfTheSameDay(t *testing.T) {
	// arrange
	loans := []core.LoanRecord{
		{LoanID: "E001", BorrowerID: "U001", BookID: "L001", LentOn: Date(2025, 1, 3)},
		{LoanID: "E002", BorrowerID: "U001", BookID: "L002", LentOn: Date(2025, 1, 3)},
		{LoanID: "E003", BorrowerID: "U002", BookID: "L003", LentOn: Date(2025, 1, 1)},
		{LoanID: "E004", BorrowerID: "U002", BookID: "L001", LentOn: Date(2025, 1, 3)},
	}

	// act
	result := loanhistory.Project(loans, FixtureCatalog(), loanhistory.BuildQuery())

	// assert
	assert.Equal(t, []string{"E001", "E002", "E004", "E003"}, loanIDsOf(result))
}

func Test_QueryHandler_Handle_LedgerFailure(t *testing.T) {
	handler := loanhistory.NewQueryHandler(failingLedger{}, FixtureCatalog())

	_, err := handler.Handle(context.Background(), loanhistory.BuildQuery())

	assert.Error(t, err)
}

func loanIDsOf(history loanhistory.LoanHistory) []string {
	ids := make([]string, 0, len(history.Loans))
	for _, entry := range history.Loans {
		ids = append(ids, entry.LoanID)
	}

	return ids
}

type failingLedger struct{}

func (failingLedger) AllLoans(context.Context) ([]core.LoanRecord, error) {
	return nil, errors.New("ledger unavailable")
}
