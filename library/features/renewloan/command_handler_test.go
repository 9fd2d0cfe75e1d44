package renewloan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/renewloan"
	"github.com/AntonStoeckl/library-lending-go/library/ledger"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
	"github.com/AntonStoeckl/library-lending-go/loanstore"
	"github.com/AntonStoeckl/library-lending-go/loanstore/memoryengine"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_GrantsAndPersistsTheRenewal(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStoreWith(t, FixtureLoan(t, "E001", "U001", "L001", Date(2025, 1, 17), nil, 0))
	logger, spy := NewSpyLogger()
	handler := renewloan.NewCommandHandler(
		ledger.New(store),
		core.DefaultPolicy(),
		renewloan.WithJournal(store),
		renewloan.WithLogger(logger),
	)

	// act
	result, err := handler.Handle(ctx, renewloan.BuildCommand("E001", core.RoleClient, FixtureToday))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Granted())
	assert.Equal(t, core.RenewalGranted, result.Outcome)
	assert.Equal(t, Date(2025, 1, 24), result.Loan.DueOn)
	assert.Equal(t, 1, result.Loan.RenewalsGranted)
	assert.False(t, result.HandlerResult.Rejected)
	assert.Equal(t, 1, result.HandlerResult.RetryAttempts)

	stored := givenStoredLoan(t, store, "E001")
	assert.Equal(t, Date(2025, 1, 24), stored.DueOn)
	assert.Equal(t, 1, stored.RenewalsGranted)

	journal := store.Journal()
	require.Len(t, journal, 1)
	assert.Equal(t, core.LoanRenewedEventType, journal[0].EventType)

	assert.True(t, spy.HasInfoLogWithMessage(shell.LogMsgCommandCompleted).
		WithAttr(shell.LogAttrCommandType, "RenewLoan").
		WithAttr(shell.LogAttrBusinessOutcome, "granted").
		WithDurationMS().
		Assert())
}

func Test_CommandHandler_Handle_RejectionIsAnOutcomeNotAnError(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStoreWith(t, FixtureLoan(t, "E001", "U001", "L001", Date(2025, 1, 20), nil, 2))
	handler := renewloan.NewCommandHandler(ledger.New(store), core.DefaultPolicy(), renewloan.WithJournal(store))

	// act
	result, err := handler.Handle(ctx, renewloan.BuildCommand("E001", core.RoleClient, FixtureToday))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Granted())
	assert.Equal(t, core.RenewalLimitReached, result.Outcome)
	assert.True(t, result.HandlerResult.Rejected)
	assert.Equal(t, Date(2025, 1, 20), result.Loan.DueOn)

	stored := givenStoredLoan(t, store, "E001")
	assert.Equal(t, Date(2025, 1, 20), stored.DueOn)
	assert.Equal(t, 2, stored.RenewalsGranted)

	journal := store.Journal()
	require.Len(t, journal, 1)
	assert.Equal(t, core.RenewingLoanFailedEventType, journal[0].EventType)
}

func Test_CommandHandler_Handle_OverdueLoanIsDenied(t *testing.T) {
	store := GivenMemoryStoreWith(t, FixtureLoan(t, "E001", "U001", "L001", Date(2025, 1, 10), nil, 0))
	handler := renewloan.NewCommandHandler(ledger.New(store), core.DefaultPolicy())

	result, err := handler.Handle(context.Background(), renewloan.BuildCommand("E001", core.RoleClient, FixtureToday))

	require.NoError(t, err)
	assert.Equal(t, core.RenewalDeniedOverdue, result.Outcome)
	assert.Equal(t, 0, givenStoredLoan(t, store, "E001").RenewalsGranted)
}

func Test_CommandHandler_Handle_ReturnedLoanIsDeniedWithoutRetrying(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStoreWith(t, FixtureLoan(t, "E001", "U001", "L001", Date(2025, 1, 17), DatePtr(2025, 1, 12), 0))
	handler := renewloan.NewCommandHandler(ledger.New(store), core.DefaultPolicy(), renewloan.WithJournal(store))

	// act
	result, err := handler.Handle(ctx, renewloan.BuildCommand("E001", core.RoleClient, FixtureToday))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Granted())
	assert.Equal(t, core.RenewalLoanNotActive, result.Outcome)
	assert.True(t, result.HandlerResult.Rejected)
	assert.Equal(t, 1, result.HandlerResult.RetryAttempts)

	stored := givenStoredLoan(t, store, "E001")
	assert.Equal(t, Date(2025, 1, 17), stored.DueOn)
	assert.Equal(t, 0, stored.RenewalsGranted)

	journal := store.Journal()
	require.Len(t, journal, 1)
	assert.Equal(t, core.RenewingLoanFailedEventType, journal[0].EventType)
}

func Test_CommandHandler_Handle_UnknownLoanIsAnError(t *testing.T) {
	// arrange
	store := GivenMemoryStoreWith(t)
	logger, spy := NewSpyLogger()
	handler := renewloan.NewCommandHandler(ledger.New(store), core.DefaultPolicy(), renewloan.WithContextualLogger(logger))

	// act
	result, err := handler.Handle(context.Background(), renewloan.BuildCommand("E404", core.RoleClient, FixtureToday))

	// assert
	assert.ErrorIs(t, err, ledger.ErrLoanNotFound)
	assert.False(t, result.Granted())
	assert.Equal(t, core.RenewalUndecided, result.Outcome)
	assert.Empty(t, store.Journal())
	assert.True(t, spy.HasErrorLogWithMessage(shell.LogMsgCommandFailed).WithAttr(shell.LogAttrCommandType, "RenewLoan").Assert())
}

func Test_CommandHandler_Handle_RedecidesAfterAConcurrentRenewal(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStoreWith(t, FixtureLoan(t, "E001", "U001", "L001", Date(2025, 1, 17), nil, 0))
	racing := &racingLedger{Ledger: ledger.New(store), store: store}
	handler := renewloan.NewCommandHandler(
		racing,
		core.DefaultPolicy(),
		renewloan.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)),
	)

	// act
	result, err := handler.Handle(ctx, renewloan.BuildCommand("E001", core.RoleClient, FixtureToday))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.RenewalGranted, result.Outcome)
	assert.Equal(t, 2, result.HandlerResult.RetryAttempts)
	assert.Equal(t, 2, result.Loan.RenewalsGranted)
	assert.Equal(t, Date(2025, 1, 31), result.Loan.DueOn)

	stored := givenStoredLoan(t, store, "E001")
	assert.Equal(t, 2, stored.RenewalsGranted)
	assert.Equal(t, Date(2025, 1, 31), stored.DueOn)
}

func Test_CommandHandler_Handle_GivesUpAfterPersistentConflicts(t *testing.T) {
	// arrange
	store := GivenMemoryStoreWith(t, FixtureLoan(t, "E001", "U001", "L001", Date(2025, 1, 17), nil, 0))
	handler := renewloan.NewCommandHandler(
		conflictingLedger{Ledger: ledger.New(store)},
		core.DefaultPolicy(),
		renewloan.WithRetryOptions(shell.WithMaxAttempts(3), shell.WithBaseDelay(time.Millisecond)),
	)

	// act
	result, err := handler.Handle(context.Background(), renewloan.BuildCommand("E001", core.RoleClient, FixtureToday))

	// assert
	assert.ErrorIs(t, err, loanstore.ErrConcurrencyConflict)
	assert.False(t, result.Granted())
	assert.Equal(t, 3, result.HandlerResult.RetryAttempts)
	assert.True(t, result.HandlerResult.RetriesExhausted)
	assert.Equal(t, 0, givenStoredLoan(t, store, "E001").RenewalsGranted)
}

func Test_CommandHandler_Handle_FailingJournalDoesNotChangeTheOutcome(t *testing.T) {
	// arrange
	store := GivenMemoryStoreWith(t, FixtureLoan(t, "E001", "U001", "L001", Date(2025, 1, 17), nil, 0))
	logger, spy := NewSpyLogger()
	handler := renewloan.NewCommandHandler(
		ledger.New(store),
		core.DefaultPolicy(),
		renewloan.WithJournal(failingJournal{}),
		renewloan.WithLogger(logger),
	)

	// act
	result, err := handler.Handle(context.Background(), renewloan.BuildCommand("E001", core.RoleClient, FixtureToday))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.RenewalGranted, result.Outcome)
	assert.True(t, spy.HasWarnLogWithMessage(shell.LogMsgJournalFailed).WithAttr(shell.LogAttrError, "journal unavailable").Assert())
}

// racingLedger lets another session renew the loan right before the first ApplyRenewal lands.
type racingLedger struct {
	ledger.Ledger
	store *memoryengine.LoanStore
	raced bool
}

func (l *racingLedger) ApplyRenewal(
	ctx context.Context,
	loanID core.LoanIDString,
	expectedRenewals int,
	newRenewals int,
	newDueOn time.Time,
) error {

	if !l.raced {
		l.raced = true
		if err := l.store.Renew(ctx, loanID, expectedRenewals, newRenewals, newDueOn); err != nil {
			return err
		}
	}

	return l.Ledger.ApplyRenewal(ctx, loanID, expectedRenewals, newRenewals, newDueOn)
}

type conflictingLedger struct {
	ledger.Ledger
}

func (l conflictingLedger) ApplyRenewal(context.Context, core.LoanIDString, int, int, time.Time) error {
	return loanstore.ErrConcurrencyConflict
}

type failingJournal struct{}

func (failingJournal) AppendJournal(context.Context, loanstore.JournalEntry, ...loanstore.JournalEntry) error {
	return errors.New("journal unavailable")
}

func givenStoredLoan(t *testing.T, store *memoryengine.LoanStore, loanID string) loanstore.StorableLoan {
	t.Helper()

	loans, err := store.Query(context.Background(), loanstore.BuildLoanFilter().AnyLoanOf(loanID).Finalize())
	require.NoError(t, err, "error in arranging test data")
	require.Len(t, loans, 1, "error in arranging test data")

	return loans[0]
}
