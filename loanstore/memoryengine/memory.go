package memoryengine

import (
	"context"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-lending-go/loanstore"
)

const (
	logMsgOperation           = "loanstore operation: "
	logMsgQueryCompleted      = "query completed"
	logMsgLoansImported       = "loans imported"
	logMsgDuplicateLoanID     = "skipping loan with duplicate id"
	logMsgLoanRenewed         = "loan renewed"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgJournalAppended     = "journal appended"
	logAttrLoanCount          = "loan_count"
	logAttrLoanID             = "loan_id"
	logAttrEntryCount         = "entry_count"
	logAttrExpectedRenewals   = "expected_renewals"
)

// LoanStore keeps loans in memory in insertion order.
type LoanStore struct {
	mu      sync.RWMutex
	loans   loanstore.StorableLoans
	byID    map[string]int
	journal loanstore.JournalEntries
	logger  loanstore.Logger
}

// Option defines a functional option for configuring LoanStore.
type Option func(*LoanStore)

// WithLogger sets the logger for the LoanStore. Operations are logged at info level.
func WithLogger(logger loanstore.Logger) Option {
	return func(s *LoanStore) {
		s.logger = logger
	}
}

// NewLoanStore creates an empty LoanStore.
func NewLoanStore(options ...Option) *LoanStore {
	s := &LoanStore{
		byID: make(map[string]int),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Import appends the given loans in order and returns how many were stored.
// A loan whose ID is already known is skipped, the first occurrence wins.
func (s *LoanStore) Import(ctx context.Context, loans loanstore.StorableLoans) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	imported := 0

	for _, loan := range loans {
		if _, exists := s.byID[loan.LoanID]; exists {
			s.logOperation(logMsgDuplicateLoanID, logAttrLoanID, loan.LoanID)
			continue
		}

		s.byID[loan.LoanID] = len(s.loans)
		s.loans = append(s.loans, loan.Copy())
		imported++
	}

	s.logOperation(logMsgLoansImported, logAttrLoanCount, imported)

	return imported, nil
}

// Query returns copies of all loans matching the filter, in insertion order.
func (s *LoanStore) Query(ctx context.Context, filter loanstore.Filter) (loanstore.StorableLoans, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(loanstore.StorableLoans, 0)

	for _, loan := range s.loans {
		if filter.Matches(loan) {
			result = append(result, loan.Copy())
		}
	}

	s.logOperation(logMsgQueryCompleted, logAttrLoanCount, len(result))

	return result, nil
}

// Renew moves the due date of an open loan and sets its renewal count,
// provided the stored renewal count still equals expectedRenewals.
func (s *LoanStore) Renew(
	ctx context.Context,
	loanID string,
	expectedRenewals int,
	newRenewals int,
	newDueOn time.Time,
) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, found := s.byID[loanID]
	if !found || !s.loans[idx].IsActive() || s.loans[idx].RenewalsGranted != expectedRenewals {
		s.logOperation(logMsgConcurrencyConflict, logAttrLoanID, loanID, logAttrExpectedRenewals, expectedRenewals)

		return loanstore.ErrConcurrencyConflict
	}

	y, m, d := newDueOn.Date()
	s.loans[idx].DueOn = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	s.loans[idx].RenewalsGranted = newRenewals

	s.logOperation(logMsgLoanRenewed, logAttrLoanID, loanID)

	return nil
}

// AppendJournal records one or multiple journal entries.
func (s *LoanStore) AppendJournal(ctx context.Context, entry loanstore.JournalEntry, additional ...loanstore.JournalEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.journal = append(s.journal, entry)
	s.journal = append(s.journal, additional...)

	s.logOperation(logMsgJournalAppended, logAttrEntryCount, 1+len(additional))

	return nil
}

// Journal returns a copy of all recorded journal entries in order.
func (s *LoanStore) Journal() loanstore.JournalEntries {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(loanstore.JournalEntries{}, s.journal...)
}

func (s *LoanStore) logOperation(action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}
