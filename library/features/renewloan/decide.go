package renewloan

import (
	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// Decide implements the business logic to determine whether a loan may be renewed.
// This is a pure function with no side effects - it takes the current loan, the command and the
// lending policy and returns the event that should be recorded.
//
// Business Rules (checked in this order):
//
//	GIVEN: An open loan with LoanID
//	WHEN: RenewLoan command is received
//	THEN: LoanRenewed event is generated, DueOn moves RenewalDays forward and RenewalsGranted grows by one
//	ERROR: ErrNotAuthorized if the caller is not a client
//	ERROR: ErrLoanNotActive if the loan was already returned
//	ERROR: ErrRenewalDeniedOverdue if the loan is overdue at AsOf
//	ERROR: ErrRenewalLimitReached if the loan was already renewed MaxRenewals times
func Decide(loan core.LoanRecord, command Command, policy core.Policy) core.DecisionResult {
	if command.CallerRole != core.RoleClient {
		return rejected(loan, command, core.ErrNotAuthorized)
	}

	if !loan.IsActive() {
		return rejected(loan, command, core.ErrLoanNotActive)
	}

	if core.NewFinePolicy(policy).IsOverdue(loan, command.AsOf) {
		return rejected(loan, command, core.ErrRenewalDeniedOverdue)
	}

	if loan.RenewalsGranted >= policy.MaxRenewals {
		return rejected(loan, command, core.ErrRenewalLimitReached)
	}

	return core.SuccessDecision(
		core.BuildLoanRenewed(
			loan,
			core.AddDays(loan.DueOn, policy.RenewalDays),
			loan.RenewalsGranted+1,
			command.AsOf))
}

func rejected(loan core.LoanRecord, command Command, reason error) core.DecisionResult {
	return core.ErrorDecision(
		core.BuildRenewingLoanFailed(loan.LoanID, reason.Error(), command.AsOf),
		reason)
}
