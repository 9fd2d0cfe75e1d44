// Package renewloan implements the Renew Loan use case.
//
// A client may extend the due date of one of their open loans by the configured number of days,
// as long as the loan is not overdue and the renewal limit has not been reached.
// It follows the Find-Decide-Apply pattern with proper separation between
// infrastructure concerns (CommandHandler) and pure business logic (Decide function).
//
// Rejected renewals are regular business outcomes reported in the Result, never errors.
// Each decision, granted or rejected, is recorded in the optional decision journal.
package renewloan
