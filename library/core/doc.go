// Package core contains the domain model for the example:
// Book loans in a small library.
//
// It holds the reference entities (User, Book, BookStatus), the LoanRecord,
// the lending Policy, the FinePolicy and the domain events emitted by renewal
// decisions (LoanRenewed, RenewingLoanFailed).
//
// Everything in here is pure: no I/O, no clocks, no globals. The current time is
// always passed in by the caller, which keeps fines and renewal decisions
// deterministic and testable.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
