// Package loanhistory provides the query for the complete loan history of the library, open and returned loans,
// as reviewed by librarians. Loans are listed most recent first.
package loanhistory
