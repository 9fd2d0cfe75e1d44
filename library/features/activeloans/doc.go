// Package activeloans provides the query for a borrower's open loans together with their live fines.
//
// Fines are computed on the fly from the fine policy and the query's reference date, they are never stored.
// The result also carries the total fine owed across all open loans of the borrower.
package activeloans
