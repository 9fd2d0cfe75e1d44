// Package bookcatalog provides the query for the list of all books with their physical status and availability.
//
// A book is on loan while any loan of it is still open. Books without a status record are listed
// as not loanable with unknown shelf position and condition.
package bookcatalog
