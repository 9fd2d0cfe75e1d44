package activeloans

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

const (
	queryType = "ActiveLoans"
)

// Query represents the input for listing the open loans of one borrower as of a given moment.
type Query struct {
	BorrowerID core.UserIDString
	AsOf       time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(borrowerID core.UserIDString, asOf time.Time) Query {
	return Query{
		BorrowerID: borrowerID,
		AsOf:       asOf,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
