package bookcatalog

const (
	queryType = "BookCatalog"
)

// Query represents the input for listing all books.
// This query uses an empty struct since it doesn't require any input parameters.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
