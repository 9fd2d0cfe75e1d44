package helper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/catalog"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/loanstore"
	"github.com/AntonStoeckl/library-lending-go/loanstore/memoryengine"
)

// FixtureToday is the fake "today" all feature tests are evaluated against.
var FixtureToday = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

// Date builds a midnight UTC date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DatePtr builds a pointer to a midnight UTC date, for return dates.
func DatePtr(year int, month time.Month, day int) *time.Time {
	d := Date(year, month, day)

	return &d
}

// FixtureCatalog returns a small catalog with two clients, one librarian and three books (one without status).
func FixtureCatalog() *catalog.Catalog {
	return catalog.Build(
		[]core.User{
			core.BuildUser("U001", "Ana Souza", "cliente", "ana", "123"),
			core.BuildUser("U002", "Bruno Lima", "client", "bruno", "456"),
			core.BuildUser("U003", "Carla Dias", "bibliotecario", "carla", "789"),
		},
		[]core.Book{
			{ID: "L001", Title: "Dom Casmurro", Author: "Machado de Assis"},
			{ID: "L002", Title: "Capitães da Areia", Author: "Jorge Amado"},
			{ID: "L003", Title: "A Hora da Estrela", Author: "Clarice Lispector"},
		},
		[]core.BookStatus{
			{BookID: "L001", ShelfPosition: "A1", Condition: "good", Loanable: true},
			{BookID: "L002", ShelfPosition: "B4", Condition: "worn", Loanable: false},
		},
	)
}

// FixtureLoan builds a StorableLoan lent seven days before dueOn.
func FixtureLoan(
	t testing.TB,
	loanID string,
	borrowerID string,
	bookID string,
	dueOn time.Time,
	returnedOn *time.Time,
	renewalsGranted int,
) loanstore.StorableLoan {

	loan, err := loanstore.BuildStorableLoan(
		loanID,
		borrowerID,
		bookID,
		dueOn.AddDate(0, 0, -7),
		dueOn,
		returnedOn,
		0,
		renewalsGranted,
	)
	require.NoError(t, err, "error in arranging test data")

	return loan
}

// GivenMemoryStoreWith returns a memory LoanStore into which the given loans were imported.
func GivenMemoryStoreWith(t testing.TB, loans ...loanstore.StorableLoan) *memoryengine.LoanStore {
	store := memoryengine.NewLoanStore()

	_, err := store.Import(context.Background(), loans)
	assert.NoError(t, err, "error in arranging test data")

	return store
}
