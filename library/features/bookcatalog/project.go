package bookcatalog

import (
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// Catalog defines the catalog lookups needed to build the book list.
type Catalog interface {
	Books() []core.Book
	FindStatus(bookID core.BookIDString) (core.BookStatus, bool)
}

// Project implements the query logic to build the book list.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: The catalog and the set of books with an open loan
//	WHEN: BookCatalog query is executed
//	THEN: BookCatalog is returned sorted by title
//	INCLUDES: Every book, flagged as on loan while any of its loans is open
func Project(catalog Catalog, onLoan map[core.BookIDString]bool, _ Query) BookCatalog {
	books := catalog.Books()
	entries := make([]BookEntry, 0, len(books))

	for _, book := range books {
		entry := BookEntry{
			BookID: book.ID,
			Title:  book.Title,
			Author: book.Author,
			OnLoan: onLoan[book.ID],
		}

		if status, found := catalog.FindStatus(book.ID); found {
			entry.HasStatus = true
			entry.ShelfPosition = status.ShelfPosition
			entry.Condition = status.Condition
			entry.Loanable = status.Loanable
		}

		entries = append(entries, entry)
	}

	slices.SortStableFunc(entries, func(a, b BookEntry) int {
		return strings.Compare(a.Title, b.Title)
	})

	return BookCatalog{
		Books: entries,
		Count: len(entries),
	}
}
