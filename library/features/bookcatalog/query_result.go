package bookcatalog

import (
	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// BookEntry is one book with its status and availability.
// HasStatus is false when no status record exists for the book; ShelfPosition and Condition are empty then.
type BookEntry struct {
	BookID        core.BookIDString
	Title         string
	Author        string
	HasStatus     bool
	ShelfPosition string
	Condition     string
	Loanable      bool
	OnLoan        bool
}

// BookCatalog represents all books sorted by title.
type BookCatalog struct {
	Books []BookEntry
	Count int
}
