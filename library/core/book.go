package core

// Book is a title held by the library. Books are immutable during a run.
type Book struct {
	ID     BookIDString
	Title  string
	Author string
}

// BookStatus is the physical status of a book. A book may have no status at all.
type BookStatus struct {
	BookID        BookIDString
	ShelfPosition string
	Condition     string
	Loanable      bool
}
