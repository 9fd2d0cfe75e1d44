// Package catalog holds the library's reference data: users, books and book statuses.
// It is built once after loading and is read-only afterwards.
package catalog

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// Catalog answers lookups by key in constant time.
// Missing entries are not errors: callers substitute placeholders, see UnknownBookTitle and UnknownBorrowerName.
type Catalog struct {
	usersByID    map[core.UserIDString]core.User
	usersByLogin map[core.LoginString]core.User
	books        []core.Book
	booksByID    map[core.BookIDString]core.Book
	statuses     map[core.BookIDString]core.BookStatus
}

// Build creates a Catalog. On duplicate keys the later record wins.
func Build(users []core.User, books []core.Book, statuses []core.BookStatus) *Catalog {
	c := &Catalog{
		usersByID:    make(map[core.UserIDString]core.User, len(users)),
		usersByLogin: make(map[core.LoginString]core.User, len(users)),
		booksByID:    make(map[core.BookIDString]core.Book, len(books)),
		statuses:     make(map[core.BookIDString]core.BookStatus, len(statuses)),
	}

	for _, user := range users {
		c.usersByID[user.ID] = user
		c.usersByLogin[user.Login] = user
	}

	for _, book := range books {
		if _, exists := c.booksByID[book.ID]; !exists {
			c.books = append(c.books, book)
		}

		c.booksByID[book.ID] = book
	}

	for i, book := range c.books {
		c.books[i] = c.booksByID[book.ID]
	}

	for _, status := range statuses {
		c.statuses[status.BookID] = status
	}

	return c
}

// FindUser looks up a user by ID.
func (c *Catalog) FindUser(id core.UserIDString) (core.User, bool) {
	user, found := c.usersByID[id]

	return user, found
}

// FindUserByLogin matches the login exactly, case-sensitive.
func (c *Catalog) FindUserByLogin(login core.LoginString) (core.User, bool) {
	user, found := c.usersByLogin[login]

	return user, found
}

// FindBook looks up a book by ID.
func (c *Catalog) FindBook(id core.BookIDString) (core.Book, bool) {
	book, found := c.booksByID[id]

	return book, found
}

// FindStatus looks up the shelf status of a book. Books without a status record report found == false.
func (c *Catalog) FindStatus(bookID core.BookIDString) (core.BookStatus, bool) {
	status, found := c.statuses[bookID]

	return status, found
}

// Books returns all books in load order, one entry per ID.
func (c *Catalog) Books() []core.Book {
	return append([]core.Book(nil), c.books...)
}

// BookTitle returns the title of the book, or a placeholder naming the ID if the book is unknown.
func (c *Catalog) BookTitle(id core.BookIDString) string {
	if book, found := c.FindBook(id); found {
		return book.Title
	}

	return UnknownBookTitle(id)
}

// BorrowerName returns the name of the user, or a placeholder naming the ID if the user is unknown.
func (c *Catalog) BorrowerName(id core.UserIDString) string {
	if user, found := c.FindUser(id); found {
		return user.Name
	}

	return UnknownBorrowerName(id)
}

// UnknownBookTitle is the placeholder shown for a book ID missing from the catalog.
func UnknownBookTitle(id core.BookIDString) string {
	return fmt.Sprintf("[Book %s Unknown]", id)
}

// UnknownBorrowerName is the placeholder shown for a borrower ID missing from the catalog.
func UnknownBorrowerName(id core.UserIDString) string {
	return fmt.Sprintf("[Borrower %s Unknown]", id)
}
