// Package session authenticates users against the catalog and decides which operations a session may perform.
//
// Permissions follow from the user's role alone: clients see and renew their own loans,
// librarians review the loan history, both may list books and read the about screen.
// A user with an unrecognized role is authenticated but permitted nothing.
package session
