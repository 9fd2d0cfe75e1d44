// Package memoryengine provides an in-memory implementation of the loan store.
//
// It is the default backend of the console application: loans are loaded once
// from the text record files and live for the duration of the process.
// Loans are kept in insertion order and every read hands out copies.
//
// Renewals use the same optimistic check as the PostgreSQL engine: a renewal is
// only applied if the stored renewal count still equals the expected one and the
// loan is still open, otherwise loanstore.ErrConcurrencyConflict is returned.
package memoryengine
