// Package shell contains the imperative shell around the pure decision functions:
// retry with exponential backoff, handler results, structured logging helpers,
// and the mapping of domain events to journal entries.
//
// Feature handlers (library/features/...) use it so that their own code only
// reads state, calls Decide, and writes the outcome.
package shell
