package loanstore

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// ErrInvalidPayloadJSON is returned when a journal payload is not valid JSON.
var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
// ErrInvalidMetadataJSON is returned when journal metadata is not valid JSON.
var ErrInvalidMetadataJSON = errors.New("metadata json is not valid")

// JournalEntries is an alias type for a slice of JournalEntry
type JournalEntries = []JournalEntry

// JournalEntry is a DTO used by the LoanStore engines to record decisions taken on loans,
// granted renewals as well as rejected ones. The journal is append-only and never read by the business logic.
//
// While its properties are exported, it should only be constructed with BuildJournalEntry.
type JournalEntry struct {
	EventType    string
	OccurredAt   time.Time
	PayloadJSON  []byte
	MetadataJSON []byte
}

// BuildJournalEntry is a factory method for JournalEntry.
//
// Returns an error if payloadJSON or metadataJSON are not valid JSON.
func BuildJournalEntry(eventType string, occurredAt time.Time, payloadJSON []byte, metadataJSON []byte) (JournalEntry, error) {
	if !jsoniter.ConfigFastest.Valid(payloadJSON) {
		return JournalEntry{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.ConfigFastest.Valid(metadataJSON) {
		return JournalEntry{}, ErrInvalidMetadataJSON
	}

	return JournalEntry{
		EventType:    eventType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// BuildJournalEntryWithEmptyMetadata is a factory method for JournalEntry with valid empty JSON as MetadataJSON.
func BuildJournalEntryWithEmptyMetadata(eventType string, occurredAt time.Time, payloadJSON []byte) (JournalEntry, error) {
	return BuildJournalEntry(eventType, occurredAt, payloadJSON, []byte("{}"))
}
