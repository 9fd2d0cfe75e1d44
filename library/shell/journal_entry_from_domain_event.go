package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/loanstore"
)

// ErrMappingToJournalEntryFailedForDomainEvent is returned when domain event serialization fails
var ErrMappingToJournalEntryFailedForDomainEvent = errors.New("mapping to journal entry failed for domain event")

// ErrMappingToJournalEntryFailedForMetadata is returned when metadata serialization fails
var ErrMappingToJournalEntryFailedForMetadata = errors.New("mapping to journal entry failed for metadata")

// JournalEntryFrom converts a DomainEvent and EventMetadata to a JournalEntry
func JournalEntryFrom(event core.DomainEvent, metadata EventMetadata) (loanstore.JournalEntry, error) {
	payloadJSON, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return loanstore.JournalEntry{}, errors.Join(ErrMappingToJournalEntryFailedForDomainEvent, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return loanstore.JournalEntry{}, errors.Join(ErrMappingToJournalEntryFailedForMetadata, err)
	}

	entry, err := loanstore.BuildJournalEntry(
		event.EventType(),
		event.HasOccurredAt(),
		payloadJSON,
		metadataJSON,
	)

	if err != nil {
		return loanstore.JournalEntry{}, errors.Join(ErrMappingToJournalEntryFailedForDomainEvent, err)
	}

	return entry, nil
}
