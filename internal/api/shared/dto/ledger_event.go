package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-rights-ledger/internal/store/schema"
)

// LedgerEventResponse represents one committed journal entry
type LedgerEventResponse struct {
	Seq       uint64          `json:"seq"`
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Actor     string          `json:"actor"`
	ArtworkID *uint64         `json:"artwork_id,omitempty"`
	TokenID   *string         `json:"token_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// EventListResponse represents a paginated slice of the journal
type EventListResponse struct {
	Events []LedgerEventResponse `json:"items"`
	Offset *uint64               `json:"offset,omitempty"`
	Total  uint64                `json:"total"`
}

// MapLedgerEventToDTO maps a schema.LedgerEvent to LedgerEventResponse
func MapLedgerEventToDTO(event *schema.LedgerEvent) *LedgerEventResponse {
	if event == nil {
		return nil
	}

	return &LedgerEventResponse{
		Seq:       event.Seq,
		EventID:   event.EventID,
		EventType: event.EventType,
		Actor:     event.Actor,
		ArtworkID: event.ArtworkID,
		TokenID:   event.TokenID,
		Timestamp: event.Timestamp,
		Payload:   json.RawMessage(event.Payload),
	}
}
