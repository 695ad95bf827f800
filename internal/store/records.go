package store

import (
	"encoding/json"
	"fmt"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/store/schema"
)

// EncodeEventRecord converts a normalized ledger event into its journal row.
// The payload column keeps the whole event; the flat columns are denormalized
// for feed queries.
func EncodeEventRecord(ev domain.LedgerEvent) (*schema.LedgerEvent, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	record := &schema.LedgerEvent{
		Seq:       ev.Seq,
		EventID:   ev.ID,
		EventType: string(ev.Type),
		Actor:     ev.Actor.String(),
		Timestamp: ev.Timestamp,
		Payload:   payload,
	}
	if ev.ArtworkID != 0 {
		artworkID := uint64(ev.ArtworkID)
		record.ArtworkID = &artworkID
	}
	if ev.TokenID != nil {
		tokenID := ev.TokenID.String()
		record.TokenID = &tokenID
	}
	return record, nil
}

// DecodeEventRecord restores the normalized event from its journal row
func DecodeEventRecord(record *schema.LedgerEvent) (domain.LedgerEvent, error) {
	var ev domain.LedgerEvent
	if err := json.Unmarshal(record.Payload, &ev); err != nil {
		return domain.LedgerEvent{}, fmt.Errorf("failed to unmarshal event payload at seq %d: %w", record.Seq, err)
	}
	return ev, nil
}
