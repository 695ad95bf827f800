package schema

import (
	"time"

	"gorm.io/datatypes"
)

// LedgerEvent represents the ledger_events table - the append-only journal the
// in-memory ledger state is rebuilt from. The payload column carries the
// complete normalized event; the flat columns exist for feed queries.
type LedgerEvent struct {
	// Seq is the journal position, assigned by the ledger service under its
	// write lock. Replay applies events in ascending seq order.
	Seq uint64 `gorm:"column:seq;primaryKey"`
	// EventID is a unique identifier for this event (ULID for time-sortable uniqueness)
	EventID string `gorm:"column:event_id;not null;unique;type:varchar(26)"`
	// EventType identifies the kind of ledger event (e.g., "license.transferred")
	EventType string `gorm:"column:event_type;not null;type:varchar(50);index:idx_ledger_events_type"`
	// Actor is the identity that performed the operation
	Actor string `gorm:"column:actor;not null;type:text;index:idx_ledger_events_actor"`
	// ArtworkID references the artwork this event relates to (nil for pure marketplace events)
	ArtworkID *uint64 `gorm:"column:artwork_id;type:bigint;index:idx_ledger_events_artwork"`
	// TokenID is the hex form of the token this event relates to (nil for artwork.created and withdrawals)
	TokenID *string `gorm:"column:token_id;type:varchar(66);index:idx_ledger_events_token"`
	// Timestamp is when the event was committed
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// Payload is the complete normalized event as JSON, the authoritative replay source
	Payload datatypes.JSON `gorm:"column:payload;not null;type:jsonb"`
	// CreatedAt is the timestamp when this record was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LedgerEvent model
func (LedgerEvent) TableName() string {
	return "ledger_events"
}
