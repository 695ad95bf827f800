package webhook

import (
	"time"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// EventTypeWildcard is a special filter that matches all event types
const EventTypeWildcard = "*"

// SupportedEventTypes lists every event type a client may subscribe to
var SupportedEventTypes = []string{
	string(domain.EventArtworkCreated),
	string(domain.EventTokenMinted),
	string(domain.EventLicenseMinted),
	string(domain.EventCopyrightTransferred),
	string(domain.EventLicenseTransferred),
	string(domain.EventListingCreated),
	string(domain.EventListingCancelled),
	string(domain.EventOfferMade),
	string(domain.EventOfferAccepted),
	string(domain.EventOfferRejected),
	string(domain.EventOfferRefundQueued),
	string(domain.EventOfferWithdrawn),
	string(domain.EventWithdrawalCompleted),
}

// IsValidEventType reports whether s is a deliverable event type or the wildcard
func IsValidEventType(s string) bool {
	return s == EventTypeWildcard || domain.EventType(s).Valid()
}

// Event represents a webhook event to be delivered to clients
type Event struct {
	// EventID is a unique identifier for this event (ULID for time-sortable uniqueness)
	EventID string `json:"event_id"`
	// EventType is the type of ledger transition (e.g., "license.minted")
	EventType string `json:"event_type"`
	// Timestamp is when the event was committed to the journal
	Timestamp time.Time `json:"timestamp"`
	// Data contains the committed ledger event
	Data domain.LedgerEvent `json:"data"`
}

// NewEvent wraps a committed ledger event in its delivery envelope.
func NewEvent(ev domain.LedgerEvent) Event {
	return Event{
		EventID:   ev.ID,
		EventType: string(ev.Type),
		Timestamp: ev.Timestamp,
		Data:      ev,
	}
}

// DeliveryResult represents the result of a webhook delivery attempt
type DeliveryResult struct {
	// Success indicates whether the delivery was successful
	Success bool
	// StatusCode is the HTTP status code returned by the webhook endpoint
	StatusCode int
	// Body is the response body (limited to 4KB)
	Body string
	// Error contains error details if delivery failed
	Error string
}
