package domain

import "time"

// EventType identifies a ledger transition.
type EventType string

const (
	EventArtworkCreated       EventType = "artwork.created"
	EventTokenMinted          EventType = "token.minted"
	EventLicenseMinted        EventType = "license.minted"
	EventCopyrightTransferred EventType = "copyright.transferred"
	EventLicenseTransferred   EventType = "license.transferred"
	EventListingCreated       EventType = "listing.created"
	EventListingCancelled     EventType = "listing.cancelled"
	EventOfferMade            EventType = "offer.made"
	EventOfferAccepted        EventType = "offer.accepted"
	EventOfferRejected        EventType = "offer.rejected"
	EventOfferRefundQueued    EventType = "offer.refund_queued"
	EventOfferWithdrawn       EventType = "offer.withdrawn"
	EventWithdrawalCompleted  EventType = "withdrawal.completed"
)

// Valid reports whether the event type is known.
func (t EventType) Valid() bool {
	switch t {
	case EventArtworkCreated, EventTokenMinted, EventLicenseMinted,
		EventCopyrightTransferred, EventLicenseTransferred,
		EventListingCreated, EventListingCancelled,
		EventOfferMade, EventOfferAccepted, EventOfferRejected,
		EventOfferRefundQueued, EventOfferWithdrawn,
		EventWithdrawalCompleted:
		return true
	default:
		return false
	}
}

// CancelReason explains why a listing was deactivated.
type CancelReason string

const (
	// CancelReasonCancelled marks an explicit cancellation by the seller
	CancelReasonCancelled CancelReason = "cancelled"
	// CancelReasonSold marks removal through offer settlement
	CancelReasonSold CancelReason = "sold"
	// CancelReasonOwnershipChange marks cleanup forced by an ownership change
	// outside the marketplace settlement path
	CancelReasonOwnershipChange CancelReason = "ownership_change"
)

// LedgerEvent is one normalized ledger transition. Operations stage batches
// of events; the batch is journaled in one transaction, applied to the
// in-memory state, and published to NATS. This is the standard format for
// all three.
type LedgerEvent struct {
	// ID is a ULID assigned at commit time
	ID string `json:"id"`
	// Seq is the journal sequence number, zero until journaled
	Seq  uint64    `json:"seq,omitempty"`
	Type EventType `json:"type"`
	// Actor is the authenticated caller that initiated the operation
	Actor     Identity  `json:"actor"`
	Timestamp time.Time `json:"timestamp"`

	ArtworkID ArtworkID `json:"artwork_id,omitempty"`
	TokenID   *TokenID  `json:"token_id,omitempty"`

	From Identity `json:"from,omitempty"`
	To   Identity `json:"to,omitempty"`

	Rights     *RightsType `json:"rights_type,omitempty"`
	InstanceID uint64      `json:"instance_id,omitempty"`
	// OriginalGrant is set on license.minted
	OriginalGrant *bool `json:"original_grant,omitempty"`
	// FirstTransfer is set on license.transferred
	FirstTransfer *bool `json:"first_transfer,omitempty"`

	// Price is the asking price on listing.created
	Price int64 `json:"price,omitempty"`
	// Amount is the escrowed or released amount on offer and withdrawal events
	Amount int64 `json:"amount,omitempty"`
	// OfferIndex is the stable index into the token's offer list
	OfferIndex *int     `json:"offer_index,omitempty"`
	Offerer    Identity `json:"offerer,omitempty"`

	Reason CancelReason `json:"reason,omitempty"`

	MetadataURI         string `json:"metadata_uri,omitempty"`
	MetadataFingerprint string `json:"metadata_fingerprint,omitempty"`
	PreviewMIME         string `json:"preview_mime,omitempty"`
}

// Ref returns a pointer to a copy of the rights type, for event payloads.
func (r RightsType) Ref() *RightsType {
	return &r
}

// BoolRef returns a pointer to a copy of the flag, for event payloads.
func BoolRef(b bool) *bool {
	return &b
}

// IntRef returns a pointer to a copy of the index, for event payloads.
func IntRef(i int) *int {
	return &i
}
