package store

import (
	"context"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/store/schema"
)

// EventQueryFilter selects journal events for the feed endpoints. Nil fields
// are not filtered on.
type EventQueryFilter struct {
	// EventType filters by exact event type
	EventType *string
	// Actor filters by the identity that performed the operation
	Actor *string
	// ArtworkID filters by artwork
	ArtworkID *uint64
	// TokenID filters by token (hex form)
	TokenID *string
	// AfterSeq returns only events with seq strictly greater than this
	AfterSeq *uint64
	// Limit caps the page size (defaults to 50, max 1000)
	Limit int
	// Offset skips this many events
	Offset uint64
	// OrderDesc returns newest events first
	OrderDesc bool
}

// CreateWebhookClientInput carries the fields for registering a webhook client
type CreateWebhookClientInput struct {
	ClientID         string
	WebhookURL       string
	WebhookSecret    string
	EventFilters     []string
	IsActive         bool
	RetryMaxAttempts int
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// AppendEvents writes a committed batch to the journal in one transaction.
	// Events must arrive with seq, event id, and timestamp already stamped.
	AppendEvents(ctx context.Context, events []domain.LedgerEvent) error
	// GetEvents retrieves journal events matching the filter plus the total match count
	GetEvents(ctx context.Context, filter EventQueryFilter) ([]*schema.LedgerEvent, uint64, error)
	// GetEventByID retrieves a single journal event by its ULID
	GetEventByID(ctx context.Context, eventID string) (*schema.LedgerEvent, error)
	// GetLastEventSeq retrieves the highest journal seq, 0 when the journal is empty
	GetLastEventSeq(ctx context.Context) (uint64, error)
	// ReplayEvents streams the journal in ascending seq order in batches,
	// invoking fn for each decoded batch
	ReplayEvents(ctx context.Context, afterSeq uint64, batchSize int, fn func(events []domain.LedgerEvent) error) error

	// GetActiveWebhookClientsByEventType retrieves active clients whose filters match the event type
	GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error)
	// GetWebhookClientByID retrieves a webhook client by client ID, nil when absent
	GetWebhookClientByID(ctx context.Context, clientID string) (*schema.WebhookClient, error)
	// ListWebhookClients retrieves all registered webhook clients
	ListWebhookClients(ctx context.Context) ([]*schema.WebhookClient, error)
	// CreateWebhookClient registers a new webhook client
	CreateWebhookClient(ctx context.Context, input CreateWebhookClientInput) (*schema.WebhookClient, error)
	// SetWebhookClientActive toggles delivery for a client
	SetWebhookClientActive(ctx context.Context, clientID string, active bool) error
	// CreateWebhookDelivery creates a new webhook delivery record
	CreateWebhookDelivery(ctx context.Context, delivery *schema.WebhookDelivery) error
	// UpdateWebhookDeliveryStatus updates the status and result of a webhook delivery
	UpdateWebhookDeliveryStatus(ctx context.Context, deliveryID uint64, status schema.WebhookDeliveryStatus, attempts int, responseStatus *int, responseBody, errorMessage string) error

	// SuspendAccount opens a suspension for the account, updating the reason
	// if one is already active
	SuspendAccount(ctx context.Context, account string, reason string) error
	// LiftAccountSuspension closes the account's active suspension
	LiftAccountSuspension(ctx context.Context, account string) error
	// GetActiveSuspensions retrieves all currently active suspensions
	GetActiveSuspensions(ctx context.Context) ([]*schema.AccountSuspension, error)

	// SetKeyValue sets a key-value pair in the key-value store
	SetKeyValue(ctx context.Context, key string, value string) error
	// GetKeyValue retrieves a value by key, empty string when absent
	GetKeyValue(ctx context.Context, key string) (string, error)
}
