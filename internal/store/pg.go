package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. It accesses the underlying *sql.DB and sets the pool
// configuration. Zero settings fall back to defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

const (
	defaultEventPageLimit = 50
	maxEventPageLimit     = 1000
)

// =============================================================================
// Event Journal Operations
// =============================================================================

// AppendEvents writes a committed batch to the journal in one transaction
func (s *pgStore) AppendEvents(ctx context.Context, events []domain.LedgerEvent) error {
	if len(events) == 0 {
		return nil
	}

	records := make([]*schema.LedgerEvent, len(events))
	for i, ev := range events {
		record, err := EncodeEventRecord(ev)
		if err != nil {
			return err
		}
		records[i] = record
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to append events: %w", err)
		}
		return nil
	})
}

// GetEvents retrieves journal events matching the filter plus the total match count
func (s *pgStore) GetEvents(ctx context.Context, filter EventQueryFilter) ([]*schema.LedgerEvent, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.LedgerEvent{})

	if filter.EventType != nil {
		query = query.Where("event_type = ?", *filter.EventType)
	}
	if filter.Actor != nil {
		query = query.Where("actor = ?", *filter.Actor)
	}
	if filter.ArtworkID != nil {
		query = query.Where("artwork_id = ?", *filter.ArtworkID)
	}
	if filter.TokenID != nil {
		query = query.Where("token_id = ?", *filter.TokenID)
	}
	if filter.AfterSeq != nil {
		query = query.Where("seq > ?", *filter.AfterSeq)
	}

	// Count total before pagination
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultEventPageLimit
	}
	if limit > maxEventPageLimit {
		limit = maxEventPageLimit
	}

	order := "seq ASC"
	if filter.OrderDesc {
		order = "seq DESC"
	}

	var events []*schema.LedgerEvent
	err := query.Order(order).Limit(limit).Offset(int(filter.Offset)).Find(&events).Error //nolint:gosec,G115
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get events: %w", err)
	}

	return events, uint64(total), nil //nolint:gosec,G115
}

// GetEventByID retrieves a single journal event by its ULID
func (s *pgStore) GetEventByID(ctx context.Context, eventID string) (*schema.LedgerEvent, error) {
	var event schema.LedgerEvent
	err := s.db.WithContext(ctx).Where("event_id = ?", eventID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// GetLastEventSeq retrieves the highest journal seq, 0 when the journal is empty
func (s *pgStore) GetLastEventSeq(ctx context.Context) (uint64, error) {
	var seq *uint64
	err := s.db.WithContext(ctx).
		Model(&schema.LedgerEvent{}).
		Select("MAX(seq)").
		Scan(&seq).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get last event seq: %w", err)
	}
	if seq == nil {
		return 0, nil
	}
	return *seq, nil
}

// ReplayEvents streams the journal in ascending seq order in batches
func (s *pgStore) ReplayEvents(ctx context.Context, afterSeq uint64, batchSize int, fn func(events []domain.LedgerEvent) error) error {
	if batchSize <= 0 {
		batchSize = maxEventPageLimit
	}

	cursor := afterSeq
	for {
		var records []*schema.LedgerEvent
		err := s.db.WithContext(ctx).
			Where("seq > ?", cursor).
			Order("seq ASC").
			Limit(batchSize).
			Find(&records).Error
		if err != nil {
			return fmt.Errorf("failed to read journal batch after seq %d: %w", cursor, err)
		}
		if len(records) == 0 {
			return nil
		}

		events := make([]domain.LedgerEvent, len(records))
		for i, record := range records {
			ev, err := DecodeEventRecord(record)
			if err != nil {
				return err
			}
			events[i] = ev
		}

		if err := fn(events); err != nil {
			return err
		}

		cursor = records[len(records)-1].Seq
		if len(records) < batchSize {
			return nil
		}
	}
}

// =============================================================================
// Webhook Client Operations
// =============================================================================

// GetActiveWebhookClientsByEventType retrieves active webhook clients that match the given event type
func (s *pgStore) GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error) {
	var clients []*schema.WebhookClient

	// Query for active clients where event_filters contains the event type or wildcard "*"
	// Using JSONB containment operator @> to check if the array contains the value
	err := s.db.WithContext(ctx).
		Where("is_active").
		Where("event_filters @> ?::jsonb OR event_filters @> ?::jsonb",
			fmt.Sprintf(`["%s"]`, eventType),
			`["*"]`).
		Find(&clients).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get webhook clients by event type: %w", err)
	}

	return clients, nil
}

// GetWebhookClientByID retrieves a webhook client by client ID
func (s *pgStore) GetWebhookClientByID(ctx context.Context, clientID string) (*schema.WebhookClient, error) {
	var client schema.WebhookClient
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get webhook client: %w", err)
	}
	return &client, nil
}

// ListWebhookClients retrieves all registered webhook clients
func (s *pgStore) ListWebhookClients(ctx context.Context) ([]*schema.WebhookClient, error) {
	var clients []*schema.WebhookClient
	err := s.db.WithContext(ctx).Order("id ASC").Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook clients: %w", err)
	}
	return clients, nil
}

// CreateWebhookClient registers a new webhook client
func (s *pgStore) CreateWebhookClient(ctx context.Context, input CreateWebhookClientInput) (*schema.WebhookClient, error) {
	filters, err := marshalEventFilters(input.EventFilters)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	client := &schema.WebhookClient{
		ClientID:         input.ClientID,
		WebhookURL:       input.WebhookURL,
		WebhookSecret:    input.WebhookSecret,
		EventFilters:     filters,
		IsActive:         input.IsActive,
		RetryMaxAttempts: input.RetryMaxAttempts,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create webhook client: %w", err)
	}
	return client, nil
}

// SetWebhookClientActive toggles delivery for a client
func (s *pgStore) SetWebhookClientActive(ctx context.Context, clientID string, active bool) error {
	result := s.db.WithContext(ctx).
		Model(&schema.WebhookClient{}).
		Where("client_id = ?", clientID).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update webhook client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrWebhookClientNotFound
	}
	return nil
}

// CreateWebhookDelivery creates a new webhook delivery record
func (s *pgStore) CreateWebhookDelivery(ctx context.Context, delivery *schema.WebhookDelivery) error {
	// Payload is already JSON bytes from the executor
	err := s.db.WithContext(ctx).Create(delivery).Error
	if err != nil {
		return fmt.Errorf("failed to create webhook delivery: %w", err)
	}
	return nil
}

// UpdateWebhookDeliveryStatus updates the status and result of a webhook delivery
func (s *pgStore) UpdateWebhookDeliveryStatus(ctx context.Context, deliveryID uint64, status schema.WebhookDeliveryStatus, attempts int, responseStatus *int, responseBody, errorMessage string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"delivery_status": status,
		"attempts":        attempts,
		"response_body":   responseBody,
		"last_attempt_at": now,
		"updated_at":      now,
	}

	if responseStatus != nil {
		updates["response_status"] = *responseStatus
	}
	if errorMessage != "" {
		// Limit error message
		if len(errorMessage) > 1024 {
			errorMessage = errorMessage[:1024]
		}
		updates["error_message"] = errorMessage
	}

	err := s.db.WithContext(ctx).
		Model(&schema.WebhookDelivery{}).
		Where("id = ?", deliveryID).
		Updates(updates).Error

	if err != nil {
		return fmt.Errorf("failed to update webhook delivery status: %w", err)
	}

	return nil
}

// =============================================================================
// Account Suspension Operations
// =============================================================================

// SuspendAccount opens a suspension for the account, updating the reason if
// one is already active
func (s *pgStore) SuspendAccount(ctx context.Context, account string, reason string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var active schema.AccountSuspension
		err := tx.Where("account = ? AND lifted_at IS NULL", account).First(&active).Error
		if err == nil {
			if err := tx.Model(&active).Updates(map[string]interface{}{
				"reason":     reason,
				"updated_at": now,
			}).Error; err != nil {
				return fmt.Errorf("failed to update suspension: %w", err)
			}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check active suspension: %w", err)
		}

		suspension := schema.AccountSuspension{
			Account:     account,
			Reason:      reason,
			SuspendedAt: now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Create(&suspension).Error; err != nil {
			return fmt.Errorf("failed to create suspension: %w", err)
		}
		return nil
	})
}

// LiftAccountSuspension closes the account's active suspension
func (s *pgStore) LiftAccountSuspension(ctx context.Context, account string) error {
	now := time.Now()
	result := s.db.WithContext(ctx).
		Model(&schema.AccountSuspension{}).
		Where("account = ? AND lifted_at IS NULL", account).
		Updates(map[string]interface{}{
			"lifted_at":  now,
			"updated_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to lift suspension: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotSuspended
	}
	return nil
}

// GetActiveSuspensions retrieves all currently active suspensions
func (s *pgStore) GetActiveSuspensions(ctx context.Context) ([]*schema.AccountSuspension, error) {
	var suspensions []*schema.AccountSuspension
	err := s.db.WithContext(ctx).
		Where("lifted_at IS NULL").
		Order("suspended_at ASC").
		Find(&suspensions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active suspensions: %w", err)
	}
	return suspensions, nil
}

// =============================================================================
// Key-Value Operations
// =============================================================================

// SetKeyValue sets a key-value pair in the key-value store
func (s *pgStore) SetKeyValue(ctx context.Context, key string, value string) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set key-value: %w", err)
	}

	return nil
}

// marshalEventFilters renders the filter list as the jsonb column value,
// defaulting to the wildcard filter
func marshalEventFilters(filters []string) (datatypes.JSON, error) {
	if len(filters) == 0 {
		filters = []string{"*"}
	}
	out, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event filters: %w", err)
	}
	return out, nil
}

// GetKeyValue retrieves a value by key from the key-value store
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key-value: %w", err)
	}

	return kv.Value, nil
}
