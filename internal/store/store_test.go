package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

var testEventClock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// buildTestEvent creates a journal-ready event with seq, id and timestamp stamped
func buildTestEvent(seq uint64, eventType domain.EventType, actor domain.Identity) domain.LedgerEvent {
	return domain.LedgerEvent{
		ID:        ulid.Make().String(),
		Seq:       seq,
		Type:      eventType,
		Actor:     actor,
		Timestamp: testEventClock.Add(time.Duration(seq) * time.Second), //nolint:gosec,G115
	}
}

// buildTestTransferEvent creates a license transfer event with the full field set
func buildTestTransferEvent(seq uint64, artworkID domain.ArtworkID, from, to domain.Identity) domain.LedgerEvent {
	token := domain.NewTokenID(artworkID, domain.RightsCommercial, 1)
	ev := buildTestEvent(seq, domain.EventLicenseTransferred, from)
	ev.ArtworkID = artworkID
	ev.TokenID = &token
	ev.From = from
	ev.To = to
	ev.FirstTransfer = domain.BoolRef(true)
	return ev
}

func buildTestWebhookClientInput(filters ...string) CreateWebhookClientInput {
	return CreateWebhookClientInput{
		ClientID:         uuid.NewString(),
		WebhookURL:       "https://example.com/hooks/ledger",
		WebhookSecret:    "whsec_test",
		EventFilters:     filters,
		IsActive:         true,
		RetryMaxAttempts: 5,
	}
}

func strPtr(s string) *string { return &s }

func u64Ptr(v uint64) *uint64 { return &v }

// =============================================================================
// Test: Event Journal
// =============================================================================

func testEventJournal(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("empty journal has seq 0", func(t *testing.T) {
		seq, err := store.GetLastEventSeq(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), seq)
	})

	alice := domain.Identity("did:key:alice")
	bob := domain.Identity("did:key:bob")

	events := []domain.LedgerEvent{
		buildTestEvent(1, domain.EventArtworkCreated, alice),
		buildTestTransferEvent(2, 1, alice, bob),
		buildTestEvent(3, domain.EventWithdrawalCompleted, bob),
	}
	events[0].ArtworkID = 1
	events[0].MetadataURI = "ipfs://meta"
	events[2].Amount = 150

	t.Run("append and read back in order", func(t *testing.T) {
		require.NoError(t, store.AppendEvents(ctx, events))

		seq, err := store.GetLastEventSeq(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), seq)

		var replayed []domain.LedgerEvent
		err = store.ReplayEvents(ctx, 0, 2, func(batch []domain.LedgerEvent) error {
			replayed = append(replayed, batch...)
			return nil
		})
		require.NoError(t, err)
		require.Len(t, replayed, 3)
		assert.Equal(t, events, replayed)
	})

	t.Run("replay resumes after a seq", func(t *testing.T) {
		var replayed []domain.LedgerEvent
		err := store.ReplayEvents(ctx, 2, 100, func(batch []domain.LedgerEvent) error {
			replayed = append(replayed, batch...)
			return nil
		})
		require.NoError(t, err)
		require.Len(t, replayed, 1)
		assert.Equal(t, events[2], replayed[0])
	})

	t.Run("get event by id", func(t *testing.T) {
		record, err := store.GetEventByID(ctx, events[1].ID)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, uint64(2), record.Seq)
		assert.Equal(t, string(domain.EventLicenseTransferred), record.EventType)
		require.NotNil(t, record.ArtworkID)
		assert.Equal(t, uint64(1), *record.ArtworkID)
		require.NotNil(t, record.TokenID)
		assert.Equal(t, events[1].TokenID.String(), *record.TokenID)

		decoded, err := DecodeEventRecord(record)
		require.NoError(t, err)
		assert.Equal(t, events[1], decoded)
	})

	t.Run("get event by unknown id returns nil", func(t *testing.T) {
		record, err := store.GetEventByID(ctx, ulid.Make().String())
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("append nothing is a no-op", func(t *testing.T) {
		require.NoError(t, store.AppendEvents(ctx, nil))
	})
}

// =============================================================================
// Test: Event Feed Queries
// =============================================================================

func testGetEvents(t *testing.T, store Store) {
	ctx := context.Background()

	alice := domain.Identity("did:key:alice")
	bob := domain.Identity("did:key:bob")

	batch := []domain.LedgerEvent{
		buildTestEvent(1, domain.EventArtworkCreated, alice),
		buildTestTransferEvent(2, 1, alice, bob),
		buildTestTransferEvent(3, 2, bob, alice),
		buildTestEvent(4, domain.EventWithdrawalCompleted, bob),
		buildTestEvent(5, domain.EventWithdrawalCompleted, alice),
	}
	batch[0].ArtworkID = 1
	require.NoError(t, store.AppendEvents(ctx, batch))

	t.Run("no filter returns everything ascending", func(t *testing.T) {
		records, total, err := store.GetEvents(ctx, EventQueryFilter{})
		require.NoError(t, err)
		assert.Equal(t, uint64(5), total)
		require.Len(t, records, 5)
		assert.Equal(t, uint64(1), records[0].Seq)
		assert.Equal(t, uint64(5), records[4].Seq)
	})

	t.Run("descending order", func(t *testing.T) {
		records, _, err := store.GetEvents(ctx, EventQueryFilter{OrderDesc: true})
		require.NoError(t, err)
		require.Len(t, records, 5)
		assert.Equal(t, uint64(5), records[0].Seq)
	})

	t.Run("filter by event type", func(t *testing.T) {
		records, total, err := store.GetEvents(ctx, EventQueryFilter{
			EventType: strPtr(string(domain.EventWithdrawalCompleted)),
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, records, 2)
	})

	t.Run("filter by actor", func(t *testing.T) {
		records, total, err := store.GetEvents(ctx, EventQueryFilter{
			Actor: strPtr("did:key:bob"),
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		for _, record := range records {
			assert.Equal(t, "did:key:bob", record.Actor)
		}
	})

	t.Run("filter by artwork", func(t *testing.T) {
		_, total, err := store.GetEvents(ctx, EventQueryFilter{ArtworkID: u64Ptr(1)})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
	})

	t.Run("filter by token", func(t *testing.T) {
		token := domain.NewTokenID(2, domain.RightsCommercial, 1)
		records, total, err := store.GetEvents(ctx, EventQueryFilter{TokenID: strPtr(token.String())})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, records, 1)
		assert.Equal(t, uint64(3), records[0].Seq)
	})

	t.Run("after seq", func(t *testing.T) {
		records, total, err := store.GetEvents(ctx, EventQueryFilter{AfterSeq: u64Ptr(3)})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, records, 2)
		assert.Equal(t, uint64(4), records[0].Seq)
	})

	t.Run("pagination keeps the total", func(t *testing.T) {
		records, total, err := store.GetEvents(ctx, EventQueryFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, uint64(5), total)
		require.Len(t, records, 2)
		assert.Equal(t, uint64(3), records[0].Seq)
		assert.Equal(t, uint64(4), records[1].Seq)
	})
}

// =============================================================================
// Test: Webhook Clients
// =============================================================================

func testWebhookClients(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		input := buildTestWebhookClientInput("copyright.transferred", "license.transferred")
		created, err := store.CreateWebhookClient(ctx, input)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		client, err := store.GetWebhookClientByID(ctx, input.ClientID)
		require.NoError(t, err)
		require.NotNil(t, client)
		assert.Equal(t, input.WebhookURL, client.WebhookURL)
		assert.Equal(t, input.WebhookSecret, client.WebhookSecret)
		assert.True(t, client.IsActive)

		var filters []string
		require.NoError(t, json.Unmarshal(client.EventFilters, &filters))
		assert.Equal(t, []string{"copyright.transferred", "license.transferred"}, filters)
	})

	t.Run("unknown client id returns nil", func(t *testing.T) {
		client, err := store.GetWebhookClientByID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("event type filter matching", func(t *testing.T) {
		transfers := buildTestWebhookClientInput("license.transferred")
		wildcard := buildTestWebhookClientInput()
		inactive := buildTestWebhookClientInput("license.transferred")
		inactive.IsActive = false

		for _, input := range []CreateWebhookClientInput{transfers, wildcard, inactive} {
			_, err := store.CreateWebhookClient(ctx, input)
			require.NoError(t, err)
		}

		clients, err := store.GetActiveWebhookClientsByEventType(ctx, "license.transferred")
		require.NoError(t, err)

		ids := make(map[string]bool)
		for _, client := range clients {
			ids[client.ClientID] = true
		}
		assert.True(t, ids[transfers.ClientID], "filtered client should match")
		assert.True(t, ids[wildcard.ClientID], "wildcard client should match")
		assert.False(t, ids[inactive.ClientID], "inactive client should not match")

		clients, err = store.GetActiveWebhookClientsByEventType(ctx, "offer.made")
		require.NoError(t, err)
		ids = make(map[string]bool)
		for _, client := range clients {
			ids[client.ClientID] = true
		}
		assert.False(t, ids[transfers.ClientID])
		assert.True(t, ids[wildcard.ClientID])
	})

	t.Run("deactivate and reactivate", func(t *testing.T) {
		input := buildTestWebhookClientInput("offer.accepted")
		_, err := store.CreateWebhookClient(ctx, input)
		require.NoError(t, err)

		require.NoError(t, store.SetWebhookClientActive(ctx, input.ClientID, false))
		client, err := store.GetWebhookClientByID(ctx, input.ClientID)
		require.NoError(t, err)
		require.NotNil(t, client)
		assert.False(t, client.IsActive)

		require.NoError(t, store.SetWebhookClientActive(ctx, input.ClientID, true))

		err = store.SetWebhookClientActive(ctx, uuid.NewString(), false)
		assert.ErrorIs(t, err, domain.ErrWebhookClientNotFound)
	})

	t.Run("list", func(t *testing.T) {
		clients, err := store.ListWebhookClients(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, clients)
	})
}

// =============================================================================
// Test: Webhook Deliveries
// =============================================================================

func testWebhookDeliveries(t *testing.T, store Store) {
	ctx := context.Background()

	clientInput := buildTestWebhookClientInput()
	_, err := store.CreateWebhookClient(ctx, clientInput)
	require.NoError(t, err)

	delivery := &schema.WebhookDelivery{
		ClientID:       clientInput.ClientID,
		EventID:        ulid.Make().String(),
		EventType:      "offer.accepted",
		Payload:        []byte(`{"event_type":"offer.accepted"}`),
		WorkflowID:     "deliver-webhook-test",
		DeliveryStatus: schema.WebhookDeliveryStatusPending,
	}
	require.NoError(t, store.CreateWebhookDelivery(ctx, delivery))
	require.NotZero(t, delivery.ID)

	t.Run("mark success", func(t *testing.T) {
		status := 200
		err := store.UpdateWebhookDeliveryStatus(ctx, delivery.ID, schema.WebhookDeliveryStatusSuccess, 1, &status, `{"ok":true}`, "")
		require.NoError(t, err)
	})

	t.Run("mark failed truncates long errors", func(t *testing.T) {
		failed := &schema.WebhookDelivery{
			ClientID:       clientInput.ClientID,
			EventID:        ulid.Make().String(),
			EventType:      "offer.accepted",
			Payload:        []byte(`{}`),
			WorkflowID:     "deliver-webhook-test-2",
			DeliveryStatus: schema.WebhookDeliveryStatusPending,
		}
		require.NoError(t, store.CreateWebhookDelivery(ctx, failed))

		longError := make([]byte, 4096)
		for i := range longError {
			longError[i] = 'x'
		}
		err := store.UpdateWebhookDeliveryStatus(ctx, failed.ID, schema.WebhookDeliveryStatusFailed, 5, nil, "", string(longError))
		require.NoError(t, err)
	})
}

// =============================================================================
// Test: Account Suspensions
// =============================================================================

func testAccountSuspensions(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("suspend, update reason, lift", func(t *testing.T) {
		require.NoError(t, store.SuspendAccount(ctx, "did:key:mallory", "fraudulent listings"))

		suspensions, err := store.GetActiveSuspensions(ctx)
		require.NoError(t, err)
		require.Len(t, suspensions, 1)
		assert.Equal(t, "did:key:mallory", suspensions[0].Account)
		assert.Equal(t, "fraudulent listings", suspensions[0].Reason)
		assert.Nil(t, suspensions[0].LiftedAt)

		// suspending again updates the active row instead of stacking
		require.NoError(t, store.SuspendAccount(ctx, "did:key:mallory", "fraud confirmed"))
		suspensions, err = store.GetActiveSuspensions(ctx)
		require.NoError(t, err)
		require.Len(t, suspensions, 1)
		assert.Equal(t, "fraud confirmed", suspensions[0].Reason)

		require.NoError(t, store.LiftAccountSuspension(ctx, "did:key:mallory"))
		suspensions, err = store.GetActiveSuspensions(ctx)
		require.NoError(t, err)
		assert.Empty(t, suspensions)

		err = store.LiftAccountSuspension(ctx, "did:key:mallory")
		assert.ErrorIs(t, err, domain.ErrAccountNotSuspended)
	})

	t.Run("resuspending after a lift opens a new row", func(t *testing.T) {
		require.NoError(t, store.SuspendAccount(ctx, "did:key:trent", "spam"))
		require.NoError(t, store.LiftAccountSuspension(ctx, "did:key:trent"))
		require.NoError(t, store.SuspendAccount(ctx, "did:key:trent", "spam again"))

		suspensions, err := store.GetActiveSuspensions(ctx)
		require.NoError(t, err)
		require.Len(t, suspensions, 1)
		assert.Equal(t, "spam again", suspensions[0].Reason)
	})
}

// =============================================================================
// Test: Key-Value Store
// =============================================================================

func testKeyValueStore(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing key returns empty", func(t *testing.T) {
		value, err := store.GetKeyValue(ctx, "integrity:last_report")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("set, get, overwrite", func(t *testing.T) {
		require.NoError(t, store.SetKeyValue(ctx, "integrity:last_report", `{"status":"clean"}`))

		value, err := store.GetKeyValue(ctx, "integrity:last_report")
		require.NoError(t, err)
		assert.Equal(t, `{"status":"clean"}`, value)

		require.NoError(t, store.SetKeyValue(ctx, "integrity:last_report", `{"status":"divergent"}`))
		value, err = store.GetKeyValue(ctx, "integrity:last_report")
		require.NoError(t, err)
		assert.Equal(t, `{"status":"divergent"}`, value)
	})
}

// RunStoreTests runs the store test suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"EventJournal", testEventJournal},
		{"GetEvents", testGetEvents},
		{"WebhookClients", testWebhookClients},
		{"WebhookDeliveries", testWebhookDeliveries},
		{"AccountSuspensions", testAccountSuspensions},
		{"KeyValueStore", testKeyValueStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
