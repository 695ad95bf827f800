package webhook_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/webhook"
)

func sampleLedgerEvent() domain.LedgerEvent {
	tokenID := domain.NewTokenID(7, domain.RightsCommercial, 1)
	return domain.LedgerEvent{
		ID:        "01JG8XE4MP1234567890123456",
		Seq:       42,
		Type:      domain.EventLicenseMinted,
		Actor:     domain.Identity("did:key:alice"),
		Timestamp: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
		ArtworkID: 7,
		TokenID:   &tokenID,
		To:        domain.Identity("did:key:bob"),
	}
}

func TestGenerateSignedPayload(t *testing.T) {
	t.Run("generates valid payload and signature", func(t *testing.T) {
		hexSecret := "746573742d7365637265742d6b6579"
		event := webhook.NewEvent(sampleLedgerEvent())
		timestamp := int64(1750000000)

		payload, signature, err := webhook.GenerateSignedPayload(hexSecret, event, timestamp)
		require.NoError(t, err)

		// Verify payload is valid JSON
		var parsedEvent webhook.Event
		err = json.Unmarshal(payload, &parsedEvent)
		require.NoError(t, err)
		assert.Equal(t, event.EventID, parsedEvent.EventID)
		assert.Equal(t, event.EventType, parsedEvent.EventType)
		assert.Equal(t, event.Data.Seq, parsedEvent.Data.Seq)

		// Verify signature format
		assert.Contains(t, signature, "sha256=")
		assert.Greater(t, len(signature), 7) // "sha256=" + hash

		// Verify signature can be validated
		signaturePayload := fmt.Sprintf("%d.%s.%s", timestamp, event.EventID, string(payload))
		secretBytes, err := hex.DecodeString(hexSecret)
		require.NoError(t, err)
		h := hmac.New(sha256.New, secretBytes)
		h.Write([]byte(signaturePayload))
		expectedSignature := "sha256=" + hex.EncodeToString(h.Sum(nil))
		assert.Equal(t, expectedSignature, signature)
	})

	t.Run("redelivery signs identically", func(t *testing.T) {
		hexSecret := "746573742d7365637265742d6b6579"
		event := webhook.NewEvent(sampleLedgerEvent())
		timestamp := int64(1750000000)

		payload1, signature1, err := webhook.GenerateSignedPayload(hexSecret, event, timestamp)
		require.NoError(t, err)

		payload2, signature2, err := webhook.GenerateSignedPayload(hexSecret, event, timestamp)
		require.NoError(t, err)

		assert.Equal(t, payload1, payload2, "Canonical payload should be byte-stable")
		assert.Equal(t, signature1, signature2, "Retried deliveries should sign identically")
	})

	t.Run("different events produce different signatures", func(t *testing.T) {
		hexSecret := "746573742d7365637265742d6b6579"
		timestamp := int64(1750000000)

		event1 := webhook.NewEvent(sampleLedgerEvent())

		other := sampleLedgerEvent()
		other.ID = "01JG8XE4MP2222222222222222"
		other.Seq = 43
		other.Type = domain.EventLicenseTransferred
		event2 := webhook.NewEvent(other)

		_, signature1, err := webhook.GenerateSignedPayload(hexSecret, event1, timestamp)
		require.NoError(t, err)

		_, signature2, err := webhook.GenerateSignedPayload(hexSecret, event2, timestamp)
		require.NoError(t, err)

		// Signatures should be different
		assert.NotEqual(t, signature1, signature2)
	})

	t.Run("different secrets produce different signatures", func(t *testing.T) {
		event := webhook.NewEvent(sampleLedgerEvent())
		timestamp := int64(1750000000)

		// Hex-encoded secrets (hex encodings of "secret1" and "secret2")
		_, signature1, err := webhook.GenerateSignedPayload("73656372657431", event, timestamp)
		require.NoError(t, err)

		_, signature2, err := webhook.GenerateSignedPayload("73656372657432", event, timestamp)
		require.NoError(t, err)

		// Signatures should be different
		assert.NotEqual(t, signature1, signature2)
	})

	t.Run("signature includes timestamp to prevent replay", func(t *testing.T) {
		hexSecret := "746573742d7365637265742d6b6579"
		event := webhook.NewEvent(sampleLedgerEvent())

		_, signature1, err := webhook.GenerateSignedPayload(hexSecret, event, 1750000000)
		require.NoError(t, err)

		_, signature2, err := webhook.GenerateSignedPayload(hexSecret, event, 1750000001)
		require.NoError(t, err)

		assert.NotEqual(t, signature1, signature2, "Different timestamps should produce different signatures")
	})

	t.Run("signature includes event_id to prevent replay", func(t *testing.T) {
		hexSecret := "746573742d7365637265742d6b6579"
		timestamp := int64(1750000000)

		// Same event data but different event IDs
		ev1 := sampleLedgerEvent()
		ev1.ID = "01JG8XE4MP1111111111111111"
		ev2 := sampleLedgerEvent()
		ev2.ID = "01JG8XE4MP2222222222222222"

		_, signature1, err := webhook.GenerateSignedPayload(hexSecret, webhook.NewEvent(ev1), timestamp)
		require.NoError(t, err)

		_, signature2, err := webhook.GenerateSignedPayload(hexSecret, webhook.NewEvent(ev2), timestamp)
		require.NoError(t, err)

		// Signatures should be different because event IDs are different
		assert.NotEqual(t, signature1, signature2, "Different event IDs should produce different signatures")
	})

	t.Run("empty secret still produces valid signature", func(t *testing.T) {
		event := webhook.NewEvent(sampleLedgerEvent())

		payload, signature, err := webhook.GenerateSignedPayload("", event, 1750000000)
		require.NoError(t, err)
		assert.NotEmpty(t, payload)
		assert.NotEmpty(t, signature)
	})

	t.Run("invalid hex secret returns error", func(t *testing.T) {
		invalidHexSecret := "not-valid-hex-string" //nolint:gosec,G101
		event := webhook.NewEvent(sampleLedgerEvent())

		_, _, err := webhook.GenerateSignedPayload(invalidHexSecret, event, 1750000000)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode hex secret")
	})
}

func TestNewEvent(t *testing.T) {
	ledgerEvent := sampleLedgerEvent()
	event := webhook.NewEvent(ledgerEvent)

	assert.Equal(t, ledgerEvent.ID, event.EventID)
	assert.Equal(t, "license.minted", event.EventType)
	assert.Equal(t, ledgerEvent.Timestamp, event.Timestamp)
	assert.Equal(t, ledgerEvent, event.Data)
}
