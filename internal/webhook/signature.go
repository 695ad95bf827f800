package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// GenerateSignedPayload generates a signed webhook payload with HMAC-SHA256 signature.
// The payload is canonicalized with JCS before signing so that redeliveries of the
// same event sign identically. The timestamp is supplied by the caller for the same
// reason; delivery retries reuse the timestamp recorded for the delivery.
// Returns the canonical JSON payload and the signature header value.
func GenerateSignedPayload(hexSecret string, event Event, timestamp int64) (payload []byte, signature string, err error) {
	// Serialize event to JSON
	raw, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event: %w", err)
	}

	// Canonicalize so the delivered body is byte-stable across attempts
	payload, err = jcs.Transform(raw)
	if err != nil {
		return nil, "", fmt.Errorf("failed to canonicalize event: %w", err)
	}

	// Secrets are stored hex-encoded
	secretBytes, err := hex.DecodeString(hexSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode hex secret: %w", err)
	}

	// Create signature payload: {timestamp}.{event_id}.{json_body}
	// This format allows clients to verify:
	// 1. The timestamp to prevent replay attacks
	// 2. The event ID for deduplication
	// 3. The entire payload integrity
	signaturePayload := fmt.Sprintf("%d.%s.%s", timestamp, event.EventID, string(payload))

	// Generate HMAC-SHA256 signature
	h := hmac.New(sha256.New, secretBytes)
	h.Write([]byte(signaturePayload))
	signatureBytes := h.Sum(nil)

	// Format as hex string with algorithm prefix
	// Format: "sha256=<hex_signature>"
	signature = "sha256=" + hex.EncodeToString(signatureBytes)

	return payload, signature, nil
}
