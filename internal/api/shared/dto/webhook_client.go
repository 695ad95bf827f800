package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-rights-ledger/internal/store/schema"
)

// WebhookClientResponse represents a registered webhook client. The delivery
// secret is never included; it is returned exactly once at creation.
type WebhookClientResponse struct {
	ClientID         string    `json:"client_id"`
	WebhookURL       string    `json:"webhook_url"`
	EventFilters     []string  `json:"event_filters"`
	IsActive         bool      `json:"is_active"`
	RetryMaxAttempts int       `json:"retry_max_attempts"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateWebhookClientResponse represents the response for creating a webhook client
type CreateWebhookClientResponse struct {
	ClientID         string    `json:"client_id"`
	WebhookURL       string    `json:"webhook_url"`
	WebhookSecret    string    `json:"webhook_secret"`
	EventFilters     []string  `json:"event_filters"`
	IsActive         bool      `json:"is_active"`
	RetryMaxAttempts int       `json:"retry_max_attempts"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// WebhookClientListResponse represents the registered webhook clients
type WebhookClientListResponse struct {
	Clients []WebhookClientResponse `json:"items"`
	Total   uint64                  `json:"total"`
}

// MapWebhookClientToDTO maps a schema.WebhookClient to WebhookClientResponse
func MapWebhookClientToDTO(client *schema.WebhookClient) *WebhookClientResponse {
	if client == nil {
		return nil
	}

	var filters []string
	_ = json.Unmarshal(client.EventFilters, &filters)

	return &WebhookClientResponse{
		ClientID:         client.ClientID,
		WebhookURL:       client.WebhookURL,
		EventFilters:     filters,
		IsActive:         client.IsActive,
		RetryMaxAttempts: client.RetryMaxAttempts,
		CreatedAt:        client.CreatedAt,
		UpdatedAt:        client.UpdatedAt,
	}
}
