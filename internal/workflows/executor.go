package workflows

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/adapter"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/store"
	"github.com/feral-file/ff-rights-ledger/internal/store/schema"
	"github.com/feral-file/ff-rights-ledger/internal/webhook"
)

// Executor defines the interface for executing activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_core.go -package=mocks -mock_names=Executor=MockCoreExecutor
type Executor interface {
	// GetActiveWebhookClientsByEventType retrieves active webhook clients matching the event type
	GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error)

	// GetWebhookClientByID retrieves a webhook client by client ID
	GetWebhookClientByID(ctx context.Context, clientID string) (*schema.WebhookClient, error)

	// CreateWebhookDeliveryRecord creates a new webhook delivery record
	CreateWebhookDeliveryRecord(ctx context.Context, delivery *schema.WebhookDelivery, event webhook.Event) (uint64, error)

	// DeliverWebhookHTTP performs the actual HTTP delivery of a webhook with signature
	// The timestamp is fixed by the calling workflow so every retry signs the same payload
	DeliverWebhookHTTP(ctx context.Context, client *schema.WebhookClient, event webhook.Event, deliveryID uint64, timestamp int64) (webhook.DeliveryResult, error)
}

// executor is the concrete implementation of Executor
type executor struct {
	store            store.Store
	json             adapter.JSON
	httpClient       adapter.HTTPClient
	io               adapter.IO
	temporalActivity adapter.Activity
}

// NewExecutor creates a new executor instance
func NewExecutor(
	store store.Store,
	jsonAdapter adapter.JSON,
	httpClient adapter.HTTPClient,
	io adapter.IO,
	temporalActivity adapter.Activity,
) Executor {
	return &executor{
		store:            store,
		json:             jsonAdapter,
		httpClient:       httpClient,
		io:               io,
		temporalActivity: temporalActivity,
	}
}

// GetActiveWebhookClientsByEventType retrieves active webhook clients matching the event type
func (e *executor) GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error) {
	return e.store.GetActiveWebhookClientsByEventType(ctx, eventType)
}

// GetWebhookClientByID retrieves a webhook client by client ID
func (e *executor) GetWebhookClientByID(ctx context.Context, clientID string) (*schema.WebhookClient, error) {
	return e.store.GetWebhookClientByID(ctx, clientID)
}

// CreateWebhookDeliveryRecord creates a new webhook delivery record
func (e *executor) CreateWebhookDeliveryRecord(ctx context.Context, delivery *schema.WebhookDelivery, event webhook.Event) (uint64, error) {
	// Marshal event to JSON for the Payload field
	eventJSON, err := e.json.Marshal(event)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal webhook event: %w", err)
	}
	delivery.Payload = eventJSON

	if err := e.store.CreateWebhookDelivery(ctx, delivery); err != nil {
		return 0, err
	}
	return delivery.ID, nil
}

// DeliverWebhookHTTP performs the actual HTTP delivery of a webhook with HMAC signature
// This activity will be automatically retried by Temporal with exponential backoff
func (e *executor) DeliverWebhookHTTP(ctx context.Context, client *schema.WebhookClient, event webhook.Event, deliveryID uint64, timestamp int64) (webhook.DeliveryResult, error) {
	// Get attempt number from Temporal activity info
	attempt := e.temporalActivity.GetInfo(ctx).Attempt

	logger.InfoCtx(ctx, "Attempting webhook delivery",
		zap.String("clientID", client.ClientID),
		zap.String("eventID", event.EventID),
		zap.Int32("attempt", attempt))

	// Generate signed payload with HMAC-SHA256
	payload, signature, err := webhook.GenerateSignedPayload(client.WebhookSecret, event, timestamp)
	if err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to generate signed payload"),
			zap.Error(err), zap.String("clientID", client.ClientID))

		if ierr := e.store.UpdateWebhookDeliveryStatus(ctx, deliveryID, schema.WebhookDeliveryStatusFailed, int(attempt), nil, "", err.Error()); ierr != nil {
			logger.ErrorCtx(ctx, errors.New("failed to update webhook delivery status"),
				zap.Error(ierr),
				zap.String("clientID", client.ClientID))
		}

		// Return non-retryable error to stop Temporal retry
		return webhook.DeliveryResult{Success: false, Error: err.Error()}, temporal.NewNonRetryableApplicationError(err.Error(), "failed to generate signed payload", err)
	}

	// Build headers for webhook delivery
	headers := map[string]string{
		"Content-Type":         "application/json",
		"X-Webhook-Signature":  signature,
		"X-Webhook-Event-ID":   event.EventID,
		"X-Webhook-Event-Type": event.EventType,
		"X-Webhook-Timestamp":  fmt.Sprintf("%d", timestamp),
		"User-Agent":           "FF-Rights-Ledger-Webhook/1.0",
	}

	// Send HTTP request
	resp, err := e.httpClient.PostWithHeadersNoRetry(ctx, client.WebhookURL, headers, bytes.NewReader(payload))
	if err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to post webhook HTTP request"),
			zap.Error(err), zap.String("clientID", client.ClientID))

		if ierr := e.store.UpdateWebhookDeliveryStatus(ctx, deliveryID, schema.WebhookDeliveryStatusFailed, int(attempt), nil, "", err.Error()); ierr != nil {
			logger.ErrorCtx(ctx, errors.New("failed to update webhook delivery status"),
				zap.Error(ierr),
				zap.String("clientID", client.ClientID))
		}

		// Return error to trigger Temporal retry
		return webhook.DeliveryResult{Success: false, Error: err.Error()}, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.WarnCtx(ctx, "failed to close response body", zap.Error(err), zap.String("url", client.WebhookURL))
		}
	}()

	// Read response body with a size limit to prevent memory exhaustion
	// We use LimitReader to ensure we never read more than 4KB
	limitedReader := io.LimitReader(resp.Body, 4*1024)

	respBody, err := e.io.ReadAll(limitedReader)
	if err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to read response body for webhook delivery"),
			zap.Error(err), zap.String("clientID", client.ClientID))
		// Continue with empty body - don't fail the delivery
		respBody = []byte{}
	}

	// Check status code for non-2xx responses
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.ErrorCtx(ctx, errors.New("failed to post webhook HTTP request"),
			zap.Int("statusCode", resp.StatusCode),
			zap.String("clientID", client.ClientID))

		err := fmt.Errorf("HTTP %d", resp.StatusCode)
		if ierr := e.store.UpdateWebhookDeliveryStatus(ctx, deliveryID, schema.WebhookDeliveryStatusFailed, int(attempt), &resp.StatusCode, string(respBody), err.Error()); ierr != nil {
			logger.ErrorCtx(ctx, errors.New("failed to update webhook delivery status"),
				zap.Error(ierr),
				zap.String("clientID", client.ClientID))
		}

		// Return error to trigger Temporal retry
		return webhook.DeliveryResult{Success: false, StatusCode: resp.StatusCode, Body: string(respBody)}, err
	}

	// Update webhook delivery status
	if err := e.store.UpdateWebhookDeliveryStatus(ctx, deliveryID, schema.WebhookDeliveryStatusSuccess, int(attempt), &resp.StatusCode, string(respBody), ""); err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to update webhook delivery status"),
			zap.Error(err), zap.String("clientID", client.ClientID))
	}

	return webhook.DeliveryResult{Success: true, StatusCode: resp.StatusCode, Body: string(respBody)}, nil
}
