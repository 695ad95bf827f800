package workflows_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/mocks"
	"github.com/feral-file/ff-rights-ledger/internal/store/schema"
	"github.com/feral-file/ff-rights-ledger/internal/workflows"
)

// testExecutorMocks contains all the mocks needed for testing the executor
type testExecutorMocks struct {
	ctrl             *gomock.Controller
	store            *mocks.MockStore
	json             *mocks.MockJSON
	httpClient       *mocks.MockHTTPClient
	io               *mocks.MockIO
	temporalActivity *mocks.MockActivity
	executor         workflows.Executor
}

// setupTestExecutor creates all the mocks and executor for testing
func setupTestExecutor(t *testing.T) *testExecutorMocks {
	// Initialize logger for tests (required for activities that log)
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)

	tm := &testExecutorMocks{
		ctrl:             ctrl,
		store:            mocks.NewMockStore(ctrl),
		json:             mocks.NewMockJSON(ctrl),
		httpClient:       mocks.NewMockHTTPClient(ctrl),
		io:               mocks.NewMockIO(ctrl),
		temporalActivity: mocks.NewMockActivity(ctrl),
	}

	tm.executor = workflows.NewExecutor(
		tm.store,
		tm.json,
		tm.httpClient,
		tm.io,
		tm.temporalActivity,
	)

	return tm
}

// tearDownTestExecutor cleans up the test mocks
func tearDownTestExecutor(mocks *testExecutorMocks) {
	mocks.ctrl.Finish()
}

// ====================================================================================
// Webhook Client Lookup Tests
// ====================================================================================

func TestGetActiveWebhookClientsByEventType_Success(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	eventType := "license.minted"
	expectedClients := []*schema.WebhookClient{
		{
			ID:               1,
			ClientID:         "client-123",
			WebhookURL:       "https://example.com/webhook",
			WebhookSecret:    "736563726574",
			EventFilters:     []byte(`["*"]`),
			IsActive:         true,
			RetryMaxAttempts: 5,
		},
	}

	mocks.store.EXPECT().
		GetActiveWebhookClientsByEventType(ctx, eventType).
		Return(expectedClients, nil)

	result, err := mocks.executor.GetActiveWebhookClientsByEventType(ctx, eventType)

	assert.NoError(t, err)
	assert.Equal(t, expectedClients, result)
}

func TestGetActiveWebhookClientsByEventType_Error(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	eventType := "license.minted"
	expectedError := errors.New("database error")

	mocks.store.EXPECT().
		GetActiveWebhookClientsByEventType(ctx, eventType).
		Return(nil, expectedError)

	result, err := mocks.executor.GetActiveWebhookClientsByEventType(ctx, eventType)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, expectedError, err)
}

func TestGetWebhookClientByID_Success(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	clientID := "client-123"
	expectedClient := &schema.WebhookClient{
		ID:               1,
		ClientID:         clientID,
		WebhookURL:       "https://example.com/webhook",
		WebhookSecret:    "736563726574",
		EventFilters:     []byte(`["*"]`),
		IsActive:         true,
		RetryMaxAttempts: 5,
	}

	mocks.store.EXPECT().
		GetWebhookClientByID(ctx, clientID).
		Return(expectedClient, nil)

	result, err := mocks.executor.GetWebhookClientByID(ctx, clientID)

	assert.NoError(t, err)
	assert.Equal(t, expectedClient, result)
}

func TestGetWebhookClientByID_NotFound(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	clientID := "non-existent"

	mocks.store.EXPECT().
		GetWebhookClientByID(ctx, clientID).
		Return(nil, nil)

	result, err := mocks.executor.GetWebhookClientByID(ctx, clientID)

	assert.NoError(t, err)
	assert.Nil(t, result)
}

// ====================================================================================
// Webhook Delivery Record Tests
// ====================================================================================

func TestCreateWebhookDeliveryRecord_Success(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	event := licenseMintedEvent()
	delivery := &schema.WebhookDelivery{
		ClientID:       "client-123",
		EventID:        event.EventID,
		EventType:      event.EventType,
		WorkflowID:     "workflow-789",
		WorkflowRunID:  "run-012",
		DeliveryStatus: schema.WebhookDeliveryStatusPending,
		Attempts:       0,
	}

	// Mock JSON marshal for event
	mocks.json.EXPECT().
		Marshal(gomock.Any()).
		Return([]byte(`{"event":"test"}`), nil)

	// Mock create webhook delivery record succeeds
	mocks.store.EXPECT().
		CreateWebhookDelivery(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, d *schema.WebhookDelivery) error {
			// Verify payload was set
			assert.NotNil(t, d.Payload)
			// Set ID to simulate database insertion
			d.ID = 123
			return nil
		})

	deliveryID, err := mocks.executor.CreateWebhookDeliveryRecord(ctx, delivery, event)

	assert.NoError(t, err)
	assert.Equal(t, uint64(123), deliveryID)
	assert.NotNil(t, delivery.Payload)
}

func TestCreateWebhookDeliveryRecord_MarshalError(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	event := licenseMintedEvent()
	delivery := &schema.WebhookDelivery{
		ClientID:  "client-123",
		EventID:   event.EventID,
		EventType: event.EventType,
	}

	mocks.json.EXPECT().
		Marshal(gomock.Any()).
		Return(nil, errors.New("marshal error"))

	deliveryID, err := mocks.executor.CreateWebhookDeliveryRecord(ctx, delivery, event)

	assert.Error(t, err)
	assert.Equal(t, uint64(0), deliveryID)
}

func TestCreateWebhookDeliveryRecord_StoreError(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	event := licenseMintedEvent()
	delivery := &schema.WebhookDelivery{
		ClientID:       "client-123",
		EventID:        event.EventID,
		EventType:      event.EventType,
		DeliveryStatus: schema.WebhookDeliveryStatusPending,
	}
	expectedError := errors.New("database error")

	// Mock JSON marshal for event
	mocks.json.EXPECT().
		Marshal(gomock.Any()).
		Return([]byte(`{"event":"test"}`), nil)

	// Mock create webhook delivery record fails
	mocks.store.EXPECT().
		CreateWebhookDelivery(ctx, gomock.Any()).
		Return(expectedError)

	deliveryID, err := mocks.executor.CreateWebhookDeliveryRecord(ctx, delivery, event)

	assert.Error(t, err)
	assert.Equal(t, uint64(0), deliveryID)
	assert.Equal(t, expectedError, err)
}

// ====================================================================================
// Webhook HTTP Delivery Tests
// ====================================================================================

func TestDeliverWebhookHTTP_Success(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	client := &schema.WebhookClient{
		ClientID:      "client-123",
		WebhookURL:    "https://example.com/webhook",
		WebhookSecret: "7365637265742d6b6579",
	}
	event := licenseMintedEvent()
	deliveryID := uint64(789)
	timestamp := int64(1750000000)

	// Mock GetInfo from temporal activity
	mocks.temporalActivity.EXPECT().
		GetInfo(ctx).
		Return(activity.Info{Attempt: 1})

	// Mock successful HTTP response
	statusCode := 200
	mockResponse := &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBuffer([]byte(`{"status":"success"}`))),
	}

	mocks.httpClient.EXPECT().
		PostWithHeadersNoRetry(ctx, client.WebhookURL, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, url string, headers map[string]string, body interface{}) (*http.Response, error) {
			// Verify headers
			assert.Equal(t, "application/json", headers["Content-Type"])
			assert.NotEmpty(t, headers["X-Webhook-Signature"])
			assert.Equal(t, event.EventID, headers["X-Webhook-Event-ID"])
			assert.Equal(t, event.EventType, headers["X-Webhook-Event-Type"])
			assert.Equal(t, "1750000000", headers["X-Webhook-Timestamp"])
			assert.Equal(t, "FF-Rights-Ledger-Webhook/1.0", headers["User-Agent"])
			return mockResponse, nil
		})

	// Mock read all from io reader succeeds
	mocks.io.EXPECT().
		ReadAll(io.LimitReader(mockResponse.Body, 4*1024)).
		Return([]byte(`{"status":"success"}`), nil)

	// Mock update webhook delivery status succeeds
	mocks.store.EXPECT().
		UpdateWebhookDeliveryStatus(ctx, deliveryID, schema.WebhookDeliveryStatusSuccess, 1, &statusCode, `{"status":"success"}`, "").
		Return(nil)

	result, err := mocks.executor.DeliverWebhookHTTP(ctx, client, event, deliveryID, timestamp)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, statusCode, result.StatusCode)
	assert.Equal(t, `{"status":"success"}`, result.Body)
}

func TestDeliverWebhookHTTP_InvalidSecret(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	client := &schema.WebhookClient{
		ClientID:      "client-123",
		WebhookURL:    "https://example.com/webhook",
		WebhookSecret: "not-hex!",
	}
	event := licenseMintedEvent()
	deliveryID := uint64(789)
	timestamp := int64(1750000000)

	// Mock GetInfo from temporal activity
	mocks.temporalActivity.EXPECT().
		GetInfo(ctx).
		Return(activity.Info{Attempt: 1})

	// Mock update webhook delivery status succeeds
	mocks.store.EXPECT().
		UpdateWebhookDeliveryStatus(ctx, deliveryID, schema.WebhookDeliveryStatusFailed, 1, nil, "", gomock.Any()).
		Return(nil)

	result, err := mocks.executor.DeliverWebhookHTTP(ctx, client, event, deliveryID, timestamp)

	// Signature failures are permanent, so the error must not trigger a retry
	assert.Error(t, err)
	assert.False(t, result.Success)
	var appErr *temporal.ApplicationError
	assert.True(t, errors.As(err, &appErr))
	assert.True(t, appErr.NonRetryable())
}

func TestDeliverWebhookHTTP_HTTPError(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	client := &schema.WebhookClient{
		ClientID:      "client-123",
		WebhookURL:    "https://example.com/webhook",
		WebhookSecret: "7365637265742d6b6579",
	}
	event := licenseMintedEvent()
	deliveryID := uint64(789)
	timestamp := int64(1750000000)
	expectedError := errors.New("connection refused")

	// Mock GetInfo from temporal activity
	mocks.temporalActivity.EXPECT().
		GetInfo(ctx).
		Return(activity.Info{Attempt: 1})

	// Mock failed HTTP response
	mocks.httpClient.EXPECT().
		PostWithHeadersNoRetry(ctx, client.WebhookURL, gomock.Any(), gomock.Any()).
		Return(nil, expectedError)

	// Mock update webhook delivery status succeeds
	mocks.store.EXPECT().
		UpdateWebhookDeliveryStatus(ctx, deliveryID, schema.WebhookDeliveryStatusFailed, gomock.Any(), nil, "", expectedError.Error()).
		Return(nil)

	result, err := mocks.executor.DeliverWebhookHTTP(ctx, client, event, deliveryID, timestamp)

	assert.Error(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, expectedError.Error())
}

func TestDeliverWebhookHTTP_Non2xxStatusCode(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	client := &schema.WebhookClient{
		ClientID:      "client-123",
		WebhookURL:    "https://example.com/webhook",
		WebhookSecret: "7365637265742d6b6579",
	}
	event := licenseMintedEvent()
	deliveryID := uint64(789)
	timestamp := int64(1750000000)

	// Mock GetInfo from temporal activity
	mocks.temporalActivity.EXPECT().
		GetInfo(ctx).
		Return(activity.Info{Attempt: 1})

	// Mock 500 error response
	statusCode := 500
	mockResponse := &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBuffer([]byte(`{"error":"internal server error"}`))),
	}

	mocks.httpClient.EXPECT().
		PostWithHeadersNoRetry(ctx, client.WebhookURL, gomock.Any(), gomock.Any()).
		Return(mockResponse, nil)

	// Mock read all from io reader succeeds
	mocks.io.EXPECT().
		ReadAll(io.LimitReader(mockResponse.Body, 4*1024)).
		Return([]byte(`{"error":"internal server error"}`), nil)

	// Mock update webhook delivery status records the failure
	mocks.store.EXPECT().
		UpdateWebhookDeliveryStatus(ctx, deliveryID, schema.WebhookDeliveryStatusFailed, gomock.Any(), &statusCode, `{"error":"internal server error"}`, gomock.Any()).
		Return(nil)

	result, err := mocks.executor.DeliverWebhookHTTP(ctx, client, event, deliveryID, timestamp)

	assert.Error(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, statusCode, result.StatusCode)
	assert.Contains(t, result.Body, "internal server error")
}

func TestDeliverWebhookHTTP_ReadBodyError(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	client := &schema.WebhookClient{
		ClientID:      "client-123",
		WebhookURL:    "https://example.com/webhook",
		WebhookSecret: "7365637265742d6b6579",
	}
	event := licenseMintedEvent()
	deliveryID := uint64(789)
	timestamp := int64(1750000000)
	readError := errors.New("failed to read body")

	// Mock GetInfo from temporal activity
	mocks.temporalActivity.EXPECT().
		GetInfo(ctx).
		Return(activity.Info{Attempt: 1})

	// Mock successful HTTP response but body read fails
	mockResponse := &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBuffer([]byte(`{"status":"success"}`))),
	}

	mocks.httpClient.EXPECT().
		PostWithHeadersNoRetry(ctx, client.WebhookURL, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, url string, headers map[string]string, body interface{}) (*http.Response, error) {
			return mockResponse, nil
		})

	// Mock read all from io reader fails
	mocks.io.EXPECT().
		ReadAll(io.LimitReader(mockResponse.Body, 4*1024)).
		Return(nil, readError)

	// Even though body read fails, delivery should succeed with empty body
	// The error is logged but doesn't cause the delivery to fail
	statusCode := 200
	mocks.store.EXPECT().
		UpdateWebhookDeliveryStatus(ctx, deliveryID, schema.WebhookDeliveryStatusSuccess, gomock.Any(), &statusCode, "", "").
		Return(nil)

	result, err := mocks.executor.DeliverWebhookHTTP(ctx, client, event, deliveryID, timestamp)

	// Delivery should succeed even if we couldn't read the body
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 200, result.StatusCode)
	assert.Empty(t, result.Body, "Body should be empty when read fails")
}

func TestDeliverWebhookHTTP_UpdateStatusError(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	client := &schema.WebhookClient{
		ClientID:      "client-123",
		WebhookURL:    "https://example.com/webhook",
		WebhookSecret: "7365637265742d6b6579",
	}
	event := licenseMintedEvent()
	deliveryID := uint64(789)
	timestamp := int64(1750000000)
	updateError := errors.New("failed to update status")

	// Mock GetInfo from temporal activity
	mocks.temporalActivity.EXPECT().
		GetInfo(ctx).
		Return(activity.Info{Attempt: 1})

	// Mock successful HTTP response
	mockResponse := &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBuffer([]byte(`{"status":"success"}`))),
	}

	mocks.httpClient.EXPECT().
		PostWithHeadersNoRetry(ctx, client.WebhookURL, gomock.Any(), gomock.Any()).
		Return(mockResponse, nil)

	// Mock read all from io reader succeeds
	mocks.io.EXPECT().
		ReadAll(io.LimitReader(mockResponse.Body, 4*1024)).
		Return([]byte(`{"status":"success"}`), nil)

	// Mock update webhook delivery status fails
	mocks.store.EXPECT().
		UpdateWebhookDeliveryStatus(ctx, deliveryID, schema.WebhookDeliveryStatusSuccess, gomock.Any(), gomock.Any(), `{"status":"success"}`, "").
		Return(updateError)

	// Should still succeed even if status update fails (logged but not returned as error)
	result, err := mocks.executor.DeliverWebhookHTTP(ctx, client, event, deliveryID, timestamp)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 200, result.StatusCode)
}
