package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/adapter"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/providers/temporal"
	"github.com/feral-file/ff-rights-ledger/internal/webhook"
	"github.com/feral-file/ff-rights-ledger/internal/workflows"
)

// Config holds the configuration for the event bridge
type Config struct {
	URL               string
	StreamName        string
	ConsumerName      string
	MaxReconnects     int
	ReconnectWait     time.Duration
	ConnectionName    string
	AckWaitTimeout    time.Duration
	MaxDeliver        int
	TemporalTaskQueue string
}

// Bridge defines the interface for the event bridge
type Bridge interface {
	// Run starts the event bridge
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc           adapter.NatsConn
	js           adapter.JetStream
	orchestrator temporal.TemporalOrchestrator
	json         adapter.JSON
	config       Config
}

// NewBridge creates a new event bridge
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	orchestrator temporal.TemporalOrchestrator,
	jsonAdapter adapter.JSON,
) (Bridge, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	b := &bridge{
		nc:           nc,
		js:           js,
		orchestrator: orchestrator,
		json:         jsonAdapter,
		config:       cfg,
	}

	return b, nil
}

// Run starts the event bridge
func (b *bridge) Run(ctx context.Context) error {
	logger.Info("Starting event bridge", zap.String("stream", b.config.StreamName), zap.String("consumer", b.config.ConsumerName))

	// Subscribe to all committed ledger event subjects
	subject := "rights.events.>"

	// Create or get consumer
	consumerConfig := jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: subject,
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	// Create subscription
	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming messages")

	// Process messages
	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down event bridge")
			return ctx.Err()
		case msg := <-msgChan:
			// Spawn goroutine to handle message asynchronously
			go b.handleMessage(ctx, msg)
		}
	}
}

// handleMessage processes a single NATS message
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	// Get metadata for logging
	metadata, _ := msg.Metadata()

	// Parse event
	var event domain.LedgerEvent
	if err := b.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to unmarshal event"))
		// Terminate message for unparseable data
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	// Events without a commit ID or with an unknown type can never be
	// delivered, so drop them instead of cycling through redelivery
	if event.ID == "" || !event.Type.Valid() {
		logger.Error(errors.New("malformed ledger event"),
			zap.String("eventID", event.ID),
			zap.String("eventType", string(event.Type)))
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	logger.Info("Received event",
		zap.String("eventID", event.ID),
		zap.String("eventType", string(event.Type)),
		zap.Uint64("seq", event.Seq),
		zap.Uint64("deliveryCount", metadata.NumDelivered),
	)

	// Forward to the notification worker
	if err := b.forwardToWorker(ctx, &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to forward event to worker"))
		// NAK to retry
		if err := msg.Nak(); err != nil {
			logger.Error(err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	// ACK message after successful processing
	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

// forwardToWorker starts the webhook notification workflow for the event
func (b *bridge) forwardToWorker(ctx context.Context, event *domain.LedgerEvent) error {
	notification := webhook.NewEvent(*event)

	w := workflows.NewWorkerCore(nil)
	opt := client.StartWorkflowOptions{
		ID:                    fmt.Sprintf("webhook-notify-%s-%s", notification.EventType, notification.EventID),
		TaskQueue:             b.config.TemporalTaskQueue,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
		WorkflowRunTimeout:    1 * time.Hour,
	}
	_, err := b.orchestrator.ExecuteWorkflow(ctx, opt, w.NotifyWebhookClients, notification)
	if err != nil {
		// Redelivered messages race against the workflow they already
		// started; treat that as processed
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			logger.Info("Notification workflow already started",
				zap.String("eventID", notification.EventID),
				zap.String("eventType", notification.EventType))
			return nil
		}
		return fmt.Errorf("failed to execute workflow: %w", err)
	}

	logger.Info("Event forwarded to worker",
		zap.String("eventID", notification.EventID),
		zap.String("eventType", notification.EventType),
	)

	return nil
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	b.nc.Close()
}
