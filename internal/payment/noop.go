package payment

import (
	"context"

	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
)

// NoopGateway accepts every charge and payout without contacting a payment
// processor. It backs local development and test environments where no
// payment API is configured.
type NoopGateway struct{}

// NewNoopGateway creates a gateway that always succeeds
func NewNoopGateway() Gateway {
	return &NoopGateway{}
}

// Collect accepts the charge without side effects
func (NoopGateway) Collect(ctx context.Context, from domain.Identity, amount int64, reference string) error {
	logger.DebugCtx(ctx, "noop gateway collect",
		zap.String("from", from.String()),
		zap.Int64("amount", amount),
		zap.String("reference", reference))
	return nil
}

// Pay accepts the payout without side effects
func (NoopGateway) Pay(ctx context.Context, to domain.Identity, amount int64, reference string) error {
	logger.DebugCtx(ctx, "noop gateway pay",
		zap.String("to", to.String()),
		zap.Int64("amount", amount),
		zap.String("reference", reference))
	return nil
}
