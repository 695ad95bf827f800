package payment

import (
	"bytes"
	"context"
	"fmt"

	"github.com/feral-file/ff-rights-ledger/internal/adapter"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// Gateway defines the interface for payment processor operations to enable mocking.
// Collect pulls escrow from an account before an operation commits; Pay sends
// money out to an account. Both are called while the ledger holds its write
// lock, so a gateway failure leaves the ledger untouched.
//
//go:generate mockgen -source=gateway.go -destination=../mocks/payment_gateway.go -package=mocks -mock_names=Gateway=MockPaymentGateway
type Gateway interface {
	// Collect charges amount from the account, referenced by an idempotency key
	Collect(ctx context.Context, from domain.Identity, amount int64, reference string) error

	// Pay sends amount to the account, referenced by an idempotency key
	Pay(ctx context.Context, to domain.Identity, amount int64, reference string) error
}

// chargeRequest represents a charge or payout request to the payment API
type chargeRequest struct {
	Account   string `json:"account"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

// chargeResponse represents the payment API response
type chargeResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

// statusCompleted is the only terminal success status the payment API returns
const statusCompleted = "completed"

// HTTPGateway implements Gateway against the platform payment API
type HTTPGateway struct {
	httpClient adapter.HTTPClient
	baseURL    string
	json       adapter.JSON
}

// NewHTTPGateway creates a new payment gateway client
func NewHTTPGateway(httpClient adapter.HTTPClient, baseURL string, json adapter.JSON) Gateway {
	return &HTTPGateway{
		httpClient: httpClient,
		baseURL:    baseURL,
		json:       json,
	}
}

// Collect charges amount from the account
func (g *HTTPGateway) Collect(ctx context.Context, from domain.Identity, amount int64, reference string) error {
	return g.post(ctx, fmt.Sprintf("%s/v1/charges", g.baseURL), chargeRequest{
		Account:   from.String(),
		Amount:    amount,
		Reference: reference,
	})
}

// Pay sends amount to the account
func (g *HTTPGateway) Pay(ctx context.Context, to domain.Identity, amount int64, reference string) error {
	return g.post(ctx, fmt.Sprintf("%s/v1/payouts", g.baseURL), chargeRequest{
		Account:   to.String(),
		Amount:    amount,
		Reference: reference,
	})
}

// post sends one request to the payment API and checks the terminal status
func (g *HTTPGateway) post(ctx context.Context, url string, request chargeRequest) error {
	requestBody, err := g.json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal payment request: %w", err)
	}

	responseBody, err := g.httpClient.Post(ctx, url, "application/json", bytes.NewReader(requestBody))
	if err != nil {
		return fmt.Errorf("failed to call payment API: %w", err)
	}

	var response chargeResponse
	if err := g.json.Unmarshal(responseBody, &response); err != nil {
		return fmt.Errorf("failed to unmarshal payment response: %w", err)
	}

	if response.Status != statusCompleted {
		return fmt.Errorf("payment not completed: status=%s message=%s", response.Status, response.Message)
	}

	return nil
}
