package dto

import (
	"fmt"

	"github.com/feral-file/ff-rights-ledger/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-rights-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	internalTypes "github.com/feral-file/ff-rights-ledger/internal/types"
	"github.com/feral-file/ff-rights-ledger/internal/webhook"
)

// CreateArtworkRequest represents the request body for registering an artwork
type CreateArtworkRequest struct {
	MetadataURI    string `json:"metadata_uri"`
	PreviewDataURI string `json:"preview_data_uri,omitempty"`
}

// Validate validates the request body
func (r *CreateArtworkRequest) Validate() error {
	// Validate: metadata URI must be provided
	if r.MetadataURI == "" {
		return apierrors.NewValidationError("metadata_uri is required")
	}

	return nil
}

// MintLicenseRequest represents the request body for minting a license token
type MintLicenseRequest struct {
	RightsType string `json:"rights_type"`
	Recipient  string `json:"recipient"`
}

// Validate validates the request body
func (r *MintLicenseRequest) Validate() error {
	// Validate: rights type must be a mintable license type
	rights, err := domain.ParseRightsType(r.RightsType)
	if err != nil || !rights.License() {
		return apierrors.NewValidationError(fmt.Sprintf("invalid rights_type: %q. Must be commercial or display", r.RightsType))
	}

	// Validate: recipient must be provided
	if r.Recipient == "" {
		return apierrors.NewValidationError("recipient is required")
	}

	return nil
}

// Rights returns the parsed rights type. Call Validate first.
func (r *MintLicenseRequest) Rights() domain.RightsType {
	rights, _ := domain.ParseRightsType(r.RightsType)
	return rights
}

// TransferRequest represents the request body for transferring a token
type TransferRequest struct {
	To string `json:"to"`
}

// Validate validates the request body
func (r *TransferRequest) Validate() error {
	// Validate: recipient must be provided
	if r.To == "" {
		return apierrors.NewValidationError("to is required")
	}

	return nil
}

// TransferCopyrightRequest represents the request body for transferring an
// artwork's copyright token, optionally retaining a license for the seller
type TransferCopyrightRequest struct {
	To     string `json:"to"`
	Retain string `json:"retain,omitempty"`
}

// Validate validates the request body
func (r *TransferCopyrightRequest) Validate() error {
	// Validate: recipient must be provided
	if r.To == "" {
		return apierrors.NewValidationError("to is required")
	}

	// Validate: retention option must be known if provided
	if r.Retain != "" && !domain.Retention(r.Retain).Valid() {
		return apierrors.NewValidationError(fmt.Sprintf("invalid retain: %q. Must be none, commercial or display", r.Retain))
	}

	return nil
}

// Retention returns the parsed retention option, defaulting to none
func (r *TransferCopyrightRequest) Retention() domain.Retention {
	if r.Retain == "" {
		return domain.RetainNone
	}
	return domain.Retention(r.Retain)
}

// CreateListingRequest represents the request body for listing a token for sale
type CreateListingRequest struct {
	Price int64 `json:"price"`
}

// Validate validates the request body
func (r *CreateListingRequest) Validate() error {
	// Validate: asking price must be positive
	if r.Price <= 0 {
		return apierrors.NewValidationError("price must be a positive amount in minor currency units")
	}

	return nil
}

// MakeOfferRequest represents the request body for making an offer on a token
type MakeOfferRequest struct {
	Amount int64 `json:"amount"`
}

// Validate validates the request body
func (r *MakeOfferRequest) Validate() error {
	// Validate: offer amount must be positive
	if r.Amount <= 0 {
		return apierrors.NewValidationError("amount must be a positive amount in minor currency units")
	}

	return nil
}

// SuspendAccountRequest represents the request body for suspending an account
type SuspendAccountRequest struct {
	Account string `json:"account"`
	Reason  string `json:"reason,omitempty"`
}

// Validate validates the request body
func (r *SuspendAccountRequest) Validate() error {
	// Validate: account must be provided
	if r.Account == "" {
		return apierrors.NewValidationError("account is required")
	}

	return nil
}

// CreateWebhookClientRequest represents the request body for creating a webhook client
type CreateWebhookClientRequest struct {
	WebhookURL       string   `json:"webhook_url"`
	EventFilters     []string `json:"event_filters"`
	RetryMaxAttempts *int     `json:"retry_max_attempts,omitempty"`
}

// Validate validates the request body
func (r *CreateWebhookClientRequest) Validate(debug bool) error {
	// Validate: webhook URL must be provided
	if r.WebhookURL == "" {
		return apierrors.NewValidationError("webhook_url is required")
	}

	// Validate: webhook URL must be valid
	if debug {
		if !internalTypes.IsValidURL(r.WebhookURL) {
			return apierrors.NewValidationError("webhook_url must be a valid URL")
		}
	} else {
		if !internalTypes.IsHTTPSURL(r.WebhookURL) {
			return apierrors.NewValidationError("webhook_url must be a valid HTTPS URL")
		}
	}

	// Validate: event filters must be provided
	if len(r.EventFilters) == 0 {
		return apierrors.NewValidationError("event_filters is required and must not be empty")
	}

	// Validate: each event filter must be supported
	for _, eventType := range r.EventFilters {
		if !webhook.IsValidEventType(eventType) {
			return apierrors.NewValidationError(fmt.Sprintf("unsupported event type: %s. Supported types: %v", eventType, webhook.SupportedEventTypes))
		}
	}

	// Validate: retry_max_attempts must be valid if provided
	if r.RetryMaxAttempts != nil {
		if *r.RetryMaxAttempts < 0 || *r.RetryMaxAttempts > constants.MAX_RETRY_MAX_ATTEMPTS {
			return apierrors.NewValidationError("retry_max_attempts must be between 0 and 10")
		}
	}

	return nil
}
