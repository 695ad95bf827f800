package errors

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeConflict         ErrorCode = "conflict"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeDatabaseError ErrorCode = "database_error"
	ErrCodeServiceError  ErrorCode = "service_error"
	ErrCodePaymentFailed ErrorCode = "payment_failed"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewForbiddenError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeForbidden,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewConflictError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeConflict,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewDatabaseError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewServiceError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeServiceError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewPaymentFailedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodePaymentFailed,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromDomain translates a ledger error into its API representation.
// Errors that are already APIErrors pass through unchanged.
func FromDomain(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, domain.ErrUnknownArtwork),
		errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrNotListed),
		errors.Is(err, domain.ErrWebhookClientNotFound):
		return NewNotFoundError(err.Error())
	case errors.Is(err, domain.ErrNotCopyrightOwner),
		errors.Is(err, domain.ErrNotTokenOwner),
		errors.Is(err, domain.ErrNotOfferer),
		errors.Is(err, domain.ErrAccountSuspended):
		return NewForbiddenError(err.Error())
	case errors.Is(err, domain.ErrCopyrightAlreadyTransferred),
		errors.Is(err, domain.ErrAlreadyResold),
		errors.Is(err, domain.ErrAlreadyListed),
		errors.Is(err, domain.ErrOfferNotActive),
		errors.Is(err, domain.ErrNothingToWithdraw),
		errors.Is(err, domain.ErrAccountNotSuspended):
		return NewConflictError(err.Error())
	case errors.Is(err, domain.ErrCollectFailed),
		errors.Is(err, domain.ErrPayoutFailed):
		return NewPaymentFailedError("payment gateway call failed", err.Error())
	case errors.Is(err, domain.ErrOutOfRange),
		errors.Is(err, domain.ErrZeroIdentity),
		errors.Is(err, domain.ErrInvalidRightsType),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrZeroAmount),
		errors.Is(err, domain.ErrInvalidOfferIndex),
		errors.Is(err, domain.ErrInvalidPreview):
		return NewValidationError(err.Error())
	default:
		return NewServiceError("ledger operation failed", err.Error())
	}
}
