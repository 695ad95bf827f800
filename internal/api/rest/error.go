package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-rights-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    apierrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	Details string              `json:"details,omitempty"`
}

// statusForCode maps an error code to its HTTP status
func statusForCode(code apierrors.ErrorCode) int {
	switch code {
	case apierrors.ErrCodeBadRequest, apierrors.ErrCodeValidationFailed:
		return http.StatusBadRequest
	case apierrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apierrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apierrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apierrors.ErrCodeConflict:
		return http.StatusConflict
	case apierrors.ErrCodePaymentFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError translates an executor error into its HTTP response.
// Server-side failures are logged before responding.
func respondError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apierrors.NewInternalError("Internal server error", err.Error())
	}

	status := statusForCode(apiErr.Code)
	if status >= http.StatusInternalServerError {
		logger.Error(err, zap.String("code", string(apiErr.Code)))
	}

	respondWithError(c, status, apiErr.Code, apiErr.Message, apiErr.Details)
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code apierrors.ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, apierrors.ErrCodeBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusNotFound, apierrors.ErrCodeNotFound, message, details...)
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, apierrors.ErrCodeValidationFailed, "Validation failed", details)
}
