package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-rights-ledger/internal/api/middleware"
	"github.com/feral-file/ff-rights-ledger/internal/api/shared/constants"
	"github.com/feral-file/ff-rights-ledger/internal/api/shared/dto"
	"github.com/feral-file/ff-rights-ledger/internal/api/shared/executor"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// CreateArtwork registers an artwork and mints its copyright token to the caller (requires authentication)
	// POST /api/v1/artworks
	CreateArtwork(c *gin.Context)

	// GetArtwork retrieves an artwork by its ID
	// GET /api/v1/artworks/:id
	GetArtwork(c *gin.Context)

	// MintLicense mints a license token for an artwork (requires authentication, copyright holder only)
	// POST /api/v1/artworks/:id/licenses
	MintLicense(c *gin.Context)

	// TransferCopyright transfers an artwork's copyright token (requires authentication, copyright holder only)
	// POST /api/v1/artworks/:id/copyright/transfer
	TransferCopyright(c *gin.Context)

	// GetToken retrieves a token by its packed ID
	// GET /api/v1/tokens/:id
	GetToken(c *gin.Context)

	// TransferToken transfers a token to another identity (requires authentication, token owner only)
	// POST /api/v1/tokens/:id/transfer
	TransferToken(c *gin.Context)

	// GetTokenHistory retrieves the ledger events recorded for a token
	// GET /api/v1/tokens/:id/history?limit=<limit>&offset=<offset>&order=<order>
	GetTokenHistory(c *gin.Context)

	// CreateListing lists a token for sale (requires authentication, token owner only)
	// POST /api/v1/tokens/:id/listing
	CreateListing(c *gin.Context)

	// GetListing retrieves a token's active listing
	// GET /api/v1/tokens/:id/listing
	GetListing(c *gin.Context)

	// CancelListing cancels a token's active listing (requires authentication, seller only)
	// DELETE /api/v1/tokens/:id/listing
	CancelListing(c *gin.Context)

	// GetListings retrieves active listings in listing order
	// GET /api/v1/listings?limit=<limit>&offset=<offset>
	GetListings(c *gin.Context)

	// MakeOffer places an escrowed offer on a token (requires authentication)
	// POST /api/v1/tokens/:id/offers
	MakeOffer(c *gin.Context)

	// GetOffers retrieves all offers recorded for a token, settled entries included
	// GET /api/v1/tokens/:id/offers
	GetOffers(c *gin.Context)

	// AcceptOffer accepts an offer on a token (requires authentication, token owner only)
	// POST /api/v1/tokens/:id/offers/:index/accept
	AcceptOffer(c *gin.Context)

	// RejectOffer rejects an offer and queues the offerer's refund (requires authentication, token owner only)
	// POST /api/v1/tokens/:id/offers/:index/reject
	RejectOffer(c *gin.Context)

	// WithdrawOffer withdraws the caller's own offer with an immediate refund (requires authentication)
	// POST /api/v1/tokens/:id/offers/:index/withdraw
	WithdrawOffer(c *gin.Context)

	// Withdraw pays out the caller's accumulated refund balance (requires authentication)
	// POST /api/v1/withdrawals
	Withdraw(c *gin.Context)

	// GetAccountTokens retrieves the tokens currently held by an account
	// GET /api/v1/accounts/:account/tokens?limit=<limit>&offset=<offset>
	GetAccountTokens(c *gin.Context)

	// GetAccountBalance retrieves an account's pending refund balance
	// GET /api/v1/accounts/:account/balance
	GetAccountBalance(c *gin.Context)

	// CreateWebhookClient creates a new webhook client (requires authentication via API key)
	// POST /api/v1/webhooks/clients
	CreateWebhookClient(c *gin.Context)

	// ListWebhookClients lists registered webhook clients (requires authentication via API key)
	// GET /api/v1/webhooks/clients
	ListWebhookClients(c *gin.Context)

	// DeactivateWebhookClient deactivates a webhook client (requires authentication via API key)
	// DELETE /api/v1/webhooks/clients/:client_id
	DeactivateWebhookClient(c *gin.Context)

	// SuspendAccount suspends an account from mutating operations (requires admin authentication)
	// POST /api/v1/admin/suspensions
	SuspendAccount(c *gin.Context)

	// LiftSuspension lifts an account suspension (requires admin authentication)
	// DELETE /api/v1/admin/suspensions/:account
	LiftSuspension(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug    bool
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(debug bool, exec executor.Executor) Handler {
	return &handler{
		debug:    debug,
		executor: exec,
	}
}

// requireCaller resolves the acting identity stored by the auth middleware.
// JWT callers carry it in the token subject, API key callers in the
// X-Caller-Identity header.
func requireCaller(c *gin.Context) (domain.Identity, bool) {
	caller := domain.Identity(c.GetString(middleware.AUTH_SUBJECT_KEY))
	if !caller.Valid() {
		respondBadRequest(c, "Caller identity is required")
		return domain.ZeroIdentity, false
	}
	return caller, true
}

// pathArtworkID parses the :id artwork path parameter
func pathArtworkID(c *gin.Context) (domain.ArtworkID, bool) {
	param := c.Param("id")
	if param == "" {
		respondBadRequest(c, "Artwork ID is required")
		return 0, false
	}

	artworkID, err := domain.ParseArtworkID(param)
	if err != nil {
		respondBadRequest(c, "Invalid artwork ID")
		return 0, false
	}

	return artworkID, true
}

// pathTokenID parses the :id token path parameter
func pathTokenID(c *gin.Context) (domain.TokenID, bool) {
	param := c.Param("id")
	if param == "" {
		respondBadRequest(c, "Token ID is required")
		return domain.TokenID{}, false
	}

	tokenID, err := domain.ParseTokenID(param)
	if err != nil {
		respondBadRequest(c, "Invalid token ID")
		return domain.TokenID{}, false
	}

	return tokenID, true
}

// pathOfferIndex parses the :index offer path parameter
func pathOfferIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		respondBadRequest(c, "Invalid offer index")
		return 0, false
	}
	return index, true
}

// pathAccount parses the :account path parameter
func pathAccount(c *gin.Context) (domain.Identity, bool) {
	account := domain.Identity(c.Param("account"))
	if !account.Valid() {
		respondBadRequest(c, "Account is required")
		return domain.ZeroIdentity, false
	}
	return account, true
}

// CreateArtwork registers an artwork and mints its copyright token to the caller
func (h *handler) CreateArtwork(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	// Call executor's CreateArtwork method
	response, err := h.executor.CreateArtwork(
		c.Request.Context(),
		caller,
		req.MetadataURI,
		req.PreviewDataURI,
	)

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetArtwork retrieves an artwork by its ID
func (h *handler) GetArtwork(c *gin.Context) {
	artworkID, ok := pathArtworkID(c)
	if !ok {
		return
	}

	// Call executor's GetArtwork method
	response, err := h.executor.GetArtwork(c.Request.Context(), artworkID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// MintLicense mints a license token for an artwork
func (h *handler) MintLicense(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	artworkID, ok := pathArtworkID(c)
	if !ok {
		return
	}

	var req dto.MintLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	// Call executor's MintLicense method
	response, err := h.executor.MintLicense(
		c.Request.Context(),
		caller,
		artworkID,
		req.Rights(),
		domain.Identity(req.Recipient),
	)

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// TransferCopyright transfers an artwork's copyright token
func (h *handler) TransferCopyright(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	artworkID, ok := pathArtworkID(c)
	if !ok {
		return
	}

	var req dto.TransferCopyrightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	// Call executor's TransferCopyright method
	response, err := h.executor.TransferCopyright(
		c.Request.Context(),
		caller,
		artworkID,
		domain.Identity(req.To),
		req.Retention(),
	)

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetToken retrieves a token by its packed ID
func (h *handler) GetToken(c *gin.Context) {
	tokenID, ok := pathTokenID(c)
	if !ok {
		return
	}

	// Call executor's GetToken method
	response, err := h.executor.GetToken(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// TransferToken transfers a token to another identity
func (h *handler) TransferToken(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	tokenID, ok := pathTokenID(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	// Call executor's TransferToken method
	response, err := h.executor.TransferToken(
		c.Request.Context(),
		caller,
		tokenID,
		domain.Identity(req.To),
	)

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetTokenHistory retrieves the ledger events recorded for a token
func (h *handler) GetTokenHistory(c *gin.Context) {
	tokenID, ok := pathTokenID(c)
	if !ok {
		return
	}

	// Parse query parameters
	queryParams, err := ParseEventHistoryQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	// Convert query parameters to executor parameters
	limit := &queryParams.Limit
	offset := &queryParams.Offset
	order := &queryParams.Order

	// Call executor's GetTokenHistory method
	response, err := h.executor.GetTokenHistory(
		c.Request.Context(),
		tokenID,
		limit,
		offset,
		order,
	)

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateListing lists a token for sale
func (h *handler) CreateListing(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	tokenID, ok := pathTokenID(c)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	// Call executor's CreateListing method
	response, err := h.executor.CreateListing(
		c.Request.Context(),
		caller,
		tokenID,
		req.Price,
	)

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetListing retrieves a token's active listing
func (h *handler) GetListing(c *gin.Context) {
	tokenID, ok := pathTokenID(c)
	if !ok {
		return
	}

	// Call executor's GetListing method
	response, err := h.executor.GetListing(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CancelListing cancels a token's active listing
func (h *handler) CancelListing(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	tokenID, ok := pathTokenID(c)
	if !ok {
		return
	}

	// Call executor's CancelListing method
	if err := h.executor.CancelListing(c.Request.Context(), caller, tokenID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "cancelled"})
}

// GetListings retrieves active listings in listing order
func (h *handler) GetListings(c *gin.Context) {
	// Parse query parameters
	queryParams, err := ParseListQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	// Convert query parameters to executor parameters
	limit := &queryParams.Limit
	offset := &queryParams.Offset

	// Call executor's GetListings method
	response, err := h.executor.GetListings(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// MakeOffer places an escrowed offer on a token
func (h *handler) MakeOffer(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	tokenID, ok := pathTokenID(c)
	if !ok {
		return
	}

	var req dto.MakeOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	// Call executor's MakeOffer method
	response, err := h.executor.MakeOffer(
		c.Request.Context(),
		caller,
		tokenID,
		req.Amount,
	)

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetOffers retrieves all offers recorded for a token
func (h *handler) GetOffers(c *gin.Context) {
	tokenID, ok := pathTokenID(c)
	if !ok {
		return
	}

	// Call executor's GetOffers method
	response, err := h.executor.GetOffers(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// AcceptOffer accepts an offer on a token
func (h *handler) AcceptOffer(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	tokenID, ok := pathTokenID(c)
	if !ok {
		return
	}

	index, ok := pathOfferIndex(c)
	if !ok {
		return
	}

	// Call executor's AcceptOffer method
	response, err := h.executor.AcceptOffer(c.Request.Context(), caller, tokenID, index)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// RejectOffer rejects an offer and queues the offerer's refund
func (h *handler) RejectOffer(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	tokenID, ok := pathTokenID(c)
	if !ok {
		return
	}

	index, ok := pathOfferIndex(c)
	if !ok {
		return
	}

	// Call executor's RejectOffer method
	if err := h.executor.RejectOffer(c.Request.Context(), caller, tokenID, index); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "rejected"})
}

// WithdrawOffer withdraws the caller's own offer with an immediate refund
func (h *handler) WithdrawOffer(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	tokenID, ok := pathTokenID(c)
	if !ok {
		return
	}

	index, ok := pathOfferIndex(c)
	if !ok {
		return
	}

	// Call executor's WithdrawOffer method
	response, err := h.executor.WithdrawOffer(c.Request.Context(), caller, tokenID, index)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Withdraw pays out the caller's accumulated refund balance
func (h *handler) Withdraw(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	// Call executor's Withdraw method
	response, err := h.executor.Withdraw(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetAccountTokens retrieves the tokens currently held by an account
func (h *handler) GetAccountTokens(c *gin.Context) {
	account, ok := pathAccount(c)
	if !ok {
		return
	}

	// Parse query parameters
	queryParams, err := ParseListQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	// Convert query parameters to executor parameters
	limit := &queryParams.Limit
	offset := &queryParams.Offset

	// Call executor's GetAccountTokens method
	response, err := h.executor.GetAccountTokens(c.Request.Context(), account, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetAccountBalance retrieves an account's pending refund balance
func (h *handler) GetAccountBalance(c *gin.Context) {
	account, ok := pathAccount(c)
	if !ok {
		return
	}

	// Call executor's GetAccountBalance method
	response, err := h.executor.GetAccountBalance(c.Request.Context(), account)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateWebhookClient creates a new webhook client (requires authentication via API key)
func (h *handler) CreateWebhookClient(c *gin.Context) {
	var req dto.CreateWebhookClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	err := req.Validate(h.debug)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	// Set default retry_max_attempts if not provided
	retryMaxAttempts := constants.DEFAULT_RETRY_MAX_ATTEMPTS // Default value
	if req.RetryMaxAttempts != nil {
		retryMaxAttempts = *req.RetryMaxAttempts
	}

	// Call executor's CreateWebhookClient method
	response, err := h.executor.CreateWebhookClient(
		c.Request.Context(),
		req.WebhookURL,
		req.EventFilters,
		retryMaxAttempts,
	)

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListWebhookClients lists registered webhook clients
func (h *handler) ListWebhookClients(c *gin.Context) {
	// Call executor's ListWebhookClients method
	response, err := h.executor.ListWebhookClients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeactivateWebhookClient deactivates a webhook client
func (h *handler) DeactivateWebhookClient(c *gin.Context) {
	clientID := c.Param("client_id")
	if clientID == "" {
		respondBadRequest(c, "Client ID is required")
		return
	}

	// Call executor's DeactivateWebhookClient method
	if err := h.executor.DeactivateWebhookClient(c.Request.Context(), clientID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "deactivated"})
}

// SuspendAccount suspends an account from mutating operations
func (h *handler) SuspendAccount(c *gin.Context) {
	var req dto.SuspendAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	// Call executor's SuspendAccount method
	response, err := h.executor.SuspendAccount(
		c.Request.Context(),
		domain.Identity(req.Account),
		req.Reason,
	)

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// LiftSuspension lifts an account suspension
func (h *handler) LiftSuspension(c *gin.Context) {
	account, ok := pathAccount(c)
	if !ok {
		return
	}

	// Call executor's LiftSuspension method
	if err := h.executor.LiftSuspension(c.Request.Context(), account); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "lifted"})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "ff-rights-ledger-api",
	})
}
