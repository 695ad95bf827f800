package executor

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/feral-file/ff-rights-ledger/internal/api/shared/constants"
	"github.com/feral-file/ff-rights-ledger/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-rights-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-rights-ledger/internal/api/shared/types"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/ledger"
	"github.com/feral-file/ff-rights-ledger/internal/metadata"
	"github.com/feral-file/ff-rights-ledger/internal/store"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// CreateArtwork registers an artwork and mints its copyright token to the caller
	CreateArtwork(ctx context.Context, caller domain.Identity, metadataURI, previewDataURI string) (*dto.ArtworkResponse, error)

	// GetArtwork retrieves a registered artwork
	GetArtwork(ctx context.Context, artworkID domain.ArtworkID) (*dto.ArtworkResponse, error)

	// MintLicense mints a license token for the artwork to the recipient
	MintLicense(ctx context.Context, caller domain.Identity, artworkID domain.ArtworkID, rights domain.RightsType, recipient domain.Identity) (*dto.TokenResponse, error)

	// TransferToken moves a token to another identity
	TransferToken(ctx context.Context, caller domain.Identity, tokenID domain.TokenID, to domain.Identity) (*dto.TokenResponse, error)

	// TransferCopyright moves the artwork's copyright token, optionally leaving
	// a retained license with the caller
	TransferCopyright(ctx context.Context, caller domain.Identity, artworkID domain.ArtworkID, to domain.Identity, retain domain.Retention) (*dto.TransferCopyrightResponse, error)

	// GetToken retrieves a token's assembled read-model
	GetToken(ctx context.Context, tokenID domain.TokenID) (*dto.TokenResponse, error)

	// GetTokenHistory retrieves the journal slice for one token
	GetTokenHistory(ctx context.Context, tokenID domain.TokenID, limit *uint8, offset *uint64, order *types.Order) (*dto.EventListResponse, error)

	// GetAccountTokens retrieves the tokens currently held by an account
	GetAccountTokens(ctx context.Context, account domain.Identity, limit *uint8, offset *uint64) (*dto.TokenListResponse, error)

	// GetAccountBalance retrieves an account's pending refund balance
	GetAccountBalance(ctx context.Context, account domain.Identity) (*dto.BalanceResponse, error)

	// CreateListing lists a token for sale
	CreateListing(ctx context.Context, caller domain.Identity, tokenID domain.TokenID, price int64) (*dto.ListingResponse, error)

	// CancelListing deactivates the caller's listing
	CancelListing(ctx context.Context, caller domain.Identity, tokenID domain.TokenID) error

	// GetListing retrieves the token's active listing
	GetListing(ctx context.Context, tokenID domain.TokenID) (*dto.ListingResponse, error)

	// GetListings retrieves active listings in listing order
	GetListings(ctx context.Context, limit *uint8, offset *uint64) (*dto.ListingListResponse, error)

	// MakeOffer escrows the caller's funds and appends an offer to the token's list
	MakeOffer(ctx context.Context, caller domain.Identity, tokenID domain.TokenID, amount int64) (*dto.OfferResponse, error)

	// GetOffers retrieves the token's full offer list, settled entries included
	GetOffers(ctx context.Context, tokenID domain.TokenID) (*dto.OfferListResponse, error)

	// AcceptOffer settles an offer: pays the seller, moves the token, and
	// queues refunds for the remaining active offers
	AcceptOffer(ctx context.Context, caller domain.Identity, tokenID domain.TokenID, offerIndex int) (*dto.TokenResponse, error)

	// RejectOffer declines an offer and queues the offerer's refund
	RejectOffer(ctx context.Context, caller domain.Identity, tokenID domain.TokenID, offerIndex int) error

	// WithdrawOffer refunds the caller's escrowed offer immediately
	WithdrawOffer(ctx context.Context, caller domain.Identity, tokenID domain.TokenID, offerIndex int) (*dto.OfferWithdrawalResponse, error)

	// Withdraw pays out the caller's accumulated refund balance
	Withdraw(ctx context.Context, caller domain.Identity) (*dto.WithdrawalResponse, error)

	// CreateWebhookClient registers a webhook client and generates its delivery secret
	CreateWebhookClient(ctx context.Context, webhookURL string, eventFilters []string, retryMaxAttempts int) (*dto.CreateWebhookClientResponse, error)

	// DeactivateWebhookClient stops delivery to a registered client
	DeactivateWebhookClient(ctx context.Context, clientID string) error

	// ListWebhookClients retrieves the registered webhook clients
	ListWebhookClients(ctx context.Context) (*dto.WebhookClientListResponse, error)

	// SuspendAccount blocks an account from mutating operations
	SuspendAccount(ctx context.Context, account domain.Identity, reason string) (*dto.SuspensionResponse, error)

	// LiftSuspension re-enables a suspended account
	LiftSuspension(ctx context.Context, account domain.Identity) error
}

type executor struct {
	svc     *ledger.Service
	store   store.Store
	deriver metadata.Deriver
}

func NewExecutor(svc *ledger.Service, st store.Store, deriver metadata.Deriver) Executor {
	return &executor{svc: svc, store: st, deriver: deriver}
}

func (e *executor) CreateArtwork(ctx context.Context, caller domain.Identity, metadataURI, previewDataURI string) (*dto.ArtworkResponse, error) {
	// Fingerprint the metadata and sniff the preview before touching state
	derived, err := e.deriver.Derive(metadataURI, previewDataURI)
	if err != nil {
		return nil, apierrors.FromDomain(err)
	}

	artworkID, _, err := e.svc.CreateArtwork(ctx, caller, ledger.ArtworkMeta{
		URI:         metadataURI,
		Fingerprint: derived.Fingerprint,
		PreviewMIME: derived.PreviewMIME,
	})
	if err != nil {
		return nil, apierrors.FromDomain(err)
	}

	artwork, err := e.svc.Artwork(artworkID)
	if err != nil {
		return nil, apierrors.FromDomain(err)
	}

	return dto.MapArtworkToDTO(&artwork), nil
}

func (e *executor) GetArtwork(ctx context.Context, artworkID domain.ArtworkID) (*dto.ArtworkResponse, error) {
	artwork, err := e.svc.Artwork(artworkID)
	if err != nil {
		return nil, apierrors.FromDomain(err)
	}

	return dto.MapArtworkToDTO(&artwork), nil
}

func (e *executor) MintLicense(ctx context.Context, caller domain.Identity, artworkID domain.ArtworkID, rights domain.RightsType, recipient domain.Identity) (*dto.TokenResponse, error) {
	tokenID, err := e.svc.MintLicense(ctx, caller, artworkID, rights, recipient)
	if err != nil {
		return nil, apierrors.FromDomain(err)
	}

	return e.tokenDTO(tokenID)
}

func (e *executor) TransferToken(ctx context.Context, caller domain.Identity, tokenID domain.TokenID, to domain.Identity) (*dto.TokenResponse, error) {
	if err := e.svc.Transfer(ctx, caller, tokenID, to); err != nil {
		return nil, apierrors.FromDomain(err)
	}

	return e.tokenDTO(tokenID)
}

func (e *executor) TransferCopyright(ctx context.Context, caller domain.Identity, artworkID domain.ArtworkID, to domain.Identity, retain domain.Retention) (*dto.TransferCopyrightResponse, error) {
	retainedID, err := e.svc.TransferCopyright(ctx, caller, artworkID, to, retain)
	if err != nil {
		return nil, apierrors.FromDomain(err)
	}

	artwork, err := e.svc.Artwork(artworkID)
	if err != nil {
		return nil, apierrors.FromDomain(err)
	}

	response := &dto.TransferCopyrightResponse{
		Artwork: dto.MapArtworkToDTO(&artwork),
	}
	if retainedID != nil {
		retained, err := e.svc.Token(*retainedID)
		if err != nil {
			return nil, apierrors.FromDomain(err)
		}
		response.RetainedToken = dto.MapTokenToDTO(&retained)
	}

	return response, nil
}

func (e *executor) GetToken(ctx context.Context, tokenID domain.TokenID) (*dto.TokenResponse, error) {
	return e.tokenDTO(tokenID)
}

func (e *executor) GetTokenHistory(ctx context.Context, tokenID domain.TokenID, limit *uint8, offset *uint64, order *types.Order) (*dto.EventListResponse, error) {
	// Use defaults if not provided
	if limit == nil {
		defaultLimit := constants.DEFAULT_EVENTS_LIMIT
		limit = &defaultLimit
	}
	if offset == nil {
		defaultOffset := constants.DEFAULT_OFFSET
		offset = &defaultOffset
	}
	orderDesc := order != nil && order.Desc() // Default to ASC

	// Unknown tokens read as not found, not as an empty history
	if _, err := e.svc.Token(tokenID); err != nil {
		return nil, apierrors.FromDomain(err)
	}

	tokenHex := tokenID.String()
	filter := store.EventQueryFilter{
		TokenID:   &tokenHex,
		Limit:     int(*limit),
		Offset:    *offset,
		OrderDesc: orderDesc,
	}

	events, total, err := e.store.GetEvents(ctx, filter)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get events: %v", err))
	}

	eventDTOs := make([]dto.LedgerEventResponse, len(events))
	for i := range events {
		eventDTOs[i] = *dto.MapLedgerEventToDTO(events[i])
	}

	var nextOffset *uint64
	if *offset+uint64(len(events)) < total { //nolint:gosec,G115
		offsetVal := *offset + uint64(len(events))
		nextOffset = &offsetVal
	}

	return &dto.EventListResponse{
		Events: eventDTOs,
		Offset: nextOffset,
		Total:  total,
	}, nil
}

func (e *executor) GetAccountTokens(ctx context.Context, account domain.Identity, limit *uint8, offset *uint64) (*dto.TokenListResponse, error) {
	// Use defaults if not provided
	if limit == nil {
		defaultLimit := constants.DEFAULT_EVENTS_LIMIT
		limit = &defaultLimit
	}
	if offset == nil {
		defaultOffset := constants.DEFAULT_OFFSET
		offset = &defaultOffset
	}

	tokens := e.svc.OwnedTokens(account)

	// The holdings index keeps no meaningful order, sort for stable pages
	sort.Slice(tokens, func(i, j int) bool {
		a, b := uint256.Int(tokens[i]), uint256.Int(tokens[j])
		return a.Cmp(&b) < 0
	})

	total := uint64(len(tokens))
	page := paginate(tokens, *offset, *limit)

	tokenDTOs := make([]dto.TokenResponse, 0, len(page))
	for _, id := range page {
		token, err := e.svc.Token(id)
		if err != nil {
			return nil, apierrors.FromDomain(err)
		}
		tokenDTOs = append(tokenDTOs, *dto.MapTokenToDTO(&token))
	}

	var nextOffset *uint64
	if *offset+uint64(len(page)) < total { //nolint:gosec,G115
		offsetVal := *offset + uint64(len(page))
		nextOffset = &offsetVal
	}

	return &dto.TokenListResponse{
		Tokens: tokenDTOs,
		Offset: nextOffset,
		Total:  total,
	}, nil
}

func (e *executor) GetAccountBalance(ctx context.Context, account domain.Identity) (*dto.BalanceResponse, error) {
	return &dto.BalanceResponse{
		Account: account.String(),
		Pending: e.svc.PendingBalance(account),
	}, nil
}

func (e *executor) CreateListing(ctx context.Context, caller domain.Identity, tokenID domain.TokenID, price int64) (*dto.ListingResponse, error) {
	if err := e.svc.ListForSale(ctx, caller, tokenID, price); err != nil {
		return nil, apierrors.FromDomain(err)
	}

	listing, err := e.svc.ListingOf(tokenID)
	if err != nil {
		return nil, apierrors.FromDomain(err)
	}

	return dto.MapListingToDTO(&listing), nil
}

func (e *executor) CancelListing(ctx context.Context, caller domain.Identity, tokenID domain.TokenID) error {
	if err := e.svc.CancelListing(ctx, caller, tokenID); err != nil {
		return apierrors.FromDomain(err)
	}
	return nil
}

func (e *executor) GetListing(ctx context.Context, tokenID domain.TokenID) (*dto.ListingResponse, error) {
	listing, err := e.svc.ListingOf(tokenID)
	if err != nil {
		return nil, apierrors.FromDomain(err)
	}

	return dto.MapListingToDTO(&listing), nil
}

func (e *executor) GetListings(ctx context.Context, limit *uint8, offset *uint64) (*dto.ListingListResponse, error) {
	// Use defaults if not provided
	if limit == nil {
		defaultLimit := constants.DEFAULT_LISTINGS_LIMIT
		limit = &defaultLimit
	}
	if offset == nil {
		defaultOffset := constants.DEFAULT_OFFSET
		offset = &defaultOffset
	}

	listings := e.svc.Listings()
	total := uint64(len(listings))
	page := paginate(listings, *offset, *limit)

	listingDTOs := make([]dto.ListingResponse, len(page))
	for i := range page {
		listingDTOs[i] = *dto.MapListingToDTO(&page[i])
	}

	var nextOffset *uint64
	if *offset+uint64(len(page)) < total { //nolint:gosec,G115
		offsetVal := *offset + uint64(len(page))
		nextOffset = &offsetVal
	}

	return &dto.ListingListResponse{
		Listings: listingDTOs,
		Offset:   nextOffset,
		Total:    total,
	}, nil
}

func (e *executor) MakeOffer(ctx context.Context, caller domain.Identity, tokenID domain.TokenID, amount int64) (*dto.OfferResponse, error) {
	index, err := e.svc.MakeOffer(ctx, caller, tokenID, amount)
	if err != nil {
		return nil, apierrors.FromDomain(err)
	}

	return &dto.OfferResponse{
		TokenID: tokenID.String(),
		Index:   index,
		Offerer: caller.String(),
		Amount:  amount,
		Active:  true,
	}, nil
}

func (e *executor) GetOffers(ctx context.Context, tokenID domain.TokenID) (*dto.OfferListResponse, error) {
	// Unknown tokens read as not found, not as an empty offer list
	if _, err := e.svc.Token(tokenID); err != nil {
		return nil, apierrors.FromDomain(err)
	}

	offers := e.svc.Offers(tokenID)

	offerDTOs := make([]dto.OfferResponse, len(offers))
	for i := range offers {
		offerDTOs[i] = *dto.MapOfferToDTO(tokenID, i, &offers[i])
	}

	return &dto.OfferListResponse{
		Offers: offerDTOs,
		Total:  uint64(len(offers)),
	}, nil
}

func (e *executor) AcceptOffer(ctx context.Context, caller domain.Identity, tokenID domain.TokenID, offerIndex int) (*dto.TokenResponse, error) {
	if err := e.svc.AcceptOffer(ctx, caller, tokenID, offerIndex); err != nil {
		return nil, apierrors.FromDomain(err)
	}

	return e.tokenDTO(tokenID)
}

func (e *executor) RejectOffer(ctx context.Context, caller domain.Identity, tokenID domain.TokenID, offerIndex int) error {
	if err := e.svc.RejectOffer(ctx, caller, tokenID, offerIndex); err != nil {
		return apierrors.FromDomain(err)
	}
	return nil
}

func (e *executor) WithdrawOffer(ctx context.Context, caller domain.Identity, tokenID domain.TokenID, offerIndex int) (*dto.OfferWithdrawalResponse, error) {
	refunded, err := e.svc.WithdrawOffer(ctx, caller, tokenID, offerIndex)
	if err != nil {
		return nil, apierrors.FromDomain(err)
	}

	return &dto.OfferWithdrawalResponse{
		TokenID:  tokenID.String(),
		Index:    offerIndex,
		Refunded: refunded,
	}, nil
}

func (e *executor) Withdraw(ctx context.Context, caller domain.Identity) (*dto.WithdrawalResponse, error) {
	amount, err := e.svc.Withdraw(ctx, caller)
	if err != nil {
		return nil, apierrors.FromDomain(err)
	}

	return &dto.WithdrawalResponse{
		Account: caller.String(),
		Amount:  amount,
	}, nil
}

func (e *executor) CreateWebhookClient(ctx context.Context, webhookURL string, eventFilters []string, retryMaxAttempts int) (*dto.CreateWebhookClientResponse, error) {
	secret := make([]byte, constants.WEBHOOK_SECRET_BYTES)
	if _, err := rand.Read(secret); err != nil {
		return nil, apierrors.NewInternalError(fmt.Sprintf("Failed to generate webhook secret: %v", err))
	}

	client, err := e.store.CreateWebhookClient(ctx, store.CreateWebhookClientInput{
		ClientID:         uuid.NewString(),
		WebhookURL:       webhookURL,
		WebhookSecret:    hex.EncodeToString(secret),
		EventFilters:     eventFilters,
		IsActive:         true,
		RetryMaxAttempts: retryMaxAttempts,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create webhook client: %v", err))
	}

	return &dto.CreateWebhookClientResponse{
		ClientID:         client.ClientID,
		WebhookURL:       client.WebhookURL,
		WebhookSecret:    client.WebhookSecret,
		EventFilters:     eventFilters,
		IsActive:         client.IsActive,
		RetryMaxAttempts: client.RetryMaxAttempts,
		CreatedAt:        client.CreatedAt,
		UpdatedAt:        client.UpdatedAt,
	}, nil
}

func (e *executor) DeactivateWebhookClient(ctx context.Context, clientID string) error {
	client, err := e.store.GetWebhookClientByID(ctx, clientID)
	if err != nil {
		return apierrors.NewDatabaseError(fmt.Sprintf("Failed to get webhook client: %v", err))
	}
	if client == nil {
		return apierrors.NewNotFoundError("Webhook client not found")
	}

	if err := e.store.SetWebhookClientActive(ctx, clientID, false); err != nil {
		return apierrors.NewDatabaseError(fmt.Sprintf("Failed to deactivate webhook client: %v", err))
	}

	return nil
}

func (e *executor) ListWebhookClients(ctx context.Context) (*dto.WebhookClientListResponse, error) {
	clients, err := e.store.ListWebhookClients(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list webhook clients: %v", err))
	}

	clientDTOs := make([]dto.WebhookClientResponse, len(clients))
	for i := range clients {
		clientDTOs[i] = *dto.MapWebhookClientToDTO(clients[i])
	}

	return &dto.WebhookClientListResponse{
		Clients: clientDTOs,
		Total:   uint64(len(clients)),
	}, nil
}

func (e *executor) SuspendAccount(ctx context.Context, account domain.Identity, reason string) (*dto.SuspensionResponse, error) {
	if err := e.svc.SuspendAccount(ctx, account, reason); err != nil {
		return nil, apierrors.FromDomain(err)
	}

	return &dto.SuspensionResponse{
		Account: account.String(),
		Reason:  reason,
	}, nil
}

func (e *executor) LiftSuspension(ctx context.Context, account domain.Identity) error {
	if err := e.svc.LiftSuspension(ctx, account); err != nil {
		return apierrors.FromDomain(err)
	}
	return nil
}

// tokenDTO assembles the read-model response for a token
func (e *executor) tokenDTO(tokenID domain.TokenID) (*dto.TokenResponse, error) {
	token, err := e.svc.Token(tokenID)
	if err != nil {
		return nil, apierrors.FromDomain(err)
	}

	return dto.MapTokenToDTO(&token), nil
}

// paginate slices one page out of the full in-memory result set
func paginate[T any](items []T, offset uint64, limit uint8) []T {
	total := uint64(len(items))
	start := offset
	if start > total {
		start = total
	}
	end := start + uint64(limit)
	if end > total {
		end = total
	}
	return items[start:end]
}
