package executor_test

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-rights-ledger/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-rights-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-rights-ledger/internal/api/shared/executor"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/ledger"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/metadata"
	"github.com/feral-file/ff-rights-ledger/internal/mocks"
	"github.com/feral-file/ff-rights-ledger/internal/store"
	"github.com/feral-file/ff-rights-ledger/internal/store/schema"
)

var (
	alice = domain.Identity("did:key:alice")
	bob   = domain.Identity("did:key:bob")
	carol = domain.Identity("did:key:carol")
)

// testExecutorMocks contains the mocks and a live ledger service behind the executor
type testExecutorMocks struct {
	t        *testing.T
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	gateway  *mocks.MockPaymentGateway
	deriver  *mocks.MockMetadataDeriver
	svc      *ledger.Service
	executor executor.Executor
}

// setupTestExecutor bootstraps an empty ledger and wires the executor over it.
// Commit plumbing expectations are registered loosely; the ledger tests cover
// commit behavior in detail.
func setupTestExecutor(t *testing.T) *testExecutorMocks {
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	tm := &testExecutorMocks{
		t:       t,
		ctrl:    ctrl,
		store:   mocks.NewMockStore(ctrl),
		gateway: mocks.NewMockPaymentGateway(ctrl),
		deriver: mocks.NewMockMetadataDeriver(ctrl),
	}

	publisher := mocks.NewMockPublisher(ctrl)
	clock := mocks.NewMockClock(ctrl)

	tm.svc = ledger.NewService(tm.store, tm.gateway, publisher, clock)

	tm.store.EXPECT().
		ReplayEvents(gomock.Any(), uint64(0), gomock.Any(), gomock.Any()).
		Return(nil)
	tm.store.EXPECT().GetLastEventSeq(gomock.Any()).Return(uint64(0), nil)
	tm.store.EXPECT().GetActiveSuspensions(gomock.Any()).Return(nil, nil)
	require.NoError(t, tm.svc.Bootstrap(context.Background()))

	clock.EXPECT().Now().Return(time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)).AnyTimes()
	tm.store.EXPECT().AppendEvents(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tm.executor = executor.NewExecutor(tm.svc, tm.store, tm.deriver)

	return tm
}

// createArtwork registers an artwork for alice through the executor
func (tm *testExecutorMocks) createArtwork(metadataURI string) *dto.ArtworkResponse {
	tm.deriver.EXPECT().
		Derive(metadataURI, "").
		Return(&metadata.Derived{Fingerprint: "fp-" + metadataURI}, nil)

	resp, err := tm.executor.CreateArtwork(context.Background(), alice, metadataURI, "")
	require.NoError(tm.t, err)
	return resp
}

// mintLicense mints a license for the artwork to the recipient
func (tm *testExecutorMocks) mintLicense(artworkID uint64, rights domain.RightsType, to domain.Identity) *dto.TokenResponse {
	resp, err := tm.executor.MintLicense(context.Background(), alice, domain.ArtworkID(artworkID), rights, to)
	require.NoError(tm.t, err)
	return resp
}

func apiErrorCode(t *testing.T, err error) apierrors.ErrorCode {
	t.Helper()
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Code
}

func TestExecutorCreateArtwork(t *testing.T) {
	t.Run("derives metadata before registering", func(t *testing.T) {
		tm := setupTestExecutor(t)

		tm.deriver.EXPECT().
			Derive(`{"name":"Dawn Chorus"}`, "data:image/png;base64,AAAA").
			Return(&metadata.Derived{Fingerprint: "fp-1", PreviewMIME: "image/png"}, nil)

		resp, err := tm.executor.CreateArtwork(context.Background(), alice, `{"name":"Dawn Chorus"}`, "data:image/png;base64,AAAA")
		require.NoError(t, err)

		assert.Equal(t, uint64(1), resp.ID)
		assert.Equal(t, alice.String(), resp.OriginalMinter)
		assert.Equal(t, "fp-1", resp.MetadataFingerprint)
		assert.Equal(t, "image/png", resp.PreviewMIME)
		assert.Equal(t, domain.CopyrightTokenID(1).String(), resp.CopyrightTokenID)
		assert.False(t, resp.CopyrightTransferred)
	})

	t.Run("maps preview rejections to validation errors", func(t *testing.T) {
		tm := setupTestExecutor(t)

		tm.deriver.EXPECT().
			Derive("ipfs://meta", "data:text/plain;base64,AAAA").
			Return(nil, fmt.Errorf("%w: unsupported mime type", domain.ErrInvalidPreview))

		_, err := tm.executor.CreateArtwork(context.Background(), alice, "ipfs://meta", "data:text/plain;base64,AAAA")
		assert.Equal(t, apierrors.ErrCodeValidationFailed, apiErrorCode(t, err))
	})
}

func TestExecutorMintLicense(t *testing.T) {
	tm := setupTestExecutor(t)
	art := tm.createArtwork("ipfs://meta")

	resp := tm.mintLicense(art.ID, domain.RightsCommercial, bob)

	assert.Equal(t, bob.String(), resp.Owner)
	assert.True(t, resp.Transferable)
	assert.Equal(t, art.ID, resp.License.ArtworkID)
	assert.Equal(t, "commercial", resp.License.RightsType)
	assert.Equal(t, uint64(1), resp.License.InstanceID)
	assert.False(t, resp.License.ResaleUsed)
}

func TestExecutorTransferCopyright(t *testing.T) {
	tm := setupTestExecutor(t)
	art := tm.createArtwork("ipfs://meta")

	resp, err := tm.executor.TransferCopyright(context.Background(), alice, domain.ArtworkID(art.ID), bob, domain.RetainDisplay)
	require.NoError(t, err)

	assert.True(t, resp.Artwork.CopyrightTransferred)
	require.NotNil(t, resp.RetainedToken)
	assert.Equal(t, alice.String(), resp.RetainedToken.Owner)
	assert.Equal(t, "display", resp.RetainedToken.License.RightsType)

	// without retention the retained token is omitted
	tm2 := setupTestExecutor(t)
	art2 := tm2.createArtwork("ipfs://meta-2")

	resp2, err := tm2.executor.TransferCopyright(context.Background(), alice, domain.ArtworkID(art2.ID), bob, domain.RetainNone)
	require.NoError(t, err)
	assert.Nil(t, resp2.RetainedToken)
}

func TestExecutorGetTokenHistory(t *testing.T) {
	t.Run("applies defaults and filters by token", func(t *testing.T) {
		tm := setupTestExecutor(t)
		art := tm.createArtwork("ipfs://meta")
		token := tm.mintLicense(art.ID, domain.RightsDisplay, bob)

		tm.store.EXPECT().
			GetEvents(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter store.EventQueryFilter) ([]*schema.LedgerEvent, uint64, error) {
				require.NotNil(t, filter.TokenID)
				assert.Equal(t, token.ID, *filter.TokenID)
				assert.Equal(t, 50, filter.Limit)
				assert.Equal(t, uint64(0), filter.Offset)
				assert.False(t, filter.OrderDesc)
				return []*schema.LedgerEvent{
					{Seq: 2, EventID: "01K3F8ZJ0000000000000002AB", EventType: "license.minted", Actor: alice.String(), Payload: datatypes.JSON([]byte(`{}`))},
				}, 1, nil
			})

		tokenID, err := domain.ParseTokenID(token.ID)
		require.NoError(t, err)

		resp, err := tm.executor.GetTokenHistory(context.Background(), tokenID, nil, nil, nil)
		require.NoError(t, err)

		require.Len(t, resp.Events, 1)
		assert.Equal(t, "license.minted", resp.Events[0].EventType)
		assert.Equal(t, uint64(1), resp.Total)
		assert.Nil(t, resp.Offset)
	})

	t.Run("unknown tokens are not found", func(t *testing.T) {
		tm := setupTestExecutor(t)

		_, err := tm.executor.GetTokenHistory(context.Background(), domain.CopyrightTokenID(42), nil, nil, nil)
		assert.Equal(t, apierrors.ErrCodeNotFound, apiErrorCode(t, err))
	})

	t.Run("reports the next offset when more pages remain", func(t *testing.T) {
		tm := setupTestExecutor(t)
		art := tm.createArtwork("ipfs://meta")
		token := tm.mintLicense(art.ID, domain.RightsDisplay, bob)

		tm.store.EXPECT().
			GetEvents(gomock.Any(), gomock.Any()).
			Return([]*schema.LedgerEvent{
				{Seq: 1, EventID: "01K3F8ZJ0000000000000001AB", EventType: "artwork.created", Actor: alice.String(), Payload: datatypes.JSON([]byte(`{}`))},
				{Seq: 2, EventID: "01K3F8ZJ0000000000000002AB", EventType: "token.minted", Actor: alice.String(), Payload: datatypes.JSON([]byte(`{}`))},
			}, uint64(5), nil)

		tokenID, err := domain.ParseTokenID(token.ID)
		require.NoError(t, err)

		limit := uint8(2)
		resp, err := tm.executor.GetTokenHistory(context.Background(), tokenID, &limit, nil, nil)
		require.NoError(t, err)

		require.NotNil(t, resp.Offset)
		assert.Equal(t, uint64(2), *resp.Offset)
		assert.Equal(t, uint64(5), resp.Total)
	})

	t.Run("wraps store failures as database errors", func(t *testing.T) {
		tm := setupTestExecutor(t)
		art := tm.createArtwork("ipfs://meta")
		token := tm.mintLicense(art.ID, domain.RightsDisplay, bob)

		tm.store.EXPECT().
			GetEvents(gomock.Any(), gomock.Any()).
			Return(nil, uint64(0), errors.New("connection refused"))

		tokenID, err := domain.ParseTokenID(token.ID)
		require.NoError(t, err)

		_, err = tm.executor.GetTokenHistory(context.Background(), tokenID, nil, nil, nil)
		assert.Equal(t, apierrors.ErrCodeDatabaseError, apiErrorCode(t, err))
	})
}

func TestExecutorGetAccountTokens(t *testing.T) {
	tm := setupTestExecutor(t)
	art := tm.createArtwork("ipfs://meta")
	tm.mintLicense(art.ID, domain.RightsCommercial, bob)
	tm.mintLicense(art.ID, domain.RightsDisplay, bob)

	// full page, sorted ascending by token ID
	resp, err := tm.executor.GetAccountTokens(context.Background(), bob, nil, nil)
	require.NoError(t, err)
	require.Len(t, resp.Tokens, 2)
	assert.Equal(t, uint64(2), resp.Total)
	assert.Less(t, resp.Tokens[0].ID, resp.Tokens[1].ID)
	assert.Nil(t, resp.Offset)

	// first page of one
	limit := uint8(1)
	first, err := tm.executor.GetAccountTokens(context.Background(), bob, &limit, nil)
	require.NoError(t, err)
	require.Len(t, first.Tokens, 1)
	require.NotNil(t, first.Offset)
	assert.Equal(t, uint64(1), *first.Offset)

	// second page resumes where the first ended
	second, err := tm.executor.GetAccountTokens(context.Background(), bob, &limit, first.Offset)
	require.NoError(t, err)
	require.Len(t, second.Tokens, 1)
	assert.Nil(t, second.Offset)
	assert.NotEqual(t, first.Tokens[0].ID, second.Tokens[0].ID)

	// accounts with no holdings read as an empty page
	empty, err := tm.executor.GetAccountTokens(context.Background(), carol, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Tokens)
	assert.Equal(t, uint64(0), empty.Total)
}

func TestExecutorMarketFlow(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()

	art := tm.createArtwork("ipfs://meta")
	token := tm.mintLicense(art.ID, domain.RightsCommercial, bob)
	tokenID, err := domain.ParseTokenID(token.ID)
	require.NoError(t, err)

	// bob lists the license
	listing, err := tm.executor.CreateListing(ctx, bob, tokenID, 2500)
	require.NoError(t, err)
	assert.Equal(t, token.ID, listing.TokenID)
	assert.Equal(t, bob.String(), listing.Seller)
	assert.Equal(t, int64(2500), listing.Price)

	listings, err := tm.executor.GetListings(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, listings.Listings, 1)
	assert.Equal(t, uint64(1), listings.Total)

	// carol's offer is escrowed on the spot
	tm.gateway.EXPECT().Collect(gomock.Any(), carol, int64(2000), gomock.Any()).Return(nil)
	offer, err := tm.executor.MakeOffer(ctx, carol, tokenID, 2000)
	require.NoError(t, err)
	assert.Equal(t, 0, offer.Index)
	assert.True(t, offer.Active)

	// bob accepts and is paid the offer amount
	tm.gateway.EXPECT().Pay(gomock.Any(), bob, int64(2000), gomock.Any()).Return(nil)
	settled, err := tm.executor.AcceptOffer(ctx, bob, tokenID, 0)
	require.NoError(t, err)
	assert.Equal(t, carol.String(), settled.Owner)
	assert.True(t, settled.License.ResaleUsed)

	// the settled offer stays in the list as an inactive entry
	offers, err := tm.executor.GetOffers(ctx, tokenID)
	require.NoError(t, err)
	require.Len(t, offers.Offers, 1)
	assert.False(t, offers.Offers[0].Active)

	// the listing is gone
	_, err = tm.executor.GetListing(ctx, tokenID)
	assert.Equal(t, apierrors.ErrCodeNotFound, apiErrorCode(t, err))
}

func TestExecutorWithdrawOffer(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()

	art := tm.createArtwork("ipfs://meta")
	token := tm.mintLicense(art.ID, domain.RightsCommercial, bob)
	tokenID, err := domain.ParseTokenID(token.ID)
	require.NoError(t, err)

	_, err = tm.executor.CreateListing(ctx, bob, tokenID, 1000)
	require.NoError(t, err)

	tm.gateway.EXPECT().Collect(gomock.Any(), carol, int64(800), gomock.Any()).Return(nil)
	offer, err := tm.executor.MakeOffer(ctx, carol, tokenID, 800)
	require.NoError(t, err)

	// withdrawing pays the escrow straight back
	tm.gateway.EXPECT().Pay(gomock.Any(), carol, int64(800), gomock.Any()).Return(nil)
	resp, err := tm.executor.WithdrawOffer(ctx, carol, tokenID, offer.Index)
	require.NoError(t, err)
	assert.Equal(t, int64(800), resp.Refunded)

	// a second withdrawal of the same offer conflicts
	_, err = tm.executor.WithdrawOffer(ctx, carol, tokenID, offer.Index)
	assert.Equal(t, apierrors.ErrCodeConflict, apiErrorCode(t, err))
}

func TestExecutorWithdraw(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()

	// nothing queued yet
	_, err := tm.executor.Withdraw(ctx, carol)
	assert.Equal(t, apierrors.ErrCodeConflict, apiErrorCode(t, err))

	// reject an offer to queue carol's refund
	art := tm.createArtwork("ipfs://meta")
	token := tm.mintLicense(art.ID, domain.RightsCommercial, bob)
	tokenID, err := domain.ParseTokenID(token.ID)
	require.NoError(t, err)

	_, err = tm.executor.CreateListing(ctx, bob, tokenID, 1000)
	require.NoError(t, err)

	tm.gateway.EXPECT().Collect(gomock.Any(), carol, int64(600), gomock.Any()).Return(nil)
	offer, err := tm.executor.MakeOffer(ctx, carol, tokenID, 600)
	require.NoError(t, err)
	require.NoError(t, tm.executor.RejectOffer(ctx, bob, tokenID, offer.Index))

	balance, err := tm.executor.GetAccountBalance(ctx, carol)
	require.NoError(t, err)
	assert.Equal(t, int64(600), balance.Pending)

	tm.gateway.EXPECT().Pay(gomock.Any(), carol, int64(600), gomock.Any()).Return(nil)
	resp, err := tm.executor.Withdraw(ctx, carol)
	require.NoError(t, err)
	assert.Equal(t, int64(600), resp.Amount)

	drained, err := tm.executor.GetAccountBalance(ctx, carol)
	require.NoError(t, err)
	assert.Equal(t, int64(0), drained.Pending)
}

func TestExecutorSuspensions(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()

	tm.store.EXPECT().SuspendAccount(gomock.Any(), bob.String(), "chargeback fraud").Return(nil)
	resp, err := tm.executor.SuspendAccount(ctx, bob, "chargeback fraud")
	require.NoError(t, err)
	assert.Equal(t, bob.String(), resp.Account)

	// a suspended caller cannot mint
	art := tm.createArtwork("ipfs://meta")
	_, err = tm.executor.MintLicense(ctx, bob, domain.ArtworkID(art.ID), domain.RightsDisplay, carol)
	assert.Equal(t, apierrors.ErrCodeForbidden, apiErrorCode(t, err))

	tm.store.EXPECT().LiftAccountSuspension(gomock.Any(), bob.String()).Return(nil)
	require.NoError(t, tm.executor.LiftSuspension(ctx, bob))

	// lifting an inactive suspension conflicts
	tm.store.EXPECT().
		LiftAccountSuspension(gomock.Any(), bob.String()).
		Return(domain.ErrAccountNotSuspended)
	err = tm.executor.LiftSuspension(ctx, bob)
	assert.Equal(t, apierrors.ErrCodeConflict, apiErrorCode(t, err))
}

func TestExecutorWebhookClients(t *testing.T) {
	t.Run("creates a client with a generated secret", func(t *testing.T) {
		tm := setupTestExecutor(t)

		var captured store.CreateWebhookClientInput
		tm.store.EXPECT().
			CreateWebhookClient(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input store.CreateWebhookClientInput) (*schema.WebhookClient, error) {
				captured = input
				return &schema.WebhookClient{
					ClientID:         input.ClientID,
					WebhookURL:       input.WebhookURL,
					WebhookSecret:    input.WebhookSecret,
					IsActive:         input.IsActive,
					RetryMaxAttempts: input.RetryMaxAttempts,
				}, nil
			})

		resp, err := tm.executor.CreateWebhookClient(context.Background(), "https://example.com/hooks", []string{"license.minted"}, 3)
		require.NoError(t, err)

		_, err = uuid.Parse(captured.ClientID)
		assert.NoError(t, err)

		secret, err := hex.DecodeString(captured.WebhookSecret)
		require.NoError(t, err)
		assert.Len(t, secret, 32)

		assert.True(t, captured.IsActive)
		assert.Equal(t, 3, captured.RetryMaxAttempts)

		// the secret is handed back exactly once, at creation
		assert.Equal(t, captured.WebhookSecret, resp.WebhookSecret)
	})

	t.Run("deactivates an existing client", func(t *testing.T) {
		tm := setupTestExecutor(t)

		tm.store.EXPECT().
			GetWebhookClientByID(gomock.Any(), "client-1").
			Return(&schema.WebhookClient{ClientID: "client-1"}, nil)
		tm.store.EXPECT().
			SetWebhookClientActive(gomock.Any(), "client-1", false).
			Return(nil)

		require.NoError(t, tm.executor.DeactivateWebhookClient(context.Background(), "client-1"))
	})

	t.Run("deactivating an unknown client is not found", func(t *testing.T) {
		tm := setupTestExecutor(t)

		tm.store.EXPECT().
			GetWebhookClientByID(gomock.Any(), "ghost").
			Return(nil, nil)

		err := tm.executor.DeactivateWebhookClient(context.Background(), "ghost")
		assert.Equal(t, apierrors.ErrCodeNotFound, apiErrorCode(t, err))
	})
}
