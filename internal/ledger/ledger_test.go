package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

const (
	alice = domain.Identity("did:key:alice")
	bob   = domain.Identity("did:key:bob")
	carol = domain.Identity("did:key:carol")
	dave  = domain.Identity("did:key:dave")
	eve   = domain.Identity("did:key:eve")
	frank = domain.Identity("did:key:frank")
	grace = domain.Identity("did:key:grace")
)

// harness drives staged operations straight into Apply, standing in for the
// service's commit loop, and records every applied event for replay checks.
type harness struct {
	t      *testing.T
	state  *State
	events []domain.LedgerEvent
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, state: NewState()}
}

func (h *harness) commit(events []domain.LedgerEvent, err error) []domain.LedgerEvent {
	require.NoError(h.t, err)
	require.NoError(h.t, h.state.ApplyAll(events))
	h.events = append(h.events, events...)
	return events
}

func (h *harness) createArtwork(caller domain.Identity, uri string) (domain.ArtworkID, domain.TokenID) {
	artworkID, tokenID, events, err := h.state.StageCreateArtwork(caller, ArtworkMeta{URI: uri})
	h.commit(events, err)
	return artworkID, tokenID
}

func (h *harness) mintLicense(caller domain.Identity, artworkID domain.ArtworkID, rights domain.RightsType, to domain.Identity) domain.TokenID {
	tokenID, events, err := h.state.StageMintLicense(caller, artworkID, rights, to)
	h.commit(events, err)
	return tokenID
}

func (h *harness) transfer(caller domain.Identity, token domain.TokenID, to domain.Identity) []domain.LedgerEvent {
	events, err := h.state.StageTransfer(caller, token, to)
	return h.commit(events, err)
}

func (h *harness) transferCopyright(caller domain.Identity, artworkID domain.ArtworkID, to domain.Identity, retain domain.Retention) []domain.LedgerEvent {
	events, err := h.state.StageTransferCopyrightWithRetention(caller, artworkID, to, retain)
	return h.commit(events, err)
}

func (h *harness) list(caller domain.Identity, token domain.TokenID, price int64) {
	events, err := h.state.StageListForSale(caller, token, price)
	h.commit(events, err)
}

func (h *harness) cancelListing(caller domain.Identity, token domain.TokenID) {
	events, err := h.state.StageCancelListing(caller, token)
	h.commit(events, err)
}

func (h *harness) makeOffer(caller domain.Identity, token domain.TokenID, amount int64) int {
	index, events, err := h.state.StageMakeOffer(caller, token, amount)
	h.commit(events, err)
	return index
}

func (h *harness) acceptOffer(caller domain.Identity, token domain.TokenID, index int) domain.Offer {
	offer, events, err := h.state.StageAcceptOffer(caller, token, index)
	h.commit(events, err)
	return offer
}

func (h *harness) rejectOffer(caller domain.Identity, token domain.TokenID, index int) {
	events, err := h.state.StageRejectOffer(caller, token, index)
	h.commit(events, err)
}

func (h *harness) withdrawOffer(caller domain.Identity, token domain.TokenID, index int) domain.Offer {
	offer, events, err := h.state.StageWithdrawOffer(caller, token, index)
	h.commit(events, err)
	return offer
}

func (h *harness) withdraw(caller domain.Identity) int64 {
	amount, events, err := h.state.StageWithdraw(caller)
	h.commit(events, err)
	return amount
}

func TestCreateArtwork(t *testing.T) {
	h := newHarness(t)

	artworkID, tokenID := h.createArtwork(alice, "ipfs://meta-1")
	assert.Equal(t, domain.ArtworkID(1), artworkID)
	assert.Equal(t, domain.CopyrightTokenID(1), tokenID)

	art, err := h.state.Artwork(artworkID)
	require.NoError(t, err)
	assert.Equal(t, alice, art.OriginalMinter)
	assert.Equal(t, "ipfs://meta-1", art.MetadataURI)
	assert.False(t, art.CopyrightTransferred)
	assert.Zero(t, art.CommercialCount)
	assert.Zero(t, art.DisplayCount)

	owner, err := h.state.OwnerOf(tokenID)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)
	assert.ElementsMatch(t, []domain.TokenID{tokenID}, h.state.OwnedTokens(alice))

	lic, err := h.state.License(tokenID)
	require.NoError(t, err)
	assert.Equal(t, domain.RightsCopyright, lic.Rights)
	assert.Zero(t, lic.InstanceID)

	// ids are sequential
	secondID, _ := h.createArtwork(bob, "ipfs://meta-2")
	assert.Equal(t, domain.ArtworkID(2), secondID)
}

func TestCreateArtworkZeroIdentity(t *testing.T) {
	s := NewState()
	_, _, _, err := s.StageCreateArtwork(domain.ZeroIdentity, ArtworkMeta{URI: "ipfs://meta"})
	assert.ErrorIs(t, err, domain.ErrZeroIdentity)
}

func TestMintLicense(t *testing.T) {
	h := newHarness(t)
	artworkID, _ := h.createArtwork(alice, "ipfs://meta")

	first := h.mintLicense(alice, artworkID, domain.RightsCommercial, bob)
	assert.Equal(t, domain.NewTokenID(artworkID, domain.RightsCommercial, 1), first)

	second := h.mintLicense(alice, artworkID, domain.RightsCommercial, carol)
	assert.Equal(t, domain.NewTokenID(artworkID, domain.RightsCommercial, 2), second)

	display := h.mintLicense(alice, artworkID, domain.RightsDisplay, bob)
	assert.Equal(t, domain.NewTokenID(artworkID, domain.RightsDisplay, 1), display)

	art, err := h.state.Artwork(artworkID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), art.CommercialCount)
	assert.Equal(t, uint64(1), art.DisplayCount)

	lic, err := h.state.License(first)
	require.NoError(t, err)
	assert.True(t, lic.OriginalGrant)
	assert.Equal(t, domain.RightsCommercial, lic.Rights)

	owner, err := h.state.OwnerOf(first)
	require.NoError(t, err)
	assert.Equal(t, bob, owner)
}

func TestMintLicenseValidation(t *testing.T) {
	h := newHarness(t)
	artworkID, _ := h.createArtwork(alice, "ipfs://meta")

	_, _, err := h.state.StageMintLicense(alice, artworkID, domain.RightsCopyright, bob)
	assert.ErrorIs(t, err, domain.ErrInvalidRightsType)

	_, _, err = h.state.StageMintLicense(alice, artworkID, domain.RightsType(9), bob)
	assert.ErrorIs(t, err, domain.ErrInvalidRightsType)

	_, _, err = h.state.StageMintLicense(alice, artworkID, domain.RightsCommercial, domain.ZeroIdentity)
	assert.ErrorIs(t, err, domain.ErrZeroIdentity)

	_, _, err = h.state.StageMintLicense(alice, 42, domain.RightsCommercial, bob)
	assert.ErrorIs(t, err, domain.ErrUnknownArtwork)

	_, _, err = h.state.StageMintLicense(bob, artworkID, domain.RightsCommercial, carol)
	assert.ErrorIs(t, err, domain.ErrNotCopyrightOwner)
}

func TestMintRightsFollowCopyrightToken(t *testing.T) {
	h := newHarness(t)
	artworkID, _ := h.createArtwork(alice, "ipfs://meta")
	h.transferCopyright(alice, artworkID, eve, domain.RetainNone)

	// the outgoing holder lost the mint right, the new holder gained it
	_, _, err := h.state.StageMintLicense(alice, artworkID, domain.RightsCommercial, bob)
	assert.ErrorIs(t, err, domain.ErrNotCopyrightOwner)

	token := h.mintLicense(eve, artworkID, domain.RightsCommercial, bob)
	lic, err := h.state.License(token)
	require.NoError(t, err)
	assert.True(t, lic.OriginalGrant)
}

func TestCopyrightTransfersExactlyOnce(t *testing.T) {
	h := newHarness(t)
	artworkID, copyrightToken := h.createArtwork(alice, "ipfs://meta")

	h.transfer(alice, copyrightToken, bob)

	art, err := h.state.Artwork(artworkID)
	require.NoError(t, err)
	assert.True(t, art.CopyrightTransferred)

	// every further attempt fails, regardless of holder
	_, err = h.state.StageTransfer(bob, copyrightToken, carol)
	assert.ErrorIs(t, err, domain.ErrCopyrightAlreadyTransferred)

	_, err = h.state.StageTransferCopyrightWithRetention(bob, artworkID, carol, domain.RetainNone)
	assert.ErrorIs(t, err, domain.ErrCopyrightAlreadyTransferred)

	ok, err := h.state.CanTransfer(copyrightToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOriginalGrantResellsWithoutLimit(t *testing.T) {
	h := newHarness(t)
	artworkID, _ := h.createArtwork(alice, "ipfs://meta")
	token := h.mintLicense(alice, artworkID, domain.RightsCommercial, bob)

	holders := []domain.Identity{carol, dave, eve, frank, grace}
	from := bob
	for _, to := range holders {
		h.transfer(from, token, to)
		from = to
	}

	owner, err := h.state.OwnerOf(token)
	require.NoError(t, err)
	assert.Equal(t, grace, owner)

	lic, err := h.state.License(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), lic.TransferCount)

	ok, err := h.state.CanTransfer(token)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRetainedLicenseResellsOnce(t *testing.T) {
	h := newHarness(t)
	artworkID, _ := h.createArtwork(alice, "ipfs://meta")
	h.transferCopyright(alice, artworkID, eve, domain.RetainCommercial)

	retained := domain.NewTokenID(artworkID, domain.RightsCommercial, 1)
	owner, err := h.state.OwnerOf(retained)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)

	lic, err := h.state.License(retained)
	require.NoError(t, err)
	assert.False(t, lic.OriginalGrant)

	h.transfer(alice, retained, frank)

	_, err = h.state.StageTransfer(frank, retained, grace)
	assert.ErrorIs(t, err, domain.ErrAlreadyResold)

	ok, err := h.state.CanTransfer(retained)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransferValidation(t *testing.T) {
	h := newHarness(t)
	artworkID, copyrightToken := h.createArtwork(alice, "ipfs://meta")
	token := h.mintLicense(alice, artworkID, domain.RightsDisplay, bob)

	_, err := h.state.StageTransfer(bob, token, domain.ZeroIdentity)
	assert.ErrorIs(t, err, domain.ErrZeroIdentity)

	_, err = h.state.StageTransfer(carol, token, dave)
	assert.ErrorIs(t, err, domain.ErrNotTokenOwner)

	unminted := domain.NewTokenID(artworkID, domain.RightsDisplay, 99)
	_, err = h.state.StageTransfer(bob, unminted, dave)
	assert.ErrorIs(t, err, domain.ErrNotTokenOwner)

	_, err = h.state.StageTransfer(bob, copyrightToken, dave)
	assert.ErrorIs(t, err, domain.ErrNotTokenOwner)
}

func TestTransferCopyrightWithRetentionValidation(t *testing.T) {
	h := newHarness(t)
	artworkID, _ := h.createArtwork(alice, "ipfs://meta")

	_, err := h.state.StageTransferCopyrightWithRetention(alice, artworkID, eve, domain.Retention("copyright"))
	assert.ErrorIs(t, err, domain.ErrInvalidRightsType)

	_, err = h.state.StageTransferCopyrightWithRetention(alice, artworkID, domain.ZeroIdentity, domain.RetainNone)
	assert.ErrorIs(t, err, domain.ErrZeroIdentity)

	_, err = h.state.StageTransferCopyrightWithRetention(alice, 42, eve, domain.RetainNone)
	assert.ErrorIs(t, err, domain.ErrUnknownArtwork)

	_, err = h.state.StageTransferCopyrightWithRetention(bob, artworkID, eve, domain.RetainNone)
	assert.ErrorIs(t, err, domain.ErrNotCopyrightOwner)
}

func TestWatermarkSurvivesCopyrightTransfers(t *testing.T) {
	h := newHarness(t)
	artworkID, _ := h.createArtwork(alice, "ipfs://meta")

	h.transferCopyright(alice, artworkID, eve, domain.RetainDisplay)

	art, err := h.state.Artwork(artworkID)
	require.NoError(t, err)
	assert.Equal(t, alice, art.OriginalMinter)
	assert.True(t, art.CopyrightTransferred)
}

func TestTokenURI(t *testing.T) {
	h := newHarness(t)
	artworkID, copyrightToken := h.createArtwork(alice, "ipfs://meta-1")

	uri, err := h.state.TokenURI(copyrightToken)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://meta-1", uri)

	// any token id of a registered artwork resolves, minted or not
	uri, err = h.state.TokenURI(domain.NewTokenID(artworkID, domain.RightsDisplay, 123))
	require.NoError(t, err)
	assert.Equal(t, "ipfs://meta-1", uri)

	_, err = h.state.TokenURI(domain.NewTokenID(42, domain.RightsCopyright, 0))
	assert.ErrorIs(t, err, domain.ErrUnknownArtwork)
}

func TestLifecycleScenario(t *testing.T) {
	h := newHarness(t)

	// Alice registers artwork A and receives its copyright token
	artworkID, t0 := h.createArtwork(alice, "ipfs://artwork-a")
	assert.Equal(t, domain.CopyrightTokenID(artworkID), t0)

	// Alice grants Bob a commercial license; it resells freely
	t1 := h.mintLicense(alice, artworkID, domain.RightsCommercial, bob)
	assert.Equal(t, domain.NewTokenID(artworkID, domain.RightsCommercial, 1), t1)

	h.transfer(bob, t1, carol)
	h.transfer(carol, t1, dave)
	owner, err := h.state.OwnerOf(t1)
	require.NoError(t, err)
	assert.Equal(t, dave, owner)

	// Alice sells the copyright to Eve, retaining a display license
	h.transferCopyright(alice, artworkID, eve, domain.RetainDisplay)

	t2 := domain.NewTokenID(artworkID, domain.RightsDisplay, 1)
	owner, err = h.state.OwnerOf(t2)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)

	lic, err := h.state.License(t2)
	require.NoError(t, err)
	assert.False(t, lic.OriginalGrant)

	owner, err = h.state.OwnerOf(t0)
	require.NoError(t, err)
	assert.Equal(t, eve, owner)

	art, err := h.state.Artwork(artworkID)
	require.NoError(t, err)
	assert.True(t, art.CopyrightTransferred)
	assert.Equal(t, alice, art.OriginalMinter)

	// the retained license survives exactly one resale
	h.transfer(alice, t2, frank)
	_, err = h.state.StageTransfer(frank, t2, grace)
	assert.ErrorIs(t, err, domain.ErrAlreadyResold)
}

func TestReplayReproducesState(t *testing.T) {
	h := newHarness(t)

	artworkID, copyrightToken := h.createArtwork(alice, "ipfs://meta")
	commercial := h.mintLicense(alice, artworkID, domain.RightsCommercial, bob)
	h.transfer(bob, commercial, carol)
	h.transferCopyright(alice, artworkID, eve, domain.RetainDisplay)

	h.list(carol, commercial, 500)
	h.makeOffer(dave, commercial, 100)
	h.makeOffer(frank, commercial, 150)
	h.rejectOffer(carol, commercial, 0)
	h.acceptOffer(carol, commercial, 1)
	h.withdraw(dave)

	replayed := NewState()
	require.NoError(t, replayed.ApplyAll(h.events))

	assertSameState(t, h.state, replayed,
		[]domain.TokenID{copyrightToken, commercial, domain.NewTokenID(artworkID, domain.RightsDisplay, 1)},
		[]domain.Identity{alice, bob, carol, dave, eve, frank},
	)
}

// assertSameState compares the observable surface of two states.
func assertSameState(t *testing.T, want, got *State, tokens []domain.TokenID, identities []domain.Identity) {
	t.Helper()

	require.Equal(t, want.ArtworkCount(), got.ArtworkCount())
	for _, id := range want.ArtworkIDs() {
		wantArt, err := want.Artwork(id)
		require.NoError(t, err)
		gotArt, err := got.Artwork(id)
		require.NoError(t, err)
		assert.Equal(t, wantArt, gotArt)
	}

	for _, token := range tokens {
		wantOwner, wantErr := want.OwnerOf(token)
		gotOwner, gotErr := got.OwnerOf(token)
		assert.Equal(t, wantErr, gotErr)
		assert.Equal(t, wantOwner, gotOwner)

		wantLic, wantErr := want.License(token)
		gotLic, gotErr := got.License(token)
		assert.Equal(t, wantErr, gotErr)
		assert.Equal(t, wantLic, gotLic)

		assert.Equal(t, want.Offers(token), got.Offers(token))

		wantListing, wantErr := want.ListingOf(token)
		gotListing, gotErr := got.ListingOf(token)
		assert.Equal(t, wantErr, gotErr)
		assert.Equal(t, wantListing, gotListing)
	}

	for _, identity := range identities {
		assert.ElementsMatch(t, want.OwnedTokens(identity), got.OwnedTokens(identity))
		assert.Equal(t, want.PendingBalance(identity), got.PendingBalance(identity))
	}

	assert.Equal(t, want.EscrowHeld(), got.EscrowHeld())
	assert.Equal(t, want.PendingTotal(), got.PendingTotal())
}

func TestHoldingsMatchOwnershipMap(t *testing.T) {
	h := newHarness(t)

	artworkID, copyrightToken := h.createArtwork(alice, "ipfs://meta")
	tokens := []domain.TokenID{copyrightToken}
	for i := 0; i < 4; i++ {
		tokens = append(tokens, h.mintLicense(alice, artworkID, domain.RightsCommercial, bob))
	}
	h.transfer(bob, tokens[1], carol)
	h.transfer(bob, tokens[2], carol)
	h.transfer(carol, tokens[1], dave)
	h.transferCopyright(alice, artworkID, eve, domain.RetainCommercial)

	expected := make(map[domain.Identity][]domain.TokenID)
	for token, owner := range h.state.owners {
		expected[owner] = append(expected[owner], token)
	}
	for owner, want := range expected {
		assert.ElementsMatch(t, want, h.state.OwnedTokens(owner), "holdings of %s", owner)
	}
	for _, identity := range []domain.Identity{alice, bob, carol, dave, eve} {
		if _, ok := expected[identity]; !ok {
			assert.Empty(t, h.state.OwnedTokens(identity))
		}
	}
}
