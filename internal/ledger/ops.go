package ledger

import (
	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// The Stage* operations validate an operation against the current state and
// return the events that describe it, without mutating anything. The caller
// must apply or discard a staged batch before staging the next operation;
// the service's write lock guarantees that.

// ArtworkMeta carries the derived metadata recorded at registration.
type ArtworkMeta struct {
	URI         string
	Fingerprint string
	PreviewMIME string
}

// StageCreateArtwork registers a new artwork for caller and mints its
// copyright token (instance 0) to caller.
func (s *State) StageCreateArtwork(caller domain.Identity, meta ArtworkMeta) (domain.ArtworkID, domain.TokenID, []domain.LedgerEvent, error) {
	if !caller.Valid() {
		return 0, domain.TokenID{}, nil, domain.ErrZeroIdentity
	}

	artworkID := s.nextArtworkID
	tokenID := domain.CopyrightTokenID(artworkID)

	events := []domain.LedgerEvent{
		{
			Type:                domain.EventArtworkCreated,
			Actor:               caller,
			ArtworkID:           artworkID,
			MetadataURI:         meta.URI,
			MetadataFingerprint: meta.Fingerprint,
			PreviewMIME:         meta.PreviewMIME,
		},
		{
			Type:      domain.EventTokenMinted,
			Actor:     caller,
			ArtworkID: artworkID,
			TokenID:   &tokenID,
			To:        caller,
			Rights:    domain.RightsCopyright.Ref(),
		},
	}
	return artworkID, tokenID, events, nil
}

// StageMintLicense mints a new license token of the given type to recipient.
// Only the artwork's current copyright holder may mint, and only license
// types are mintable.
func (s *State) StageMintLicense(caller domain.Identity, artworkID domain.ArtworkID, rights domain.RightsType, recipient domain.Identity) (domain.TokenID, []domain.LedgerEvent, error) {
	if !rights.License() {
		return domain.TokenID{}, nil, domain.ErrInvalidRightsType
	}
	if !recipient.Valid() {
		return domain.TokenID{}, nil, domain.ErrZeroIdentity
	}
	art, ok := s.artworks[artworkID]
	if !ok {
		return domain.TokenID{}, nil, domain.ErrUnknownArtwork
	}
	if s.copyrightHolder(artworkID) != caller {
		return domain.TokenID{}, nil, domain.ErrNotCopyrightOwner
	}

	instance := s.nextInstance(art, rights)
	tokenID := domain.NewTokenID(artworkID, rights, instance)

	events := []domain.LedgerEvent{{
		Type:          domain.EventLicenseMinted,
		Actor:         caller,
		ArtworkID:     artworkID,
		TokenID:       &tokenID,
		To:            recipient,
		Rights:        rights.Ref(),
		InstanceID:    instance,
		OriginalGrant: domain.BoolRef(true),
	}}
	return tokenID, events, nil
}

// StageTransfer moves a token between holders outside the marketplace
// settlement path. The transfer-restriction rule applies, and any active
// listing or offers on the token are cleaned up first so stale escrow never
// outlives an ownership change.
func (s *State) StageTransfer(caller domain.Identity, token domain.TokenID, to domain.Identity) ([]domain.LedgerEvent, error) {
	if !to.Valid() {
		return nil, domain.ErrZeroIdentity
	}
	owner, ok := s.owners[token]
	if !ok || owner != caller {
		return nil, domain.ErrNotTokenOwner
	}
	lic := s.licenses[token]
	if err := s.transferRule(lic); err != nil {
		return nil, err
	}

	events := s.stageOwnershipChangeCleanup(caller, token)
	events = append(events, s.stageTransferEvent(caller, lic, caller, to))
	return events, nil
}

// StageTransferCopyrightWithRetention sells the artwork's copyright to a new
// holder. When retain selects a license type, a license of that type is
// first minted to the outgoing holder with the original-grant flag cleared:
// rights retained through a copyright sale resell only once, unlike rights
// freshly granted by the new copyright owner.
func (s *State) StageTransferCopyrightWithRetention(caller domain.Identity, artworkID domain.ArtworkID, to domain.Identity, retain domain.Retention) ([]domain.LedgerEvent, error) {
	if !retain.Valid() {
		return nil, domain.ErrInvalidRightsType
	}
	if !to.Valid() {
		return nil, domain.ErrZeroIdentity
	}
	art, ok := s.artworks[artworkID]
	if !ok {
		return nil, domain.ErrUnknownArtwork
	}
	if s.copyrightHolder(artworkID) != caller {
		return nil, domain.ErrNotCopyrightOwner
	}
	if art.CopyrightTransferred {
		return nil, domain.ErrCopyrightAlreadyTransferred
	}

	var events []domain.LedgerEvent

	if rights, retained := retain.License(); retained {
		instance := s.nextInstance(art, rights)
		tokenID := domain.NewTokenID(artworkID, rights, instance)
		events = append(events, domain.LedgerEvent{
			Type:          domain.EventLicenseMinted,
			Actor:         caller,
			ArtworkID:     artworkID,
			TokenID:       &tokenID,
			To:            caller,
			Rights:        rights.Ref(),
			InstanceID:    instance,
			OriginalGrant: domain.BoolRef(false),
		})
	}

	copyrightToken := domain.CopyrightTokenID(artworkID)
	events = append(events, s.stageOwnershipChangeCleanup(caller, copyrightToken)...)
	events = append(events, s.stageTransferEvent(caller, s.licenses[copyrightToken], caller, to))
	return events, nil
}

// StageListForSale puts the caller's token on the market at askingPrice.
func (s *State) StageListForSale(caller domain.Identity, token domain.TokenID, askingPrice int64) ([]domain.LedgerEvent, error) {
	if askingPrice <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	owner, ok := s.owners[token]
	if !ok || owner != caller {
		return nil, domain.ErrNotTokenOwner
	}
	if _, listed := s.listings[token]; listed {
		return nil, domain.ErrAlreadyListed
	}

	return []domain.LedgerEvent{{
		Type:    domain.EventListingCreated,
		Actor:   caller,
		TokenID: &token,
		Price:   askingPrice,
	}}, nil
}

// StageCancelListing deactivates the caller's listing. Offers on the token
// are deliberately left untouched: settlement re-validates the listing, so
// they become settleable again only if the token is re-listed.
func (s *State) StageCancelListing(caller domain.Identity, token domain.TokenID) ([]domain.LedgerEvent, error) {
	owner, ok := s.owners[token]
	if !ok || owner != caller {
		return nil, domain.ErrNotTokenOwner
	}
	if _, listed := s.listings[token]; !listed {
		return nil, domain.ErrNotListed
	}

	return []domain.LedgerEvent{{
		Type:    domain.EventListingCancelled,
		Actor:   caller,
		TokenID: &token,
		Reason:  domain.CancelReasonCancelled,
	}}, nil
}

// StageMakeOffer records an escrowed offer on a listed token. The gateway
// collects the amount from the caller before the event commits. Self-offers
// are permitted.
func (s *State) StageMakeOffer(caller domain.Identity, token domain.TokenID, amount int64) (int, []domain.LedgerEvent, error) {
	if !caller.Valid() {
		return 0, nil, domain.ErrZeroIdentity
	}
	if _, listed := s.listings[token]; !listed {
		return 0, nil, domain.ErrNotListed
	}
	if amount <= 0 {
		return 0, nil, domain.ErrZeroAmount
	}

	index := len(s.offers[token])
	return index, []domain.LedgerEvent{{
		Type:       domain.EventOfferMade,
		Actor:      caller,
		TokenID:    &token,
		OfferIndex: domain.IntRef(index),
		Offerer:    caller,
		Amount:     amount,
	}}, nil
}

// StageAcceptOffer settles the listing against one active offer. Staged
// order is the settlement order: deactivate the accepted offer, queue every
// other active offer's escrow for its offerer to withdraw, remove the
// listing, then move the token. The seller is paid only after all of that
// commits; a failed payout aborts the whole batch.
func (s *State) StageAcceptOffer(caller domain.Identity, token domain.TokenID, offerIndex int) (domain.Offer, []domain.LedgerEvent, error) {
	owner, ok := s.owners[token]
	if !ok || owner != caller {
		return domain.Offer{}, nil, domain.ErrNotTokenOwner
	}
	if _, listed := s.listings[token]; !listed {
		return domain.Offer{}, nil, domain.ErrNotListed
	}
	offers := s.offers[token]
	if offerIndex < 0 || offerIndex >= len(offers) {
		return domain.Offer{}, nil, domain.ErrInvalidOfferIndex
	}
	accepted := offers[offerIndex]
	if !accepted.Active {
		return domain.Offer{}, nil, domain.ErrOfferNotActive
	}
	lic := s.licenses[token]
	if err := s.transferRule(lic); err != nil {
		return domain.Offer{}, nil, err
	}

	events := []domain.LedgerEvent{{
		Type:       domain.EventOfferAccepted,
		Actor:      caller,
		TokenID:    &token,
		OfferIndex: domain.IntRef(offerIndex),
		Offerer:    accepted.Offerer,
		Amount:     accepted.Amount,
		From:       caller,
		To:         accepted.Offerer,
	}}

	for i, offer := range offers {
		if i == offerIndex || !offer.Active {
			continue
		}
		events = append(events, domain.LedgerEvent{
			Type:       domain.EventOfferRefundQueued,
			Actor:      caller,
			TokenID:    &token,
			OfferIndex: domain.IntRef(i),
			Offerer:    offer.Offerer,
			Amount:     offer.Amount,
		})
	}

	events = append(events, domain.LedgerEvent{
		Type:    domain.EventListingCancelled,
		Actor:   caller,
		TokenID: &token,
		Reason:  domain.CancelReasonSold,
	})
	events = append(events, s.stageTransferEvent(caller, lic, caller, accepted.Offerer))
	return accepted, events, nil
}

// StageRejectOffer deactivates an offer and queues its escrow for the
// offerer to withdraw. The credit is pull-based because the owner, not the
// offerer, triggered the refund.
func (s *State) StageRejectOffer(caller domain.Identity, token domain.TokenID, offerIndex int) ([]domain.LedgerEvent, error) {
	owner, ok := s.owners[token]
	if !ok || owner != caller {
		return nil, domain.ErrNotTokenOwner
	}
	offers := s.offers[token]
	if offerIndex < 0 || offerIndex >= len(offers) {
		return nil, domain.ErrInvalidOfferIndex
	}
	offer := offers[offerIndex]
	if !offer.Active {
		return nil, domain.ErrOfferNotActive
	}

	return []domain.LedgerEvent{{
		Type:       domain.EventOfferRejected,
		Actor:      caller,
		TokenID:    &token,
		OfferIndex: domain.IntRef(offerIndex),
		Offerer:    offer.Offerer,
		Amount:     offer.Amount,
	}}, nil
}

// StageWithdrawOffer deactivates the caller's own offer. The escrow is paid
// straight back: the caller triggered a payment to themselves, so the
// pull-based detour is unnecessary.
func (s *State) StageWithdrawOffer(caller domain.Identity, token domain.TokenID, offerIndex int) (domain.Offer, []domain.LedgerEvent, error) {
	offers := s.offers[token]
	if offerIndex < 0 || offerIndex >= len(offers) {
		return domain.Offer{}, nil, domain.ErrInvalidOfferIndex
	}
	offer := offers[offerIndex]
	if offer.Offerer != caller {
		return domain.Offer{}, nil, domain.ErrNotOfferer
	}
	if !offer.Active {
		return domain.Offer{}, nil, domain.ErrOfferNotActive
	}

	return offer, []domain.LedgerEvent{{
		Type:       domain.EventOfferWithdrawn,
		Actor:      caller,
		TokenID:    &token,
		OfferIndex: domain.IntRef(offerIndex),
		Offerer:    caller,
		Amount:     offer.Amount,
	}}, nil
}

// StageWithdraw drains the caller's entire pending balance.
func (s *State) StageWithdraw(caller domain.Identity) (int64, []domain.LedgerEvent, error) {
	balance := s.pending[caller]
	if balance <= 0 {
		return 0, nil, domain.ErrNothingToWithdraw
	}

	return balance, []domain.LedgerEvent{{
		Type:   domain.EventWithdrawalCompleted,
		Actor:  caller,
		To:     caller,
		Amount: balance,
	}}, nil
}

// stageOwnershipChangeCleanup stages the listing cancellation and offer
// refunds required before any ownership change that bypasses marketplace
// settlement. Escrowed money must never stay bound to a token whose holder
// changed under it.
func (s *State) stageOwnershipChangeCleanup(actor domain.Identity, token domain.TokenID) []domain.LedgerEvent {
	var events []domain.LedgerEvent

	if _, listed := s.listings[token]; listed {
		events = append(events, domain.LedgerEvent{
			Type:    domain.EventListingCancelled,
			Actor:   actor,
			TokenID: &token,
			Reason:  domain.CancelReasonOwnershipChange,
		})
	}

	for i, offer := range s.offers[token] {
		if !offer.Active {
			continue
		}
		events = append(events, domain.LedgerEvent{
			Type:       domain.EventOfferRefundQueued,
			Actor:      actor,
			TokenID:    &token,
			OfferIndex: domain.IntRef(i),
			Offerer:    offer.Offerer,
			Amount:     offer.Amount,
		})
	}
	return events
}

// stageTransferEvent builds the ownership-change event for the token.
func (s *State) stageTransferEvent(actor domain.Identity, lic *domain.LicenseInfo, from, to domain.Identity) domain.LedgerEvent {
	token := lic.TokenID
	if lic.Rights == domain.RightsCopyright {
		return domain.LedgerEvent{
			Type:      domain.EventCopyrightTransferred,
			Actor:     actor,
			ArtworkID: lic.ArtworkID,
			TokenID:   &token,
			From:      from,
			To:        to,
		}
	}
	return domain.LedgerEvent{
		Type:          domain.EventLicenseTransferred,
		Actor:         actor,
		ArtworkID:     lic.ArtworkID,
		TokenID:       &token,
		From:          from,
		To:            to,
		FirstTransfer: domain.BoolRef(lic.TransferCount == 0),
	}
}

// nextInstance returns the instance number the next license of this type
// will receive.
func (s *State) nextInstance(art *domain.Artwork, rights domain.RightsType) uint64 {
	if rights == domain.RightsCommercial {
		return art.CommercialCount + 1
	}
	return art.DisplayCount + 1
}
