package ledger

import (
	"fmt"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// Apply mutates the state by one event. It is the only mutation path: live
// commits and journal replay both go through here, so the two can never
// disagree. Events staged from a valid state always apply cleanly; an error
// therefore means the journal and the state have diverged, which is fatal
// for the caller.
func (s *State) Apply(ev domain.LedgerEvent) error {
	switch ev.Type {
	case domain.EventArtworkCreated:
		return s.applyArtworkCreated(ev)
	case domain.EventTokenMinted, domain.EventLicenseMinted:
		return s.applyMint(ev)
	case domain.EventCopyrightTransferred, domain.EventLicenseTransferred:
		return s.applyTransfer(ev)
	case domain.EventListingCreated:
		return s.applyListingCreated(ev)
	case domain.EventListingCancelled:
		return s.applyListingCancelled(ev)
	case domain.EventOfferMade:
		return s.applyOfferMade(ev)
	case domain.EventOfferAccepted, domain.EventOfferRejected,
		domain.EventOfferRefundQueued, domain.EventOfferWithdrawn:
		return s.applyOfferSettled(ev)
	case domain.EventWithdrawalCompleted:
		return s.applyWithdrawal(ev)
	default:
		return fmt.Errorf("apply: unknown event type %q", ev.Type)
	}
}

// ApplyAll applies a committed batch in order.
func (s *State) ApplyAll(events []domain.LedgerEvent) error {
	for _, ev := range events {
		if err := s.Apply(ev); err != nil {
			return err
		}
	}
	return nil
}

func (s *State) applyArtworkCreated(ev domain.LedgerEvent) error {
	if _, exists := s.artworks[ev.ArtworkID]; exists {
		return fmt.Errorf("apply %s: artwork %s already exists", ev.Type, ev.ArtworkID)
	}

	s.artworks[ev.ArtworkID] = &domain.Artwork{
		ID:                  ev.ArtworkID,
		OriginalMinter:      ev.Actor,
		MetadataURI:         ev.MetadataURI,
		MetadataFingerprint: ev.MetadataFingerprint,
		PreviewMIME:         ev.PreviewMIME,
		CreatedAt:           ev.Timestamp,
	}
	if ev.ArtworkID >= s.nextArtworkID {
		s.nextArtworkID = ev.ArtworkID + 1
	}
	return nil
}

func (s *State) applyMint(ev domain.LedgerEvent) error {
	if ev.TokenID == nil || ev.Rights == nil {
		return fmt.Errorf("apply %s: missing token id or rights type", ev.Type)
	}
	token := *ev.TokenID
	if _, exists := s.owners[token]; exists {
		return fmt.Errorf("apply %s: token %s already minted", ev.Type, token)
	}
	art, ok := s.artworks[ev.ArtworkID]
	if !ok {
		return fmt.Errorf("apply %s: artwork %s not registered", ev.Type, ev.ArtworkID)
	}

	originalGrant := true
	if ev.OriginalGrant != nil {
		originalGrant = *ev.OriginalGrant
	}

	s.owners[token] = ev.To
	s.licenses[token] = &domain.LicenseInfo{
		TokenID:       token,
		ArtworkID:     ev.ArtworkID,
		Rights:        *ev.Rights,
		InstanceID:    ev.InstanceID,
		OriginalGrant: originalGrant,
	}
	s.holdings.add(ev.To, token)

	// instance numbers are allocated sequentially, so the counter follows
	switch *ev.Rights {
	case domain.RightsCommercial:
		art.CommercialCount = ev.InstanceID
	case domain.RightsDisplay:
		art.DisplayCount = ev.InstanceID
	}
	return nil
}

func (s *State) applyTransfer(ev domain.LedgerEvent) error {
	if ev.TokenID == nil {
		return fmt.Errorf("apply %s: missing token id", ev.Type)
	}
	token := *ev.TokenID
	owner, ok := s.owners[token]
	if !ok {
		return fmt.Errorf("apply %s: token %s not minted", ev.Type, token)
	}
	if owner != ev.From {
		return fmt.Errorf("apply %s: token %s held by %s, not %s", ev.Type, token, owner, ev.From)
	}

	s.owners[token] = ev.To
	s.holdings.move(ev.From, ev.To, token)

	lic := s.licenses[token]
	lic.TransferCount++
	if ev.Type == domain.EventCopyrightTransferred {
		s.artworks[lic.ArtworkID].CopyrightTransferred = true
	}
	return nil
}

func (s *State) applyListingCreated(ev domain.LedgerEvent) error {
	if ev.TokenID == nil {
		return fmt.Errorf("apply %s: missing token id", ev.Type)
	}
	token := *ev.TokenID
	if _, listed := s.listings[token]; listed {
		return fmt.Errorf("apply %s: token %s already listed", ev.Type, token)
	}

	s.listings[token] = &domain.Listing{
		TokenID:   token,
		Seller:    ev.Actor,
		Price:     ev.Price,
		Active:    true,
		CreatedAt: ev.Timestamp,
	}
	s.listingPos[token] = len(s.activeList)
	s.activeList = append(s.activeList, token)
	return nil
}

func (s *State) applyListingCancelled(ev domain.LedgerEvent) error {
	if ev.TokenID == nil {
		return fmt.Errorf("apply %s: missing token id", ev.Type)
	}
	token := *ev.TokenID
	if _, listed := s.listings[token]; !listed {
		return fmt.Errorf("apply %s: token %s not listed", ev.Type, token)
	}

	pos := s.listingPos[token]
	last := len(s.activeList) - 1
	if pos != last {
		moved := s.activeList[last]
		s.activeList[pos] = moved
		s.listingPos[moved] = pos
	}
	s.activeList = s.activeList[:last]
	delete(s.listingPos, token)
	delete(s.listings, token)
	return nil
}

func (s *State) applyOfferMade(ev domain.LedgerEvent) error {
	if ev.TokenID == nil || ev.OfferIndex == nil {
		return fmt.Errorf("apply %s: missing token id or offer index", ev.Type)
	}
	token := *ev.TokenID
	if *ev.OfferIndex != len(s.offers[token]) {
		return fmt.Errorf("apply %s: offer index %d does not extend token %s history", ev.Type, *ev.OfferIndex, token)
	}

	s.offers[token] = append(s.offers[token], domain.Offer{
		Offerer: ev.Offerer,
		Amount:  ev.Amount,
		Active:  true,
	})
	return nil
}

func (s *State) applyOfferSettled(ev domain.LedgerEvent) error {
	if ev.TokenID == nil || ev.OfferIndex == nil {
		return fmt.Errorf("apply %s: missing token id or offer index", ev.Type)
	}
	token := *ev.TokenID
	offers := s.offers[token]
	index := *ev.OfferIndex
	if index < 0 || index >= len(offers) {
		return fmt.Errorf("apply %s: offer index %d out of range for token %s", ev.Type, index, token)
	}
	if !offers[index].Active {
		return fmt.Errorf("apply %s: offer %d on token %s already settled", ev.Type, index, token)
	}

	offers[index].Active = false

	// rejected and refund-queued escrow turns into a pull-based credit; an
	// accepted or withdrawn offer's escrow leaves through the gateway instead
	if ev.Type == domain.EventOfferRejected || ev.Type == domain.EventOfferRefundQueued {
		s.pending[ev.Offerer] += ev.Amount
	}
	return nil
}

func (s *State) applyWithdrawal(ev domain.LedgerEvent) error {
	balance := s.pending[ev.To]
	if balance != ev.Amount {
		return fmt.Errorf("apply %s: pending balance of %s is %d, event drains %d", ev.Type, ev.To, balance, ev.Amount)
	}
	delete(s.pending, ev.To)
	return nil
}
