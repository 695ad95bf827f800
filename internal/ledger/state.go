// Package ledger implements the authoritative rights-ledger state machine:
// the artwork registry, the token-ownership map with its per-holder index,
// the transfer-restriction rules, and the escrow-based marketplace book.
//
// State is a plain in-memory structure and is not safe for concurrent use.
// Mutation happens exclusively through Apply; the public operations
// (CreateArtwork, Transfer, AcceptOffer, ...) validate against the current
// state and stage the events describing the transition without applying
// them. The owning service serializes operations, journals the staged
// events, applies them, and publishes them. A rejected or aborted operation
// therefore leaves no trace, and replaying the journal through Apply
// reproduces the state exactly.
package ledger

import (
	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// State is the complete in-memory rights ledger.
type State struct {
	artworks      map[domain.ArtworkID]*domain.Artwork
	nextArtworkID domain.ArtworkID

	owners   map[domain.TokenID]domain.Identity
	licenses map[domain.TokenID]*domain.LicenseInfo
	holdings *ownerIndex

	// listings holds active listings only; activeList plus listingPos give
	// them a stable iteration order with O(1) swap removal
	listings   map[domain.TokenID]*domain.Listing
	activeList []domain.TokenID
	listingPos map[domain.TokenID]int

	// offers is the append-only offer history per token; indexes are stable
	offers map[domain.TokenID][]domain.Offer

	// pending is the pull-based refund ledger
	pending map[domain.Identity]int64
}

// NewState returns an empty ledger. Artwork ids are allocated sequentially
// from 1.
func NewState() *State {
	return &State{
		artworks:      make(map[domain.ArtworkID]*domain.Artwork),
		nextArtworkID: 1,
		owners:        make(map[domain.TokenID]domain.Identity),
		licenses:      make(map[domain.TokenID]*domain.LicenseInfo),
		holdings:      newOwnerIndex(),
		listings:      make(map[domain.TokenID]*domain.Listing),
		listingPos:    make(map[domain.TokenID]int),
		offers:        make(map[domain.TokenID][]domain.Offer),
		pending:       make(map[domain.Identity]int64),
	}
}

// Artwork returns a copy of the artwork record.
func (s *State) Artwork(id domain.ArtworkID) (domain.Artwork, error) {
	art, ok := s.artworks[id]
	if !ok {
		return domain.Artwork{}, domain.ErrUnknownArtwork
	}
	return *art, nil
}

// ArtworkCount returns the number of registered artworks.
func (s *State) ArtworkCount() int {
	return len(s.artworks)
}

// TokenCount returns the number of minted tokens.
func (s *State) TokenCount() int {
	return len(s.owners)
}

// ArtworkIDs returns the ids of all registered artworks.
func (s *State) ArtworkIDs() []domain.ArtworkID {
	ids := make([]domain.ArtworkID, 0, len(s.artworks))
	for id := range s.artworks {
		ids = append(ids, id)
	}
	return ids
}

// OwnerOf returns the current holder of the token.
func (s *State) OwnerOf(token domain.TokenID) (domain.Identity, error) {
	owner, ok := s.owners[token]
	if !ok {
		return domain.ZeroIdentity, domain.ErrTokenNotFound
	}
	return owner, nil
}

// License returns a copy of the token's rights record.
func (s *State) License(token domain.TokenID) (domain.LicenseInfo, error) {
	lic, ok := s.licenses[token]
	if !ok {
		return domain.LicenseInfo{}, domain.ErrTokenNotFound
	}
	return *lic, nil
}

// Token returns the assembled read-model of a minted token.
func (s *State) Token(token domain.TokenID) (domain.Token, error) {
	owner, ok := s.owners[token]
	if !ok {
		return domain.Token{}, domain.ErrTokenNotFound
	}
	lic := s.licenses[token]
	art := s.artworks[lic.ArtworkID]

	return domain.Token{
		ID:           token,
		Owner:        owner,
		License:      *lic,
		Transferable: s.transferRule(lic) == nil,
		MetadataURI:  art.MetadataURI,
	}, nil
}

// TokenURI resolves the token's artwork metadata reference. It follows the
// identifier alone, so it answers for any token of a registered artwork,
// minted or not.
func (s *State) TokenURI(token domain.TokenID) (string, error) {
	artworkID, ok := token.Decode().Artwork()
	if !ok {
		return "", domain.ErrUnknownArtwork
	}
	art, okArt := s.artworks[artworkID]
	if !okArt {
		return "", domain.ErrUnknownArtwork
	}
	return art.MetadataURI, nil
}

// CanTransfer is the read-only projection of the transfer-restriction rule.
func (s *State) CanTransfer(token domain.TokenID) (bool, error) {
	lic, ok := s.licenses[token]
	if !ok {
		return false, domain.ErrTokenNotFound
	}
	return s.transferRule(lic) == nil, nil
}

// OwnedTokens returns the identity's current holdings.
func (s *State) OwnedTokens(owner domain.Identity) []domain.TokenID {
	return s.holdings.tokens(owner)
}

// Listings returns all active listings.
func (s *State) Listings() []domain.Listing {
	out := make([]domain.Listing, 0, len(s.activeList))
	for _, token := range s.activeList {
		out = append(out, *s.listings[token])
	}
	return out
}

// ListingOf returns the token's active listing.
func (s *State) ListingOf(token domain.TokenID) (domain.Listing, error) {
	listing, ok := s.listings[token]
	if !ok {
		return domain.Listing{}, domain.ErrNotListed
	}
	return *listing, nil
}

// Offers returns the token's full offer history, including settled entries.
// Offer indexes are positions in this list and never change.
func (s *State) Offers(token domain.TokenID) []domain.Offer {
	list := s.offers[token]
	if len(list) == 0 {
		return nil
	}
	out := make([]domain.Offer, len(list))
	copy(out, list)
	return out
}

// PendingBalance returns the identity's accumulated refundable amount.
func (s *State) PendingBalance(identity domain.Identity) int64 {
	return s.pending[identity]
}

// EscrowHeld sums the amounts of all active offers across all tokens.
func (s *State) EscrowHeld() int64 {
	var total int64
	for _, list := range s.offers {
		for _, offer := range list {
			if offer.Active {
				total += offer.Amount
			}
		}
	}
	return total
}

// PendingTotal sums all pending withdrawal balances.
func (s *State) PendingTotal() int64 {
	var total int64
	for _, amount := range s.pending {
		total += amount
	}
	return total
}

// transferRule evaluates the transfer-restriction table for the token.
func (s *State) transferRule(lic *domain.LicenseInfo) error {
	if lic.Rights == domain.RightsCopyright {
		if s.artworks[lic.ArtworkID].CopyrightTransferred {
			return domain.ErrCopyrightAlreadyTransferred
		}
		return nil
	}
	if lic.ResaleUsed() {
		return domain.ErrAlreadyResold
	}
	return nil
}

// copyrightHolder returns the current holder of the artwork's copyright
// token.
func (s *State) copyrightHolder(artworkID domain.ArtworkID) domain.Identity {
	return s.owners[domain.CopyrightTokenID(artworkID)]
}
