package dto

import (
	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// OfferResponse represents one entry of a token's append-only offer list.
// Indices are stable: rejected and withdrawn offers stay in place as
// inactive entries.
type OfferResponse struct {
	TokenID string `json:"token_id"`
	Index   int    `json:"index"`
	Offerer string `json:"offerer"`
	Amount  int64  `json:"amount"`
	Active  bool   `json:"active"`
}

// OfferListResponse represents a token's offer list
type OfferListResponse struct {
	Offers []OfferResponse `json:"items"`
	Total  uint64          `json:"total"`
}

// MapOfferToDTO maps a domain.Offer at its list position to OfferResponse
func MapOfferToDTO(token domain.TokenID, index int, offer *domain.Offer) *OfferResponse {
	if offer == nil {
		return nil
	}

	return &OfferResponse{
		TokenID: token.String(),
		Index:   index,
		Offerer: offer.Offerer.String(),
		Amount:  offer.Amount,
		Active:  offer.Active,
	}
}
