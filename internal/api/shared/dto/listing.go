package dto

import (
	"time"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// ListingResponse represents an active marketplace listing
type ListingResponse struct {
	TokenID   string    `json:"token_id"`
	Seller    string    `json:"seller"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// ListingListResponse represents a paginated list of active listings
type ListingListResponse struct {
	Listings []ListingResponse `json:"items"`
	Offset   *uint64           `json:"offset,omitempty"`
	Total    uint64            `json:"total"`
}

// MapListingToDTO maps a domain.Listing to ListingResponse
func MapListingToDTO(listing *domain.Listing) *ListingResponse {
	if listing == nil {
		return nil
	}

	return &ListingResponse{
		TokenID:   listing.TokenID.String(),
		Seller:    listing.Seller.String(),
		Price:     listing.Price,
		CreatedAt: listing.CreatedAt,
	}
}
