package dto

import (
	"time"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// ArtworkResponse represents a registered artwork
type ArtworkResponse struct {
	ID                   uint64    `json:"id"`
	OriginalMinter       string    `json:"original_minter"`
	MetadataURI          string    `json:"metadata_uri"`
	MetadataFingerprint  string    `json:"metadata_fingerprint,omitempty"`
	PreviewMIME          string    `json:"preview_mime,omitempty"`
	CopyrightTokenID     string    `json:"copyright_token_id"`
	CommercialCount      uint64    `json:"commercial_count"`
	DisplayCount         uint64    `json:"display_count"`
	CopyrightTransferred bool      `json:"copyright_transferred"`
	CreatedAt            time.Time `json:"created_at"`
}

// MapArtworkToDTO maps a domain.Artwork to ArtworkResponse
func MapArtworkToDTO(artwork *domain.Artwork) *ArtworkResponse {
	if artwork == nil {
		return nil
	}

	return &ArtworkResponse{
		ID:                   uint64(artwork.ID),
		OriginalMinter:       artwork.OriginalMinter.String(),
		MetadataURI:          artwork.MetadataURI,
		MetadataFingerprint:  artwork.MetadataFingerprint,
		PreviewMIME:          artwork.PreviewMIME,
		CopyrightTokenID:     domain.CopyrightTokenID(artwork.ID).String(),
		CommercialCount:      artwork.CommercialCount,
		DisplayCount:         artwork.DisplayCount,
		CopyrightTransferred: artwork.CopyrightTransferred,
		CreatedAt:            artwork.CreatedAt,
	}
}
