package dto

import (
	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// LicenseResponse represents a token's rights record, set at mint
type LicenseResponse struct {
	ArtworkID     uint64 `json:"artwork_id"`
	RightsType    string `json:"rights_type"`
	InstanceID    uint64 `json:"instance_id"`
	OriginalGrant bool   `json:"original_grant"`
	TransferCount uint64 `json:"transfer_count"`
	ResaleUsed    bool   `json:"resale_used"`
}

// TokenResponse represents a minted rights token
type TokenResponse struct {
	ID           string          `json:"id"`
	Owner        string          `json:"owner"`
	Transferable bool            `json:"transferable"`
	MetadataURI  string          `json:"metadata_uri"`
	License      LicenseResponse `json:"license"`
}

// TokenListResponse represents a paginated list of tokens
type TokenListResponse struct {
	Tokens []TokenResponse `json:"items"`
	Offset *uint64         `json:"offset,omitempty"`
	Total  uint64          `json:"total"`
}

// MapTokenToDTO maps a domain.Token to TokenResponse
func MapTokenToDTO(token *domain.Token) *TokenResponse {
	if token == nil {
		return nil
	}

	return &TokenResponse{
		ID:           token.ID.String(),
		Owner:        token.Owner.String(),
		Transferable: token.Transferable,
		MetadataURI:  token.MetadataURI,
		License: LicenseResponse{
			ArtworkID:     uint64(token.License.ArtworkID),
			RightsType:    token.License.Rights.String(),
			InstanceID:    token.License.InstanceID,
			OriginalGrant: token.License.OriginalGrant,
			TransferCount: token.License.TransferCount,
			ResaleUsed:    token.License.ResaleUsed(),
		},
	}
}
