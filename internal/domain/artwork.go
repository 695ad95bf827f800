package domain

import "time"

// Artwork is one registered creative work. Created once, mutated only by the
// per-rights-type counters and the one-way CopyrightTransferred flip, never
// deleted.
type Artwork struct {
	// ID is the sequential registry identifier
	ID ArtworkID
	// OriginalMinter is the identity that registered the artwork. It is the
	// permanent watermark and never changes, regardless of copyright
	// transfers.
	OriginalMinter Identity
	// MetadataURI is the opaque metadata reference supplied at registration
	MetadataURI string
	// MetadataFingerprint is the hex SHA-256 over the canonicalized metadata
	// document, empty when the metadata is not an inline JSON document
	MetadataFingerprint string
	// PreviewMIME is the sniffed MIME type of the inline preview, if one was
	// supplied at registration
	PreviewMIME string
	// CommercialCount and DisplayCount assign instance numbers to newly
	// minted licenses of the respective type
	CommercialCount uint64
	DisplayCount    uint64
	// CopyrightTransferred flips true the one time the copyright token
	// changes hands
	CopyrightTransferred bool
	// CreatedAt is the registration time
	CreatedAt time.Time
}

// LicenseInfo is the per-token rights record, set at mint.
type LicenseInfo struct {
	TokenID    TokenID
	ArtworkID  ArtworkID
	Rights     RightsType
	InstanceID uint64
	// OriginalGrant is true for tokens minted by the copyright holder through
	// the license-mint operation and false for licenses retained during a
	// copyright transfer. It is permanent and determines the resale policy.
	OriginalGrant bool
	// TransferCount counts completed post-mint ownership changes
	TransferCount uint64
}

// ResaleUsed reports whether a retained license has consumed its single
// permitted transfer.
func (l LicenseInfo) ResaleUsed() bool {
	return l.Rights.License() && !l.OriginalGrant && l.TransferCount > 0
}

// Listing is a marketplace listing. At most one active listing exists per
// token.
type Listing struct {
	TokenID TokenID
	Seller  Identity
	// Price is the seller-specified asking price in minor currency units
	Price     int64
	Active    bool
	CreatedAt time.Time
}

// Offer is one entry of a token's append-only offer list. The escrowed
// amount stays with the marketplace until the offer is accepted, rejected,
// or withdrawn.
type Offer struct {
	Offerer Identity
	// Amount is the escrowed offer amount in minor currency units
	Amount int64
	Active bool
}

// Token is the assembled read-model of a minted token.
type Token struct {
	ID      TokenID
	Owner   Identity
	License LicenseInfo
	// Transferable is the read-only projection of the transfer-restriction
	// rule against current state
	Transferable bool
	MetadataURI  string
}
