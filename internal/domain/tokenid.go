package domain

import (
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
)

// Field widths of the packed token identifier. The artwork id occupies the
// top 160 bits, the rights tag the next 8, the instance number the low 88:
//
//	id = (artworkID << 96) | (rightsType << 88) | instanceID
const (
	ArtworkIDBits  = 160
	RightsTypeBits = 8
	InstanceIDBits = 88

	rightsTypeShift = InstanceIDBits
	artworkIDShift  = InstanceIDBits + RightsTypeBits
)

// ArtworkID identifies a registered artwork. The registry allocates ids
// sequentially starting at 1; the packed identifier field is 160 bits wide,
// so identifiers decoded from arbitrary tokens may not fit this type (see
// TokenFields.Artwork).
type ArtworkID uint64

// String returns the decimal representation of the artwork id.
func (a ArtworkID) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// ParseArtworkID parses the decimal representation of an artwork id.
func ParseArtworkID(s string) (ArtworkID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid artwork id %q: %w", s, err)
	}
	return ArtworkID(v), nil
}

// TokenID is the packed 256-bit rights-token identifier. It is comparable
// and usable as a map key.
type TokenID uint256.Int

// EncodeTokenID packs the three identifier fields. It fails with
// ErrOutOfRange when the artwork id exceeds 160 bits or the instance number
// exceeds 88 bits; the rights tag fits its 8 bits by construction. Rights-tag
// validity is an operation-level concern, not a packing one.
func EncodeTokenID(artworkID *uint256.Int, rights RightsType, instance *uint256.Int) (TokenID, error) {
	if artworkID == nil || artworkID.BitLen() > ArtworkIDBits {
		return TokenID{}, ErrOutOfRange
	}
	if instance == nil || instance.BitLen() > InstanceIDBits {
		return TokenID{}, ErrOutOfRange
	}

	var id uint256.Int
	id.Lsh(artworkID, artworkIDShift)

	var tag uint256.Int
	tag.SetUint64(uint64(rights))
	tag.Lsh(&tag, rightsTypeShift)

	id.Or(&id, &tag)
	id.Or(&id, instance)
	return TokenID(id), nil
}

// NewTokenID packs registry-allocated components. Inputs of these types
// cannot exceed their field widths, so unlike EncodeTokenID it cannot fail.
func NewTokenID(artworkID ArtworkID, rights RightsType, instance uint64) TokenID {
	id, _ := EncodeTokenID(uint256.NewInt(uint64(artworkID)), rights, uint256.NewInt(instance))
	return id
}

// CopyrightTokenID returns the identifier of the artwork's unique copyright
// token, instance 0.
func CopyrightTokenID(artworkID ArtworkID) TokenID {
	return NewTokenID(artworkID, RightsCopyright, 0)
}

// TokenFields are the unpacked components of a token identifier.
type TokenFields struct {
	ArtworkID  *uint256.Int
	Rights     RightsType
	InstanceID *uint256.Int
}

// Artwork returns the artwork id when it fits the registry's id space.
func (f TokenFields) Artwork() (ArtworkID, bool) {
	if f.ArtworkID == nil || !f.ArtworkID.IsUint64() {
		return 0, false
	}
	return ArtworkID(f.ArtworkID.Uint64()), true
}

// Instance returns the instance number when it fits the registry's counter
// space.
func (f TokenFields) Instance() (uint64, bool) {
	if f.InstanceID == nil || !f.InstanceID.IsUint64() {
		return 0, false
	}
	return f.InstanceID.Uint64(), true
}

// Decode unpacks the identifier. Pure bit extraction: it succeeds for any
// 256-bit input, including identifiers never minted by the registry.
func (t TokenID) Decode() TokenFields {
	id := uint256.Int(t)

	var artwork uint256.Int
	artwork.Rsh(&id, artworkIDShift)

	var tag uint256.Int
	tag.Rsh(&id, rightsTypeShift)
	tag.And(&tag, uint256.NewInt(0xff))

	var mask uint256.Int
	mask.Lsh(uint256.NewInt(1), InstanceIDBits)
	mask.SubUint64(&mask, 1)

	var instance uint256.Int
	instance.And(&id, &mask)

	return TokenFields{
		ArtworkID:  &artwork,
		Rights:     RightsType(tag.Uint64()),
		InstanceID: &instance,
	}
}

// IsCopyright reports whether the identifier carries the copyright tag.
func (t TokenID) IsCopyright() bool {
	return t.Decode().Rights == RightsCopyright
}

// String returns the 0x-prefixed minimal hex representation.
func (t TokenID) String() string {
	id := uint256.Int(t)
	return id.Hex()
}

// ParseTokenID parses the 0x-prefixed hex representation of a token id.
func ParseTokenID(s string) (TokenID, error) {
	var id uint256.Int
	if err := id.SetFromHex(s); err != nil {
		return TokenID{}, fmt.Errorf("invalid token id %q: %w", s, err)
	}
	return TokenID(id), nil
}

// MarshalText implements encoding.TextMarshaler using the hex form.
func (t TokenID) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TokenID) UnmarshalText(b []byte) error {
	id, err := ParseTokenID(string(b))
	if err != nil {
		return err
	}
	*t = id
	return nil
}
