package domain

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maxField returns 2^bits - 1 as a uint256.
func maxField(bits uint) *uint256.Int {
	v := uint256.NewInt(1)
	v.Lsh(v, bits)
	v.SubUint64(v, 1)
	return v
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		artworkID *uint256.Int
		rights    RightsType
		instance  *uint256.Int
	}{
		{
			name:      "first copyright token",
			artworkID: uint256.NewInt(1),
			rights:    RightsCopyright,
			instance:  uint256.NewInt(0),
		},
		{
			name:      "commercial license",
			artworkID: uint256.NewInt(42),
			rights:    RightsCommercial,
			instance:  uint256.NewInt(7),
		},
		{
			name:      "display license",
			artworkID: uint256.NewInt(123456789),
			rights:    RightsDisplay,
			instance:  uint256.NewInt(1),
		},
		{
			name:      "max artwork id",
			artworkID: maxField(ArtworkIDBits),
			rights:    RightsCopyright,
			instance:  uint256.NewInt(0),
		},
		{
			name:      "max instance id",
			artworkID: uint256.NewInt(1),
			rights:    RightsDisplay,
			instance:  maxField(InstanceIDBits),
		},
		{
			name:      "all fields at max",
			artworkID: maxField(ArtworkIDBits),
			rights:    RightsType(0xff),
			instance:  maxField(InstanceIDBits),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := EncodeTokenID(tt.artworkID, tt.rights, tt.instance)
			require.NoError(t, err)

			fields := id.Decode()
			assert.Equal(t, tt.artworkID.Hex(), fields.ArtworkID.Hex())
			assert.Equal(t, tt.rights, fields.Rights)
			assert.Equal(t, tt.instance.Hex(), fields.InstanceID.Hex())
		})
	}
}

func TestEncodeTokenIDOutOfRange(t *testing.T) {
	overArtwork := maxField(ArtworkIDBits)
	overArtwork.AddUint64(overArtwork, 1)

	overInstance := maxField(InstanceIDBits)
	overInstance.AddUint64(overInstance, 1)

	_, err := EncodeTokenID(overArtwork, RightsCopyright, uint256.NewInt(0))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = EncodeTokenID(uint256.NewInt(1), RightsCopyright, overInstance)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTokenIDLayout(t *testing.T) {
	// artwork 1 at bit 96, commercial tag at bit 88, instance 1 at bit 0
	id := NewTokenID(1, RightsCommercial, 1)
	assert.Equal(t, "0x1010000000000000000000001", id.String())

	// the copyright token is always instance 0
	assert.Equal(t, "0x1000000000000000000000000", CopyrightTokenID(1).String())
}

func TestCopyrightTokenID(t *testing.T) {
	for _, artworkID := range []ArtworkID{1, 2, 999, 1 << 40} {
		id := CopyrightTokenID(artworkID)
		assert.Equal(t, NewTokenID(artworkID, RightsCopyright, 0), id)
		assert.True(t, id.IsCopyright())

		fields := id.Decode()
		decoded, ok := fields.Artwork()
		require.True(t, ok)
		assert.Equal(t, artworkID, decoded)
		instance, ok := fields.Instance()
		require.True(t, ok)
		assert.Zero(t, instance)
	}
}

func TestParseTokenID(t *testing.T) {
	original := NewTokenID(7, RightsDisplay, 3)

	parsed, err := ParseTokenID(original.String())
	require.NoError(t, err)
	assert.Equal(t, original, parsed)

	for _, bad := range []string{"", "123", "0xzz", "not-a-token"} {
		_, err := ParseTokenID(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestTokenFieldsArtworkOverflow(t *testing.T) {
	// an identifier whose artwork field exceeds uint64 cannot resolve to a
	// registry artwork
	wide, err := EncodeTokenID(maxField(ArtworkIDBits), RightsCopyright, uint256.NewInt(0))
	require.NoError(t, err)

	_, ok := wide.Decode().Artwork()
	assert.False(t, ok)
}

func TestTokenIDText(t *testing.T) {
	id := NewTokenID(5, RightsCommercial, 2)

	text, err := id.MarshalText()
	require.NoError(t, err)

	var back TokenID
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, id, back)
}
