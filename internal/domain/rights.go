package domain

import "fmt"

// RightsType is the 8-bit rights tag packed into every token identifier.
type RightsType uint8

const (
	// RightsCopyright marks the unique per-artwork copyright token.
	RightsCopyright RightsType = 0
	// RightsCommercial marks a commercial-usage license token.
	RightsCommercial RightsType = 1
	// RightsDisplay marks a display-usage license token.
	RightsDisplay RightsType = 2
)

// Valid reports whether the tag is one of the known rights types.
func (r RightsType) Valid() bool {
	return r == RightsCopyright || r == RightsCommercial || r == RightsDisplay
}

// License reports whether the tag is a license type (anything but copyright).
func (r RightsType) License() bool {
	return r == RightsCommercial || r == RightsDisplay
}

// String returns the string representation of the rights type.
func (r RightsType) String() string {
	switch r {
	case RightsCopyright:
		return "copyright"
	case RightsCommercial:
		return "commercial"
	case RightsDisplay:
		return "display"
	default:
		return fmt.Sprintf("rights(%d)", uint8(r))
	}
}

// ParseRightsType parses the string form of a rights type.
func ParseRightsType(s string) (RightsType, error) {
	switch s {
	case "copyright":
		return RightsCopyright, nil
	case "commercial":
		return RightsCommercial, nil
	case "display":
		return RightsDisplay, nil
	default:
		return 0, ErrInvalidRightsType
	}
}

// Retention selects the license retained by the outgoing holder during a
// copyright transfer.
type Retention string

const (
	RetainNone       Retention = "none"
	RetainCommercial Retention = "commercial"
	RetainDisplay    Retention = "display"
)

// Valid reports whether the retention option is known.
func (r Retention) Valid() bool {
	return r == RetainNone || r == RetainCommercial || r == RetainDisplay
}

// License returns the retained license type, or false for RetainNone.
func (r Retention) License() (RightsType, bool) {
	switch r {
	case RetainCommercial:
		return RightsCommercial, true
	case RetainDisplay:
		return RightsDisplay, true
	default:
		return 0, false
	}
}
