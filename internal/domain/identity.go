package domain

// Identity is an opaque platform identity. The platform issues DID-style
// identifiers, but the ledger never parses them: an identity is trusted as
// already authenticated by the caller's transport.
type Identity string

// ZeroIdentity is the empty identity. It is rejected wherever an identity is
// accepted as input.
const ZeroIdentity Identity = ""

// Valid reports whether the identity is non-zero.
func (i Identity) Valid() bool {
	return i != ZeroIdentity
}

// String returns the string representation of the identity.
func (i Identity) String() string {
	return string(i)
}
