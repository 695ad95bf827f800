package domain

import "errors"

var (
	// ErrOutOfRange is returned when a token identifier field exceeds its
	// bit width during packing
	ErrOutOfRange = errors.New("identifier field out of range")

	// ErrUnknownArtwork is returned when an artwork was never registered
	ErrUnknownArtwork = errors.New("unknown artwork")

	// ErrTokenNotFound is returned when a token was never minted
	ErrTokenNotFound = errors.New("token not found")

	// ErrNotCopyrightOwner is returned when an operation reserved for the
	// artwork's current copyright holder is attempted by anyone else
	ErrNotCopyrightOwner = errors.New("caller does not hold the copyright token")

	// ErrNotTokenOwner is returned when the caller does not own the token
	ErrNotTokenOwner = errors.New("caller does not own the token")

	// ErrNotOfferer is returned when the caller did not place the offer
	ErrNotOfferer = errors.New("caller did not place the offer")

	// ErrCopyrightAlreadyTransferred is returned on any attempt to move a
	// copyright token a second time
	ErrCopyrightAlreadyTransferred = errors.New("copyright already transferred")

	// ErrAlreadyResold is returned on the second transfer attempt of a
	// retained license
	ErrAlreadyResold = errors.New("license already resold")

	// ErrAlreadyListed is returned when the token already has an active listing
	ErrAlreadyListed = errors.New("token already listed")

	// ErrNotListed is returned when the token has no active listing
	ErrNotListed = errors.New("token not listed")

	// ErrOfferNotActive is returned when the referenced offer was already
	// settled, rejected, or withdrawn
	ErrOfferNotActive = errors.New("offer not active")

	// ErrInvalidRightsType is returned when a rights type is unknown or not
	// mintable as a license
	ErrInvalidRightsType = errors.New("invalid rights type")

	// ErrZeroIdentity is returned when an identity input is empty
	ErrZeroIdentity = errors.New("zero identity")

	// ErrInvalidPrice is returned when an asking price is not positive
	ErrInvalidPrice = errors.New("invalid asking price")

	// ErrZeroAmount is returned when an offer amount is not positive
	ErrZeroAmount = errors.New("zero offer amount")

	// ErrInvalidOfferIndex is returned when an offer index is out of bounds
	ErrInvalidOfferIndex = errors.New("invalid offer index")

	// ErrNothingToWithdraw is returned when the caller's pending balance is zero
	ErrNothingToWithdraw = errors.New("nothing to withdraw")

	// ErrPayoutFailed is returned when the payment gateway rejects a release
	// of funds; the operation rolls back completely
	ErrPayoutFailed = errors.New("payout failed")

	// ErrCollectFailed is returned when the payment gateway cannot collect
	// escrow from the caller; the operation rolls back completely
	ErrCollectFailed = errors.New("escrow collection failed")

	// ErrAccountSuspended is returned when the caller is suspended from
	// mutating operations
	ErrAccountSuspended = errors.New("account suspended")

	// ErrAccountNotSuspended is returned when lifting a suspension that does
	// not exist
	ErrAccountNotSuspended = errors.New("account not suspended")

	// ErrInvalidPreview is returned when an artwork preview data URI cannot
	// be decoded
	ErrInvalidPreview = errors.New("invalid preview data")

	// ErrWebhookClientNotFound is returned when a webhook client id is unknown
	ErrWebhookClientNotFound = errors.New("webhook client not found")
)
