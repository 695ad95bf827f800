package dto

// TransferCopyrightResponse represents the result of a copyright transfer.
// RetainedToken is present when the outgoing holder kept a license.
type TransferCopyrightResponse struct {
	Artwork       *ArtworkResponse `json:"artwork"`
	RetainedToken *TokenResponse   `json:"retained_token,omitempty"`
}

// BalanceResponse represents an account's pending refund balance
type BalanceResponse struct {
	Account string `json:"account"`
	Pending int64  `json:"pending"`
}

// WithdrawalResponse represents a completed pull-payment of an account's
// accumulated refunds
type WithdrawalResponse struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}

// OfferWithdrawalResponse represents the refund of a withdrawn offer
type OfferWithdrawalResponse struct {
	TokenID  string `json:"token_id"`
	Index    int    `json:"index"`
	Refunded int64  `json:"refunded"`
}

// SuspensionResponse represents an account suspension
type SuspensionResponse struct {
	Account string `json:"account"`
	Reason  string `json:"reason,omitempty"`
}

// StatusResponse is a minimal acknowledgement body
type StatusResponse struct {
	Status string `json:"status"`
}
