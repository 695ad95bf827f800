package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/adapter"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/messaging"
	"github.com/feral-file/ff-rights-ledger/internal/payment"
	"github.com/feral-file/ff-rights-ledger/internal/store"
)

// replayBatchSize is the journal page size used when rebuilding state at
// startup
const replayBatchSize = 500

// Service is the serialized write path of the ledger. Every mutating
// operation takes the write lock, stages events against the in-memory state,
// settles money through the payment gateway, journals the batch, applies it,
// and publishes it. Queries run under the read lock against the same state,
// so they always observe fully committed operations.
type Service struct {
	mu        sync.RWMutex
	state     *State
	store     store.Store
	gateway   payment.Gateway
	publisher messaging.Publisher
	clock     adapter.Clock

	// nextSeq is the journal sequence the next committed event receives
	nextSeq uint64
	// suspended caches active suspensions by account for the per-operation
	// check; the store keeps the authoritative rows
	suspended map[domain.Identity]string
}

// Stats is a point-in-time summary of the ledger.
type Stats struct {
	LastSeq        uint64 `json:"last_seq"`
	Artworks       int    `json:"artworks"`
	Tokens         int    `json:"tokens"`
	ActiveListings int    `json:"active_listings"`
	EscrowHeld     int64  `json:"escrow_held"`
	PendingTotal   int64  `json:"pending_total"`
}

// NewService creates a ledger service with an empty state. Call Bootstrap to
// rebuild state from the journal before serving.
func NewService(st store.Store, gateway payment.Gateway, publisher messaging.Publisher, clock adapter.Clock) *Service {
	return &Service{
		state:     NewState(),
		store:     st,
		gateway:   gateway,
		publisher: publisher,
		clock:     clock,
		nextSeq:   1,
		suspended: make(map[domain.Identity]string),
	}
}

// Bootstrap replays the full journal into the in-memory state and loads the
// active account suspensions. It must complete before the service accepts
// operations.
func (s *Service) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ReplayEvents(ctx, 0, replayBatchSize, func(events []domain.LedgerEvent) error {
		return s.state.ApplyAll(events)
	}); err != nil {
		return fmt.Errorf("failed to replay journal: %w", err)
	}

	lastSeq, err := s.store.GetLastEventSeq(ctx)
	if err != nil {
		return fmt.Errorf("failed to read last journal seq: %w", err)
	}
	s.nextSeq = lastSeq + 1

	suspensions, err := s.store.GetActiveSuspensions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load account suspensions: %w", err)
	}
	for _, susp := range suspensions {
		s.suspended[domain.Identity(susp.Account)] = susp.Reason
	}

	logger.InfoCtx(ctx, "Ledger state rebuilt from journal",
		zap.Uint64("last_seq", lastSeq),
		zap.Int("artworks", s.state.ArtworkCount()),
		zap.Int("active_suspensions", len(suspensions)))
	return nil
}

// commit stamps, journals, applies, and publishes a staged batch. The caller
// holds the write lock. Journaling failure aborts the operation with the
// state untouched; an apply failure after a successful journal write means
// state and journal have diverged and is returned as fatal.
func (s *Service) commit(ctx context.Context, events []domain.LedgerEvent) error {
	now := s.clock.Now().UTC()
	for i := range events {
		events[i].ID = ulid.Make().String()
		events[i].Seq = s.nextSeq
		events[i].Timestamp = now
		s.nextSeq++
	}

	if err := s.store.AppendEvents(ctx, events); err != nil {
		// nothing was written, the sequence numbers are safe to reuse
		s.nextSeq -= uint64(len(events))
		return fmt.Errorf("failed to journal events: %w", err)
	}

	if err := s.state.ApplyAll(events); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("message", "journaled events failed to apply, state diverged"),
			zap.Uint64("first_seq", events[0].Seq))
		return fmt.Errorf("state diverged from journal: %w", err)
	}

	for i := range events {
		if err := s.publisher.PublishEvent(ctx, &events[i]); err != nil {
			logger.ErrorCtx(ctx, err,
				zap.String("message", "failed to publish committed event"),
				zap.String("event_id", events[i].ID),
				zap.String("event_type", string(events[i].Type)))
		}
	}
	return nil
}

// checkSuspended rejects operations initiated by a suspended account.
func (s *Service) checkSuspended(caller domain.Identity) error {
	if _, ok := s.suspended[caller]; ok {
		return domain.ErrAccountSuspended
	}
	return nil
}

// CreateArtwork registers an artwork for caller and mints its copyright
// token.
func (s *Service) CreateArtwork(ctx context.Context, caller domain.Identity, meta ArtworkMeta) (domain.ArtworkID, domain.TokenID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSuspended(caller); err != nil {
		return 0, domain.TokenID{}, err
	}
	artworkID, tokenID, events, err := s.state.StageCreateArtwork(caller, meta)
	if err != nil {
		return 0, domain.TokenID{}, err
	}
	if err := s.commit(ctx, events); err != nil {
		return 0, domain.TokenID{}, err
	}

	logger.InfoCtx(ctx, "Artwork registered",
		zap.Uint64("artwork_id", uint64(artworkID)),
		zap.String("copyright_token", tokenID.String()),
		zap.String("minter", caller.String()))
	return artworkID, tokenID, nil
}

// MintLicense mints a license token of the given type to recipient.
func (s *Service) MintLicense(ctx context.Context, caller domain.Identity, artworkID domain.ArtworkID, rights domain.RightsType, recipient domain.Identity) (domain.TokenID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSuspended(caller); err != nil {
		return domain.TokenID{}, err
	}
	tokenID, events, err := s.state.StageMintLicense(caller, artworkID, rights, recipient)
	if err != nil {
		return domain.TokenID{}, err
	}
	if err := s.commit(ctx, events); err != nil {
		return domain.TokenID{}, err
	}
	return tokenID, nil
}

// Transfer moves a token to a new holder outside the marketplace.
func (s *Service) Transfer(ctx context.Context, caller domain.Identity, token domain.TokenID, to domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSuspended(caller); err != nil {
		return err
	}
	events, err := s.state.StageTransfer(caller, token, to)
	if err != nil {
		return err
	}
	return s.commit(ctx, events)
}

// TransferCopyright sells the artwork's copyright to a new holder, optionally
// retaining a license for the outgoing holder. It returns the retained
// license token when one was minted.
func (s *Service) TransferCopyright(ctx context.Context, caller domain.Identity, artworkID domain.ArtworkID, to domain.Identity, retain domain.Retention) (*domain.TokenID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSuspended(caller); err != nil {
		return nil, err
	}
	events, err := s.state.StageTransferCopyrightWithRetention(caller, artworkID, to, retain)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, events); err != nil {
		return nil, err
	}

	var retained *domain.TokenID
	for i := range events {
		if events[i].Type == domain.EventLicenseMinted {
			retained = events[i].TokenID
		}
	}
	logger.InfoCtx(ctx, "Copyright transferred",
		zap.Uint64("artwork_id", uint64(artworkID)),
		zap.String("from", caller.String()),
		zap.String("to", to.String()),
		zap.Bool("license_retained", retained != nil))
	return retained, nil
}

// ListForSale puts the caller's token on the market.
func (s *Service) ListForSale(ctx context.Context, caller domain.Identity, token domain.TokenID, askingPrice int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSuspended(caller); err != nil {
		return err
	}
	events, err := s.state.StageListForSale(caller, token, askingPrice)
	if err != nil {
		return err
	}
	return s.commit(ctx, events)
}

// CancelListing deactivates the caller's listing.
func (s *Service) CancelListing(ctx context.Context, caller domain.Identity, token domain.TokenID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSuspended(caller); err != nil {
		return err
	}
	events, err := s.state.StageCancelListing(caller, token)
	if err != nil {
		return err
	}
	return s.commit(ctx, events)
}

// MakeOffer escrows amount from the caller and records an offer on a listed
// token. The escrow is collected through the gateway before anything is
// journaled, so a failed collection leaves no trace.
func (s *Service) MakeOffer(ctx context.Context, caller domain.Identity, token domain.TokenID, amount int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSuspended(caller); err != nil {
		return 0, err
	}
	index, events, err := s.state.StageMakeOffer(caller, token, amount)
	if err != nil {
		return 0, err
	}

	reference := fmt.Sprintf("offer:%s:%d", token, index)
	if err := s.gateway.Collect(ctx, caller, amount, reference); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrCollectFailed, err)
	}

	if err := s.commit(ctx, events); err != nil {
		return 0, err
	}
	return index, nil
}

// AcceptOffer settles the caller's listing against one active offer. The
// seller is paid through the gateway before the settlement is journaled; a
// failed payout aborts the operation with no state change, leaving the offer
// and the listing active.
func (s *Service) AcceptOffer(ctx context.Context, caller domain.Identity, token domain.TokenID, offerIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSuspended(caller); err != nil {
		return err
	}
	accepted, events, err := s.state.StageAcceptOffer(caller, token, offerIndex)
	if err != nil {
		return err
	}

	reference := fmt.Sprintf("accept:%s:%d", token, offerIndex)
	if err := s.gateway.Pay(ctx, caller, accepted.Amount, reference); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPayoutFailed, err)
	}

	if err := s.commit(ctx, events); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Offer accepted",
		zap.String("token", token.String()),
		zap.Int("offer_index", offerIndex),
		zap.String("seller", caller.String()),
		zap.String("buyer", accepted.Offerer.String()),
		zap.Int64("amount", accepted.Amount))
	return nil
}

// RejectOffer deactivates an offer on the caller's token and queues its
// escrow for the offerer to withdraw.
func (s *Service) RejectOffer(ctx context.Context, caller domain.Identity, token domain.TokenID, offerIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSuspended(caller); err != nil {
		return err
	}
	events, err := s.state.StageRejectOffer(caller, token, offerIndex)
	if err != nil {
		return err
	}
	return s.commit(ctx, events)
}

// WithdrawOffer retracts the caller's own offer and pays its escrow straight
// back through the gateway. It returns the refunded amount.
func (s *Service) WithdrawOffer(ctx context.Context, caller domain.Identity, token domain.TokenID, offerIndex int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSuspended(caller); err != nil {
		return 0, err
	}
	offer, events, err := s.state.StageWithdrawOffer(caller, token, offerIndex)
	if err != nil {
		return 0, err
	}

	reference := fmt.Sprintf("withdraw-offer:%s:%d", token, offerIndex)
	if err := s.gateway.Pay(ctx, caller, offer.Amount, reference); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrPayoutFailed, err)
	}

	if err := s.commit(ctx, events); err != nil {
		return 0, err
	}
	return offer.Amount, nil
}

// Withdraw drains the caller's pending balance and pays it out through the
// gateway. It returns the amount paid.
func (s *Service) Withdraw(ctx context.Context, caller domain.Identity) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSuspended(caller); err != nil {
		return 0, err
	}
	balance, events, err := s.state.StageWithdraw(caller)
	if err != nil {
		return 0, err
	}

	reference := fmt.Sprintf("withdraw:%s:%d", caller, s.nextSeq)
	if err := s.gateway.Pay(ctx, caller, balance, reference); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrPayoutFailed, err)
	}

	if err := s.commit(ctx, events); err != nil {
		return 0, err
	}

	logger.InfoCtx(ctx, "Pending balance withdrawn",
		zap.String("account", caller.String()),
		zap.Int64("amount", balance))
	return balance, nil
}

// SuspendAccount opens a suspension for the account. Suspended accounts are
// rejected from every mutating operation until the suspension is lifted.
func (s *Service) SuspendAccount(ctx context.Context, account domain.Identity, reason string) error {
	if !account.Valid() {
		return domain.ErrZeroIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SuspendAccount(ctx, account.String(), reason); err != nil {
		return fmt.Errorf("failed to suspend account: %w", err)
	}
	s.suspended[account] = reason

	logger.InfoCtx(ctx, "Account suspended",
		zap.String("account", account.String()),
		zap.String("reason", reason))
	return nil
}

// LiftSuspension closes the account's active suspension.
func (s *Service) LiftSuspension(ctx context.Context, account domain.Identity) error {
	if !account.Valid() {
		return domain.ErrZeroIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.LiftAccountSuspension(ctx, account.String()); err != nil {
		return err
	}
	delete(s.suspended, account)

	logger.InfoCtx(ctx, "Account suspension lifted",
		zap.String("account", account.String()))
	return nil
}

// IsSuspended reports whether the account is suspended, and the reason.
func (s *Service) IsSuspended(account domain.Identity) (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reason, ok := s.suspended[account]
	return ok, reason
}

// Artwork returns the artwork record.
func (s *Service) Artwork(id domain.ArtworkID) (domain.Artwork, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Artwork(id)
}

// Token returns the assembled read-model of a minted token.
func (s *Service) Token(token domain.TokenID) (domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token(token)
}

// OwnerOf returns the current holder of the token.
func (s *Service) OwnerOf(token domain.TokenID) (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.OwnerOf(token)
}

// TokenURI resolves the token's artwork metadata reference.
func (s *Service) TokenURI(token domain.TokenID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.TokenURI(token)
}

// CanTransfer reports whether the token passes the transfer-restriction rule.
func (s *Service) CanTransfer(token domain.TokenID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CanTransfer(token)
}

// OwnedTokens returns the identity's current holdings.
func (s *Service) OwnedTokens(owner domain.Identity) []domain.TokenID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.OwnedTokens(owner)
}

// Listings returns all active listings.
func (s *Service) Listings() []domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Listings()
}

// ListingOf returns the token's active listing.
func (s *Service) ListingOf(token domain.TokenID) (domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ListingOf(token)
}

// Offers returns the token's full offer history.
func (s *Service) Offers(token domain.TokenID) []domain.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Offers(token)
}

// PendingBalance returns the identity's pending withdrawal balance.
func (s *Service) PendingBalance(identity domain.Identity) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.PendingBalance(identity)
}

// Stats returns a point-in-time summary of the ledger.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		LastSeq:        s.nextSeq - 1,
		Artworks:       s.state.ArtworkCount(),
		Tokens:         s.state.TokenCount(),
		ActiveListings: len(s.state.Listings()),
		EscrowHeld:     s.state.EscrowHeld(),
		PendingTotal:   s.state.PendingTotal(),
	}
}
