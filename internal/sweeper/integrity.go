package sweeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/adapter"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/ledger"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/store"
	"github.com/feral-file/ff-rights-ledger/internal/types"
)

const (
	SWEEP_CYCLE_INTERVAL = 15 * time.Minute // Time to sleep between audit cycles

	// INTEGRITY_REPORT_KEY is the key-value slot holding the latest audit report
	INTEGRITY_REPORT_KEY = "integrity:last_report"
)

// Check names used in violation records
const (
	CheckJournalContiguity = "journal_contiguity"
	CheckJournalReplay     = "journal_replay"
	CheckCopyrightUnique   = "copyright_uniqueness"
	CheckOwnership         = "ownership_agreement"
	CheckHolderIndex       = "holder_index_agreement"
	CheckListingBook       = "listing_book"
	CheckEscrow            = "escrow_conservation"
)

// errJournalDiverged marks a journal that no longer replays into a valid state
var errJournalDiverged = errors.New("journal does not replay")

// Violation is one integrity check failure found during an audit cycle.
type Violation struct {
	Check     string  `json:"check"`
	ArtworkID uint64  `json:"artwork_id,omitempty"`
	TokenID   *string `json:"token_id,omitempty"`
	Detail    string  `json:"detail"`
}

// IntegrityReport is the JSON document describing one audit cycle. The latest
// report is persisted under INTEGRITY_REPORT_KEY after every run.
type IntegrityReport struct {
	RanAt          time.Time   `json:"ran_at"`
	DurationMS     int64       `json:"duration_ms"`
	LastSeq        uint64      `json:"last_seq"`
	EventsReplayed int         `json:"events_replayed"`
	Artworks       int         `json:"artworks"`
	Tokens         int         `json:"tokens"`
	ActiveListings int         `json:"active_listings"`
	EscrowHeld     int64       `json:"escrow_held"`
	PendingTotal   int64       `json:"pending_total"`
	Violations     []Violation `json:"violations,omitempty"`
	Healthy        bool        `json:"healthy"`
}

// IntegritySweeperConfig holds configuration for the ledger integrity sweeper
type IntegritySweeperConfig struct {
	ReplayBatchSize int // Journal events per replay batch
	WorkerPoolSize  int // Concurrent artwork auditors
}

// integritySweeper implements the Sweeper interface for journal audits. Each
// cycle rebuilds the ledger state from the journal while keeping an
// independent tally of what the journal promises, then cross-checks the two.
type integritySweeper struct {
	config    *IntegritySweeperConfig
	store     store.Store
	pool      pond.Pool
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewIntegritySweeper creates a new ledger integrity sweeper
func NewIntegritySweeper(
	config *IntegritySweeperConfig,
	st store.Store,
	clock adapter.Clock,
) Sweeper {
	return &integritySweeper{
		config:    config,
		store:     st,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *integritySweeper) Name() string {
	return "ledger-integrity-sweeper"
}

// Start begins the sweeper's main loop
func (s *integritySweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting ledger integrity sweeper",
		zap.Int("replay_batch_size", s.config.ReplayBatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	// Create worker pool
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.ReplayBatchSize),
		pond.WithContext(ctx),
	)

	// Continuous loop - stops when context is canceled or stop is requested
	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Ledger integrity sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Ledger integrity sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *integritySweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *integritySweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping ledger integrity sweeper")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Ledger integrity sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Ledger integrity sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs a single audit cycle
func (s *integritySweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()
	logger.InfoCtx(ctx, "Starting audit cycle")

	state, audit, err := s.replayJournal(ctx)
	if err != nil {
		if errors.Is(err, errJournalDiverged) {
			// The journal itself is unusable. Publish the failure as the
			// report and keep running, later cycles retry from scratch.
			s.publishReport(ctx, &IntegrityReport{
				RanAt:      startTime.UTC(),
				DurationMS: s.clock.Since(startTime).Milliseconds(),
				Healthy:    false,
				Violations: []Violation{{
					Check:  CheckJournalReplay,
					Detail: err.Error(),
				}},
			})
			if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
				return ctx.Err()
			}
			return nil
		}
		return fmt.Errorf("failed to replay journal for audit: %w", err)
	}

	if audit.eventCount == 0 {
		logger.InfoCtx(ctx, "Journal is empty, nothing to audit")
		// Sleep to avoid a tight loop until events arrive
		// Use context-aware sleep so we can be interrupted
		if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
			return ctx.Err()
		}
		return nil
	}

	logger.InfoCtx(ctx, "Journal replayed for audit",
		zap.Uint64("last_seq", audit.lastSeq),
		zap.Int("events", audit.eventCount),
		zap.Int("artworks", state.ArtworkCount()),
		zap.Int("tokens", state.TokenCount()),
	)

	// Replay-time findings (seq gaps, double listings) seed the list
	var violationsMu sync.Mutex
	violations := audit.violations
	addViolation := func(v Violation) {
		violationsMu.Lock()
		violations = append(violations, v)
		violationsMu.Unlock()
	}

	var tokensAudited atomic.Int32

	// Fan the per-artwork checks out over the worker pool
	for _, artworkID := range state.ArtworkIDs() {
		s.pool.Submit(func() {
			s.auditArtwork(state, audit, artworkID, addViolation, &tokensAudited)
		})
	}

	// Wait for all artwork audits to complete
	s.pool.StopAndWait()

	auditListingBook(state, audit, addViolation)
	auditEscrow(state, audit, addViolation)

	duration := s.clock.Since(startTime)
	s.publishReport(ctx, &IntegrityReport{
		RanAt:          startTime.UTC(),
		DurationMS:     duration.Milliseconds(),
		LastSeq:        audit.lastSeq,
		EventsReplayed: audit.eventCount,
		Artworks:       state.ArtworkCount(),
		Tokens:         state.TokenCount(),
		ActiveListings: len(state.Listings()),
		EscrowHeld:     state.EscrowHeld(),
		PendingTotal:   state.PendingTotal(),
		Violations:     violations,
		Healthy:        len(violations) == 0,
	})

	// Recreate pool for next cycle
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.ReplayBatchSize),
		pond.WithContext(ctx),
	)

	logger.InfoCtx(ctx, "Audit cycle completed",
		zap.Duration("duration", duration),
		zap.Int("events_replayed", audit.eventCount),
		zap.Int32("tokens_audited", tokensAudited.Load()),
		zap.Int("violations", len(violations)),
	)

	// Sleep for a while to avoid tight loop
	// Use context-aware sleep so we can be interrupted
	if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
		return ctx.Err()
	}

	return nil
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted by context
func (s *integritySweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true // Sleep completed
	case <-ctx.Done():
		return false // Interrupted by context cancellation
	case <-s.stopChan:
		return false // Interrupted by stop signal
	}
}

// replayJournal streams the full journal into a fresh state while the audit
// tallies what the journal says on its own. An event that fails to apply
// aborts the stream, the journal is corrupt and nothing downstream holds.
func (s *integritySweeper) replayJournal(ctx context.Context) (*ledger.State, *journalAudit, error) {
	state := ledger.NewState()
	audit := newJournalAudit()

	err := s.store.ReplayEvents(ctx, 0, s.config.ReplayBatchSize, func(events []domain.LedgerEvent) error {
		for i := range events {
			audit.observe(&events[i])
			if err := state.Apply(events[i]); err != nil {
				return fmt.Errorf("%w at seq %d: %v", errJournalDiverged, events[i].Seq, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return state, audit, nil
}

// auditArtwork cross-checks one artwork's journal tally against the rebuilt
// state: the copyright grant is single, every minted token is held by whoever
// the journal says, and the per-holder index agrees with the ownership map.
func (s *integritySweeper) auditArtwork(
	state *ledger.State,
	audit *journalAudit,
	artworkID domain.ArtworkID,
	add func(Violation),
	tokensAudited *atomic.Int32,
) {
	if mints := audit.copyrightMints[artworkID]; mints != 1 {
		add(Violation{
			Check:     CheckCopyrightUnique,
			ArtworkID: uint64(artworkID),
			Detail:    fmt.Sprintf("journal records %d copyright mints, want exactly one", mints),
		})
	}

	copyrightToken := domain.CopyrightTokenID(artworkID)
	if _, err := state.OwnerOf(copyrightToken); err != nil {
		add(tokenViolation(CheckCopyrightUnique, artworkID, copyrightToken, "copyright token has no holder"))
	}

	for _, token := range audit.tokensByArtwork[artworkID] {
		tokensAudited.Add(1)

		holder, err := state.OwnerOf(token)
		if err != nil {
			add(tokenViolation(CheckOwnership, artworkID, token, "minted token missing from ownership map"))
			continue
		}
		if journalHolder := audit.holders[token]; holder != journalHolder {
			add(tokenViolation(CheckOwnership, artworkID, token,
				fmt.Sprintf("ownership map holds %s, journal says %s", holder, journalHolder)))
		}

		seen := 0
		for _, held := range state.OwnedTokens(holder) {
			if held == token {
				seen++
			}
		}
		if seen != 1 {
			add(tokenViolation(CheckHolderIndex, artworkID, token,
				fmt.Sprintf("token appears %d times in the holder index, want exactly once", seen)))
		}
	}
}

// auditListingBook verifies the active listing book: every listing present in
// the journal-derived book, at most one per token, and every seller still
// holding the listed token.
func auditListingBook(state *ledger.State, audit *journalAudit, add func(Violation)) {
	listings := state.Listings()
	for _, listing := range listings {
		artworkID, _ := listing.TokenID.Decode().Artwork()
		if _, ok := audit.listed[listing.TokenID]; !ok {
			add(tokenViolation(CheckListingBook, artworkID, listing.TokenID,
				"active listing absent from journal-derived book"))
		}
		holder, err := state.OwnerOf(listing.TokenID)
		if err != nil || holder != listing.Seller {
			add(tokenViolation(CheckListingBook, artworkID, listing.TokenID,
				fmt.Sprintf("listing seller %s no longer holds the token", listing.Seller)))
		}
	}
	if len(listings) != len(audit.listed) {
		add(Violation{
			Check:  CheckListingBook,
			Detail: fmt.Sprintf("state has %d active listings, journal-derived book has %d", len(listings), len(audit.listed)),
		})
	}
}

// auditEscrow verifies escrow conservation. Money enters on offer.made and
// leaves exactly once, either through the gateway or into the pull-based
// refund ledger, so the journal-derived balances must match the state and
// can never go negative.
func auditEscrow(state *ledger.State, audit *journalAudit, add func(Violation)) {
	if held := state.EscrowHeld(); held != audit.escrowHeld {
		add(Violation{
			Check:  CheckEscrow,
			Detail: fmt.Sprintf("state holds %d in escrow, journal-derived balance is %d", held, audit.escrowHeld),
		})
	}
	if pending := state.PendingTotal(); pending != audit.pendingTotal {
		add(Violation{
			Check:  CheckEscrow,
			Detail: fmt.Sprintf("state has %d pending refunds, journal-derived total is %d", pending, audit.pendingTotal),
		})
	}
	if audit.escrowHeld < 0 || audit.pendingTotal < 0 {
		add(Violation{
			Check:  CheckEscrow,
			Detail: fmt.Sprintf("journal drains more than it escrows, escrow %d pending %d", audit.escrowHeld, audit.pendingTotal),
		})
	}
}

// publishReport logs every violation and persists the report for operators
func (s *integritySweeper) publishReport(ctx context.Context, report *IntegrityReport) {
	for _, v := range report.Violations {
		logger.ErrorCtx(ctx, fmt.Errorf("integrity violation: %s", v.Detail),
			zap.String("check", v.Check),
			zap.Uint64("artwork_id", v.ArtworkID),
			zap.String("token_id", types.SafeString(v.TokenID)),
		)
	}

	if err := s.storeReportWithRetry(ctx, report); err != nil {
		// After all retries failed, log with high severity for monitoring/alerting
		logger.ErrorCtx(ctx, fmt.Errorf("CRITICAL: failed to store integrity report after retries: %w", err),
			zap.Int("violations", len(report.Violations)),
		)
	}
}

// storeReportWithRetry persists the report with exponential backoff retry
func (s *integritySweeper) storeReportWithRetry(ctx context.Context, report *IntegrityReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal integrity report: %w", err)
	}

	// Configure exponential backoff
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 15 * time.Second
	b.MaxInterval = 2 * time.Minute
	b.MaxElapsedTime = 10 * time.Minute // Total retry time limit
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	// Wrap with context to respect cancellation
	backoffWithContext := backoff.WithContext(b, ctx)

	// Retry operation
	operation := func() error {
		return s.store.SetKeyValue(ctx, INTEGRITY_REPORT_KEY, string(payload))
	}

	// Execute with retry and detailed logging
	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Integrity report store failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, backoffWithContext, notifyOnError); err != nil {
		return fmt.Errorf("failed after %d attempts: %w", attemptCount, err)
	}

	if attemptCount > 0 {
		logger.InfoCtx(ctx, "Integrity report stored after retries",
			zap.Int("total_attempts", attemptCount+1),
		)
	}

	return nil
}

// tokenViolation builds a violation record carrying the token's hex id.
func tokenViolation(check string, artworkID domain.ArtworkID, token domain.TokenID, detail string) Violation {
	hex := token.String()
	return Violation{
		Check:     check,
		ArtworkID: uint64(artworkID),
		TokenID:   &hex,
		Detail:    detail,
	}
}

// journalAudit is the independent tally of the journal built during replay.
// It derives holders, the listing book, and the escrow balances from the raw
// events without going through the state machine, so a disagreement between
// the two points at a corrupt journal or an apply defect.
type journalAudit struct {
	lastSeq    uint64
	eventCount int

	// holders is the final holder of each minted token per the journal
	holders map[domain.TokenID]domain.Identity
	// tokensByArtwork groups minted tokens for the per-artwork audit
	tokensByArtwork map[domain.ArtworkID][]domain.TokenID
	// copyrightMints counts copyright grants seen per artwork
	copyrightMints map[domain.ArtworkID]int
	// listed is the active listing book per the journal
	listed map[domain.TokenID]struct{}

	// escrowHeld and pendingTotal are the journal-derived running balances
	escrowHeld   int64
	pendingTotal int64

	// violations found while streaming, seq gaps and double listings
	violations []Violation
}

func newJournalAudit() *journalAudit {
	return &journalAudit{
		holders:         make(map[domain.TokenID]domain.Identity),
		tokensByArtwork: make(map[domain.ArtworkID][]domain.TokenID),
		copyrightMints:  make(map[domain.ArtworkID]int),
		listed:          make(map[domain.TokenID]struct{}),
	}
}

// observe folds one event into the tally. Malformed events are skipped here,
// Apply rejects them and aborts the stream.
func (a *journalAudit) observe(ev *domain.LedgerEvent) {
	if ev.Seq != a.lastSeq+1 {
		a.violations = append(a.violations, Violation{
			Check:  CheckJournalContiguity,
			Detail: fmt.Sprintf("event %s has seq %d following %d", ev.ID, ev.Seq, a.lastSeq),
		})
	}
	a.lastSeq = ev.Seq
	a.eventCount++

	switch ev.Type {
	case domain.EventTokenMinted, domain.EventLicenseMinted:
		if ev.TokenID == nil || ev.Rights == nil {
			return
		}
		token := *ev.TokenID
		a.holders[token] = ev.To
		a.tokensByArtwork[ev.ArtworkID] = append(a.tokensByArtwork[ev.ArtworkID], token)
		if *ev.Rights == domain.RightsCopyright {
			a.copyrightMints[ev.ArtworkID]++
		}
	case domain.EventCopyrightTransferred, domain.EventLicenseTransferred:
		if ev.TokenID == nil {
			return
		}
		a.holders[*ev.TokenID] = ev.To
	case domain.EventListingCreated:
		if ev.TokenID == nil {
			return
		}
		token := *ev.TokenID
		if _, dup := a.listed[token]; dup {
			artworkID, _ := token.Decode().Artwork()
			a.violations = append(a.violations, tokenViolation(CheckListingBook, artworkID, token,
				"journal lists an already listed token"))
		}
		a.listed[token] = struct{}{}
	case domain.EventListingCancelled:
		if ev.TokenID == nil {
			return
		}
		delete(a.listed, *ev.TokenID)
	case domain.EventOfferMade:
		a.escrowHeld += ev.Amount
	case domain.EventOfferAccepted, domain.EventOfferWithdrawn:
		// Escrow leaves through the payment gateway
		a.escrowHeld -= ev.Amount
	case domain.EventOfferRejected, domain.EventOfferRefundQueued:
		// Escrow turns into a pull-based refund credit
		a.escrowHeld -= ev.Amount
		a.pendingTotal += ev.Amount
	case domain.EventWithdrawalCompleted:
		a.pendingTotal -= ev.Amount
	}
}
