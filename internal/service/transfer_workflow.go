package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/internal/core/quote"
	"crossborder-remit/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransferConfig configures one transfer workflow.
type TransferConfig struct {
	CurrencyPair   string
	NetworkLabel   string
	SuccessDisplay time.Duration
	HistoryLimit   int
}

// TransferWorkflow implements ports.TransferWorkflow for one session.
type TransferWorkflow struct {
	session ports.IdentitySession
	txRepo  ports.TransactionRepository
	rates   ports.RateService
	feed    ports.ChangeFeed
	events  ports.EventPublisher
	metrics *Metrics
	cfg     TransferConfig
	log     zerolog.Logger

	mu      sync.Mutex
	status  ports.TransferStatus
	draft   ports.TransferDraft
	rate    *domain.ExchangeRate
	lastErr string
	lastTx  *domain.Transaction
	gen     uint64
	timer   *time.Timer

	subs subscriptionSet
}

// NewTransferWorkflow creates an idle workflow. The rate is not loaded
// until LoadRate is called.
func NewTransferWorkflow(
	session ports.IdentitySession,
	txRepo ports.TransactionRepository,
	rates ports.RateService,
	feed ports.ChangeFeed,
	events ports.EventPublisher,
	metrics *Metrics,
	cfg TransferConfig,
	log zerolog.Logger,
) *TransferWorkflow {
	return &TransferWorkflow{
		session: session,
		txRepo:  txRepo,
		rates:   rates,
		feed:    feed,
		events:  events,
		metrics: metrics,
		cfg:     cfg,
		log:     log.With().Str("component", "transfer_workflow").Str("user_id", session.Identity().String()).Logger(),
		status:  ports.TransferIdle,
	}
}

// State returns a snapshot including the live quote for the current draft.
func (w *TransferWorkflow) State() ports.TransferState {
	profile := w.session.Profile()

	w.mu.Lock()
	defer w.mu.Unlock()

	var lastTx *domain.Transaction
	if w.lastTx != nil {
		c := *w.lastTx
		lastTx = &c
	}
	return ports.TransferState{
		Status:          w.status,
		Draft:           w.draft,
		Rate:            w.rate,
		Quote:           quote.Compute(quote.ParseAmount(w.draft.Amount), w.rate).Display(),
		LastError:       w.lastErr,
		CanSubmit:       w.canSubmitLocked(profile),
		LastTransaction: lastTx,
	}
}

// UpdateDraft stores the form inputs and returns the live quote.
func (w *TransferWorkflow) UpdateDraft(draft ports.TransferDraft) quote.Display {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = draft
	return quote.Compute(quote.ParseAmount(draft.Amount), w.rate).Display()
}

// CanSubmit reports whether the submit affordance is enabled: nothing in
// flight, a rate loaded and a verified profile.
func (w *TransferWorkflow) CanSubmit() bool {
	profile := w.session.Profile()
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canSubmitLocked(profile)
}

func (w *TransferWorkflow) canSubmitLocked(profile *domain.Profile) bool {
	if w.status == ports.TransferValidating || w.status == ports.TransferSubmitting {
		return false
	}
	return w.rate != nil && profile.IsVerified()
}

// LoadRate refreshes the rate snapshot. A missing snapshot clears it.
func (w *TransferWorkflow) LoadRate(ctx context.Context) error {
	rate, err := w.rates.Latest(ctx)
	if err != nil {
		w.log.Warn().Err(err).Msg("failed to load exchange rate")
		return err
	}

	w.mu.Lock()
	w.rate = rate
	w.mu.Unlock()

	if rate == nil {
		w.log.Warn().Str("pair", w.cfg.CurrencyPair).Msg("no exchange rate snapshot")
	}
	return nil
}

// Submit validates the draft and inserts one pending transaction.
// The profile and rate are re-read first. Preconditions then short-circuit
// in order: identity and profile, KYC status, rate snapshot, recipient address.
func (w *TransferWorkflow) Submit(ctx context.Context, draft ports.TransferDraft) (*domain.Transaction, error) {
	w.mu.Lock()
	if w.status == ports.TransferValidating || w.status == ports.TransferSubmitting {
		w.mu.Unlock()
		w.metrics.TransferOutcomes.WithLabelValues("XFER_003").Inc()
		return nil, apperror.ErrSubmissionInFlight()
	}
	w.status = ports.TransferValidating
	w.draft = draft
	w.lastErr = ""
	w.cancelSuccessLocked()
	w.mu.Unlock()

	profile, rate := w.refresh(ctx)
	if w.session.Identity() == uuid.Nil || profile == nil {
		return nil, w.fail(apperror.ErrNotAuthenticated("send money"))
	}
	if !profile.IsVerified() {
		return nil, w.fail(apperror.ErrKycNotVerified())
	}
	if rate == nil {
		return nil, w.fail(apperror.ErrRateUnavailable())
	}
	if err := domain.ValidateRecipientAddress(draft.RecipientAddress); err != nil {
		return nil, w.fail(apperror.ErrInvalidRecipientAddress())
	}

	w.setStatus(ports.TransferSubmitting)

	b := quote.Compute(quote.Cents(quote.ParseAmount(draft.Amount)), rate).Rounded()
	tx := &domain.Transaction{
		ID:                uuid.New(),
		SenderID:          profile.ID,
		RecipientWallet:   draft.RecipientAddress,
		RecipientName:     draft.RecipientName,
		AmountSource:      b.AmountSource,
		AmountTarget:      b.AmountTarget,
		ExchangeRate:      rate.Rate,
		PlatformFee:       b.PlatformFee,
		NetworkFee:        b.NetworkFee,
		TotalCost:         b.TotalCost,
		Status:            domain.TransactionStatusPending,
		SettlementNetwork: w.cfg.NetworkLabel,
		CreatedAt:         time.Now().UTC(),
	}

	if err := w.txRepo.Create(ctx, tx); err != nil {
		w.log.Error().Err(err).Str("transaction_id", tx.ID.String()).Msg("transaction insert failed")
		return nil, w.fail(apperror.ErrExternalWriteFailed("Failed to create transaction", err))
	}

	w.succeed(tx)

	w.log.Info().
		Str("transaction_id", tx.ID.String()).
		Str("amount", tx.AmountSource.String()).
		Str("total_cost", tx.TotalCost.String()).
		Msg("transfer submitted")

	err := w.events.PublishTransferRequested(context.WithoutCancel(ctx), tx)
	w.metrics.EventPublishTotal.WithLabelValues("transfer.requested", publishStatus(err)).Inc()
	if err != nil {
		w.log.Warn().Err(err).Str("transaction_id", tx.ID.String()).Msg("failed to publish transfer event")
	}

	w.metrics.TransferOutcomes.WithLabelValues("success").Inc()
	c := *tx
	return &c, nil
}

// refresh re-reads the profile and the latest rate snapshot so the gates
// see ledger changes made since the workspace opened. A failed read falls
// back to the cached value.
func (w *TransferWorkflow) refresh(ctx context.Context) (*domain.Profile, *domain.ExchangeRate) {
	var profile *domain.Profile
	if w.session.Identity() != uuid.Nil {
		p, err := w.session.RefreshProfile(ctx)
		if err != nil {
			w.log.Warn().Err(err).Msg("failed to refresh profile, using cached copy")
			p = w.session.Profile()
		}
		profile = p
	}

	rate, err := w.rates.Latest(ctx)
	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.log.Warn().Err(err).Msg("failed to refresh exchange rate, using cached snapshot")
		return profile, w.rate
	}
	w.rate = rate
	return profile, rate
}

func (w *TransferWorkflow) setStatus(s ports.TransferStatus) {
	w.mu.Lock()
	w.status = s
	w.mu.Unlock()
}

// fail records err as the display message. The draft is kept for resubmission.
func (w *TransferWorkflow) fail(err error) error {
	w.mu.Lock()
	w.status = ports.TransferFailed
	w.lastErr = apperror.UserMessage(err)
	w.mu.Unlock()

	outcome := "error"
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		outcome = appErr.Code
	}
	w.metrics.TransferOutcomes.WithLabelValues(outcome).Inc()
	return err
}

// succeed clears the draft and schedules the revert to idle.
func (w *TransferWorkflow) succeed(tx *domain.Transaction) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.status = ports.TransferSucceeded
	w.draft = ports.TransferDraft{}
	w.lastTx = tx
	w.gen++
	gen := w.gen
	w.timer = time.AfterFunc(w.cfg.SuccessDisplay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.gen == gen && w.status == ports.TransferSucceeded {
			w.status = ports.TransferIdle
		}
	})
}

func (w *TransferWorkflow) cancelSuccessLocked() {
	w.gen++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// WatchHistory re-fetches the newest transactions whenever a row sent by
// the current identity changes.
func (w *TransferWorkflow) WatchHistory(ctx context.Context, onChange func([]domain.Transaction)) (ports.Subscription, error) {
	id := w.session.Identity()
	if id == uuid.Nil {
		return nil, apperror.ErrNotAuthenticated("view transfers")
	}

	filter := domain.ChangeFilter{
		Table:  domain.TableTransactions,
		Event:  domain.ChangeAll,
		Column: "sender_id",
		Value:  id.String(),
	}
	sub, err := w.feed.Subscribe(ctx, filter, func(domain.ChangeEvent) {
		txs, err := w.txRepo.ListRecentBySender(ctx, id, w.cfg.HistoryLimit)
		if err != nil {
			w.log.Warn().Err(err).Msg("failed to refresh transfer history")
			return
		}
		onChange(txs)
	})
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return w.subs.track(sub), nil
}

// WatchRate reloads the snapshot whenever a new rate row is inserted for the pair.
func (w *TransferWorkflow) WatchRate(ctx context.Context, onChange func(*domain.ExchangeRate)) (ports.Subscription, error) {
	filter := domain.ChangeFilter{
		Table:  domain.TableExchangeRates,
		Event:  domain.ChangeInsert,
		Column: "currency_pair",
		Value:  w.cfg.CurrencyPair,
	}
	sub, err := w.feed.Subscribe(ctx, filter, func(domain.ChangeEvent) {
		w.rates.Invalidate(ctx)
		if err := w.LoadRate(ctx); err != nil {
			return
		}
		w.mu.Lock()
		rate := w.rate
		w.mu.Unlock()
		onChange(rate)
	})
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return w.subs.track(sub), nil
}

// Close cancels the success timer and releases every subscription.
func (w *TransferWorkflow) Close() {
	w.mu.Lock()
	w.cancelSuccessLocked()
	w.mu.Unlock()
	w.subs.closeAll()
}
