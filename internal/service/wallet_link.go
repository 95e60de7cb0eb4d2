package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const walletWriteFallback = "Failed to link wallet"

// WalletLink implements ports.WalletLink. It mirrors the provider's current
// account and binds it to the session's profile when it changes.
type WalletLink struct {
	session  ports.IdentitySession
	provider ports.WalletProvider
	profiles ports.ProfileRepository
	wallets  ports.WalletRepository
	chain    ports.ChainParams
	metrics  *Metrics
	log      zerolog.Logger

	mu        sync.Mutex
	state     ports.WalletState
	listeners map[uint64]func(ports.WalletState)
	nextID    uint64
}

// NewWalletLink creates a wallet link. provider may be nil when no wallet
// bridge is configured; every provider operation then fails with
// ProviderMissing.
func NewWalletLink(
	session ports.IdentitySession,
	provider ports.WalletProvider,
	profiles ports.ProfileRepository,
	wallets ports.WalletRepository,
	chain ports.ChainParams,
	metrics *Metrics,
	log zerolog.Logger,
) *WalletLink {
	return &WalletLink{
		session:   session,
		provider:  provider,
		profiles:  profiles,
		wallets:   wallets,
		chain:     chain,
		metrics:   metrics,
		log:       log.With().Str("component", "wallet_link").Str("user_id", session.Identity().String()).Logger(),
		listeners: make(map[uint64]func(ports.WalletState)),
	}
}

// State returns the current account and chain.
func (l *WalletLink) State() ports.WalletState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Connect requests account access and binds the first account.
func (l *WalletLink) Connect(ctx context.Context) (ports.WalletState, error) {
	if l.provider == nil {
		return l.State(), l.record("connect", apperror.ErrProviderMissing())
	}

	accounts, err := l.provider.RequestAccounts(ctx)
	if err != nil {
		return l.State(), l.record("connect", mapProviderError(err))
	}

	chainID, err := l.provider.ChainID(ctx)
	if err != nil {
		l.log.Warn().Err(err).Msg("failed to read chain id")
		chainID = l.State().ChainID
	}

	state, err := l.apply(ctx, firstAccount(accounts), chainID)
	return state, l.record("connect", err)
}

// HandleAccountsChanged applies an accountsChanged event from the wallet.
// An empty list disconnects.
func (l *WalletLink) HandleAccountsChanged(ctx context.Context, accounts []string) (ports.WalletState, error) {
	state, err := l.apply(ctx, firstAccount(accounts), l.State().ChainID)
	return state, l.record("accounts_changed", err)
}

// HandleChainChanged records the new chain and re-reads the exposed accounts.
func (l *WalletLink) HandleChainChanged(ctx context.Context, chainID string) (ports.WalletState, error) {
	chainID = strings.ToLower(strings.TrimSpace(chainID))
	if l.provider == nil {
		state, err := l.apply(ctx, l.State().Account, chainID)
		return state, l.record("chain_changed", err)
	}

	accounts, err := l.provider.Accounts(ctx)
	if err != nil {
		return l.State(), l.record("chain_changed", mapProviderError(err))
	}
	state, err := l.apply(ctx, firstAccount(accounts), chainID)
	return state, l.record("chain_changed", err)
}

// SwitchNetwork asks the wallet to switch to the settlement chain, adding
// the chain first when the wallet does not know it.
func (l *WalletLink) SwitchNetwork(ctx context.Context) error {
	if l.provider == nil {
		return l.record("switch_network", apperror.ErrProviderMissing())
	}

	err := l.provider.SwitchChain(ctx, l.chain.ChainID)
	var perr *ports.ProviderError
	if errors.As(err, &perr) && perr.Code == ports.ProviderCodeUnrecognizedChain {
		l.log.Info().Str("chain_id", l.chain.ChainID).Msg("chain unknown to wallet, adding it")
		err = l.provider.AddChain(ctx, l.chain)
	}
	if err != nil {
		return l.record("switch_network", mapProviderError(err))
	}

	chainID, err := l.provider.ChainID(ctx)
	if err != nil {
		l.log.Warn().Err(err).Msg("failed to read chain id after switch")
		chainID = strings.ToLower(l.chain.ChainID)
	}
	l.mu.Lock()
	changed := l.state.ChainID != chainID
	l.state.ChainID = chainID
	state := l.state
	l.mu.Unlock()
	if changed {
		l.notify(state)
	}
	return l.record("switch_network", nil)
}

// OnChange registers fn for every state change.
func (l *WalletLink) OnChange(fn func(ports.WalletState)) ports.Subscription {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.listeners[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return ports.SubscriptionFunc(func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.listeners, id)
			l.mu.Unlock()
		})
	})
}

// Close drops every listener.
func (l *WalletLink) Close() {
	l.mu.Lock()
	l.listeners = make(map[uint64]func(ports.WalletState))
	l.mu.Unlock()
}

func (l *WalletLink) apply(ctx context.Context, account, chainID string) (ports.WalletState, error) {
	l.mu.Lock()
	next := ports.WalletState{Account: account, ChainID: chainID, Connected: account != ""}
	changed := next != l.state
	l.state = next
	l.mu.Unlock()

	if changed {
		l.notify(next)
	}
	if account == "" {
		return next, nil
	}
	return next, l.bind(ctx, account)
}

func (l *WalletLink) notify(state ports.WalletState) {
	l.mu.Lock()
	fns := make([]func(ports.WalletState), 0, len(l.listeners))
	for _, fn := range l.listeners {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

// bind stores account on the profile and upserts the primary wallet row
// when it differs from the profile's current wallet. Nothing is written
// until the profile has loaded.
func (l *WalletLink) bind(ctx context.Context, account string) error {
	id := l.session.Identity()
	if id == uuid.Nil {
		return apperror.ErrNotAuthenticated("link a wallet")
	}
	if !domain.IsRecipientAddress(account) {
		return apperror.ErrWalletProvider(fmt.Errorf("provider returned malformed account %q", account))
	}

	profile := l.session.Profile()
	if profile == nil {
		l.log.Debug().Str("user_id", id.String()).Msg("profile not loaded, wallet link not persisted")
		return nil
	}
	if profile.HasWallet(account) {
		return nil
	}

	if err := l.profiles.UpdateWalletAddress(ctx, id, account); err != nil {
		return apperror.ErrExternalWriteFailed(walletWriteFallback, err)
	}

	now := time.Now().UTC()
	binding := &domain.WalletBinding{
		ID:                uuid.New(),
		UserID:            id,
		Address:           account,
		Kind:              domain.WalletKindInjectedBrowser,
		BalanceSettlement: decimal.Zero,
		BalanceSource:     decimal.Zero,
		IsPrimary:         true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := l.wallets.UpsertPrimary(ctx, binding); err != nil {
		return apperror.ErrExternalWriteFailed(walletWriteFallback, err)
	}

	if _, err := l.session.RefreshProfile(ctx); err != nil {
		l.log.Warn().Err(err).Msg("failed to refresh profile after wallet link")
	}

	l.log.Info().Str("wallet_address", account).Msg("wallet linked")
	return nil
}

func (l *WalletLink) record(op string, err error) error {
	outcome := "success"
	if err != nil {
		outcome = "error"
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			outcome = appErr.Code
		}
	}
	l.metrics.WalletOutcomes.WithLabelValues(op, outcome).Inc()
	return err
}

func firstAccount(accounts []string) string {
	if len(accounts) == 0 {
		return ""
	}
	return accounts[0]
}

// mapProviderError maps EIP-1193 user rejection to ProviderRejected and
// everything else to a generic provider failure.
func mapProviderError(err error) error {
	var perr *ports.ProviderError
	if errors.As(err, &perr) && perr.Code == ports.ProviderCodeUserRejected {
		return apperror.ErrProviderRejected(err)
	}
	return apperror.ErrWalletProvider(err)
}
