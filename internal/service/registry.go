package service

import (
	"context"
	"sync"

	"crossborder-remit/internal/core/ports"
	"crossborder-remit/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RegistryDeps are the shared collaborators handed to every workspace.
type RegistryDeps struct {
	Profiles     ports.ProfileRepository
	Transactions ports.TransactionRepository
	KYCDocuments ports.KYCDocumentRepository
	Wallets      ports.WalletRepository
	Rates        ports.RateService
	Feed         ports.ChangeFeed
	Events       ports.EventPublisher
	Encryption   ports.EncryptionService
	Provider     ports.WalletProvider // nil when no wallet bridge is configured
	Metrics      *Metrics
}

// RegistryConfig configures the workflows a workspace holds.
type RegistryConfig struct {
	Transfer        TransferConfig
	KYCAtomicWrites bool
	Chain           ports.ChainParams
}

// Registry implements ports.Workspaces.
type Registry struct {
	deps RegistryDeps
	cfg  RegistryConfig
	log  zerolog.Logger

	mu         sync.Mutex
	workspaces map[uuid.UUID]*workspace
}

// NewRegistry creates an empty registry.
func NewRegistry(deps RegistryDeps, cfg RegistryConfig, log zerolog.Logger) *Registry {
	return &Registry{
		deps:       deps,
		cfg:        cfg,
		log:        log.With().Str("component", "workspace_registry").Logger(),
		workspaces: make(map[uuid.UUID]*workspace),
	}
}

// Acquire returns the user's workspace, opening the session and loading
// the rate on first use.
func (r *Registry) Acquire(ctx context.Context, userID uuid.UUID) (ports.Workspace, error) {
	if userID == uuid.Nil {
		return nil, apperror.ErrNotAuthenticated("continue")
	}

	r.mu.Lock()
	ws, ok := r.workspaces[userID]
	r.mu.Unlock()
	if ok {
		return ws, nil
	}

	created, err := r.open(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if existing, ok := r.workspaces[userID]; ok {
		r.mu.Unlock()
		// Lost a race with a concurrent Acquire.
		created.close()
		return existing, nil
	}
	r.workspaces[userID] = created
	r.mu.Unlock()

	r.deps.Metrics.Workspaces.Inc()
	r.log.Debug().Str("user_id", userID.String()).Msg("workspace opened")
	return created, nil
}

func (r *Registry) open(ctx context.Context, userID uuid.UUID) (*workspace, error) {
	session, err := OpenSession(ctx, r.deps.Profiles, userID, r.log)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	ws := &workspace{
		session: session,
		transfers: NewTransferWorkflow(
			session, r.deps.Transactions, r.deps.Rates, r.deps.Feed,
			r.deps.Events, r.deps.Metrics, r.cfg.Transfer, r.log,
		),
		kyc: NewKYCWorkflow(
			session, r.deps.KYCDocuments, r.deps.Profiles, r.deps.Encryption,
			r.deps.Feed, r.deps.Events, r.deps.Metrics, r.cfg.KYCAtomicWrites, r.log,
		),
		wallet: NewWalletLink(
			session, r.deps.Provider, r.deps.Profiles, r.deps.Wallets,
			r.cfg.Chain, r.deps.Metrics, r.log,
		),
	}

	// A missing or unreadable rate is surfaced by Submit, not here.
	_ = ws.transfers.LoadRate(ctx)
	return ws, nil
}

// Close tears the user's workspace down.
func (r *Registry) Close(userID uuid.UUID) {
	r.mu.Lock()
	ws, ok := r.workspaces[userID]
	delete(r.workspaces, userID)
	r.mu.Unlock()

	if !ok {
		return
	}
	ws.close()
	r.deps.Metrics.Workspaces.Dec()
	r.log.Debug().Str("user_id", userID.String()).Msg("workspace closed")
}

// CloseAll tears every workspace down.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := r.workspaces
	r.workspaces = make(map[uuid.UUID]*workspace)
	r.mu.Unlock()

	for _, ws := range all {
		ws.close()
		r.deps.Metrics.Workspaces.Dec()
	}
	r.log.Info().Int("count", len(all)).Msg("all workspaces closed")
}

// Len returns the number of open workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

type workspace struct {
	session   *Session
	transfers *TransferWorkflow
	kyc       *KYCWorkflow
	wallet    *WalletLink
}

func (w *workspace) Session() ports.IdentitySession    { return w.session }
func (w *workspace) Transfers() ports.TransferWorkflow { return w.transfers }
func (w *workspace) KYC() ports.KYCWorkflow            { return w.kyc }
func (w *workspace) Wallet() ports.WalletLink          { return w.wallet }

func (w *workspace) close() {
	w.transfers.Close()
	w.kyc.Close()
	w.wallet.Close()
	w.session.Close()
}
