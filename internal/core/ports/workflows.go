package ports

import (
	"context"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/quote"

	"github.com/google/uuid"
)

// IdentitySession is the explicitly passed session context. Identity is
// uuid.Nil once the session is closed.
type IdentitySession interface {
	Identity() uuid.UUID
	// Profile returns a copy of the cached profile, or nil.
	Profile() *domain.Profile
	RefreshProfile(ctx context.Context) (*domain.Profile, error)
}

// TransferStatus is the state of a single submission attempt.
type TransferStatus string

const (
	TransferIdle       TransferStatus = "idle"
	TransferValidating TransferStatus = "validating"
	TransferSubmitting TransferStatus = "submitting"
	TransferSucceeded  TransferStatus = "succeeded"
	TransferFailed     TransferStatus = "failed"
)

// TransferDraft holds the user's form inputs.
type TransferDraft struct {
	Amount           string `json:"amount"`
	RecipientAddress string `json:"recipient_address"`
	RecipientName    string `json:"recipient_name"`
}

// TransferState is a snapshot of the transfer workflow.
type TransferState struct {
	Status          TransferStatus       `json:"status"`
	Draft           TransferDraft        `json:"draft"`
	Rate            *domain.ExchangeRate `json:"rate,omitempty"`
	Quote           quote.Display        `json:"quote"`
	LastError       string               `json:"last_error,omitempty"`
	CanSubmit       bool                 `json:"can_submit"`
	LastTransaction *domain.Transaction  `json:"last_transaction,omitempty"`
}

// TransferWorkflow orchestrates KYC gate, rate check and ledger insert.
type TransferWorkflow interface {
	State() TransferState
	UpdateDraft(draft TransferDraft) quote.Display
	Submit(ctx context.Context, draft TransferDraft) (*domain.Transaction, error)
	LoadRate(ctx context.Context) error
	CanSubmit() bool
	WatchHistory(ctx context.Context, onChange func([]domain.Transaction)) (Subscription, error)
	WatchRate(ctx context.Context, onChange func(*domain.ExchangeRate)) (Subscription, error)
	Close()
}

// KYCPhase is the state of the KYC submission form.
type KYCPhase string

const (
	KYCIdle       KYCPhase = "idle"
	KYCSubmitting KYCPhase = "submitting"
	KYCSucceeded  KYCPhase = "succeeded"
	KYCFailed     KYCPhase = "failed"
)

// KYCSubmission is the form input for a KYC submission.
type KYCSubmission struct {
	DocumentType   domain.DocumentType
	DocumentNumber string
	PhoneNumber    string
}

// KYCState is a snapshot of the KYC workflow.
type KYCState struct {
	Phase     KYCPhase         `json:"phase"`
	KYCStatus domain.KYCStatus `json:"kyc_status"`
	LastError string           `json:"last_error,omitempty"`
	Success   bool             `json:"success"`
}

// KYCWorkflow orchestrates document submission and status reflection.
type KYCWorkflow interface {
	Submit(ctx context.Context, sub KYCSubmission) (*domain.KYCDocument, error)
	State() KYCState
	Watch(ctx context.Context, onChange func(*domain.Profile)) (Subscription, error)
}

// WalletState is the currently authorized account and chain.
type WalletState struct {
	Account   string `json:"account,omitempty"`
	ChainID   string `json:"chain_id,omitempty"`
	Connected bool   `json:"connected"`
}

// WalletLink tracks the wallet account and binds it to the profile.
type WalletLink interface {
	Connect(ctx context.Context) (WalletState, error)
	HandleAccountsChanged(ctx context.Context, accounts []string) (WalletState, error)
	HandleChainChanged(ctx context.Context, chainID string) (WalletState, error)
	SwitchNetwork(ctx context.Context) error
	State() WalletState
	OnChange(fn func(WalletState)) Subscription
}

// Workspace bundles the per-user session and its workflows.
type Workspace interface {
	Session() IdentitySession
	Transfers() TransferWorkflow
	KYC() KYCWorkflow
	Wallet() WalletLink
}

// Workspaces keeps one workspace per user.
type Workspaces interface {
	Acquire(ctx context.Context, userID uuid.UUID) (Workspace, error)
	Close(userID uuid.UUID)
	CloseAll()
}
