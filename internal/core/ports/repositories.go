package ports

import (
	"context"

	"crossborder-remit/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfileRepository reads and updates the profiles table.
// GetByID returns nil, nil when the profile does not exist.
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	MarkKYCPending(ctx context.Context, update domain.KYCProfileUpdate) error
	UpdateWalletAddress(ctx context.Context, id uuid.UUID, address string) error
}

// TransactionRepository defines persistence operations for transfer records.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error
	// ListRecentBySender returns the newest rows first.
	ListRecentBySender(ctx context.Context, senderID uuid.UUID, limit int) ([]domain.Transaction, error)
	GetStats(ctx context.Context, senderID uuid.UUID) (*TransferStats, error)
}

// TransferStats holds aggregated statistics for the dashboard.
type TransferStats struct {
	TotalSent         decimal.Decimal `json:"total_sent"`
	AverageAmount     decimal.Decimal `json:"average_amount"`
	TotalTransactions int64           `json:"total_transactions"`
	Completed         int64           `json:"completed"`
}

// ExchangeRateRepository reads the append-only exchange_rates table.
type ExchangeRateRepository interface {
	// GetLatest returns the most recently created snapshot, or nil, nil.
	GetLatest(ctx context.Context, pair string) (*domain.ExchangeRate, error)
}

// KYCDocumentRepository defines persistence for submitted documents.
type KYCDocumentRepository interface {
	Create(ctx context.Context, doc *domain.KYCDocument) error
	// CreateWithProfileUpdate inserts the document and marks the profile
	// pending in one database transaction.
	CreateWithProfileUpdate(ctx context.Context, doc *domain.KYCDocument, update domain.KYCProfileUpdate) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.KYCDocument, error)
}

// WalletRepository defines persistence for wallet bindings.
type WalletRepository interface {
	// UpsertPrimary inserts or updates the binding keyed by wallet address.
	UpsertPrimary(ctx context.Context, binding *domain.WalletBinding) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WalletBinding, error)
}

// AuditRepository persists audit log rows.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
