package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletKind is how the wallet is reached. Values are the stored literals.
type WalletKind string

const (
	WalletKindInjectedBrowser WalletKind = "metamask"
	WalletKindConnectProtocol WalletKind = "walletconnect"
	WalletKindCustodial       WalletKind = "internal"
)

// WalletBinding associates a user with a settlement address.
type WalletBinding struct {
	ID                uuid.UUID       `json:"id"`
	UserID            uuid.UUID       `json:"user_id"`
	Address           string          `json:"wallet_address"`
	Kind              WalletKind      `json:"wallet_type"`
	BalanceSettlement decimal.Decimal `json:"balance_usdc"`
	BalanceSource     decimal.Decimal `json:"balance_inr"`
	IsPrimary         bool            `json:"is_primary"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// WalletRecord is the raw `wallets` row shape.
type WalletRecord struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	WalletAddress string    `json:"wallet_address"`
	WalletType    string    `json:"wallet_type"`
	BalanceUSDC   float64   `json:"balance_usdc"`
	BalanceINR    float64   `json:"balance_inr"`
	IsPrimary     bool      `json:"is_primary"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Parse validates the row and converts it into a WalletBinding.
func (r WalletRecord) Parse() (*WalletBinding, error) {
	kind := WalletKind(r.WalletType)
	switch kind {
	case WalletKindInjectedBrowser, WalletKindConnectProtocol, WalletKindCustodial:
	default:
		return nil, fmt.Errorf("%w: wallet_type %q", ErrInvalidRecord, r.WalletType)
	}
	if !IsRecipientAddress(r.WalletAddress) {
		return nil, fmt.Errorf("%w: wallet_address %q", ErrInvalidRecord, r.WalletAddress)
	}
	return &WalletBinding{
		ID:                r.ID,
		UserID:            r.UserID,
		Address:           r.WalletAddress,
		Kind:              kind,
		BalanceSettlement: decimal.NewFromFloat(r.BalanceUSDC),
		BalanceSource:     decimal.NewFromFloat(r.BalanceINR),
		IsPrimary:         r.IsPrimary,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}, nil
}
