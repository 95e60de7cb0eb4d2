package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the settlement state of a transfer record.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusProcessing TransactionStatus = "processing"
	TransactionStatusCompleted  TransactionStatus = "completed"
	TransactionStatusFailed     TransactionStatus = "failed"
)

// Valid reports whether s is a known transaction status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusProcessing, TransactionStatusCompleted, TransactionStatusFailed:
		return true
	}
	return false
}

// Transaction is one user-initiated transfer intent. Only the external
// settlement process advances it past pending.
type Transaction struct {
	ID                uuid.UUID         `json:"id"`
	SenderID          uuid.UUID         `json:"sender_id"`
	RecipientWallet   string            `json:"recipient_wallet"`
	RecipientName     string            `json:"recipient_name"`
	AmountSource      decimal.Decimal   `json:"amount_inr"`
	AmountTarget      decimal.Decimal   `json:"amount_usdc"`
	ExchangeRate      decimal.Decimal   `json:"exchange_rate"`
	PlatformFee       decimal.Decimal   `json:"platform_fee"`
	NetworkFee        decimal.Decimal   `json:"blockchain_fee"`
	TotalCost         decimal.Decimal   `json:"total_cost"`
	Status            TransactionStatus `json:"status"`
	SettlementTxHash  *string           `json:"transaction_hash,omitempty"`
	SettlementNetwork string            `json:"blockchain_network"`
	ErrorMessage      *string           `json:"error_message,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	CompletedAt       *time.Time        `json:"completed_at,omitempty"`
}

// IsTerminal returns true if the transaction reached a final settlement state.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusCompleted || t.Status == TransactionStatusFailed
}

// TransactionRecord is the raw `transactions` row shape.
type TransactionRecord struct {
	ID                uuid.UUID  `json:"id"`
	SenderID          uuid.UUID  `json:"sender_id"`
	RecipientWallet   string     `json:"recipient_wallet"`
	RecipientName     string     `json:"recipient_name"`
	AmountINR         float64    `json:"amount_inr"`
	AmountUSDC        float64    `json:"amount_usdc"`
	ExchangeRate      float64    `json:"exchange_rate"`
	PlatformFee       float64    `json:"platform_fee"`
	BlockchainFee     float64    `json:"blockchain_fee"`
	TotalCost         float64    `json:"total_cost"`
	Status            string     `json:"status"`
	TransactionHash   *string    `json:"transaction_hash"`
	BlockchainNetwork string     `json:"blockchain_network"`
	ErrorMessage      *string    `json:"error_message"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at"`
}

// Parse validates the row and converts it into a Transaction.
func (r TransactionRecord) Parse() (*Transaction, error) {
	if r.ID == uuid.Nil || r.SenderID == uuid.Nil {
		return nil, fmt.Errorf("%w: transaction id or sender_id is empty", ErrInvalidRecord)
	}
	status := TransactionStatus(r.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: transaction status %q", ErrInvalidRecord, r.Status)
	}
	if !IsRecipientAddress(r.RecipientWallet) {
		return nil, fmt.Errorf("%w: recipient_wallet %q", ErrInvalidRecord, r.RecipientWallet)
	}
	if r.AmountINR < 0 || r.TotalCost < 0 {
		return nil, fmt.Errorf("%w: negative amount", ErrInvalidRecord)
	}
	return &Transaction{
		ID:                r.ID,
		SenderID:          r.SenderID,
		RecipientWallet:   r.RecipientWallet,
		RecipientName:     r.RecipientName,
		AmountSource:      decimal.NewFromFloat(r.AmountINR),
		AmountTarget:      decimal.NewFromFloat(r.AmountUSDC),
		ExchangeRate:      decimal.NewFromFloat(r.ExchangeRate),
		PlatformFee:       decimal.NewFromFloat(r.PlatformFee),
		NetworkFee:        decimal.NewFromFloat(r.BlockchainFee),
		TotalCost:         decimal.NewFromFloat(r.TotalCost),
		Status:            status,
		SettlementTxHash:  r.TransactionHash,
		SettlementNetwork: r.BlockchainNetwork,
		ErrorMessage:      r.ErrorMessage,
		CreatedAt:         r.CreatedAt,
		CompletedAt:       r.CompletedAt,
	}, nil
}

// Record converts the entity into its row shape for writes.
func (t *Transaction) Record() TransactionRecord {
	return TransactionRecord{
		ID:                t.ID,
		SenderID:          t.SenderID,
		RecipientWallet:   t.RecipientWallet,
		RecipientName:     t.RecipientName,
		AmountINR:         t.AmountSource.InexactFloat64(),
		AmountUSDC:        t.AmountTarget.InexactFloat64(),
		ExchangeRate:      t.ExchangeRate.InexactFloat64(),
		PlatformFee:       t.PlatformFee.InexactFloat64(),
		BlockchainFee:     t.NetworkFee.InexactFloat64(),
		TotalCost:         t.TotalCost.InexactFloat64(),
		Status:            string(t.Status),
		TransactionHash:   t.SettlementTxHash,
		BlockchainNetwork: t.SettlementNetwork,
		ErrorMessage:      t.ErrorMessage,
		CreatedAt:         t.CreatedAt,
		CompletedAt:       t.CompletedAt,
	}
}
