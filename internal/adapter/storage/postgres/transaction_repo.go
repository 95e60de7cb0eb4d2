package postgres

import (
	"context"
	"fmt"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, sender_id, recipient_wallet, recipient_name, amount_inr, amount_usdc,
		exchange_rate, platform_fee, blockchain_fee, total_cost, status, transaction_hash,
		blockchain_network, error_message, created_at, completed_at`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new transfer record.
func (r *TransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	rec := t.Record()
	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.SenderID, rec.RecipientWallet, rec.RecipientName,
		rec.AmountINR, rec.AmountUSDC, rec.ExchangeRate, rec.PlatformFee,
		rec.BlockchainFee, rec.TotalCost, rec.Status, rec.TransactionHash,
		rec.BlockchainNetwork, rec.ErrorMessage, rec.CreatedAt, rec.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListRecentBySender fetches the newest transactions for a sender.
func (r *TransactionRepo) ListRecentBySender(ctx context.Context, senderID uuid.UUID, limit int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions WHERE sender_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, senderID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var rec domain.TransactionRecord
		err := rows.Scan(
			&rec.ID, &rec.SenderID, &rec.RecipientWallet, &rec.RecipientName,
			&rec.AmountINR, &rec.AmountUSDC, &rec.ExchangeRate, &rec.PlatformFee,
			&rec.BlockchainFee, &rec.TotalCost, &rec.Status, &rec.TransactionHash,
			&rec.BlockchainNetwork, &rec.ErrorMessage, &rec.CreatedAt, &rec.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		t, err := rec.Parse()
		if err != nil {
			return nil, err
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txns, nil
}

// GetStats returns aggregated transfer statistics for a sender.
func (r *TransactionRepo) GetStats(ctx context.Context, senderID uuid.UUID) (*ports.TransferStats, error) {
	query := `SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = 'completed'),
		COALESCE(SUM(amount_inr), 0)::float8
		FROM transactions WHERE sender_id = $1`

	var total, completed int64
	var sum float64
	if err := r.pool.QueryRow(ctx, query, senderID).Scan(&total, &completed, &sum); err != nil {
		return nil, fmt.Errorf("get transaction stats: %w", err)
	}

	stats := &ports.TransferStats{
		TotalSent:         decimal.NewFromFloat(sum),
		AverageAmount:     decimal.Zero,
		TotalTransactions: total,
		Completed:         completed,
	}
	if total > 0 {
		stats.AverageAmount = stats.TotalSent.DivRound(decimal.NewFromInt(total), 2)
	}
	return stats, nil
}
