package postgres

import (
	"context"
	"fmt"

	"crossborder-remit/internal/core/domain"

	"github.com/google/uuid"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// UpsertPrimary inserts the binding or, when the address is already
// bound, moves it to this user and marks it primary.
func (r *WalletRepo) UpsertPrimary(ctx context.Context, w *domain.WalletBinding) error {
	query := `INSERT INTO wallets (id, user_id, wallet_address, wallet_type, balance_usdc, balance_inr, is_primary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (wallet_address) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			wallet_type = EXCLUDED.wallet_type,
			is_primary = EXCLUDED.is_primary,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.UserID, w.Address, string(w.Kind),
		w.BalanceSettlement.InexactFloat64(), w.BalanceSource.InexactFloat64(),
		w.IsPrimary, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert wallet: %w", err)
	}
	return nil
}

// ListByUser returns the user's bindings, primary first.
func (r *WalletRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WalletBinding, error) {
	query := `SELECT id, user_id, wallet_address, wallet_type, balance_usdc, balance_inr, is_primary, created_at, updated_at
		FROM wallets WHERE user_id = $1 ORDER BY is_primary DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.WalletBinding
	for rows.Next() {
		var rec domain.WalletRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.WalletAddress, &rec.WalletType,
			&rec.BalanceUSDC, &rec.BalanceINR, &rec.IsPrimary, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		w, err := rec.Parse()
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallets: %w", err)
	}
	return wallets, nil
}
