package postgres

import (
	"context"
	"errors"
	"fmt"

	"crossborder-remit/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ExchangeRateRepo implements ports.ExchangeRateRepository.
type ExchangeRateRepo struct {
	pool Pool
}

func NewExchangeRateRepo(pool Pool) *ExchangeRateRepo {
	return &ExchangeRateRepo{pool: pool}
}

// GetLatest fetches the most recent snapshot for a currency pair.
func (r *ExchangeRateRepo) GetLatest(ctx context.Context, pair string) (*domain.ExchangeRate, error) {
	query := `SELECT id, currency_pair, rate, source, created_at
		FROM exchange_rates WHERE currency_pair = $1 ORDER BY created_at DESC LIMIT 1`

	var rec domain.ExchangeRateRecord
	err := r.pool.QueryRow(ctx, query, pair).Scan(&rec.ID, &rec.CurrencyPair, &rec.Rate, &rec.Source, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest exchange rate: %w", err)
	}
	return rec.Parse()
}
