package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRate is an append-only snapshot: units of source currency per one
// unit of target currency.
type ExchangeRate struct {
	ID           uuid.UUID       `json:"id"`
	CurrencyPair string          `json:"currency_pair"`
	Rate         decimal.Decimal `json:"rate"`
	Source       string          `json:"source"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ExchangeRateRecord is the raw `exchange_rates` row shape.
type ExchangeRateRecord struct {
	ID           uuid.UUID `json:"id"`
	CurrencyPair string    `json:"currency_pair"`
	Rate         float64   `json:"rate"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"created_at"`
}

// Parse validates the row. Non-positive rates are rejected.
func (r ExchangeRateRecord) Parse() (*ExchangeRate, error) {
	if r.CurrencyPair == "" {
		return nil, fmt.Errorf("%w: currency_pair is empty", ErrInvalidRecord)
	}
	if r.Rate <= 0 {
		return nil, fmt.Errorf("%w: rate %v for %s is not positive", ErrInvalidRecord, r.Rate, r.CurrencyPair)
	}
	return &ExchangeRate{
		ID:           r.ID,
		CurrencyPair: r.CurrencyPair,
		Rate:         decimal.NewFromFloat(r.Rate),
		Source:       r.Source,
		CreatedAt:    r.CreatedAt,
	}, nil
}

// Record converts the snapshot back into its row shape.
func (e *ExchangeRate) Record() ExchangeRateRecord {
	return ExchangeRateRecord{
		ID:           e.ID,
		CurrencyPair: e.CurrencyPair,
		Rate:         e.Rate.InexactFloat64(),
		Source:       e.Source,
		CreatedAt:    e.CreatedAt,
	}
}
