package service

import (
	"context"

	"crossborder-remit/internal/core/ports"
	"crossborder-remit/internal/core/quote"
	"crossborder-remit/pkg/apperror"
)

type quoteService struct {
	rates ports.RateService
}

// NewQuoteService creates the public quote service.
func NewQuoteService(rates ports.RateService) ports.QuoteService {
	return &quoteService{rates: rates}
}

// Quote prices rawAmount on the latest snapshot. Unparsable amounts price as zero.
func (s *quoteService) Quote(ctx context.Context, rawAmount string) (*ports.QuoteResult, error) {
	rate, err := s.rates.Latest(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if rate == nil {
		return nil, apperror.ErrRateUnavailable()
	}

	b := quote.Compute(quote.ParseAmount(rawAmount), rate)
	return &ports.QuoteResult{
		Rate:      rate,
		Breakdown: b.Display(),
	}, nil
}
