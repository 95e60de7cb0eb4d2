package service

import (
	"context"
	"fmt"
	"time"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"

	"github.com/rs/zerolog"
)

// rateService implements ports.RateService as a cache-aside read of the
// newest exchange_rates row for one pair.
type rateService struct {
	repo    ports.ExchangeRateRepository
	cache   ports.RateCache
	pair    string
	ttl     time.Duration
	metrics *Metrics
	log     zerolog.Logger
}

// NewRateService creates a rate service. cache may be nil.
func NewRateService(repo ports.ExchangeRateRepository, cache ports.RateCache, pair string, ttl time.Duration, metrics *Metrics, log zerolog.Logger) ports.RateService {
	return &rateService{
		repo:    repo,
		cache:   cache,
		pair:    pair,
		ttl:     ttl,
		metrics: metrics,
		log:     log.With().Str("component", "rate_service").Str("pair", pair).Logger(),
	}
}

// Latest returns the newest snapshot, or nil, nil when none exists.
func (s *rateService) Latest(ctx context.Context) (*domain.ExchangeRate, error) {
	if s.cache != nil {
		rate, err := s.cache.Get(ctx, s.pair)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("rate cache read failed")
			s.metrics.RateCacheLookups.WithLabelValues("error").Inc()
		case rate != nil:
			s.metrics.RateCacheLookups.WithLabelValues("hit").Inc()
			return rate, nil
		default:
			s.metrics.RateCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	rate, err := s.repo.GetLatest(ctx, s.pair)
	if err != nil {
		return nil, fmt.Errorf("loading exchange rate: %w", err)
	}
	if rate == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, rate, s.ttl); err != nil {
			s.log.Warn().Err(err).Msg("rate cache write failed")
		}
	}
	return rate, nil
}

// Invalidate drops the cached snapshot so the next Latest reads the ledger.
func (s *rateService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.pair); err != nil {
		s.log.Warn().Err(err).Msg("rate cache invalidate failed")
	}
}
