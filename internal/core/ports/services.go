package ports

import (
	"context"
	"time"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/quote"

	"github.com/google/uuid"
)

// EncryptionService encrypts sensitive values at rest.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID uuid.UUID) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID uuid.UUID
}

// RateCache is the Redis cache in front of the latest rate snapshot.
type RateCache interface {
	Get(ctx context.Context, pair string) (*domain.ExchangeRate, error) // nil on miss
	Set(ctx context.Context, rate *domain.ExchangeRate, ttl time.Duration) error
	Delete(ctx context.Context, pair string) error
}

// RateLimitStore counts requests per fixed window.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// EventPublisher emits domain events to downstream settlement systems.
type EventPublisher interface {
	PublishTransferRequested(ctx context.Context, tx *domain.Transaction) error
	PublishKYCSubmitted(ctx context.Context, doc *domain.KYCDocument) error
}

// AuditService records audited actions without failing the caller.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// RateService loads the latest snapshot through the cache.
type RateService interface {
	Latest(ctx context.Context) (*domain.ExchangeRate, error)
	Invalidate(ctx context.Context)
}

// QuoteService prices an amount on the latest snapshot.
type QuoteService interface {
	Quote(ctx context.Context, rawAmount string) (*QuoteResult, error)
}

// QuoteResult is a priced amount together with the snapshot it used.
type QuoteResult struct {
	Rate      *domain.ExchangeRate `json:"rate"`
	Breakdown quote.Display        `json:"breakdown"`
}

// ReportingService defines dashboard/reporting business logic.
type ReportingService interface {
	GetDashboardStats(ctx context.Context, userID uuid.UUID) (*TransferStats, error)
	ListRecent(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
}
