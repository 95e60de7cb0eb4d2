package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crossborder-remit/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const profileColumns = `id, full_name, phone_number, country_code, kyc_status,
		kyc_submitted_at, kyc_verified_at, wallet_address, created_at, updated_at`

// ProfileRepo implements ports.ProfileRepository.
type ProfileRepo struct {
	pool Pool
}

// NewProfileRepo creates a new ProfileRepo.
func NewProfileRepo(pool Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// GetByID fetches a profile by user id.
func (r *ProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	var rec domain.ProfileRecord
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.FullName, &rec.PhoneNumber, &rec.CountryCode, &rec.KYCStatus,
		&rec.KYCSubmittedAt, &rec.KYCVerifiedAt, &rec.WalletAddress, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by id: %w", err)
	}
	return rec.Parse()
}

// MarkKYCPending sets kyc_status to pending and records the phone number.
func (r *ProfileRepo) MarkKYCPending(ctx context.Context, u domain.KYCProfileUpdate) error {
	return markKYCPending(ctx, r.pool, u)
}

// UpdateWalletAddress records the currently bound wallet on the profile.
func (r *ProfileRepo) UpdateWalletAddress(ctx context.Context, id uuid.UUID, address string) error {
	query := `UPDATE profiles SET wallet_address = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, address, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update profile wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", id)
	}
	return nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func markKYCPending(ctx context.Context, db execer, u domain.KYCProfileUpdate) error {
	query := `UPDATE profiles SET kyc_status = $1, kyc_submitted_at = $2, phone_number = $3, updated_at = $2
		WHERE id = $4`

	tag, err := db.Exec(ctx, query, string(domain.KYCStatusPending), u.SubmittedAt, u.PhoneNumber, u.UserID)
	if err != nil {
		return fmt.Errorf("mark kyc pending: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", u.UserID)
	}
	return nil
}
