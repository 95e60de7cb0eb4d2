package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// KYCStatus is the verification state mirrored on a profile.
type KYCStatus string

const (
	KYCStatusUnverified KYCStatus = "unverified"
	KYCStatusPending    KYCStatus = "pending"
	KYCStatusVerified   KYCStatus = "verified"
	KYCStatusRejected   KYCStatus = "rejected"
)

// Valid reports whether s is a known KYC status.
func (s KYCStatus) Valid() bool {
	switch s {
	case KYCStatusUnverified, KYCStatusPending, KYCStatusVerified, KYCStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed.
// A rejected profile may be resubmitted.
func (s KYCStatus) CanTransitionTo(next KYCStatus) bool {
	switch s {
	case KYCStatusUnverified, KYCStatusRejected:
		return next == KYCStatusPending
	case KYCStatusPending:
		return next == KYCStatusVerified || next == KYCStatusRejected
	}
	return false
}

// Profile is the per-user identity record kept by the remote ledger.
type Profile struct {
	ID             uuid.UUID  `json:"id"`
	FullName       string     `json:"full_name"`
	PhoneNumber    *string    `json:"phone_number,omitempty"`
	CountryCode    string     `json:"country_code"`
	KYCStatus      KYCStatus  `json:"kyc_status"`
	KYCSubmittedAt *time.Time `json:"kyc_submitted_at,omitempty"`
	KYCVerifiedAt  *time.Time `json:"kyc_verified_at,omitempty"`
	WalletAddress  *string    `json:"wallet_address,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsVerified returns true once an external reviewer approved the profile.
func (p *Profile) IsVerified() bool {
	return p != nil && p.KYCStatus == KYCStatusVerified
}

// HasWallet reports whether addr is the wallet currently bound to the profile.
func (p *Profile) HasWallet(addr string) bool {
	return p.WalletAddress != nil && *p.WalletAddress == addr
}

// Clone returns a deep copy so callers cannot mutate shared session state.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.PhoneNumber = cloneString(p.PhoneNumber)
	c.WalletAddress = cloneString(p.WalletAddress)
	c.KYCSubmittedAt = cloneTime(p.KYCSubmittedAt)
	c.KYCVerifiedAt = cloneTime(p.KYCVerifiedAt)
	return &c
}

// ProfileRecord is the raw `profiles` row shape.
type ProfileRecord struct {
	ID             uuid.UUID  `json:"id"`
	FullName       string     `json:"full_name"`
	PhoneNumber    *string    `json:"phone_number"`
	CountryCode    string     `json:"country_code"`
	KYCStatus      string     `json:"kyc_status"`
	KYCSubmittedAt *time.Time `json:"kyc_submitted_at"`
	KYCVerifiedAt  *time.Time `json:"kyc_verified_at"`
	WalletAddress  *string    `json:"wallet_address"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Parse validates the row and converts it into a Profile.
func (r ProfileRecord) Parse() (*Profile, error) {
	if r.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: profile id is empty", ErrInvalidRecord)
	}
	status := KYCStatus(r.KYCStatus)
	if status == "" {
		status = KYCStatusUnverified
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: kyc_status %q", ErrInvalidRecord, r.KYCStatus)
	}
	if status == KYCStatusVerified && r.KYCVerifiedAt == nil {
		return nil, fmt.Errorf("%w: verified profile without kyc_verified_at", ErrInvalidRecord)
	}
	return &Profile{
		ID:             r.ID,
		FullName:       r.FullName,
		PhoneNumber:    r.PhoneNumber,
		CountryCode:    r.CountryCode,
		KYCStatus:      status,
		KYCSubmittedAt: r.KYCSubmittedAt,
		KYCVerifiedAt:  r.KYCVerifiedAt,
		WalletAddress:  r.WalletAddress,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
