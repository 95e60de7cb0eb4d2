package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionTransferCreate AuditAction = "TRANSFER_CREATE"
	AuditActionKYCSubmit      AuditAction = "KYC_SUBMIT"
	AuditActionWalletConnect  AuditAction = "WALLET_CONNECT"
	AuditActionWalletEvent    AuditAction = "WALLET_EVENT"
	AuditActionNetworkSwitch  AuditAction = "WALLET_SWITCH_NETWORK"
	AuditActionSessionClose   AuditAction = "SESSION_CLOSE"
)

// AuditLog records a single audited action.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	UserID       *uuid.UUID  `json:"user_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
