package dto

import (
	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/internal/core/quote"
)

// TransferRequest is the request body for a transfer submission.
type TransferRequest struct {
	Amount           string `json:"amount" binding:"required,min_amount"`
	RecipientAddress string `json:"recipient_address" binding:"required,eth_addr"`
	RecipientName    string `json:"recipient_name" binding:"required,min=1,max=100"`
}

// Draft converts the request into workflow input.
func (r TransferRequest) Draft() ports.TransferDraft {
	return ports.TransferDraft{
		Amount:           r.Amount,
		RecipientAddress: r.RecipientAddress,
		RecipientName:    r.RecipientName,
	}
}

// DraftRequest is the request body for a live draft update. Every field is optional.
type DraftRequest struct {
	Amount           string `json:"amount" binding:"max=32"`
	RecipientAddress string `json:"recipient_address" binding:"max=64"`
	RecipientName    string `json:"recipient_name" binding:"max=100"`
}

func (r DraftRequest) Draft() ports.TransferDraft {
	return ports.TransferDraft{
		Amount:           r.Amount,
		RecipientAddress: r.RecipientAddress,
		RecipientName:    r.RecipientName,
	}
}

// DraftResponse is the live quote for the current draft.
type DraftResponse struct {
	Quote     quote.Display `json:"quote"`
	CanSubmit bool          `json:"can_submit"`
}

// KYCRequest is the request body for a KYC submission.
type KYCRequest struct {
	DocumentType   string `json:"document_type" binding:"required,oneof=aadhaar pan passport drivers_license"`
	DocumentNumber string `json:"document_number" binding:"required,min=4,max=32,safe_id"`
	PhoneNumber    string `json:"phone_number" binding:"omitempty,e164"`
}

func (r KYCRequest) Submission() ports.KYCSubmission {
	return ports.KYCSubmission{
		DocumentType:   domain.DocumentType(r.DocumentType),
		DocumentNumber: r.DocumentNumber,
		PhoneNumber:    r.PhoneNumber,
	}
}

// KYCSubmitResponse is returned after a successful KYC submission.
type KYCSubmitResponse struct {
	Document *domain.KYCDocument `json:"document"`
	State    ports.KYCState      `json:"state"`
}

// Wallet provider events relayed by the client.
const (
	WalletEventAccountsChanged = "accountsChanged"
	WalletEventChainChanged    = "chainChanged"
)

// WalletEventRequest relays a provider event.
type WalletEventRequest struct {
	Event    string   `json:"event" binding:"required,oneof=accountsChanged chainChanged"`
	Accounts []string `json:"accounts" binding:"omitempty,max=16"`
	ChainID  string   `json:"chain_id" binding:"required_if=Event chainChanged,omitempty,hexadecimal"`
}

// TransferListResponse wraps the newest transfers.
type TransferListResponse struct {
	Items []domain.Transaction `json:"items"`
	Count int                  `json:"count"`
}

// SessionClosedResponse confirms a workspace teardown.
type SessionClosedResponse struct {
	Closed bool `json:"closed"`
}
