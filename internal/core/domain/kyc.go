package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocumentType identifies the kind of identity document submitted.
type DocumentType string

const (
	DocumentTypeAadhaar        DocumentType = "aadhaar"
	DocumentTypePAN            DocumentType = "pan"
	DocumentTypePassport       DocumentType = "passport"
	DocumentTypeDriversLicense DocumentType = "drivers_license"
)

// Valid reports whether t is an accepted document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeAadhaar, DocumentTypePAN, DocumentTypePassport, DocumentTypeDriversLicense:
		return true
	}
	return false
}

// VerificationStatus is the review state of a single KYC document.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// KYCDocument is a submitted identity document. DocumentNumber holds the
// encrypted value as stored.
type KYCDocument struct {
	ID                 uuid.UUID          `json:"id"`
	UserID             uuid.UUID          `json:"user_id"`
	DocumentType       DocumentType       `json:"document_type"`
	DocumentNumber     string             `json:"-"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	CreatedAt          time.Time          `json:"created_at"`
}

// KYCDocumentRecord is the raw `kyc_documents` row shape.
type KYCDocumentRecord struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	DocumentType       string    `json:"document_type"`
	DocumentNumber     string    `json:"document_number"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
}

// Parse validates the row and converts it into a KYCDocument.
func (r KYCDocumentRecord) Parse() (*KYCDocument, error) {
	if r.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: kyc document user_id is empty", ErrInvalidRecord)
	}
	docType := DocumentType(r.DocumentType)
	if !docType.Valid() {
		return nil, fmt.Errorf("%w: document_type %q", ErrInvalidRecord, r.DocumentType)
	}
	status := VerificationStatus(r.VerificationStatus)
	switch status {
	case VerificationStatusPending, VerificationStatusVerified, VerificationStatusRejected:
	default:
		return nil, fmt.Errorf("%w: verification_status %q", ErrInvalidRecord, r.VerificationStatus)
	}
	return &KYCDocument{
		ID:                 r.ID,
		UserID:             r.UserID,
		DocumentType:       docType,
		DocumentNumber:     r.DocumentNumber,
		VerificationStatus: status,
		CreatedAt:          r.CreatedAt,
	}, nil
}

// KYCProfileUpdate is the profile side of a KYC submission.
type KYCProfileUpdate struct {
	UserID      uuid.UUID
	PhoneNumber string
	SubmittedAt time.Time
}
