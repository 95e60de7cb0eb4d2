package postgres

import (
	"context"
	"fmt"

	"crossborder-remit/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// KYCDocumentRepo implements ports.KYCDocumentRepository.
type KYCDocumentRepo struct {
	pool Pool
}

// NewKYCDocumentRepo creates a new KYCDocumentRepo.
func NewKYCDocumentRepo(pool Pool) *KYCDocumentRepo {
	return &KYCDocumentRepo{pool: pool}
}

// Create inserts a document row.
func (r *KYCDocumentRepo) Create(ctx context.Context, doc *domain.KYCDocument) error {
	return insertKYCDocument(ctx, r.pool, doc)
}

// CreateWithProfileUpdate inserts the document and marks the profile
// pending in one transaction.
func (r *KYCDocumentRepo) CreateWithProfileUpdate(ctx context.Context, doc *domain.KYCDocument, u domain.KYCProfileUpdate) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := insertKYCDocument(ctx, tx, doc); err != nil {
			return err
		}
		return markKYCPending(ctx, tx, u)
	})
}

// ListByUser returns the user's documents, newest first.
func (r *KYCDocumentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.KYCDocument, error) {
	query := `SELECT id, user_id, document_type, document_number, verification_status, created_at
		FROM kyc_documents WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list kyc documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.KYCDocument
	for rows.Next() {
		var rec domain.KYCDocumentRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.DocumentType, &rec.DocumentNumber,
			&rec.VerificationStatus, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan kyc document row: %w", err)
		}
		doc, err := rec.Parse()
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kyc documents: %w", err)
	}
	return docs, nil
}

func insertKYCDocument(ctx context.Context, db execer, doc *domain.KYCDocument) error {
	query := `INSERT INTO kyc_documents (id, user_id, document_type, document_number, verification_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := db.Exec(ctx, query, doc.ID, doc.UserID, string(doc.DocumentType), doc.DocumentNumber,
		string(doc.VerificationStatus), doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert kyc document: %w", err)
	}
	return nil
}
