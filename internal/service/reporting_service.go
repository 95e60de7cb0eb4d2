package service

import (
	"context"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/pkg/apperror"

	"github.com/google/uuid"
)

// RecentTransfersLimit is the page size of the transfer history.
const RecentTransfersLimit = 20

// reportingService implements ports.ReportingService.
type reportingService struct {
	txRepo ports.TransactionRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(txRepo ports.TransactionRepository) ports.ReportingService {
	return &reportingService{txRepo: txRepo}
}

// GetDashboardStats returns aggregated transfer stats for the user.
func (s *reportingService) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*ports.TransferStats, error) {
	stats, err := s.txRepo.GetStats(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return stats, nil
}

// ListRecent returns the newest transfers sent by the user.
func (s *reportingService) ListRecent(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	txs, err := s.txRepo.ListRecentBySender(ctx, userID, RecentTransfersLimit)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return txs, nil
}
