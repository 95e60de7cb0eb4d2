package handler

import (
	"crossborder-remit/internal/adapter/http/dto"
	"crossborder-remit/internal/adapter/http/middleware"
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/pkg/apperror"
	"crossborder-remit/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard & transaction list endpoints.
type DashboardHandler struct {
	reportingSvc ports.ReportingService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportingSvc ports.ReportingService) *DashboardHandler {
	return &DashboardHandler{reportingSvc: reportingSvc}
}

// GetStats handles GET /api/v1/dashboard/stats.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	stats, err := h.reportingSvc.GetDashboardStats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// ListTransfers handles GET /api/v1/transfers.
func (h *DashboardHandler) ListTransfers(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	txs, err := h.reportingSvc.ListRecent(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.TransferListResponse{Items: txs, Count: len(txs)})
}
