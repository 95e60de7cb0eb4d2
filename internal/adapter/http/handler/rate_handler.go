package handler

import (
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/pkg/apperror"
	"crossborder-remit/pkg/response"

	"github.com/gin-gonic/gin"
)

// RateHandler serves the public rate and quote endpoints.
type RateHandler struct {
	rates  ports.RateService
	quotes ports.QuoteService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rates ports.RateService, quotes ports.QuoteService) *RateHandler {
	return &RateHandler{rates: rates, quotes: quotes}
}

// Latest handles GET /api/v1/rates/latest.
func (h *RateHandler) Latest(c *gin.Context) {
	rate, err := h.rates.Latest(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if rate == nil {
		response.Error(c, apperror.ErrRateUnavailable())
		return
	}
	response.OK(c, rate)
}

// Quote handles GET /api/v1/quote?amount=.
func (h *RateHandler) Quote(c *gin.Context) {
	result, err := h.quotes.Quote(c.Request.Context(), c.Query("amount"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
