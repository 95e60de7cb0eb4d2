package handler

import (
	"crossborder-remit/internal/adapter/http/dto"
	"crossborder-remit/internal/adapter/http/middleware"
	"crossborder-remit/pkg/apperror"
	"crossborder-remit/pkg/response"

	"github.com/gin-gonic/gin"
)

// KYCHandler handles the KYC workflow endpoints.
type KYCHandler struct{}

// NewKYCHandler creates a new KYCHandler.
func NewKYCHandler() *KYCHandler {
	return &KYCHandler{}
}

// State handles GET /api/v1/kyc.
func (h *KYCHandler) State(c *gin.Context) {
	ws, ok := currentWorkspace(c, "complete KYC")
	if !ok {
		return
	}
	response.OK(c, ws.KYC().State())
}

// Submit handles POST /api/v1/kyc.
func (h *KYCHandler) Submit(c *gin.Context) {
	ws, ok := currentWorkspace(c, "complete KYC")
	if !ok {
		return
	}

	var req dto.KYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	kyc := ws.KYC()
	doc, err := kyc.Submit(c.Request.Context(), req.Submission())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, doc.ID.String())
	response.Created(c, dto.KYCSubmitResponse{Document: doc, State: kyc.State()})
}
