package handler

import (
	"crossborder-remit/internal/adapter/http/dto"
	"crossborder-remit/internal/adapter/http/middleware"
	"crossborder-remit/pkg/apperror"
	"crossborder-remit/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransferHandler handles the transfer workflow endpoints.
type TransferHandler struct{}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler() *TransferHandler {
	return &TransferHandler{}
}

// State handles GET /api/v1/transfers/state.
func (h *TransferHandler) State(c *gin.Context) {
	ws, ok := currentWorkspace(c, "send money")
	if !ok {
		return
	}
	response.OK(c, ws.Transfers().State())
}

// UpdateDraft handles PUT /api/v1/transfers/draft.
func (h *TransferHandler) UpdateDraft(c *gin.Context) {
	ws, ok := currentWorkspace(c, "send money")
	if !ok {
		return
	}

	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	transfers := ws.Transfers()
	display := transfers.UpdateDraft(req.Draft())
	response.OK(c, dto.DraftResponse{
		Quote:     display,
		CanSubmit: transfers.CanSubmit(),
	})
}

// Submit handles POST /api/v1/transfers.
func (h *TransferHandler) Submit(c *gin.Context) {
	ws, ok := currentWorkspace(c, "send money")
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	tx, err := ws.Transfers().Submit(c.Request.Context(), req.Draft())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, tx.ID.String())
	response.Created(c, tx)
}
