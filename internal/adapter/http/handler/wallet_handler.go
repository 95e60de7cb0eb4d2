package handler

import (
	"crossborder-remit/internal/adapter/http/dto"
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/pkg/apperror"
	"crossborder-remit/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler relays wallet provider operations and events.
type WalletHandler struct{}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler() *WalletHandler {
	return &WalletHandler{}
}

// State handles GET /api/v1/wallet.
func (h *WalletHandler) State(c *gin.Context) {
	ws, ok := currentWorkspace(c, "link a wallet")
	if !ok {
		return
	}
	response.OK(c, ws.Wallet().State())
}

// Connect handles POST /api/v1/wallet/connect.
func (h *WalletHandler) Connect(c *gin.Context) {
	ws, ok := currentWorkspace(c, "link a wallet")
	if !ok {
		return
	}

	state, err := ws.Wallet().Connect(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// Events handles POST /api/v1/wallet/events.
func (h *WalletHandler) Events(c *gin.Context) {
	ws, ok := currentWorkspace(c, "link a wallet")
	if !ok {
		return
	}

	var req dto.WalletEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	var (
		state ports.WalletState
		err   error
	)
	switch req.Event {
	case dto.WalletEventAccountsChanged:
		state, err = ws.Wallet().HandleAccountsChanged(c.Request.Context(), req.Accounts)
	case dto.WalletEventChainChanged:
		state, err = ws.Wallet().HandleChainChanged(c.Request.Context(), req.ChainID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// SwitchNetwork handles POST /api/v1/wallet/switch-network.
func (h *WalletHandler) SwitchNetwork(c *gin.Context) {
	ws, ok := currentWorkspace(c, "link a wallet")
	if !ok {
		return
	}

	if err := ws.Wallet().SwitchNetwork(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ws.Wallet().State())
}
