package handler

import (
	"crossborder-remit/internal/adapter/http/dto"
	"crossborder-remit/internal/adapter/http/middleware"
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/pkg/apperror"
	"crossborder-remit/pkg/response"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the identity session.
type SessionHandler struct {
	workspaces ports.Workspaces
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(workspaces ports.Workspaces) *SessionHandler {
	return &SessionHandler{workspaces: workspaces}
}

// Profile handles GET /api/v1/profile.
func (h *SessionHandler) Profile(c *gin.Context) {
	ws, ok := currentWorkspace(c, "view your profile")
	if !ok {
		return
	}

	profile, err := ws.Session().RefreshProfile(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if profile == nil {
		response.Error(c, apperror.ErrNotFound("Profile"))
		return
	}
	response.OK(c, profile)
}

// Close handles DELETE /api/v1/session.
func (h *SessionHandler) Close(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	h.workspaces.Close(userID)
	response.OK(c, dto.SessionClosedResponse{Closed: true})
}
