package handler

import (
	"crossborder-remit/internal/adapter/http/middleware"
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/pkg/apperror"
	"crossborder-remit/pkg/response"

	"github.com/gin-gonic/gin"
)

// currentWorkspace writes AUTH_001 and returns false when no workspace is attached.
func currentWorkspace(c *gin.Context, action string) (ports.Workspace, bool) {
	ws := middleware.CurrentWorkspace(c)
	if ws == nil {
		response.Error(c, apperror.ErrNotAuthenticated(action))
		return nil, false
	}
	return ws, true
}
