package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records successful write operations after the handler ran.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		action, resourceType := mapPathToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		var userID *uuid.UUID
		if id, ok := UserID(c); ok {
			userID = &id
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"request_id": c.GetString(response.CtxRequestID),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			UserID:       userID,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   c.GetString(CtxResourceID),
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

func mapPathToAction(path, method string) (domain.AuditAction, string) {
	switch {
	case path == "/api/v1/transfers" && method == http.MethodPost:
		return domain.AuditActionTransferCreate, "transaction"
	case path == "/api/v1/kyc" && method == http.MethodPost:
		return domain.AuditActionKYCSubmit, "kyc_document"
	case path == "/api/v1/wallet/connect" && method == http.MethodPost:
		return domain.AuditActionWalletConnect, "wallet"
	case path == "/api/v1/wallet/events" && method == http.MethodPost:
		return domain.AuditActionWalletEvent, "wallet"
	case path == "/api/v1/wallet/switch-network" && method == http.MethodPost:
		return domain.AuditActionNetworkSwitch, "wallet"
	case path == "/api/v1/session" && method == http.MethodDelete:
		return domain.AuditActionSessionClose, "session"
	}
	return "", ""
}
