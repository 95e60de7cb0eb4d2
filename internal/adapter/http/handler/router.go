package handler

import (
	"net/http"

	"crossborder-remit/internal/adapter/http/middleware"
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Workspaces     ports.Workspaces
	Rates          ports.RateService
	Quotes         ports.QuoteService
	Reporting      ports.ReportingService
	TokenSvc       ports.TokenService
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Metrics        *service.Metrics
	MetricsHandler http.Handler // nil = /metrics not served
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	rateHandler := NewRateHandler(deps.Rates, deps.Quotes)
	v1.GET("/rates/latest", rl("read"), rateHandler.Latest)
	v1.GET("/quote", rl("read"), rateHandler.Quote)

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	sessionHandler := NewSessionHandler(deps.Workspaces)
	dashboardHandler := NewDashboardHandler(deps.Reporting)

	authed := v1.Group("", jwtAuth)
	{
		authed.DELETE("/session", sessionHandler.Close)
		authed.GET("/dashboard/stats", rl("read"), dashboardHandler.GetStats)
		authed.GET("/transfers", rl("read"), dashboardHandler.ListTransfers)
	}

	// --- Routes backed by the caller's workspace ---
	transferHandler := NewTransferHandler()
	kycHandler := NewKYCHandler()
	walletHandler := NewWalletHandler()
	realtimeHandler := NewRealtimeHandler(deps.Reporting, deps.AllowedOrigins, deps.Logger)

	ws := v1.Group("", jwtAuth, middleware.Workspace(deps.Workspaces))
	{
		ws.GET("/profile", rl("read"), sessionHandler.Profile)

		ws.GET("/transfers/state", rl("read"), transferHandler.State)
		ws.PUT("/transfers/draft", rl("read"), transferHandler.UpdateDraft)
		ws.POST("/transfers", rl("transfers"), transferHandler.Submit)

		ws.GET("/kyc", rl("read"), kycHandler.State)
		ws.POST("/kyc", rl("kyc"), kycHandler.Submit)

		ws.GET("/wallet", rl("read"), walletHandler.State)
		ws.POST("/wallet/connect", rl("wallet"), walletHandler.Connect)
		ws.POST("/wallet/events", rl("wallet"), walletHandler.Events)
		ws.POST("/wallet/switch-network", rl("wallet"), walletHandler.SwitchNetwork)

		ws.GET("/realtime", realtimeHandler.Serve)
	}

	return r
}

// WithCORS wraps h with the CORS policy for browser clients.
func WithCORS(h http.Handler, allowedOrigins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	})(h)
}
