// Package gateway wires the Gin router: the middleware chain, route table,
// and HTTP handlers that sit in front of the Lifecycle Engine and Session
// Registry.
package gateway

import (
	"github.com/gin-gonic/gin"

	"github.com/streamspace/sessionctl/internal/apperrors"
	"github.com/streamspace/sessionctl/internal/lifecycle"
	"github.com/streamspace/sessionctl/internal/logger"
	"github.com/streamspace/sessionctl/internal/middleware"
	"github.com/streamspace/sessionctl/internal/registry"
	"github.com/streamspace/sessionctl/internal/store"
)

// Gateway holds the collaborators every handler needs.
type Gateway struct {
	engine   *lifecycle.Engine
	registry *registry.Registry
	store    *store.Store
}

// New builds a Gateway.
func New(engine *lifecycle.Engine, reg *registry.Registry, s *store.Store) *Gateway {
	return &Gateway{engine: engine, registry: reg, store: s}
}

// rateLimits are the per-endpoint N/W pairs.
var rateLimits = map[string]middleware.RateLimitConfig{
	"create": {Endpoint: "create", Limit: 100, Window: 60},
	"wake":   {Endpoint: "wake", Limit: 50, Window: 60},
	"sleep":  {Endpoint: "sleep", Limit: 50, Window: 60},
	"scale":  {Endpoint: "scale", Limit: 50, Window: 60},
	"delete": {Endpoint: "delete", Limit: 50, Window: 60},
	"chat":   {Endpoint: "chat", Limit: 100, Window: 60},
	"status": {Endpoint: "status", Limit: 200, Window: 60},
}

// Router builds the full route table. Every route runs behind RequestID ->
// StructuredLogger -> RequestSizeLimiter -> Timeout -> Recovery ->
// ErrorHandler. Every route except /health and /metrics also passes Auth;
// the /session routes then pass a per-endpoint RateLimit before the
// handler, while /sessions has no rate limit.
func Router(gw *Gateway, apiKey string) *gin.Engine {
	r := gin.New()

	log := logger.GetLogger()
	r.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(middleware.DefaultStructuredLoggerConfig()),
		middleware.RequestSizeLimiter(middleware.MaxRequestBodySize),
		middleware.Timeout(middleware.DefaultTimeoutConfig()),
		// Timeout runs the rest of the chain on its own goroutine, so
		// Recovery must sit after it to catch handler panics.
		apperrors.Recovery(*log),
		apperrors.ErrorHandler(*log),
	)

	r.GET("/health", gw.handleHealth)
	r.GET("/metrics", gw.handleMetrics)

	authed := r.Group("/")
	authed.Use(middleware.Auth(apiKey))

	authed.POST("/session/create",
		middleware.RateLimit(gw.store, rateLimits["create"]), gw.handleCreate)
	authed.POST("/session/:uuid/wake",
		middleware.RateLimit(gw.store, rateLimits["wake"]), gw.handleWake)
	authed.POST("/session/:uuid/sleep",
		middleware.RateLimit(gw.store, rateLimits["sleep"]), gw.handleSleep)
	authed.POST("/session/:uuid/scale",
		middleware.RateLimit(gw.store, rateLimits["scale"]), gw.handleScale)
	authed.POST("/session/:uuid/chat",
		middleware.RateLimit(gw.store, rateLimits["chat"]), gw.handleChat)
	authed.GET("/session/:uuid/status",
		middleware.RateLimit(gw.store, rateLimits["status"]), gw.handleStatus)
	authed.DELETE("/session/:uuid",
		middleware.RateLimit(gw.store, rateLimits["delete"]), gw.handleTerminate)
	authed.GET("/sessions", gw.handleList)

	return r
}
