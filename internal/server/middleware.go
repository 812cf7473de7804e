package server

import (
	"errors"
	"net/http"
	"time"

	model "tender-tracker/internal/models"
	"tender-tracker/services/tenders/helpers"
	"tender-tracker/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// IdentityMiddleware trusts the gateway-provided identity headers and
// attaches the resulting actor to the request context. Requests without a
// valid identity are rejected before any handler runs.
func IdentityMiddleware(c *gin.Context) {
	id := c.GetHeader("X-User-Id")
	role := c.GetHeader("X-User-Role")
	if id == "" || role == "" {
		utils.JSONError(c, http.StatusUnauthorized, errors.New("missing X-User-Id or X-User-Role header"), "missing identity headers")
		c.Abort()
		return
	}
	if !model.ValidRole(model.Role(role)) {
		utils.JSONError(c, http.StatusUnauthorized, errors.New("unknown role "+role), "unknown role")
		utils.Warn("IdentityMiddleware: unknown role", map[string]any{"role": role})
		c.Abort()
		return
	}

	c.Set(helpers.ActorKey, model.Actor{
		ID:    id,
		Role:  model.Role(role),
		Email: c.GetHeader("X-User-Email"),
	})
	c.Next()
}
