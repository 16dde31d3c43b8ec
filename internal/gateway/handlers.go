package gateway

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamspace/sessionctl/internal/apperrors"
)

// version is the control plane's reported build version.
const version = "v0.1.0"

type createRequest struct {
	UserID string `json:"user_id"`
}

func (gw *Gateway) handleCreate(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.Validation("invalid request body"))
		return
	}

	result, err := gw.engine.Create(c.Request.Context(), req.UserID)
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (gw *Gateway) handleWake(c *gin.Context) {
	result, err := gw.engine.Wake(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (gw *Gateway) handleSleep(c *gin.Context) {
	result, err := gw.engine.Sleep(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type scaleRequest struct {
	Scale string `json:"scale"`
}

func (gw *Gateway) handleScale(c *gin.Context) {
	var req scaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.Validation("invalid request body"))
		return
	}

	result, err := gw.engine.Scale(c.Request.Context(), c.Param("uuid"), req.Scale)
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (gw *Gateway) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.Validation("invalid request body"))
		return
	}

	result, err := gw.engine.Chat(c.Request.Context(), c.Param("uuid"), req.Message)
	if err != nil {
		apperrors.Abort(c, err)
		return
	}

	status := http.StatusOK
	if result.Queued {
		status = http.StatusAccepted
	}
	c.JSON(status, result)
}

func (gw *Gateway) handleStatus(c *gin.Context) {
	result, err := gw.engine.GetStatus(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (gw *Gateway) handleTerminate(c *gin.Context) {
	result, err := gw.engine.Terminate(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (gw *Gateway) handleList(c *gin.Context) {
	sessions, err := gw.registry.List(c.Request.Context())
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":    len(sessions),
		"sessions": sessions,
	})
}

func (gw *Gateway) handleHealth(c *gin.Context) {
	redisStatus := "ok"
	status := "healthy"
	if err := gw.store.Ping(c.Request.Context()); err != nil {
		redisStatus = "unavailable"
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"redis":     redisStatus,
		"version":   version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (gw *Gateway) handleMetrics(c *gin.Context) {
	metrics, err := gw.registry.ComputeMetrics(c.Request.Context())
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_sessions":    metrics.TotalSessions,
		"active_sessions":   metrics.ActiveSessions,
		"sleeping_sessions": metrics.SleepingSessions,
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	})
}
