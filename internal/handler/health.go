package handler

import (
	"net/http"
	"time"

	"learnmate/backend/internal/model"

	"github.com/gin-gonic/gin"
)

// HandleHealth returns the liveness status and the configured providers
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		LLM:       h.llmName,
		Speech:    h.speechName,
	})
}

// HandleReadiness returns whether the service is ready to accept traffic.
// Stricter than health: every readiness check must pass.
func (h *Handler) HandleReadiness(c *gin.Context) {
	for _, check := range h.checks {
		if err := check.Check(); err != nil {
			h.logger.Warnw("not ready", "check", check.Name, "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"reason": check.Name,
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
