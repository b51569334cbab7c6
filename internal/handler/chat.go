package handler

import (
	"net/http"
	"time"

	"learnmate/backend/internal/logging"
	"learnmate/backend/internal/model"

	"github.com/gin-gonic/gin"
)

// HandleChat answers a question with the tutor's full response.
func (h *Handler) HandleChat(c *gin.Context) {
	question, err := bindQuestion(c)
	if err != nil {
		h.fail(c, "chat", err)
		return
	}

	started := time.Now()
	answer, err := h.tutor.Ask(c.Request.Context(), question)
	if err != nil {
		h.fail(c, "chat", err)
		return
	}

	h.logger.Infow("chat answered",
		"question", logging.Truncate(question, 80),
		"chars", len(answer),
		"took", time.Since(started).String(),
	)
	c.JSON(http.StatusOK, model.ChatResponse{Response: answer})
}
