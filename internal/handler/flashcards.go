package handler

import (
	"net/http"

	"learnmate/backend/internal/model"
	"learnmate/backend/internal/tutor/response"

	"github.com/gin-gonic/gin"
)

// HandleFlashcards turns the tutor's answer into up to ten flashcards.
func (h *Handler) HandleFlashcards(c *gin.Context) {
	question, err := bindQuestion(c)
	if err != nil {
		h.fail(c, "flashcards", err)
		return
	}

	answer, err := h.tutor.Ask(c.Request.Context(), question)
	if err != nil {
		h.fail(c, "flashcards", err)
		return
	}

	cards := response.ExtractFlashcards(answer)
	h.logger.Infow("flashcards extracted", "count", len(cards))
	c.JSON(http.StatusOK, model.FlashcardsResponse{Topic: question, Flashcards: cards})
}
