package handler

import (
	"net/http"
	"path"
	"time"

	"learnmate/backend/internal/logging"
	"learnmate/backend/internal/model"
	"learnmate/backend/internal/tutor/sanitize"

	"github.com/gin-gonic/gin"
)

// HandleVideo narrates the tutor's answer over the default image and returns
// a link to the resulting video.
func (h *Handler) HandleVideo(c *gin.Context) {
	question, err := bindQuestion(c)
	if err != nil {
		h.fail(c, "video", err)
		return
	}

	started := time.Now()
	answer, err := h.tutor.Ask(c.Request.Context(), question)
	if err != nil {
		h.fail(c, "video", err)
		return
	}

	name, err := h.compositor.Compose(c.Request.Context(), sanitize.Narration(answer), "")
	if err != nil {
		h.fail(c, "video", err)
		return
	}

	link := path.Join(h.publicPrefix, name)
	h.logger.Infow("video composed",
		"question", logging.Truncate(question, 80),
		"file", name,
		"took", time.Since(started).String(),
	)
	c.JSON(http.StatusOK, model.VideoResponse{VideoLink: link})
}
