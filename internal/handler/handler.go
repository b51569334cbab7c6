package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"learnmate/backend/internal/apperr"
	"learnmate/backend/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Asker answers a student's question.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Composer turns narration text into a video and returns its file name.
type Composer interface {
	Compose(ctx context.Context, text, imagePath string) (string, error)
}

// ReadinessCheck returns nil when a dependency is usable.
type ReadinessCheck struct {
	Name  string
	Check func() error
}

// Config carries the handler's collaborators.
type Config struct {
	Tutor        Asker
	Compositor   Composer
	PublicPrefix string
	LLMName      string
	SpeechName   string
	Checks       []ReadinessCheck
	Logger       *zap.SugaredLogger
}

// Handler serves the tutor endpoints.
type Handler struct {
	tutor        Asker
	compositor   Composer
	publicPrefix string
	llmName      string
	speechName   string
	checks       []ReadinessCheck
	logger       *zap.SugaredLogger
}

func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		tutor:        cfg.Tutor,
		compositor:   cfg.Compositor,
		publicPrefix: "/" + strings.Trim(cfg.PublicPrefix, "/"),
		llmName:      cfg.LLMName,
		speechName:   cfg.SpeechName,
		checks:       cfg.Checks,
		logger:       logger,
	}
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/health", h.HandleHealth)
	r.GET("/ready", h.HandleReadiness)
	r.POST("/chat", h.HandleChat)
	r.POST("/video", h.HandleVideo)
	r.POST("/flashcards", h.HandleFlashcards)
}

// bindQuestion decodes the request body and returns the normalized question.
func bindQuestion(c *gin.Context) (string, error) {
	var req model.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", &apperr.ValidationError{Field: "question", Reason: "a JSON body with a non-empty question string is required"}
	}

	// NFC first so visually identical input reaches the model identically
	question := strings.TrimSpace(norm.NFC.String(req.Question))
	if question == "" {
		return "", &apperr.ValidationError{Field: "question", Reason: "must not be blank"}
	}
	return question, nil
}

// fail writes the error body and logs the failure once.
func (h *Handler) fail(c *gin.Context, endpoint string, err error) {
	status := http.StatusInternalServerError
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		status = http.StatusBadRequest
	}

	fields := []interface{}{"endpoint", endpoint, "status", status, "error", err}
	var uerr *apperr.UpstreamError
	var merr *apperr.MissingArtifactError
	var eerr *apperr.EncodingError
	switch {
	case errors.As(err, &uerr):
		fields = append(fields, "kind", "upstream", "service", uerr.Service)
	case errors.As(err, &merr):
		fields = append(fields, "kind", "missing_artifact", "artifact", merr.Kind, "path", merr.Path)
	case errors.As(err, &eerr):
		fields = append(fields, "kind", "encoding", "stage", eerr.Stage)
	}

	if status == http.StatusBadRequest {
		h.logger.Infow("request rejected", fields...)
	} else {
		h.logger.Errorw("request failed", fields...)
	}
	c.JSON(status, model.ErrorResponse{Detail: err.Error()})
}
