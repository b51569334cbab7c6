package tutor

import (
	"context"
	"errors"
	"time"

	"learnmate/backend/internal/apperr"
	"learnmate/backend/internal/logging"
	"learnmate/backend/internal/tutor/deps"
	"learnmate/backend/internal/tutor/prompt"
	"learnmate/backend/internal/tutor/response"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// DefaultTemperature is used when no temperature is configured
	DefaultTemperature = 0.7
	// DefaultMaxOutputTokens is used when no token limit is configured
	DefaultMaxOutputTokens = 4096
)

// ErrEmptyResponse is returned when the model answers with no text
var ErrEmptyResponse = errors.New("no response from model")

// Options tunes the generation call
type Options struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Tutor runs the prompt -> model -> parser pipeline shared by every endpoint
type Tutor struct {
	llm           deps.LLMClient
	promptBuilder *prompt.Builder
	opts          Options
	logger        *zap.SugaredLogger
}

// New creates a Tutor. Zero options fall back to the defaults.
func New(llm deps.LLMClient, promptBuilder *prompt.Builder, opts Options, logger *zap.SugaredLogger) *Tutor {
	if opts.Temperature == 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if promptBuilder == nil {
		promptBuilder = prompt.NewBuilder()
	}
	return &Tutor{
		llm:           llm,
		promptBuilder: promptBuilder,
		opts:          opts,
		logger:        logger,
	}
}

// Ask formats question into the tutor prompt, invokes the model and returns the parsed text.
// Model failures are returned as *apperr.UpstreamError.
func (t *Tutor) Ask(ctx context.Context, question string) (string, error) {
	started := time.Now()

	raw, err := t.llm.GenerateContent(ctx,
		t.promptBuilder.BuildSystemPrompt(),
		t.promptBuilder.BuildUserPrompt(question),
		t.opts.Temperature,
		t.opts.MaxOutputTokens,
	)
	if err != nil {
		t.logger.Warnw("model call failed",
			"question", logging.Truncate(question, 50),
			"code", grpcCode(err),
			"took", time.Since(started).String(),
			"error", err,
		)
		return "", apperr.Upstream("llm", err)
	}

	text := response.Parse(raw)
	if text == "" {
		return "", apperr.Upstream("llm", ErrEmptyResponse)
	}

	t.logger.Infow("model call completed",
		"question", logging.Truncate(question, 50),
		"chars", len(text),
		"took", time.Since(started).String(),
	)
	return text, nil
}

// grpcCode extracts a gRPC status code name for logging, or "" when err carries none
func grpcCode(err error) string {
	if s, ok := status.FromError(err); ok && s.Code() != codes.Unknown {
		return s.Code().String()
	}
	return ""
}
