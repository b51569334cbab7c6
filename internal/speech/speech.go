// Package speech turns text into an audio artifact in shared storage.
// The actual synthesis is delegated to a pluggable Engine.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"learnmate/backend/internal/apperr"
	"learnmate/backend/internal/storage"

	"go.uber.org/zap"
	"google.golang.org/grpc/status"
)

// AudioExt is the extension of every synthesized artifact.
const AudioExt = ".mp3"

// Engine renders text as MP3 audio into w.
type Engine interface {
	Name() string
	Render(ctx context.Context, text string, w io.Writer) error
}

// Adapter writes Engine output to freshly named files under a Store.
type Adapter struct {
	engine Engine
	store  *storage.Store
	logger *zap.SugaredLogger
}

func NewAdapter(engine Engine, store *storage.Store, logger *zap.SugaredLogger) *Adapter {
	return &Adapter{engine: engine, store: store, logger: logger}
}

// Synthesize renders text into a new .mp3 artifact and returns its storage path.
// Engine failures come back as *apperr.UpstreamError and leave no file behind.
func (a *Adapter) Synthesize(ctx context.Context, text string) (string, error) {
	name := a.store.NewName("", AudioExt)
	if err := a.store.EnsureDir(); err != nil {
		return "", err
	}
	path := a.store.Path(name)

	// O_EXCL: names are fresh, an existing file is never overwritten
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}

	started := time.Now()
	renderErr := a.engine.Render(ctx, text, f)
	closeErr := f.Close()
	if err := errors.Join(renderErr, closeErr); err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			a.logger.Warnw("failed to remove partial audio file", "path", path, "error", rmErr)
		}
		if renderErr != nil {
			a.logger.Warnw("speech synthesis failed",
				"engine", a.engine.Name(),
				"code", status.Code(renderErr).String(),
				"error", renderErr,
			)
			return "", apperr.Upstream("speech", renderErr)
		}
		return "", fmt.Errorf("failed to write audio file: %w", closeErr)
	}

	a.logger.Infow("speech synthesized",
		"engine", a.engine.Name(),
		"file", name,
		"chars", len(text),
		"took", time.Since(started).String(),
	)
	return path, nil
}
