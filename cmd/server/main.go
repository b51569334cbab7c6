package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnmate/backend/internal/config"
	"learnmate/backend/internal/handler"
	"learnmate/backend/internal/logging"
	"learnmate/backend/internal/media"
	"learnmate/backend/internal/middleware"
	"learnmate/backend/internal/speech"
	googletts "learnmate/backend/internal/speech/google"
	openaitts "learnmate/backend/internal/speech/openai"
	"learnmate/backend/internal/storage"
	"learnmate/backend/internal/tutor"
	"learnmate/backend/internal/tutor/deps"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	placeholderWidth  = 1280
	placeholderHeight = 720
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatalw("server exited", "error", err)
	}
}

func run(cfg *config.Config, logger *zap.SugaredLogger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Infow("starting learnmate", "env", cfg.Env, "llm", cfg.LLM.Provider, "tts", cfg.TTS.Provider)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := storage.New(cfg.Storage.Dir)
	if err := store.EnsureDir(); err != nil {
		return err
	}
	defaultImage := cfg.Storage.DefaultImage
	if defaultImage == "" {
		defaultImage = store.DefaultImage()
	}
	if cfg.Storage.GenerateDefaultImage {
		created, err := storage.EnsurePlaceholder(defaultImage, placeholderWidth, placeholderHeight)
		if err != nil {
			return err
		}
		if created {
			logger.Infow("wrote placeholder default image", "path", defaultImage)
		}
	}

	llm, err := newLLMClient(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	engine, err := newSpeechEngine(ctx, cfg.TTS, cfg.LLM.OpenAIAPIKey)
	if err != nil {
		return err
	}
	if c, ok := engine.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	encoder := media.NewFFmpegEncoder(cfg.Video.FFmpegPath, logger)
	if err := encoder.Available(); err != nil {
		logger.Warnw("ffmpeg not found, /video will fail until it is installed", "path", cfg.Video.FFmpegPath, "error", err)
	}

	compositor := media.NewCompositor(
		speech.NewAdapter(engine, store, logger),
		store,
		encoder,
		media.Options{DefaultImage: defaultImage, Height: cfg.Video.Height},
		logger,
	)
	t := tutor.New(llm, nil, tutor.Options{
		Temperature:     cfg.LLM.Temperature,
		MaxOutputTokens: int32(cfg.LLM.MaxTokens),
	}, logger)

	h := handler.New(handler.Config{
		Tutor:        t,
		Compositor:   compositor,
		PublicPrefix: cfg.Storage.PublicPrefix,
		LLMName:      cfg.LLM.Provider,
		SpeechName:   engine.Name(),
		Checks: []handler.ReadinessCheck{
			{Name: "default_image", Check: func() error { return requireFile(defaultImage) }},
			{Name: "ffmpeg", Check: encoder.Available},
		},
		Logger: logger,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	// Security headers (before CORS)
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.Static(cfg.Storage.PublicPrefix, store.Root())
	h.Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("server ready", "port", cfg.Port, "allowed_origins", cfg.AllowedOrigins, "storage", store.Root())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeoutCause(context.Background(), 10*time.Second, errors.New("shutdown timeout"))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("graceful shutdown error", "error", err)
		_ = srv.Close()
	}
	logger.Info("server stopped")
	return nil
}

func newLLMClient(ctx context.Context, cfg config.LLMConfig) (deps.LLMClient, error) {
	switch cfg.Provider {
	case "gemini":
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create genai client: %w", err)
		}
		return tutor.NewGeminiLLMClient(client, cfg.GeminiModel), nil
	case "openai":
		return tutor.NewOpenAILLMClient(cfg.OpenAIAPIKey, cfg.OpenAIURL, cfg.OpenAIModel), nil
	}
	return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
}

func newSpeechEngine(ctx context.Context, cfg config.TTSConfig, openAIKey string) (speech.Engine, error) {
	switch cfg.Provider {
	case "google":
		client, err := googletts.New(ctx, cfg.GoogleCredentials, googletts.Config{
			Language:     cfg.GoogleLanguage,
			Voice:        cfg.GoogleVoice,
			SpeakingRate: cfg.GoogleSpeakingRate,
			Pitch:        cfg.GooglePitch,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create text-to-speech client: %w", err)
		}
		return client, nil
	case "openai":
		return openaitts.New(openAIKey, cfg.OpenAIURL, cfg.OpenAIModel, cfg.OpenAIVoice), nil
	}
	return nil, fmt.Errorf("unknown TTS provider %q", cfg.Provider)
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept-Language"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

func requireFile(path string) error {
	ok, err := storage.Exists(path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s does not exist", path)
	}
	return nil
}
