package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Env            string   `env:"ENV"`
	Port           string   `env:"PORT"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	Storage StorageConfig
	LLM     LLMConfig
	TTS     TTSConfig
	Video   VideoConfig
}

// StorageConfig describes the shared artifact directory.
type StorageConfig struct {
	Dir                  string `env:"STORAGE_DIR"`
	PublicPrefix         string `env:"PUBLIC_PREFIX"` // URL prefix the directory is served under
	DefaultImage         string `env:"DEFAULT_IMAGE"` // empty means <Dir>/default_image.png
	GenerateDefaultImage bool   `env:"GENERATE_DEFAULT_IMAGE"`
}

// LLMConfig selects and configures the chat-completion backend.
type LLMConfig struct {
	Provider     string  `env:"LLM_PROVIDER"` // gemini|openai
	GeminiAPIKey string  `env:"GEMINI_API_KEY"`
	GeminiModel  string  `env:"GEMINI_MODEL"`
	OpenAIAPIKey string  `env:"OPENAI_API_KEY"`
	OpenAIURL    string  `env:"OPENAI_BASE_URL"` // any OpenAI-compatible endpoint, Groq by default
	OpenAIModel  string  `env:"OPENAI_MODEL"`
	Temperature  float32 `env:"LLM_TEMPERATURE"`
	MaxTokens    int     `env:"LLM_MAX_TOKENS"`
}

// TTSConfig selects and configures the speech engine.
type TTSConfig struct {
	Provider           string  `env:"TTS_PROVIDER"` // google|openai
	GoogleCredentials  string  `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	GoogleLanguage     string  `env:"GOOGLE_TTS_LANGUAGE"`
	GoogleVoice        string  `env:"GOOGLE_TTS_VOICE"`
	GoogleSpeakingRate float64 `env:"GOOGLE_TTS_SPEAKING_RATE"`
	GooglePitch        float64 `env:"GOOGLE_TTS_PITCH"`
	OpenAIURL          string  `env:"OPENAI_TTS_BASE_URL"` // kept apart from the LLM endpoint, which defaults to Groq
	OpenAIModel        string  `env:"OPENAI_TTS_MODEL"`
	OpenAIVoice        string  `env:"OPENAI_TTS_VOICE"`
}

// VideoConfig configures the ffmpeg encoder.
type VideoConfig struct {
	FFmpegPath string `env:"FFMPEG_PATH"`
	Height     int    `env:"VIDEO_HEIGHT"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *Config {
	return &Config{
		Env:            "development",
		Port:           "8000",
		AllowedOrigins: []string{"*"},
		Storage: StorageConfig{
			Dir:                  "static",
			PublicPrefix:         "/static",
			GenerateDefaultImage: true,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			GeminiModel: "gemini-2.5-flash",
			OpenAIURL:   "https://api.groq.com/openai/v1",
			OpenAIModel: "gemma2-9b-it",
			Temperature: 0.7,
			MaxTokens:   4096,
		},
		TTS: TTSConfig{
			Provider:           "google",
			GoogleLanguage:     "en-US",
			GoogleVoice:        "en-US-Standard-C",
			GoogleSpeakingRate: 1.0,
			OpenAIURL:          "https://api.openai.com/v1",
			OpenAIModel:        "tts-1",
			OpenAIVoice:        "alloy",
		},
		Video: VideoConfig{
			FFmpegPath: "ffmpeg",
			Height:     720,
		},
	}
}

// Load reads .env.local and .env (if present), then the process environment,
// on top of Defaults.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.TTS.Provider = strings.ToLower(strings.TrimSpace(c.TTS.Provider))
	c.Storage.PublicPrefix = "/" + strings.Trim(c.Storage.PublicPrefix, "/")

	origins := c.AllowedOrigins[:0]
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowedOrigins = origins
}

// IsProduction reports whether ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the selected providers have what they need.
func (c *Config) Validate() error {
	var errs []error

	switch c.LLM.Provider {
	case "gemini":
		if c.LLM.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is not set"))
		}
	case "openai":
		if c.LLM.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q (want gemini|openai)", c.LLM.Provider))
	}

	switch c.TTS.Provider {
	case "google":
	case "openai":
		if c.LLM.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for TTS_PROVIDER=openai"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown TTS_PROVIDER %q (want google|openai)", c.TTS.Provider))
	}

	if c.Storage.Dir == "" {
		errs = append(errs, errors.New("STORAGE_DIR must not be empty"))
	}
	if c.Storage.PublicPrefix == "/" {
		errs = append(errs, errors.New("PUBLIC_PREFIX must not be the site root"))
	}
	if c.Video.Height <= 0 {
		errs = append(errs, fmt.Errorf("VIDEO_HEIGHT must be positive, got %d", c.Video.Height))
	}

	return errors.Join(errs...)
}
