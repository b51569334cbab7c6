package openai

import (
	"context"
	"io"

	goopenai "github.com/sashabaranov/go-openai"
)

// Client renders speech through an OpenAI-compatible /audio/speech endpoint.
type Client struct {
	client *goopenai.Client
	model  string
	voice  string
}

// New creates a speech client; an empty baseURL keeps the OpenAI default.
func New(apiKey, baseURL, model, voice string) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		client: goopenai.NewClientWithConfig(cfg),
		model:  model,
		voice:  voice,
	}
}

func (c *Client) Name() string { return "openai" }

// Render requests MP3 speech for text and streams it into w.
func (c *Client) Render(ctx context.Context, text string, w io.Writer) error {
	resp, err := c.client.CreateSpeech(ctx, goopenai.CreateSpeechRequest{
		Model:          goopenai.SpeechModel(c.model),
		Input:          text,
		Voice:          goopenai.SpeechVoice(c.voice),
		ResponseFormat: goopenai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return err
	}
	defer resp.Close()

	_, err = io.Copy(w, resp)
	return err
}
