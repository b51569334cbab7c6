package google

import (
	"context"
	"errors"
	"io"
	"strings"

	gctts "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// Config holds the voice settings for Google Cloud Text-to-Speech.
type Config struct {
	Language     string
	Voice        string
	SpeakingRate float64
	Pitch        float64
}

// synthesizer is the subset of the SDK client the engine calls.
type synthesizer interface {
	SynthesizeSpeech(ctx context.Context, req *ttspb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*ttspb.SynthesizeSpeechResponse, error)
	Close() error
}

// Client renders speech through Google Cloud Text-to-Speech as MP3.
type Client struct {
	tts synthesizer
	cfg Config
}

// New dials the Text-to-Speech API. An empty credentialsFile falls back to
// Application Default Credentials.
func New(ctx context.Context, credentialsFile string, cfg Config) (*Client, error) {
	var opts []option.ClientOption
	if cf := strings.TrimSpace(credentialsFile); cf != "" {
		opts = append(opts, option.WithCredentialsFile(cf))
	}
	c, err := gctts.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{tts: c, cfg: cfg}, nil
}

func (c *Client) Name() string { return "google" }

// Render synthesizes text and writes the MP3 bytes to w.
func (c *Client) Render(ctx context.Context, text string, w io.Writer) error {
	req := &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{InputSource: &ttspb.SynthesisInput_Text{Text: text}},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: c.cfg.Language,
			Name:         c.cfg.Voice,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding: ttspb.AudioEncoding_MP3,
			SpeakingRate:  c.cfg.SpeakingRate,
			Pitch:         c.cfg.Pitch,
		},
	}

	resp, err := c.tts.SynthesizeSpeech(ctx, req)
	if err != nil {
		return err
	}
	audio := resp.GetAudioContent()
	if len(audio) == 0 {
		return errors.New("google tts: empty audio content")
	}
	_, err = w.Write(audio)
	return err
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.tts.Close()
}
