package media

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"time"

	"learnmate/backend/internal/apperr"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
)

// AudioClip is an opened audio artifact. Close must be called exactly once.
type AudioClip interface {
	Duration() time.Duration
	Close() error
}

// ImageClip is an opened still image. Close must be called exactly once.
type ImageClip interface {
	Size() (width, height int)
	Close() error
}

// AudioOpener opens audio artifacts.
type AudioOpener interface {
	OpenAudio(path string) (AudioClip, error)
}

// ImageOpener opens still images.
type ImageOpener interface {
	OpenImage(path string) (ImageClip, error)
}

// MP3Opener decodes MP3 files with beep to learn their duration.
type MP3Opener struct{}

type mp3Clip struct {
	streamer beep.StreamSeekCloser
	duration time.Duration
}

func (c *mp3Clip) Duration() time.Duration { return c.duration }

// Close closes the decoder and the underlying file.
func (c *mp3Clip) Close() error { return c.streamer.Close() }

// OpenAudio opens path and reads its length. The returned clip owns the file.
func (MP3Opener) OpenAudio(path string) (AudioClip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio: %w", err)
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, &apperr.EncodingError{Stage: "decode audio", Err: err}
	}
	duration := format.SampleRate.D(streamer.Len())
	if duration <= 0 {
		streamer.Close()
		return nil, &apperr.EncodingError{Stage: "decode audio", Err: fmt.Errorf("audio %s has no samples", path)}
	}
	return &mp3Clip{streamer: streamer, duration: duration}, nil
}

// StillImageOpener reads PNG and JPEG headers for their dimensions.
type StillImageOpener struct{}

type stillClip struct {
	f             *os.File
	width, height int
}

func (c *stillClip) Size() (int, int) { return c.width, c.height }

func (c *stillClip) Close() error { return c.f.Close() }

// OpenImage opens path and decodes its header. The file stays open until Close.
func (StillImageOpener) OpenImage(path string) (ImageClip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		f.Close()
		return nil, &apperr.EncodingError{Stage: "decode image", Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		f.Close()
		return nil, &apperr.EncodingError{Stage: "decode image", Err: fmt.Errorf("image %s has no pixels", path)}
	}
	return &stillClip{f: f, width: cfg.Width, height: cfg.Height}, nil
}

// ScaleToHeight returns the width that keeps width:height when the frame is
// resized to target pixels high, rounded to the nearest even number.
func ScaleToHeight(width, height, target int) int {
	if width <= 0 || height <= 0 || target <= 0 {
		return 0
	}
	exact := float64(width) * float64(target) / float64(height)
	scaled := int(math.Round(exact/2)) * 2
	if scaled < 2 {
		scaled = 2
	}
	return scaled
}
