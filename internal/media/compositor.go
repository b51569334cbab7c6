// Package media turns narration text and a still image into a video artifact.
package media

import (
	"context"
	"time"

	"learnmate/backend/internal/apperr"
	"learnmate/backend/internal/storage"

	"go.uber.org/zap"
)

const (
	// DefaultHeight is the output frame height in pixels
	DefaultHeight = 720

	videoPrefix = "video_"
	videoExt    = ".mp4"
)

// Synthesizer produces an audio artifact for text and returns its path.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// Compositor combines synthesized narration with a still image.
type Compositor struct {
	synth        Synthesizer
	store        *storage.Store
	defaultImage string
	audio        AudioOpener
	image        ImageOpener
	encoder      Encoder
	height       int
	logger       *zap.SugaredLogger
}

// Options overrides the compositor's collaborators. Zero fields keep the defaults.
type Options struct {
	DefaultImage string
	Height       int
	Audio        AudioOpener
	Image        ImageOpener
}

func NewCompositor(synth Synthesizer, store *storage.Store, encoder Encoder, opts Options, logger *zap.SugaredLogger) *Compositor {
	c := &Compositor{
		synth:        synth,
		store:        store,
		defaultImage: opts.DefaultImage,
		audio:        opts.Audio,
		image:        opts.Image,
		encoder:      encoder,
		height:       opts.Height,
		logger:       logger,
	}
	if c.defaultImage == "" {
		c.defaultImage = store.DefaultImage()
	}
	if c.height <= 0 {
		c.height = DefaultHeight
	}
	if c.audio == nil {
		c.audio = MP3Opener{}
	}
	if c.image == nil {
		c.image = StillImageOpener{}
	}
	return c
}

// DefaultImage returns the image used when Compose gets none.
func (c *Compositor) DefaultImage() string {
	return c.defaultImage
}

// Compose narrates text over imagePath (or the default image when empty) and
// returns the output file name relative to the storage root.
//
// Both inputs must exist before any media work starts; otherwise a
// *apperr.MissingArtifactError is returned and no output is created. Clips
// opened along the way are closed on every path and errors are returned
// unchanged.
func (c *Compositor) Compose(ctx context.Context, text, imagePath string) (string, error) {
	started := time.Now()

	audioPath, err := c.synth.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}
	if imagePath == "" {
		imagePath = c.defaultImage
	}

	if err := requireFile("audio", audioPath); err != nil {
		return "", err
	}
	if err := requireFile("image", imagePath); err != nil {
		return "", err
	}

	audio, err := c.audio.OpenAudio(audioPath)
	if err != nil {
		return "", err
	}
	defer c.release("audio", audio)

	img, err := c.image.OpenImage(imagePath)
	if err != nil {
		return "", err
	}
	defer c.release("image", img)

	width, height := img.Size()
	name := c.store.NewName(videoPrefix, videoExt)
	if err := c.store.EnsureDir(); err != nil {
		return "", err
	}

	job := Job{
		ImagePath:  imagePath,
		AudioPath:  audioPath,
		OutputPath: c.store.Path(name),
		Duration:   audio.Duration(),
		Width:      ScaleToHeight(width, height, c.height),
		Height:     c.height,
	}
	if err := c.encoder.Encode(ctx, job); err != nil {
		c.logger.Warnw("video encoding failed", "audio", audioPath, "image", imagePath, "error", err)
		return "", err
	}

	c.logger.Infow("video composed",
		"file", name,
		"duration", job.Duration.String(),
		"size", [2]int{job.Width, job.Height},
		"took", time.Since(started).String(),
	)
	return name, nil
}

type closer interface {
	Close() error
}

// release closes a clip; a close failure is logged so it never masks the result.
func (c *Compositor) release(kind string, clip closer) {
	if err := clip.Close(); err != nil {
		c.logger.Warnw("failed to close clip", "kind", kind, "error", err)
	}
}

func requireFile(kind, path string) error {
	ok, err := storage.Exists(path)
	if err != nil {
		return err
	}
	if !ok {
		return &apperr.MissingArtifactError{Kind: kind, Path: path}
	}
	return nil
}
