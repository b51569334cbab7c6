package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"learnmate/backend/internal/apperr"

	"go.uber.org/zap"
)

const (
	// VideoCodec is the H.264 encoder passed to ffmpeg
	VideoCodec = "libx264"
	// AudioCodec is the AAC encoder passed to ffmpeg
	AudioCodec = "aac"

	tempAudioSuffix = "-temp-audio.m4a"
	stderrTailBytes = 2048
)

// Job describes one still-image video to encode.
type Job struct {
	ImagePath  string
	AudioPath  string
	OutputPath string
	Duration   time.Duration
	Width      int
	Height     int
}

// Encoder writes the video described by a Job.
type Encoder interface {
	Encode(ctx context.Context, job Job) error
}

// FFmpegEncoder encodes jobs by running the ffmpeg binary.
type FFmpegEncoder struct {
	bin    string
	logger *zap.SugaredLogger
}

func NewFFmpegEncoder(bin string, logger *zap.SugaredLogger) *FFmpegEncoder {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpegEncoder{bin: bin, logger: logger}
}

// Available reports whether the ffmpeg binary can be resolved.
func (e *FFmpegEncoder) Available() error {
	_, err := exec.LookPath(e.bin)
	return err
}

// Encode transcodes the audio into a temporary AAC container, then muxes it
// with the looped still image for exactly job.Duration. The temporary file is
// removed on every path; the output is removed if muxing fails.
func (e *FFmpegEncoder) Encode(ctx context.Context, job Job) error {
	tempAudio := strings.TrimSuffix(job.OutputPath, filepath.Ext(job.OutputPath)) + tempAudioSuffix
	defer removeQuietly(e.logger, tempAudio)

	if err := e.run(ctx, "transcode audio",
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", job.AudioPath,
		"-vn", "-c:a", AudioCodec, "-b:a", "192k",
		tempAudio,
	); err != nil {
		return err
	}

	seconds := strconv.FormatFloat(job.Duration.Seconds(), 'f', 3, 64)
	if err := e.run(ctx, "mux",
		"-y", "-hide_banner", "-loglevel", "error",
		"-loop", "1", "-framerate", "24", "-i", job.ImagePath,
		"-i", tempAudio,
		"-map", "0:v:0", "-map", "1:a:0",
		"-vf", fmt.Sprintf("scale=%d:%d", job.Width, job.Height),
		"-c:v", VideoCodec, "-tune", "stillimage", "-pix_fmt", "yuv420p",
		"-c:a", "copy",
		"-t", seconds,
		"-movflags", "+faststart",
		job.OutputPath,
	); err != nil {
		removeQuietly(e.logger, job.OutputPath)
		return err
	}
	return nil
}

func (e *FFmpegEncoder) run(ctx context.Context, stage string, args ...string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.bin, args...)
	cmd.Stderr = &stderr

	started := time.Now()
	if err := cmd.Run(); err != nil {
		return &apperr.EncodingError{Stage: stage, Stderr: tail(stderr.String(), stderrTailBytes), Err: err}
	}
	e.logger.Debugw("ffmpeg stage completed", "stage", stage, "took", time.Since(started).String())
	return nil
}

func removeQuietly(logger *zap.SugaredLogger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnw("failed to remove file", "path", path, "error", err)
	}
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
