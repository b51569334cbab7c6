package media

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"learnmate/backend/internal/storage"

	"go.uber.org/zap/zaptest"
)

// toneSynth renders a fixed-length sine tone with ffmpeg instead of speech
type toneSynth struct {
	bin     string
	dir     string
	seconds string
}

func (s *toneSynth) Synthesize(ctx context.Context, text string) (string, error) {
	path := filepath.Join(s.dir, "tone.mp3")
	cmd := exec.CommandContext(ctx, s.bin, "-y", "-hide_banner", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=440:duration="+s.seconds,
		"-c:a", "libmp3lame", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("render tone: %w: %s", err, out)
	}
	return path, nil
}

func probeDuration(t *testing.T, path string) float64 {
	t.Helper()
	out, err := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", path).Output()
	if err != nil {
		t.Fatalf("ffprobe %s: %v", path, err)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		t.Fatalf("parse duration %q: %v", out, err)
	}
	return d
}

func TestCompose_RealFFmpeg_DurationMatchesAudio(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping ffmpeg integration test in short mode")
	}
	bin, err := exec.LookPath("ffmpeg")
	if err != nil {
		t.Skip("ffmpeg not installed")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not installed")
	}

	root := t.TempDir()
	store := storage.New(root)
	if _, err := storage.EnsurePlaceholder(store.DefaultImage(), 320, 240); err != nil {
		t.Fatal(err)
	}

	synth := &toneSynth{bin: bin, dir: t.TempDir(), seconds: "2"}
	comp := NewCompositor(synth, store, NewFFmpegEncoder(bin, zaptest.NewLogger(t).Sugar()), Options{}, zaptest.NewLogger(t).Sugar())

	name, err := comp.Compose(context.Background(), "ignored", "")
	if err != nil {
		if strings.Contains(err.Error(), "libmp3lame") || strings.Contains(err.Error(), "Unknown encoder") {
			t.Skipf("ffmpeg build lacks a required encoder: %v", err)
		}
		t.Fatalf("Compose: %v", err)
	}

	audio := probeDuration(t, filepath.Join(synth.dir, "tone.mp3"))
	video := probeDuration(t, filepath.Join(root, name))
	if math.Abs(audio-video) > 0.15 {
		t.Errorf("video duration %.3fs differs from audio %.3fs", video, audio)
	}
}
