package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestUpstream_WrapsCause(t *testing.T) {
	err := Upstream("llm", context.DeadlineExceeded)

	var up *UpstreamError
	if !errors.As(err, &up) {
		t.Fatalf("expected UpstreamError, got %T", err)
	}
	if up.Service != "llm" {
		t.Errorf("service = %q, want llm", up.Service)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected cause to be reachable through errors.Is")
	}
}

func TestUpstream_NilStaysNil(t *testing.T) {
	if err := Upstream("speech", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestMissingArtifactError_NamesPath(t *testing.T) {
	err := fmt.Errorf("compose: %w", &MissingArtifactError{Kind: "audio", Path: "static/a.mp3"})

	var missing *MissingArtifactError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingArtifactError, got %T", err)
	}
	if got := missing.Error(); got != "audio file not found: static/a.mp3" {
		t.Errorf("message = %q", got)
	}
}

func TestEncodingError_IncludesStderr(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &EncodingError{Stage: "mux", Stderr: "Invalid data found", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected cause to unwrap")
	}
	want := "encoding failed at mux: exit status 1: Invalid data found"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}
