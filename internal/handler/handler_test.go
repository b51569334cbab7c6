package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"learnmate/backend/internal/apperr"
	"learnmate/backend/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"
)

type fakeTutor struct {
	answer    string
	err       error
	questions []string
}

func (f *fakeTutor) Ask(ctx context.Context, question string) (string, error) {
	f.questions = append(f.questions, question)
	return f.answer, f.err
}

type fakeComposer struct {
	name  string
	err   error
	texts []string
	image []string
}

func (f *fakeComposer) Compose(ctx context.Context, text, imagePath string) (string, error) {
	f.texts = append(f.texts, text)
	f.image = append(f.image, imagePath)
	return f.name, f.err
}

func newTestRouter(t *testing.T, cfg Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg.Logger = zaptest.NewLogger(t).Sugar()
	r := gin.New()
	New(cfg).Register(r)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHandleChat_Success(t *testing.T) {
	tut := &fakeTutor{answer: "Entropy measures disorder."}
	r := newTestRouter(t, Config{Tutor: tut})

	rec := do(r, http.MethodPost, "/chat", `{"question":"What is entropy?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var got model.ChatResponse
	decode(t, rec, &got)
	if got.Response != "Entropy measures disorder." {
		t.Errorf("response = %q", got.Response)
	}
	if len(tut.questions) != 1 || tut.questions[0] != "What is entropy?" {
		t.Errorf("questions = %q", tut.questions)
	}
}

func TestHandleChat_NormalizesQuestion(t *testing.T) {
	tut := &fakeTutor{answer: "ok"}
	r := newTestRouter(t, Config{Tutor: tut})

	// "e" followed by a combining acute accent composes to "é"
	rec := do(r, http.MethodPost, "/chat", `{"question":"  cafe\u0301?  "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if tut.questions[0] != "caf\u00e9?" {
		t.Errorf("question = %q, want NFC trimmed form", tut.questions[0])
	}
}

func TestHandlers_RejectInvalidBodies(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing question", `{}`},
		{"blank question", `{"question":"   "}`},
		{"wrong type", `{"question":42}`},
		{"not json", `question=hi`},
	}
	for _, path := range []string{"/chat", "/video", "/flashcards"} {
		for _, tc := range cases {
			t.Run(path+"/"+tc.name, func(t *testing.T) {
				tut := &fakeTutor{answer: "unused"}
				comp := &fakeComposer{name: "video_x.mp4"}
				r := newTestRouter(t, Config{Tutor: tut, Compositor: comp})

				rec := do(r, http.MethodPost, path, tc.body)
				if rec.Code != http.StatusBadRequest {
					t.Fatalf("status = %d, want 400", rec.Code)
				}
				var got model.ErrorResponse
				decode(t, rec, &got)
				if got.Detail == "" {
					t.Error("detail must be set")
				}
				if len(tut.questions) != 0 {
					t.Error("model must not be called for invalid input")
				}
			})
		}
	}
}

func TestHandleChat_ModelFailure(t *testing.T) {
	tut := &fakeTutor{err: apperr.Upstream("llm", errors.New("connection refused"))}
	r := newTestRouter(t, Config{Tutor: tut})

	rec := do(r, http.MethodPost, "/chat", `{"question":"What is entropy?"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var got model.ErrorResponse
	decode(t, rec, &got)
	if !strings.Contains(got.Detail, "connection refused") {
		t.Errorf("detail = %q", got.Detail)
	}
}

func TestHandleVideo_Success(t *testing.T) {
	tut := &fakeTutor{answer: "## Photosynthesis\n**Light** becomes sugar."}
	comp := &fakeComposer{name: "video_0123456789abcdef0123456789abcdef.mp4"}
	r := newTestRouter(t, Config{Tutor: tut, Compositor: comp, PublicPrefix: "static/"})

	rec := do(r, http.MethodPost, "/video", `{"question":"Explain photosynthesis"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var got model.VideoResponse
	decode(t, rec, &got)
	if got.VideoLink != "/static/video_0123456789abcdef0123456789abcdef.mp4" {
		t.Errorf("video_link = %q", got.VideoLink)
	}
	if len(comp.texts) != 1 {
		t.Fatalf("compose calls = %d", len(comp.texts))
	}
	if strings.ContainsAny(comp.texts[0], "#*") {
		t.Errorf("narration must be stripped of markdown: %q", comp.texts[0])
	}
	if comp.image[0] != "" {
		t.Errorf("image = %q, want default (empty)", comp.image[0])
	}
}

func TestHandleVideo_CompositionFailure(t *testing.T) {
	tut := &fakeTutor{answer: "text"}
	comp := &fakeComposer{err: &apperr.MissingArtifactError{Kind: "image", Path: "static/default_image.png"}}
	r := newTestRouter(t, Config{Tutor: tut, Compositor: comp})

	rec := do(r, http.MethodPost, "/video", `{"question":"q"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var got model.ErrorResponse
	decode(t, rec, &got)
	if got.Detail != "image file not found: static/default_image.png" {
		t.Errorf("detail = %q", got.Detail)
	}
}

func TestHandleVideo_ModelFailureSkipsComposition(t *testing.T) {
	tut := &fakeTutor{err: errors.New("boom")}
	comp := &fakeComposer{name: "unused"}
	r := newTestRouter(t, Config{Tutor: tut, Compositor: comp})

	rec := do(r, http.MethodPost, "/video", `{"question":"q"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(comp.texts) != 0 {
		t.Error("compositor must not run when the model fails")
	}
}

func TestHandleFlashcards(t *testing.T) {
	long := "This sentence is comfortably longer than thirty characters."
	t.Run("keeps long lines", func(t *testing.T) {
		tut := &fakeTutor{answer: "short\n" + long + "\n\n  " + long + "  "}
		r := newTestRouter(t, Config{Tutor: tut})

		rec := do(r, http.MethodPost, "/flashcards", `{"question":"Thermodynamics"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var got model.FlashcardsResponse
		decode(t, rec, &got)
		if got.Topic != "Thermodynamics" {
			t.Errorf("topic = %q", got.Topic)
		}
		if len(got.Flashcards) != 2 || got.Flashcards[1] != long {
			t.Errorf("flashcards = %q", got.Flashcards)
		}
	})

	t.Run("empty list encodes as array", func(t *testing.T) {
		tut := &fakeTutor{answer: "too short\nalso short"}
		r := newTestRouter(t, Config{Tutor: tut})

		rec := do(r, http.MethodPost, "/flashcards", `{"question":"x"}`)
		if !strings.Contains(rec.Body.String(), `"flashcards":[]`) {
			t.Errorf("body = %s", rec.Body)
		}
	})
}

func TestHandleHealth(t *testing.T) {
	r := newTestRouter(t, Config{LLMName: "openai", SpeechName: "google"})
	rec := do(r, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got model.HealthResponse
	decode(t, rec, &got)
	if got.Status != "healthy" || got.LLM != "openai" || got.Speech != "google" {
		t.Errorf("health = %+v", got)
	}
}

func TestHandleReadiness(t *testing.T) {
	ok := ReadinessCheck{Name: "ffmpeg", Check: func() error { return nil }}
	missing := ReadinessCheck{Name: "default_image", Check: func() error { return errors.New("absent") }}

	r := newTestRouter(t, Config{Checks: []ReadinessCheck{ok}})
	if rec := do(r, http.MethodGet, "/ready", ""); rec.Code != http.StatusOK {
		t.Errorf("ready status = %d", rec.Code)
	}

	r = newTestRouter(t, Config{Checks: []ReadinessCheck{ok, missing}})
	rec := do(r, http.MethodGet, "/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "default_image") {
		t.Errorf("body = %s", rec.Body)
	}
}
