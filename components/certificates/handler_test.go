package certificates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-certgen/pkg/model"
	"github.com/goliatone/go-certgen/pkg/orchestrator"
	"github.com/goliatone/go-certgen/pkg/preset"
	"github.com/goliatone/go-certgen/pkg/render"
)

const samplePayload = `{
  "event": {
    "title": "Workshop on Detector Physics",
    "start": "2026-10-18T09:00:00Z",
    "end": "2026-10-18T17:00:00Z",
    "venue": "CERN",
    "timezone": "Europe/Zurich"
  },
  "registration": {"first_name": "Ada", "last_name": "Lovelace", "affiliation": "Analytical Engines Ltd"},
  "custom_fields": {"place": "Geneva", "signature_name_1": "Grace Hopper"},
  "issued_at": "2026-10-20T12:00:00Z"
}`

type stubGenerator struct {
	output []byte
	err    error
	req    orchestrator.Request
	calls  int
}

func (s *stubGenerator) Generate(_ context.Context, req orchestrator.Request) ([]byte, error) {
	s.calls++
	s.req = req
	return s.output, s.err
}

func TestNewHandler_RendersCertificateHTML(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/certificates", strings.NewReader(samplePayload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", res.StatusCode, rec.Body.String())
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected HTML content-type, got %q", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"<strong>Ada Lovelace</strong> (Analytical Engines Ltd)",
		"on 18 October 2026",
		"Geneva, 20 October 2026",
		"Grace Hopper",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q\n%s", want, body)
		}
	}
}

func TestNewHandler_LocalisesWithTranslator(t *testing.T) {
	catalog := render.Catalog{
		"fr": {
			render.MessageDefaultTitle: "Attestation de participation",
			render.MessageSingleDay:    "le %s",
		},
	}
	h := NewHandler(WithGenerator(orchestrator.New(
		orchestrator.WithTranslator(catalog),
		orchestrator.WithPresetFS(nil),
	)))

	payload := `{"event":{"title":"Atelier","start":"2026-10-18T09:00:00Z"},"registration":{"first_name":"Ada","last_name":"Lovelace"},"custom_fields":{"text":"{person} a suivi {event_title} {event_dates}."},"locale":"fr","issued_at":"2026-10-20T12:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/certificates", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Attestation de participation",
		"<strong>Ada Lovelace</strong> a suivi Atelier le 18 October 2026.",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q\n%s", want, body)
		}
	}
}

func TestNewHandler_PassesPayloadToGenerator(t *testing.T) {
	gen := &stubGenerator{output: []byte("<div></div>")}
	h := NewHandler(WithGenerator(gen))

	payload := `{"event":{"title":"T","start":"2026-10-18T09:00:00Z"},"preset":"participation","theme":"acme","variant":"dark","locale":"fr","issued_at":"2026-10-20T12:00:00Z","custom_fields":{"show_url":true}}`
	req := httptest.NewRequest(http.MethodPost, "/api/certificates", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "<div></div>" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}

	got := gen.req
	if got.Preset != "participation" || got.ThemeName != "acme" || got.ThemeVariant != "dark" {
		t.Fatalf("unexpected request routing fields: %+v", got)
	}
	if got.RenderOptions.Locale != "fr" {
		t.Fatalf("expected locale forwarded, got %q", got.RenderOptions.Locale)
	}
	if !got.RenderOptions.IssuedAt.Equal(time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected issued at: %v", got.RenderOptions.IssuedAt)
	}
	if diff := cmp.Diff(map[string]any{"show_url": true}, got.CustomFields); diff != "" {
		t.Fatalf("custom fields mismatch (-want +got):\n%s", diff)
	}
}

func TestNewHandler_RejectsNonPost(t *testing.T) {
	gen := &stubGenerator{}
	h := NewHandler(WithGenerator(gen))

	req := httptest.NewRequest(http.MethodGet, "/api/certificates", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("unexpected Allow header: %q", allow)
	}
	if gen.calls != 0 {
		t.Fatalf("generator should not run")
	}
}

func TestNewHandler_GuardStatus(t *testing.T) {
	h := NewHandler(
		WithGenerator(&stubGenerator{}),
		WithGuard(func(*http.Request) error {
			return StatusError{Code: http.StatusUnauthorized, Err: errors.New("no token")}
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/certificates", strings.NewReader(samplePayload))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestNewHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		fns         []OptionFn
		want        int
	}{
		{name: "malformed json", body: "{", want: http.StatusBadRequest},
		{name: "wrong content type", body: samplePayload, contentType: "text/plain", want: http.StatusUnsupportedMediaType},
		{name: "body too large", body: samplePayload, fns: []OptionFn{WithMaxBodyBytes(16)}, want: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{}
			h := NewHandler(append([]OptionFn{WithGenerator(gen)}, tt.fns...)...)

			req := httptest.NewRequest(http.MethodPost, "/api/certificates", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}
			if gen.calls != 0 {
				t.Fatalf("generator should not run")
			}
		})
	}
}

func TestNewHandler_GeneratorErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "field errors", err: model.FieldErrors{"show_url": {"expected a boolean"}}, want: http.StatusUnprocessableEntity},
		{name: "unknown preset", err: preset.ErrPresetNotFound, want: http.StatusNotFound},
		{name: "status error", err: StatusError{Code: http.StatusTooManyRequests}, want: http.StatusTooManyRequests},
		{name: "internal", err: errors.New("template exploded"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(WithGenerator(&stubGenerator{err: tt.err}))

			req := httptest.NewRequest(http.MethodPost, "/api/certificates", strings.NewReader(samplePayload))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}
			var body errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if tt.want == http.StatusInternalServerError && strings.Contains(body.Error, "exploded") {
				t.Fatalf("internal error details leaked: %q", body.Error)
			}
			if tt.name == "field errors" {
				if diff := cmp.Diff(map[string][]string{"show_url": {"expected a boolean"}}, body.Fields); diff != "" {
					t.Fatalf("fields mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}
