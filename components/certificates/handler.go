package certificates

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-certgen/pkg/model"
	"github.com/goliatone/go-certgen/pkg/orchestrator"
	"github.com/goliatone/go-certgen/pkg/preset"
	"github.com/goliatone/go-certgen/pkg/render"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Payload is the JSON body accepted by the handler.
type Payload struct {
	Event        model.Event        `json:"event"`
	Registration model.Registration `json:"registration"`
	CustomFields map[string]any     `json:"custom_fields,omitempty"`
	Preset       string             `json:"preset,omitempty"`
	Renderer     string             `json:"renderer,omitempty"`
	Theme        string             `json:"theme,omitempty"`
	Variant      string             `json:"variant,omitempty"`
	Locale       string             `json:"locale,omitempty"`
	IssuedAt     *time.Time         `json:"issued_at,omitempty"`
}

// Request converts the payload into an orchestrator request.
func (p Payload) Request() orchestrator.Request {
	req := orchestrator.Request{
		Document: model.Document{
			Event:        p.Event,
			Registration: p.Registration,
		},
		Preset:       p.Preset,
		CustomFields: p.CustomFields,
		Renderer:     p.Renderer,
		ThemeName:    p.Theme,
		ThemeVariant: p.Variant,
	}
	req.RenderOptions.Locale = p.Locale
	if p.IssuedAt != nil {
		req.RenderOptions.IssuedAt = *p.IssuedAt
	}
	return req
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options value.
// When opts.Generator is nil a default orchestrator is created once.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	generator := opts.Generator
	if generator == nil {
		generator = orchestrator.New(orchestrator.WithLogger(opts.Logger))
	}
	logger := opts.Logger

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeError(w, StatusError{Code: http.StatusUnsupportedMediaType, Err: fmt.Errorf("certificates: unsupported content type %q", ct)})
			return
		}

		var payload Payload
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes))
		if err := dec.Decode(&payload); err != nil {
			code := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				code = http.StatusRequestEntityTooLarge
			}
			writeError(w, StatusError{Code: code, Err: fmt.Errorf("certificates: decode body: %w", err)})
			return
		}

		output, err := generator.Generate(r.Context(), payload.Request())
		if err != nil {
			status := statusFor(err)
			if status >= http.StatusInternalServerError {
				logger.Error("certificate generation failed", slog.String("error", err.Error()))
			} else {
				logger.Info("certificate request rejected", slog.Int("status", status), slog.String("error", err.Error()))
			}
			writeError(w, StatusError{Code: status, Err: err})
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(output)
	})
}

func statusFor(err error) int {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	case errors.Is(err, model.ErrInvalidDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, preset.ErrPresetNotFound), errors.Is(err, render.ErrRendererNotFound),
		errors.Is(err, orchestrator.ErrThemeNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err StatusError) {
	code := err.StatusCode()
	body := errorResponse{Error: http.StatusText(code)}
	if code < http.StatusInternalServerError && err.Err != nil {
		body.Error = err.Err.Error()
	}
	var fieldErrs model.FieldErrors
	if errors.As(err.Err, &fieldErrs) {
		body.Fields = fieldErrs
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
