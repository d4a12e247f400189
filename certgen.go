package certgen

import (
	"context"

	"github.com/goliatone/go-certgen/pkg/model"
	"github.com/goliatone/go-certgen/pkg/orchestrator"
	"github.com/goliatone/go-certgen/pkg/render"
)

// Document is the rendering context assembled from an event, a registration,
// and custom fields.
type Document = model.Document

// Event aliases model.Event.
type Event = model.Event

// Registration aliases model.Registration.
type Registration = model.Registration

// CustomFields aliases model.CustomFields.
type CustomFields = model.CustomFields

// RenderOptions describes per-request overrides such as the issue date, date
// layout, locale, and theme.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders a certificate for doc, applying customFields over the
// default preset. It is the simplest entry point for callers that just want
// HTML output.
func GenerateHTML(ctx context.Context, doc Document, customFields map[string]any, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document:     doc,
		CustomFields: customFields,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector orchestrator.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
