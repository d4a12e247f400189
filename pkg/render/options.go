package render

import (
	"time"

	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data renderers can use to customise
// their output without touching the document.
type RenderOptions struct {
	// Theme carries resolved theme tokens and asset lookups. Renderers expose
	// tokens as CSS custom properties and resolve relative image keys through
	// Theme.AssetURL.
	Theme *theme.RendererConfig
	// DateLayout overrides the time layout used for event dates.
	DateLayout string
	// IssuedAt is printed next to the place line. Zero means "now".
	IssuedAt time.Time
	// Locale and Translator localise the fixed phrases of a certificate
	// (date range wording, default title). Missing translations fall back to
	// the English defaults.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}
