package certificate

import (
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"sort"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-certgen/pkg/model"
	"github.com/goliatone/go-certgen/pkg/placeholder"
	"github.com/goliatone/go-certgen/pkg/render"
	rendertemplate "github.com/goliatone/go-certgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-certgen/pkg/render/template/gotemplate"
)

// Name identifies the renderer in a render.Registry.
const Name = "certificate"

// SignatureRule is printed in place of a signature image.
const SignatureRule = "________________________"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	dateLayout       string
	inlineStyles     bool
	now              func() time.Time
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide TemplateName.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates found
// there take precedence over the fs.FS bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithDateLayout sets the default layout for dates. RenderOptions.DateLayout
// still wins per request.
func WithDateLayout(layout string) Option {
	return func(cfg *config) {
		cfg.dateLayout = strings.TrimSpace(layout)
	}
}

// WithInlineStyles embeds the bundled stylesheet in a <style> element ahead
// of the certificate markup.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// WithClock overrides the clock used for the issue date.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.now = now
		}
	}
}

// Renderer renders attendance certificates as HTML fragments.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	dateLayout   string
	inlineStyles bool
	now          func() time.Time
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the certificate renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		dateLayout: placeholder.DefaultDateLayout,
		now:        time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.dateLayout == "" {
		cfg.dateLayout = placeholder.DefaultDateLayout
	}

	globals := map[string]any{"signature_rule": SignatureRule}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templatesDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
			gotemplate.WithGlobalData(globals),
		)
		if err != nil {
			return nil, fmt.Errorf("certificate renderer: configure template renderer: %w", err)
		}
		renderer = engine
	} else if err := renderer.GlobalContext(globals); err != nil {
		return nil, fmt.Errorf("certificate renderer: seed template globals: %w", err)
	}

	return &Renderer{
		templates:    renderer,
		dateLayout:   cfg.dateLayout,
		inlineStyles: cfg.inlineStyles,
		now:          cfg.now,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the certificate HTML fragment for doc.
func (r *Renderer) Render(ctx context.Context, doc model.Document, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("certificate renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, errors.New("certificate renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(TemplateName, r.view(doc, opts))
	if err != nil {
		return nil, fmt.Errorf("certificate renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) view(doc model.Document, opts render.RenderOptions) map[string]any {
	layout := strings.TrimSpace(opts.DateLayout)
	if layout == "" {
		layout = r.dateLayout
	}
	loc := doc.Event.Location()

	issuedAt := opts.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = r.now()
	}

	var assetURL func(string) string
	if opts.Theme != nil {
		assetURL = opts.Theme.AssetURL
	}

	body := placeholder.Render(sanitizeText(doc.CustomFields.Text), doc,
		placeholder.WithDateLayout(layout),
		placeholder.WithLocation(loc),
		placeholder.WithDatePhrases(opts.Message(render.MessageSingleDay), opts.Message(render.MessageDateRange)),
	)

	title := doc.Title()
	if title == "" {
		title = opts.Message(render.MessageDefaultTitle)
	}

	data := map[string]any{
		"title":             title,
		"body":              htmltemplate.HTML(body),
		"logo_url":          safeURL(doc.CustomFields.LogoURL, assetURL),
		"organizer_address": strings.TrimSpace(doc.CustomFields.OrganizerAddress),
		"place":             strings.TrimSpace(doc.CustomFields.Place),
		"issued_on":         issuedAt.In(loc).Format(layout),
		"signatures":        signatureViews(doc.CustomFields.Signatures(), assetURL),
	}
	if doc.CustomFields.ShowURL {
		data["event_url"] = safeURL(doc.Event.URL, nil)
	}
	if r.inlineStyles {
		data["stylesheet"] = htmltemplate.HTML(defaultStylesheet())
	}
	if opts.Theme != nil {
		data["theme_name"] = opts.Theme.Theme
		data["css_vars_style"] = cssVarsStyle(opts.Theme)
	}
	return data
}

func signatureViews(signatures []model.Signature, assetURL func(string) string) []map[string]any {
	if len(signatures) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(signatures))
	for _, sig := range signatures {
		out = append(out, map[string]any{
			"name":      sig.Name,
			"position":  sig.Position,
			"image_url": safeURL(sig.ImageURL, assetURL),
		})
	}
	return out
}

// cssVarsStyle renders theme CSS variables, plus tokens exposed as
// --certificate-<token>, as an inline style declaration.
func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil {
		return ""
	}
	vars := make(map[string]string, len(cfg.CSSVars)+len(cfg.Tokens))
	for token, value := range cfg.Tokens {
		vars["--certificate-"+token] = value
	}
	for key, value := range cfg.CSSVars {
		vars[key] = value
	}
	if len(vars) == 0 {
		return ""
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		if value == "" || strings.ContainsAny(value, ";{}") {
			continue
		}
		parts = append(parts, key+": "+value)
	}
	return strings.Join(parts, "; ")
}
