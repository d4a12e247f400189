package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/goliatone/go-certgen/pkg/model"
	"github.com/goliatone/go-certgen/pkg/preset"
	"github.com/goliatone/go-certgen/pkg/render"
	"github.com/goliatone/go-certgen/pkg/renderers/certificate"
)

const defaultRendererName = certificate.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithCertificateOptions configures the built-in certificate renderer. It has
// no effect when WithRegistry is supplied.
func WithCertificateOptions(options ...certificate.Option) Option {
	return func(o *Orchestrator) {
		o.certificateOptions = append(o.certificateOptions, options...)
	}
}

// WithPresetFS supplies an fs.FS holding preset documents. Pass nil to
// disable the embedded presets.
func WithPresetFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.presetFS = fsys
		o.presetFSSpecified = true
	}
}

// WithDefaultPreset names the preset applied when a request leaves Preset
// empty. An empty name disables the fallback.
func WithDefaultPreset(name string) Option {
	return func(o *Orchestrator) {
		o.defaultPreset = strings.TrimSpace(name)
		o.defaultPresetSpecified = true
	}
}

// WithDecorators registers decorators that run against the resolved document
// before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithTranslator localises fixed certificate phrases for requests that set
// RenderOptions.Locale without their own Translator.
func WithTranslator(translator render.Translator) Option {
	return func(o *Orchestrator) {
		o.translator = translator
	}
}

// WithLogger routes orchestrator diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates preset resolution, custom field decoding, theme
// selection, and rendering. It applies sensible defaults (certificate
// renderer, embedded presets) while remaining open to dependency injection.
type Orchestrator struct {
	registry               *render.Registry
	defaultRenderer        string
	certificateOptions     []certificate.Option
	presetFS               fs.FS
	presetFSSpecified      bool
	presets                *preset.Store
	defaultPreset          string
	defaultPresetSpecified bool
	decorators             []model.Decorator
	themes                 *themeResolver
	translator             render.Translator
	logger                 *slog.Logger
	initialiseErr          error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one certificate to generate.
type Request struct {
	// Document carries the event and registration. Non-zero CustomFields sit
	// between the preset and the CustomFields map below, and their flags
	// replace the preset flags even when false.
	Document model.Document

	// Preset names the preset providing default custom fields. Empty uses the
	// orchestrator default.
	Preset string

	// NoPreset skips preset layering, for callers whose CustomFields already
	// hold the complete set of values.
	NoPreset bool

	// CustomFields override preset values key by key.
	CustomFields map[string]any

	// Renderer names the renderer to use. Empty falls back to the default.
	Renderer string

	// ThemeName and ThemeVariant are passed to the configured theme selector.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request render settings. A theme resolved by
	// the selector replaces RenderOptions.Theme.
	RenderOptions render.RenderOptions
}

// Generate resolves the request into a document and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := o.Resolve(req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.registry.Resolve(req.Renderer, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	opts := req.RenderOptions
	if opts.Translator == nil {
		opts.Translator = o.translator
	}
	if o.themes != nil {
		cfg, err := o.themes.resolve(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			opts.Theme = cfg
		}
	}

	output, err := renderer.Render(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	o.logger.Debug("certificate rendered",
		slog.String("renderer", renderer.Name()),
		slog.String("event", doc.Event.Title),
		slog.Int("bytes", len(output)),
	)
	return output, nil
}

// Resolve merges preset and request custom fields into the document and
// validates it, without rendering.
func (o *Orchestrator) Resolve(req Request) (model.Document, error) {
	if err := o.initialiseErr; err != nil {
		return model.Document{}, err
	}

	var base map[string]any
	if !req.NoPreset {
		fields, err := o.presetFields(req.Preset)
		if err != nil {
			return model.Document{}, err
		}
		base = fields
	}

	fields, err := model.CustomFieldsFromMap(model.MergeCustomFields(base, req.Document.CustomFields.Overrides(), req.CustomFields))
	if err != nil {
		return model.Document{}, fmt.Errorf("orchestrator: custom fields: %w", err)
	}

	doc := req.Document.WithCustomFields(fields)
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&doc); err != nil {
			return model.Document{}, fmt.Errorf("orchestrator: decorate document: %w", err)
		}
	}

	if err := doc.Validate(); err != nil {
		return model.Document{}, fmt.Errorf("orchestrator: %w", err)
	}
	return doc, nil
}

// Presets lists the names of the loaded presets.
func (o *Orchestrator) Presets() []string {
	return o.presets.Names()
}

func (o *Orchestrator) presetFields(name string) (map[string]any, error) {
	target := strings.TrimSpace(name)
	explicit := target != ""
	if !explicit {
		target = o.defaultPreset
	}
	if target == "" {
		return nil, nil
	}

	p, err := o.presets.Lookup(target)
	if err != nil {
		if !explicit {
			o.logger.Warn("default preset unavailable", slog.String("preset", target))
			return nil, nil
		}
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return p.Fields, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		renderer, err := certificate.New(o.certificateOptions...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry = render.NewRegistry(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if !o.defaultPresetSpecified {
		o.defaultPreset = preset.DefaultName
	}

	if !o.presetFSSpecified && o.presetFS == nil {
		o.presetFS = preset.EmbeddedFS()
	}
	store, err := preset.LoadFS(o.presetFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load presets: %w", err)
		return
	}
	o.presets = store
}
