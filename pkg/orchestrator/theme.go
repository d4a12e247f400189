package orchestrator

import (
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeSelector resolves a theme/variant pair. It matches the go-theme
// selector contract.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// WithThemeSelector resolves request themes through selector so renderers
// receive tokens and asset lookups.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		if selector == nil {
			o.themes = nil
			return
		}
		o.themes = &themeResolver{selector: selector}
	}
}

type themeResolver struct {
	selector ThemeSelector
}

func (r *themeResolver) resolve(name, variant string) (*theme.RendererConfig, error) {
	selection, err := r.selector.Select(strings.TrimSpace(name), strings.TrimSpace(variant))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return rendererConfig(selection), nil
}

// rendererConfig flattens a selection into renderer settings: variant tokens
// and templates override the base manifest, tokens double as --<token> CSS
// variables, and assets resolve against the variant or manifest prefix.
func rendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}

	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	tokens := mergeStrings(manifest.Tokens)
	partials := mergeStrings(manifest.Templates)
	files := mergeStrings(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	if v, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, v.Tokens)
		partials = mergeStrings(partials, v.Templates)
		files = mergeStrings(files, v.Assets.Files)
		if strings.TrimSpace(v.Assets.Prefix) != "" {
			prefix = v.Assets.Prefix
		}
	}

	cfg.Tokens = tokens
	cfg.Partials = partials
	if len(tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cfg.CSSVars["--"+key] = value
		}
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok {
			return ""
		}
		if strings.Contains(file, "://") || prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
	return cfg
}

func mergeStrings(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for key, value := range layer {
			out[key] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
