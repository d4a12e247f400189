package orchestrator

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// ErrThemeNotFound is returned by ManifestSelector for unknown themes or
// variants.
var ErrThemeNotFound = errors.New("orchestrator: theme not found")

type manifestFile struct {
	Name      string                 `yaml:"name"`
	Version   string                 `yaml:"version"`
	Tokens    map[string]string      `yaml:"tokens"`
	Templates map[string]string      `yaml:"templates"`
	Assets    assetsFile             `yaml:"assets"`
	Variants  map[string]variantFile `yaml:"variants"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantFile struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsFile        `yaml:"assets"`
}

// LoadThemeManifests reads every .yaml, .yml and .json file at the root of
// fsys as a theme manifest. Manifests are checked by registering them with a
// go-theme registry, so duplicate or invalid names fail the load.
func LoadThemeManifests(fsys fs.FS) ([]*theme.Manifest, error) {
	if fsys == nil {
		return nil, nil
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read themes: %w", err)
	}

	registry := theme.NewRegistry()
	var manifests []*theme.Manifest
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}

		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("orchestrator: read theme %s: %w", entry.Name(), err)
		}
		var raw manifestFile
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("orchestrator: decode theme %s: %w", entry.Name(), err)
		}
		if strings.TrimSpace(raw.Name) == "" {
			raw.Name = strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		}

		manifest := raw.manifest()
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("orchestrator: register theme %s: %w", entry.Name(), err)
		}
		manifests = append(manifests, manifest)
	}
	return manifests, nil
}

func (m manifestFile) manifest() *theme.Manifest {
	out := &theme.Manifest{
		Name:      strings.TrimSpace(m.Name),
		Version:   m.Version,
		Tokens:    m.Tokens,
		Templates: m.Templates,
		Assets:    theme.Assets{Prefix: m.Assets.Prefix, Files: m.Assets.Files},
	}
	if len(m.Variants) > 0 {
		out.Variants = make(map[string]theme.Variant, len(m.Variants))
		for name, v := range m.Variants {
			out.Variants[strings.TrimSpace(name)] = theme.Variant{
				Tokens:    v.Tokens,
				Templates: v.Templates,
				Assets:    theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
			}
		}
	}
	return out
}

// ManifestSelector is a ThemeSelector over a fixed set of manifests. Empty
// names fall back to the configured defaults.
type ManifestSelector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector indexes manifests by name. When defaultTheme is empty
// and exactly one manifest is given, that manifest becomes the default.
func NewManifestSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) *ManifestSelector {
	s := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, m := range manifests {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			continue
		}
		s.manifests[m.Name] = m
	}
	if s.defaultTheme == "" && len(s.manifests) == 1 {
		for name := range s.manifests {
			s.defaultTheme = name
		}
	}
	return s
}

// Select resolves name and variant. A selection with no theme at all returns
// (nil, nil) so renderers fall back to their bundled styles.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	variant = strings.TrimSpace(variant)
	if name == "" {
		name = s.defaultTheme
		if variant == "" {
			variant = s.defaultVariant
		}
	}
	if name == "" {
		return nil, nil
	}

	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrThemeNotFound, name, strings.Join(s.Names(), ", "))
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: variant %q of %q", ErrThemeNotFound, variant, name)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Names lists the known theme names.
func (s *ManifestSelector) Names() []string {
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
