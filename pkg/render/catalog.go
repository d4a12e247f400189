package render

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMessageNotFound is returned by Catalog when neither the locale nor its
// base language defines the key.
var ErrMessageNotFound = errors.New("render: message not found")

// Catalog is a static Translator keyed by locale then message key. Lookups
// for a regional locale such as "fr-CH" fall back to "fr".
type Catalog map[string]map[string]string

var _ Translator = Catalog(nil)

// Translate returns the message for key. Non-empty args are applied with
// fmt.Sprintf.
func (c Catalog) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range localeCandidates(locale) {
		if msg, ok := c[candidate][key]; ok && strings.TrimSpace(msg) != "" {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMessageNotFound, locale, key)
}

// LoadCatalog reads a YAML (or JSON) message file from fsys. The document maps
// locales to key/message pairs:
//
//	fr:
//	  certificate.title: Attestation de participation
func LoadCatalog(fsys fs.FS, name string) (Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("render: read catalog %q: %w", name, err)
	}

	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("render: decode catalog %q: %w", name, err)
	}

	catalog := make(Catalog, len(raw))
	for locale, messages := range raw {
		normalised := normaliseLocale(locale)
		if normalised == "" {
			continue
		}
		if catalog[normalised] == nil {
			catalog[normalised] = make(map[string]string, len(messages))
		}
		for key, msg := range messages {
			catalog[normalised][strings.TrimSpace(key)] = msg
		}
	}
	return catalog, nil
}

func localeCandidates(locale string) []string {
	normalised := normaliseLocale(locale)
	if normalised == "" {
		return nil
	}
	if base, _, ok := strings.Cut(normalised, "-"); ok && base != "" {
		return []string{normalised, base}
	}
	return []string{normalised}
}

func normaliseLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}
