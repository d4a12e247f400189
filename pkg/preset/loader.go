package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrPresetNotFound is returned by Store.Lookup for unknown preset names.
var ErrPresetNotFound = errors.New("preset: not found")

// Preset is a named set of default custom fields.
type Preset struct {
	Name        string
	Description string
	Source      string
	Fields      map[string]any
}

// Store holds presets keyed by name.
type Store struct {
	presets map[string]Preset
}

// LoadFS walks the provided filesystem and parses JSON/YAML preset files.
// When fsys is nil or no preset files are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{presets: make(map[string]Preset)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isPresetFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("preset: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawName, raw := range doc.Presets {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return fmt.Errorf("preset: file %s defines an empty preset name", path)
			}
			if existing, exists := store.presets[name]; exists {
				return fmt.Errorf("preset: duplicate preset %q (files %s and %s)", name, existing.Source, path)
			}
			store.presets[name] = Preset{
				Name:        name,
				Description: strings.TrimSpace(raw.Description),
				Source:      path,
				Fields:      normaliseFields(raw.Fields),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Lookup returns the preset registered under name.
func (s *Store) Lookup(name string) (Preset, error) {
	if s == nil {
		return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	p, ok := s.presets[strings.TrimSpace(name)]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	p.Fields = cloneFields(p.Fields)
	return p, nil
}

// Names lists preset names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any presets.
func (s *Store) Empty() bool {
	return s == nil || len(s.presets) == 0
}

type documentFile struct {
	Presets map[string]presetFile `json:"presets" yaml:"presets"`
}

type presetFile struct {
	Description string         `json:"description" yaml:"description"`
	Fields      map[string]any `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("preset: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("preset: parse %s: invalid JSON or YAML", source)
}

func normaliseFields(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		out[name] = value
	}
	return out
}

func cloneFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func isPresetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
