package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-certgen/pkg/model"
	"github.com/goliatone/go-certgen/pkg/orchestrator"
)

// inputFile is the on-disk description of a certificate.
type inputFile struct {
	Event        model.Event        `json:"event" yaml:"event"`
	Registration model.Registration `json:"registration" yaml:"registration"`
	CustomFields map[string]any     `json:"custom_fields" yaml:"custom_fields"`
	Preset       string             `json:"preset" yaml:"preset"`
	Theme        string             `json:"theme" yaml:"theme"`
	Variant      string             `json:"variant" yaml:"variant"`
	Locale       string             `json:"locale" yaml:"locale"`
	IssuedAt     time.Time          `json:"issued_at" yaml:"issued_at"`
}

func readInput(path string, stdin io.Reader) (inputFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return inputFile{}, fmt.Errorf("input: path is required")
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return inputFile{}, fmt.Errorf("input: read %s: %w", path, err)
	}
	return decodeInput(path, data)
}

// decodeInput parses JSON for .json paths and YAML for .yaml/.yml paths.
// Stdin and other paths try JSON first and then YAML.
func decodeInput(path string, data []byte) (inputFile, error) {
	var in inputFile
	if len(bytes.TrimSpace(data)) == 0 {
		return inputFile{}, fmt.Errorf("input: %s is empty", path)
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &in)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &in)
	default:
		if jsonErr := json.Unmarshal(data, &in); jsonErr != nil {
			in = inputFile{}
			if yamlErr := yaml.Unmarshal(data, &in); yamlErr != nil {
				err = fmt.Errorf("not JSON (%v) or YAML (%w)", jsonErr, yamlErr)
			}
		}
	}
	if err != nil {
		return inputFile{}, fmt.Errorf("input: parse %s: %w", path, err)
	}
	return in, nil
}

// request builds an orchestrator request; a non-empty presetOverride wins
// over the file's preset.
func (in inputFile) request(presetOverride string) orchestrator.Request {
	req := orchestrator.Request{
		Document: model.Document{
			Event:        in.Event,
			Registration: in.Registration,
		},
		Preset:       in.Preset,
		CustomFields: in.CustomFields,
		ThemeName:    in.Theme,
		ThemeVariant: in.Variant,
	}
	if p := strings.TrimSpace(presetOverride); p != "" {
		req.Preset = p
	}
	req.RenderOptions.IssuedAt = in.IssuedAt
	req.RenderOptions.Locale = strings.TrimSpace(in.Locale)
	return req
}
