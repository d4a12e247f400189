package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-certgen/pkg/orchestrator"
	"github.com/goliatone/go-certgen/pkg/prompt"
)

const cliInput = `{"event":{"title":"Workshop","start":"2026-10-18T09:00:00Z"},"registration":{"first_name":"Ada","last_name":"Lovelace","affiliation":"Analytical Engines Ltd"},"issued_at":"2026-10-20T12:00:00Z"}`

// scriptedDriver answers prompts from fixed queues.
type scriptedDriver struct {
	inputs   []string
	confirms []bool
	texts    []string
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("unexpected input prompt")
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, errors.New("unexpected confirm prompt")
	}
	next := d.confirms[0]
	d.confirms = d.confirms[1:]
	return next, nil
}

func (d *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	return -1, errors.New("unexpected select prompt")
}

func (d *scriptedDriver) TextArea(context.Context, prompt.TextAreaConfig) (string, error) {
	if len(d.texts) == 0 {
		return "", errors.New("unexpected text prompt")
	}
	next := d.texts[0]
	d.texts = d.texts[1:]
	return next, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestInteract_ClearedValuesStayCleared(t *testing.T) {
	gen, err := newOrchestrator(config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}

	in, err := decodeInput("-", []byte(cliInput))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	req := in.request("attendance")
	req.CustomFields = map[string]any{"signature_name_1": "Grace Hopper"}

	driver := &scriptedDriver{
		// title, place
		inputs: []string{"", ""},
		texts:  []string{"{person} attended {event_title}."},
		// affiliation, url, three signature blocks
		confirms: []bool{false, false, false, false, false},
	}
	req, err = interact(context.Background(), gen, driver, req)
	if err != nil {
		t.Fatalf("interact: %v", err)
	}
	if !req.NoPreset {
		t.Fatal("expected preset layering to be disabled after prompting")
	}

	html, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, "<strong>Ada Lovelace</strong> attended Workshop.") {
		t.Fatalf("expected prompted text\n%s", out)
	}
	for _, absent := range []string{"This is to certify", "Analytical Engines Ltd", "Grace Hopper"} {
		if strings.Contains(out, absent) {
			t.Fatalf("expected %q to stay cleared\n%s", absent, out)
		}
	}
}

func TestRun_ReadsYAMLFromStdin(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := run(context.Background(), flags{input: "-"}, config{}, logger, strings.NewReader(yamlInput), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	html := out.String()
	for _, want := range []string{"Certificate of Participation", "<strong>Ada Lovelace</strong>", "Geneva, 20 October 2026"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
}

func TestRun_AppliesThemeFromInput(t *testing.T) {
	dir := t.TempDir()
	manifest := "name: acme\nversion: 1.0.0\ntokens:\n  brand: \"#123456\"\nvariants:\n  dark:\n    tokens:\n      brand: \"#654321\"\n"
	if err := os.WriteFile(filepath.Join(dir, "acme.yaml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	input := strings.TrimSuffix(cliInput, "}") + `,"theme":"acme","variant":"dark"}`
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := run(context.Background(), flags{input: "-"}, config{ThemesDir: dir}, logger, strings.NewReader(input), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	html := out.String()
	for _, want := range []string{`data-theme="acme"`, "--certificate-brand: #654321"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}

	missing := strings.TrimSuffix(cliInput, "}") + `,"theme":"nope"}`
	err := run(context.Background(), flags{input: "-"}, config{ThemesDir: dir}, logger, strings.NewReader(missing), io.Discard)
	if !errors.Is(err, orchestrator.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
}

func TestRun_LocalisesWithMessagesFile(t *testing.T) {
	dir := t.TempDir()
	messages := filepath.Join(dir, "messages.yaml")
	data := "fr:\n  certificate.dates.single: le %s\n"
	if err := os.WriteFile(messages, []byte(data), 0o644); err != nil {
		t.Fatalf("write messages: %v", err)
	}

	input := strings.TrimSuffix(cliInput, "}") + `,"locale":"fr","custom_fields":{"text":"{person} {event_dates}","show_affiliation":false}}`
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := run(context.Background(), flags{input: "-"}, config{MessagesFile: messages}, logger, strings.NewReader(input), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := "<strong>Ada Lovelace</strong> le 18 October 2026"; !strings.Contains(out.String(), want) {
		t.Fatalf("expected output to contain %q\n%s", want, out.String())
	}
}
