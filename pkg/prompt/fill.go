package prompt

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-certgen/pkg/model"
	"github.com/goliatone/go-certgen/pkg/placeholder"
)

// FillCustomFields walks the author through the certificate custom fields,
// offering the values already present in fields as defaults. The returned map
// is a copy holding the complete field set: blank answers remove the key and
// both flags are always present. Callers should not layer presets over it.
func FillCustomFields(ctx context.Context, driver PromptDriver, fields map[string]any) (map[string]any, error) {
	if driver == nil {
		return nil, fmt.Errorf("prompt: driver is required")
	}

	current, err := model.CustomFieldsFromMap(fields)
	if err != nil {
		return nil, fmt.Errorf("prompt: current fields: %w", err)
	}

	out := make(map[string]any, len(fields))
	for key, value := range fields {
		out[key] = value
	}

	title, err := driver.Input(ctx, InputConfig{
		Message: "Certificate title",
		Default: current.Title,
	})
	if err != nil {
		return nil, err
	}
	setString(out, model.FieldTitle, title)

	if err := driver.Info(ctx, placeholderHelp()); err != nil {
		return nil, err
	}
	text, err := driver.TextArea(ctx, TextAreaConfig{
		Message: "Certificate text",
		Default: current.Text,
		Help:    placeholderHelp(),
	})
	if err != nil {
		return nil, err
	}
	setString(out, model.FieldText, text)

	place, err := driver.Input(ctx, InputConfig{
		Message: "Place of issue",
		Default: current.Place,
	})
	if err != nil {
		return nil, err
	}
	setString(out, model.FieldPlace, place)

	showAffiliation, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Show the attendee affiliation?",
		Default: current.ShowAffiliation,
	})
	if err != nil {
		return nil, err
	}
	out[model.FieldShowAffiliation] = showAffiliation

	showURL, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Show the event URL?",
		Default: current.ShowURL,
	})
	if err != nil {
		return nil, err
	}
	out[model.FieldShowURL] = showURL

	for i, slot := range current.SignatureSlots {
		idx := i + 1
		add, err := driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Include signature block %d?", idx),
			Default: slot.HasContent(),
		})
		if err != nil {
			return nil, err
		}
		if !add {
			delete(out, model.SignatureNameKey(idx))
			delete(out, model.SignaturePositionKey(idx))
			delete(out, model.SignatureImageKey(idx))
			continue
		}

		name, err := driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("Signature %d name", idx),
			Default: slot.Name,
		})
		if err != nil {
			return nil, err
		}
		position, err := driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("Signature %d position", idx),
			Default: slot.Position,
		})
		if err != nil {
			return nil, err
		}
		image, err := driver.Input(ctx, InputConfig{
			Message:   fmt.Sprintf("Signature %d image URL", idx),
			Default:   slot.ImageURL,
			Help:      "Leave empty to print a signature line instead.",
			Validator: validateImageURL,
		})
		if err != nil {
			return nil, err
		}
		setString(out, model.SignatureNameKey(idx), name)
		setString(out, model.SignaturePositionKey(idx), position)
		setString(out, model.SignatureImageKey(idx), image)
	}

	return out, nil
}

// SelectPreset asks the author to pick one of names, defaulting to current.
func SelectPreset(ctx context.Context, driver PromptDriver, names []string, current string) (string, error) {
	if driver == nil {
		return "", fmt.Errorf("prompt: driver is required")
	}
	if len(names) == 0 {
		return current, nil
	}

	defaultIndex := 0
	for i, name := range names {
		if name == current {
			defaultIndex = i
			break
		}
	}

	idx, err := driver.Select(ctx, SelectConfig{
		Message:      "Preset",
		Options:      names,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(names) {
		return "", fmt.Errorf("prompt: preset selection %d out of range", idx)
	}
	return names[idx], nil
}

func placeholderHelp() string {
	names := placeholder.Names()
	tokens := make([]string, len(names))
	for i, name := range names {
		tokens[i] = "{" + name + "}"
	}
	return "Available placeholders: " + strings.Join(tokens, ", ")
}

func setString(fields map[string]any, key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		delete(fields, key)
		return
	}
	fields[key] = value
}

func validateImageURL(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "", "http", "https":
		return nil
	default:
		return fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}
}
