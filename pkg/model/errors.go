package model

import (
	"errors"
	"strings"
)

// ErrInvalidDocument marks documents that cannot be rendered.
var ErrInvalidDocument = errors.New("model: invalid document")

// FieldErrors collects messages keyed by custom field or document path.
type FieldErrors map[string][]string

// Add appends a message for key, returning the (possibly allocated) map.
func (e FieldErrors) Add(key string, messages ...string) FieldErrors {
	if e == nil {
		e = make(FieldErrors)
	}
	e[key] = normalizeMessages(append(e[key], messages...))
	if len(e[key]) == 0 {
		delete(e, key)
	}
	return e
}

// Error joins every message as "key: message" in key order.
func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "model: no field errors"
	}
	var parts []string
	for _, key := range sortedKeys(e) {
		for _, message := range e[key] {
			parts = append(parts, key+": "+message)
		}
	}
	return "model: " + strings.Join(parts, "; ")
}

// Is lets errors.Is match ErrInvalidDocument.
func (e FieldErrors) Is(target error) bool {
	return target == ErrInvalidDocument
}

// normalizeMessages trims messages and drops blanks and duplicates while
// preserving order.
func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
