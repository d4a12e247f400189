package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-certgen/pkg/placeholder"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides what to print when a key cannot be
// translated. args carries {"default": fallback} as its first element.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Message keys for the fixed certificate phrases.
const (
	MessageDefaultTitle = "certificate.title"
	MessageSingleDay    = "certificate.dates.single"
	MessageDateRange    = "certificate.dates.range"
)

// Default English phrases. Date phrases are fmt patterns taking the formatted
// dates.
var defaultMessages = map[string]string{
	MessageDefaultTitle: "Certificate of Attendance",
	MessageSingleDay:    placeholder.DefaultSingleDayPhrase,
	MessageDateRange:    placeholder.DefaultRangePhrase,
}

// DefaultMessage returns the English phrase for key.
func DefaultMessage(key string) string {
	return defaultMessages[key]
}

// Message translates key using the options, falling back to the English
// default.
func (o RenderOptions) Message(key string) string {
	onMissing := o.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return translate(o.Locale, key, DefaultMessage(key), o.Translator, onMissing)
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
		}
		if strings.TrimSpace(fallback) != "" {
			return fallback
		}
		return key
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	if len(args) > 0 {
		if values, ok := args[0].(map[string]any); ok {
			if fallback, ok := values["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}
