package certificate

import (
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips everything but light inline markup from author text.
// Braces survive so placeholders can be substituted afterwards.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := strings.TrimSpace(textSanitizer().Sanitize(trimmed))
	if cleaned == "" {
		return ""
	}
	cleaned = strings.ReplaceAll(cleaned, "\r\n", "\n")
	return strings.ReplaceAll(cleaned, "\n", "<br>")
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"b", "strong", "i", "em", "u", "small", "sub", "sup",
			"br", "p", "span", "a",
		)
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)

		textPolicy = policy
	})
	return textPolicy
}

// safeURL keeps http(s) and relative references. Relative keys without a
// leading slash are treated as theme asset keys when resolve is set.
func safeURL(raw string, resolve func(string) string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return parsed.String()
	case "":
		if parsed.Host != "" {
			// protocol-relative references
			return ""
		}
		if resolve != nil && !strings.HasPrefix(trimmed, "/") {
			if resolved := strings.TrimSpace(resolve(trimmed)); resolved != "" {
				return resolved
			}
		}
		return trimmed
	default:
		return ""
	}
}
