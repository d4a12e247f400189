package placeholder

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-certgen/pkg/model"
)

// Supported placeholder names.
const (
	Person     = "person"
	EventTitle = "event_title"
	EventDates = "event_dates"
	StartDate  = "start_date"
	EndDate    = "end_date"
	Venue      = "venue"
)

// DefaultDateLayout is used when no layout is configured.
const DefaultDateLayout = "2 January 2006"

var tokenPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Substitute replaces every {name} token whose name is present in values.
// Unknown tokens and stray braces are left untouched. Values are expected to
// be escaped already; the result is not escaped again.
func Substitute(text string, values map[string]string) string {
	if text == "" || len(values) == 0 {
		return text
	}
	return tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := token[1 : len(token)-1]
		if value, ok := values[name]; ok {
			return value
		}
		return token
	})
}

// Names lists the placeholders Values produces.
func Names() []string {
	names := []string{Person, EventTitle, EventDates, StartDate, EndDate, Venue}
	sort.Strings(names)
	return names
}

// Option configures Values.
type Option func(*config)

type config struct {
	layout   string
	location *time.Location
	single   string
	multi    string
}

// WithDateLayout overrides the time layout used for dates.
func WithDateLayout(layout string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(layout); trimmed != "" {
			cfg.layout = trimmed
		}
	}
}

// WithLocation formats dates in loc instead of the event timezone.
func WithLocation(loc *time.Location) Option {
	return func(cfg *config) {
		if loc != nil {
			cfg.location = loc
		}
	}
}

// WithDatePhrases replaces the wording of the event_dates placeholder.
// single takes one %s verb, multi takes two; patterns with a different verb
// count are ignored.
func WithDatePhrases(single, multi string) Option {
	return func(cfg *config) {
		if validPhrase(single, 1) {
			cfg.single = single
		}
		if validPhrase(multi, 2) {
			cfg.multi = multi
		}
	}
}

// Values computes the escaped HTML fragment for each supported placeholder.
func Values(doc model.Document, options ...Option) map[string]string {
	cfg := config{
		layout: DefaultDateLayout,
		single: DefaultSingleDayPhrase,
		multi:  DefaultRangePhrase,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.location == nil {
		cfg.location = doc.Event.Location()
	}

	return map[string]string{
		Person:     personFragment(doc),
		EventTitle: html.EscapeString(strings.TrimSpace(doc.Event.Title)),
		EventDates: html.EscapeString(phraseRange(doc.Event.Start, doc.Event.End, cfg.layout, cfg.location, cfg.single, cfg.multi)),
		StartDate:  html.EscapeString(formatDate(doc.Event.Start, cfg.layout, cfg.location)),
		EndDate:    html.EscapeString(formatDate(doc.Event.End, cfg.layout, cfg.location)),
		Venue:      html.EscapeString(doc.Venue()),
	}
}

// Render substitutes the document placeholders into text.
func Render(text string, doc model.Document, options ...Option) string {
	return Substitute(text, Values(doc, options...))
}

func personFragment(doc model.Document) string {
	name := doc.Registration.DisplayName()
	var b strings.Builder
	if name != "" {
		b.WriteString("<strong>")
		b.WriteString(html.EscapeString(name))
		b.WriteString("</strong>")
	}
	affiliation := strings.TrimSpace(doc.Registration.Affiliation)
	if doc.CustomFields.ShowAffiliation && affiliation != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("(")
		b.WriteString(html.EscapeString(affiliation))
		b.WriteString(")")
	}
	return b.String()
}
