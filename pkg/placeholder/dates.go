package placeholder

import (
	"fmt"
	"strings"
	"time"
)

// Default English date phrases, fmt patterns over the formatted dates.
const (
	DefaultSingleDayPhrase = "on %s"
	DefaultRangePhrase     = "between %s and %s"
)

// DateRange phrases the span between start and end. Both ends on the same
// calendar day in loc read "on <date>"; otherwise "between <start> and <end>".
// A missing end is treated as a single-day event.
func DateRange(start, end time.Time, layout string, loc *time.Location) string {
	return phraseRange(start, end, layout, loc, DefaultSingleDayPhrase, DefaultRangePhrase)
}

func phraseRange(start, end time.Time, layout string, loc *time.Location, single, multi string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	if loc == nil {
		loc = time.UTC
	}
	if start.IsZero() {
		return ""
	}
	if end.IsZero() || SameDay(start, end, loc) {
		return fmt.Sprintf(single, formatDate(start, layout, loc))
	}
	return fmt.Sprintf(multi, formatDate(start, layout, loc), formatDate(end, layout, loc))
}

func validPhrase(pattern string, verbs int) bool {
	return strings.TrimSpace(pattern) != "" && strings.Count(pattern, "%s") == verbs
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

func formatDate(t time.Time, layout string, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(layout)
}
