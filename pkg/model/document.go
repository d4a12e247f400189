package model

import (
	"strings"
	"time"
)

// Validate checks the parts of the document rendering depends on.
func (d Document) Validate() error {
	var errs FieldErrors

	if !d.Event.Start.IsZero() && !d.Event.End.IsZero() && d.Event.End.Before(d.Event.Start) {
		errs = errs.Add("event.end", "must not be before event start")
	}
	if name := strings.TrimSpace(d.Event.Timezone); name != "" {
		if _, err := time.LoadLocation(name); err != nil {
			errs = errs.Add("event.timezone", "unknown timezone "+name)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// WithCustomFields returns a copy of the document carrying fields.
func (d Document) WithCustomFields(fields CustomFields) Document {
	d.CustomFields = fields
	return d
}
