package model

import (
	"strings"
	"time"
	_ "time/tzdata"
)

// MaxSignatures caps the number of signature blocks a certificate can carry.
const MaxSignatures = 3

// Event holds the event data a certificate refers to.
type Event struct {
	Title    string    `json:"title" yaml:"title"`
	Start    time.Time `json:"start" yaml:"start"`
	End      time.Time `json:"end" yaml:"end"`
	Venue    string    `json:"venue,omitempty" yaml:"venue,omitempty"`
	URL      string    `json:"url,omitempty" yaml:"url,omitempty"`
	Timezone string    `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// Location returns the event timezone, falling back to UTC when the name is
// empty or unknown.
func (e Event) Location() *time.Location {
	name := strings.TrimSpace(e.Timezone)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Registration carries the personal data of the registrant the certificate
// is issued to.
type Registration struct {
	FirstName   string `json:"first_name" yaml:"first_name"`
	LastName    string `json:"last_name" yaml:"last_name"`
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
}

// DisplayName joins first and last name.
func (r Registration) DisplayName() string {
	return strings.TrimSpace(strings.Join(strings.Fields(r.FirstName+" "+r.LastName), " "))
}

// Signature describes one signature block.
type Signature struct {
	Name     string `json:"name,omitempty"`
	Position string `json:"position,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// HasContent reports whether any of the block fields is set.
func (s Signature) HasContent() bool {
	return strings.TrimSpace(s.Name) != "" ||
		strings.TrimSpace(s.Position) != "" ||
		strings.TrimSpace(s.ImageURL) != ""
}

// CustomFields are the per-document values configured by the template author.
type CustomFields struct {
	Title            string
	Venue            string
	LogoURL          string
	OrganizerAddress string
	Text             string
	Place            string
	SignatureSlots   [MaxSignatures]Signature
	ShowAffiliation  bool
	ShowURL          bool

	// Extra keeps keys the renderer does not know about.
	Extra map[string]any
}

// Signatures returns the populated signature blocks in slot order.
func (c CustomFields) Signatures() []Signature {
	var out []Signature
	for _, sig := range c.SignatureSlots {
		if !sig.HasContent() {
			continue
		}
		out = append(out, Signature{
			Name:     strings.TrimSpace(sig.Name),
			Position: strings.TrimSpace(sig.Position),
			ImageURL: strings.TrimSpace(sig.ImageURL),
		})
	}
	return out
}

// Document is the rendering context for a single certificate.
type Document struct {
	Event        Event        `json:"event" yaml:"event"`
	Registration Registration `json:"registration" yaml:"registration"`
	CustomFields CustomFields `json:"-" yaml:"-"`
}

// Venue resolves the venue shown on the certificate. The custom override wins
// over the event venue.
func (d Document) Venue() string {
	if venue := strings.TrimSpace(d.CustomFields.Venue); venue != "" {
		return venue
	}
	return strings.TrimSpace(d.Event.Venue)
}

// Title returns the document title.
func (d Document) Title() string {
	return strings.TrimSpace(d.CustomFields.Title)
}
