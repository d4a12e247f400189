package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-certgen/pkg/model"
)

// SampleDocument returns a two-day event certificate with every optional
// section populated except the third signature slot.
func SampleDocument() model.Document {
	doc := model.Document{
		Event: model.Event{
			Title:    "Workshop on Detector Physics",
			Start:    time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
			End:      time.Date(2026, 10, 19, 17, 0, 0, 0, time.UTC),
			Venue:    "CERN",
			URL:      "https://events.example.org/e/42",
			Timezone: "Europe/Zurich",
		},
		Registration: model.Registration{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Affiliation: "Analytical Engines Ltd",
		},
	}
	doc.CustomFields = model.CustomFields{
		Title:            "Certificate of Attendance",
		Venue:            "Main Auditorium",
		LogoURL:          "https://events.example.org/logo.png",
		OrganizerAddress: "1 Esplanade des Particules\n1211 Geneva",
		Text:             "This is to certify that {person} attended {event_title} {event_dates} at {venue}.",
		Place:            "Geneva",
		ShowAffiliation:  true,
		ShowURL:          true,
	}
	doc.CustomFields.SignatureSlots[0] = model.Signature{Name: "Grace Hopper", Position: "Chair", ImageURL: "https://events.example.org/sig1.png"}
	doc.CustomFields.SignatureSlots[1] = model.Signature{Name: "Alan Turing", Position: "Secretary"}
	return doc
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
