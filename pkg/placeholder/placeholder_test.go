package placeholder_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-certgen/pkg/model"
	"github.com/goliatone/go-certgen/pkg/placeholder"
)

func TestSubstitute_ReplacesEveryOccurrence(t *testing.T) {
	got := placeholder.Substitute("{a} and {a} but {b}", map[string]string{"a": "x"})
	if want := "x and x but {b}"; got != want {
		t.Fatalf("substitute mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestSubstitute_LeavesMalformedTokens(t *testing.T) {
	text := "{ person } {person {} {{person}}"
	got := placeholder.Substitute(text, map[string]string{"person": "P"})
	if want := "{ person } {person {} {P}"; got != want {
		t.Fatalf("substitute mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestSubstitute_DoesNotReescapeValues(t *testing.T) {
	got := placeholder.Substitute("Hello {person}", map[string]string{"person": "<strong>Ada</strong>"})
	if want := "Hello <strong>Ada</strong>"; got != want {
		t.Fatalf("substitute mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestValues(t *testing.T) {
	doc := model.Document{
		Event: model.Event{
			Title: "Quarks & Gluons",
			Start: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 10, 20, 17, 0, 0, 0, time.UTC),
			Venue: "CERN",
		},
		Registration: model.Registration{FirstName: "Ada", LastName: "<Lovelace>", Affiliation: "Analytical Engines Ltd"},
		CustomFields: model.CustomFields{Venue: "Main Auditorium", ShowAffiliation: true},
	}

	got := placeholder.Values(doc)
	want := map[string]string{
		placeholder.Person:     "<strong>Ada &lt;Lovelace&gt;</strong> (Analytical Engines Ltd)",
		placeholder.EventTitle: "Quarks &amp; Gluons",
		placeholder.EventDates: "between 18 October 2026 and 20 October 2026",
		placeholder.StartDate:  "18 October 2026",
		placeholder.EndDate:    "20 October 2026",
		placeholder.Venue:      "Main Auditorium",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestValues_AffiliationHiddenByDefault(t *testing.T) {
	doc := model.Document{
		Registration: model.Registration{FirstName: "Ada", LastName: "Lovelace", Affiliation: "AEL"},
	}
	if got := placeholder.Values(doc)[placeholder.Person]; got != "<strong>Ada Lovelace</strong>" {
		t.Fatalf("person mismatch: %q", got)
	}
}

func TestRender_WithLayoutOption(t *testing.T) {
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	doc := model.Document{
		Event:        model.Event{Title: "Workshop", Start: day, End: day.Add(3 * time.Hour)},
		Registration: model.Registration{FirstName: "Grace", LastName: "Hopper"},
	}

	got := placeholder.Render("{person} attended {event_title} {event_dates} at {venue}{unknown}", doc,
		placeholder.WithDateLayout("2006-01-02"))
	want := "<strong>Grace Hopper</strong> attended Workshop on 2026-03-05 at {unknown}"
	if got != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestNames(t *testing.T) {
	want := []string{"end_date", "event_dates", "event_title", "person", "start_date", "venue"}
	if diff := cmp.Diff(want, placeholder.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestValues_WithDatePhrases(t *testing.T) {
	doc := model.Document{Event: model.Event{
		Start: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 5, 3, 9, 0, 0, 0, time.UTC),
	}}

	got := placeholder.Values(doc, placeholder.WithDatePhrases("le %s", "du %s au %s"))[placeholder.EventDates]
	if want := "du 1 May 2026 au 3 May 2026"; got != want {
		t.Fatalf("event dates mismatch\nwant: %q\n got: %q", want, got)
	}

	got = placeholder.Values(doc, placeholder.WithDatePhrases("broken", "only %s"))[placeholder.EventDates]
	if want := "between 1 May 2026 and 3 May 2026"; got != want {
		t.Fatalf("expected defaults for invalid phrases\nwant: %q\n got: %q", want, got)
	}
}
