// Package certificates exposes certificate rendering over net/http.
//
// The handler accepts POST requests carrying a JSON payload with the event,
// registration, custom fields, and optional preset or theme names, and
// responds with the rendered HTML fragment. Validation failures are reported
// as JSON with per-field messages.
package certificates
