// Package orchestrator wires preset lookup, custom field decoding, theme
// selection, and rendering into a single Generate call for consumers that
// prefer one entry point over assembling the pieces themselves.
package orchestrator
