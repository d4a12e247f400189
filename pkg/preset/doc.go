// Package preset loads named custom-field presets from JSON or YAML files.
// A preset supplies default wording (title, body text with placeholders,
// flags) that individual certificate requests can override field by field.
package preset
