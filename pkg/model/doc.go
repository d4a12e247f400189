// Package model defines the certificate rendering context: the event, the
// registration the certificate is issued to, and the custom fields configured
// by the template author. Custom fields arrive as a loose key/value map (see
// CustomFieldsFromMap) and are decoded into CustomFields, keeping unknown keys
// in Extra so callers can round-trip them through Map.
package model
