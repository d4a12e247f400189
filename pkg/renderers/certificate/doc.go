// Package certificate renders attendance certificates. The layout lives in an
// embedded pongo2 template; author text is sanitized, its placeholders are
// expanded, and up to three signature blocks are appended. Sections whose
// custom fields are empty are left out of the markup entirely.
package certificate
