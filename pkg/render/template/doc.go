// Package template defines the renderer-agnostic template interface used by
// certificate renderers. The gotemplate subpackage provides the pongo2-backed
// implementation.
package template
