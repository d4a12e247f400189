package preset

import (
	"embed"
	"io/fs"
)

//go:embed presets/*
var embeddedPresets embed.FS

// DefaultName is the preset used when a request does not name one.
const DefaultName = "attendance"

// EmbeddedFS returns the bundled presets. Callers may pass this filesystem to
// LoadFS to use the default wording.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedPresets, "presets")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
