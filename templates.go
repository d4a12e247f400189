package certgen

import (
	"io/fs"

	"github.com/goliatone/go-certgen/pkg/renderers/certificate"
)

// EmbeddedTemplates exposes the built-in certificate templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return certificate.TemplatesFS()
}

// AssetsFS exposes the certificate stylesheet so Go applications can serve it
// next to rendered fragments.
//
// Typical mount:
//
//	mux.Handle("/certgen/",
//	  http.StripPrefix("/certgen/",
//	    http.FileServerFS(certgen.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return certificate.AssetsFS()
}
