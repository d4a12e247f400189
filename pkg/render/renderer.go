package render

import (
	"context"

	"github.com/goliatone/go-certgen/pkg/model"
)

// Renderer converts a certificate document into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc model.Document, options RenderOptions) ([]byte, error)
}
