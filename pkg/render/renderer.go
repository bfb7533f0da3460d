package render

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Renderer turns the form description plus per-request state into bytes
// (HTML, terminal transcript, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.Form, options RenderOptions) ([]byte, error)
}
