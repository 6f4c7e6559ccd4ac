package port

import (
	"context"

	"etiqo/internal/domain"
)

// RenderInput carries the validated, normalized field set for one label.
type RenderInput struct {
	Layout       domain.LabelType
	ProductName  string
	Variety      string
	QuantityText string
	PackingDate  string
}

// RenderedLabel is one physical label artifact returned by the renderer.
// A layout may emit more than one per item (e.g. duplicate stickers).
type RenderedLabel struct {
	FileName string
	MimeType string
	Data     []byte
}

// LabelRenderer abstracts the external label-layout renderer.
type LabelRenderer interface {
	Render(ctx context.Context, input RenderInput) ([]RenderedLabel, error)
}
