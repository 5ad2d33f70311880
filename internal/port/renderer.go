package port

import (
	"context"

	"finvoice/internal/domain"
)

// RenderOutput is a produced deliverable document.
type RenderOutput struct {
	Bytes    []byte
	MimeType string
	// Ext is the file extension (without dot) matching MimeType.
	Ext string
}

// DocumentRenderer turns a bill into a printable fixed-layout document.
// Implementations may be slow or fallible; callers bound them with a context
// deadline and fall back to another renderer on failure.
type DocumentRenderer interface {
	Render(ctx context.Context, bill *domain.Bill) (*RenderOutput, error)
}
