package port

import (
	"context"
	"io"

	"finvoice/internal/domain"
)

// SaveInput encapsulates the parameters needed to store an object under the
// uploads/renders area.
type SaveInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// ObjectStorage abstracts where uploaded PDFs and rendered deliverables
// live: local disk in the default deployment, S3 when configured.
type ObjectStorage interface {
	Save(ctx context.Context, input SaveInput) (string, error)
	Read(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Usage(ctx context.Context) (*domain.StorageUsage, error)
}
