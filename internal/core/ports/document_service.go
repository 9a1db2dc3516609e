package ports

import (
	"context"
	"io"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// UploadFile is a single file of a multipart upload.
type UploadFile struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type DocumentService interface {
	Upload(ctx context.Context, ownerID string, files []UploadFile) ([]domain.Document, error)
	List(ctx context.Context, ownerID string) ([]domain.Document, error)
	// Open returns the record and a reader positioned at the start of the
	// file. The caller closes the reader.
	Open(ctx context.Context, ownerID, filename string) (*domain.Document, io.ReadSeekCloser, error)
	Delete(ctx context.Context, ownerID, filename string) error
}
