package ports

import (
	"context"
	"io"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// DocumentRepository persists upload metadata. It is the source of truth for
// document ownership.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	// FindByFilename returns domain.ErrDocumentNotFound when absent.
	FindByFilename(ctx context.Context, filename string) (*domain.Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Document, error)
	Delete(ctx context.Context, filename string) error
}

// FileStore writes and reads document bytes.
type FileStore interface {
	Save(name string, r io.Reader) (int64, error)
	Open(name string) (io.ReadSeekCloser, error)
	Remove(name string) error
}
