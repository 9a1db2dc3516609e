package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// DocumentRepository implements ports.DocumentRepository in memory.
type DocumentRepository struct {
	mu   sync.RWMutex
	docs map[string]domain.Document
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{docs: make(map[string]domain.Document)}
}

func (r *DocumentRepository) Create(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[doc.Filename]; exists {
		return domain.ErrConflict
	}
	r.docs[doc.Filename] = *doc
	return nil
}

func (r *DocumentRepository) FindByFilename(_ context.Context, filename string) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.docs[filename]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &d, nil
}

// ListByOwner returns the owner's documents, newest first.
func (r *DocumentRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Document, 0)
	for _, d := range r.docs {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].Filename > out[j].Filename
		}
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

func (r *DocumentRepository) Delete(_ context.Context, filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[filename]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(r.docs, filename)
	return nil
}
