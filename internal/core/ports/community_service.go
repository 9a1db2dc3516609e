package ports

import (
	"context"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// CreatePostInput carries the author-provided fields of a new post.
type CreatePostInput struct {
	AuthorID     string
	AuthorName   string
	AuthorAvatar string
	Title        string
	Content      string
	CountryCode  string
	Tags         []string
}

type CommunityService interface {
	List(ctx context.Context, status domain.PostStatus) ([]domain.CommunityPost, error)
	Create(ctx context.Context, in CreatePostInput) (*domain.CommunityPost, error)
	// UpdateStatus does not validate status; callers are expected to.
	UpdateStatus(ctx context.Context, id string, status domain.PostStatus) (*domain.CommunityPost, error)
	React(ctx context.Context, id, kind string) (*domain.CommunityPost, error)
	Delete(ctx context.Context, id string) error
}
