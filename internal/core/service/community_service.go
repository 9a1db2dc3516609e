package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/fallback"
	"github.com/visago/visa-assistant/internal/core/ports"
)

const communityScope = fallbackScope + ":community"

// Notifier hands a notification over for delivery.
type Notifier interface {
	Notify(ctx context.Context, in ports.CreateNotificationInput) error
}

type CommunityService struct {
	backend  ports.Backend
	runner   *fallback.Runner
	store    ports.LocalStore
	notifier Notifier
	log      zerolog.Logger
}

// NewCommunityService returns the community service. notifier may be nil.
func NewCommunityService(remote Remote, store ports.LocalStore, notifier Notifier) *CommunityService {
	return &CommunityService{
		backend:  remote.Backend,
		runner:   remote.runner("community"),
		store:    store,
		notifier: notifier,
		log:      remote.Log.With().Str("component", "community").Logger(),
	}
}

// List returns posts, optionally narrowed to one status. Offline it serves
// the local copies written while the backend was unreachable.
func (s *CommunityService) List(ctx context.Context, status domain.PostStatus) ([]domain.CommunityPost, error) {
	return fallback.Run(ctx, s.runner, "list",
		func(ctx context.Context) ([]domain.CommunityPost, error) {
			path := "/community"
			if status != "" {
				path += "?status=" + url.QueryEscape(string(status))
			}
			var out []domain.CommunityPost
			if err := s.backend.Do(ctx, http.MethodGet, path, bearer(ctx, s.store), nil, &out); err != nil {
				return nil, err
			}
			return out, nil
		},
		func(ctx context.Context) ([]domain.CommunityPost, error) {
			posts, err := s.localPosts(ctx)
			if err != nil {
				return nil, err
			}
			if status == "" {
				return posts, nil
			}
			out := posts[:0]
			for _, p := range posts {
				if p.Status == status {
					out = append(out, p)
				}
			}
			return out, nil
		},
	)
}

// Create submits a new post for moderation. There is no offline substitute.
func (s *CommunityService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.CommunityPost, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" || in.AuthorID == "" {
		return nil, fmt.Errorf("create post: %w", domain.ErrBadRequest)
	}

	now := time.Now().UTC()
	post := domain.CommunityPost{
		AuthorID:     in.AuthorID,
		AuthorName:   in.AuthorName,
		AuthorAvatar: in.AuthorAvatar,
		Title:        strings.TrimSpace(in.Title),
		Content:      strings.TrimSpace(in.Content),
		CountryCode:  strings.ToUpper(in.CountryCode),
		Tags:         in.Tags,
		Status:       domain.PostPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return fallback.Run(ctx, s.runner, "create",
		func(ctx context.Context) (*domain.CommunityPost, error) {
			var out domain.CommunityPost
			if err := s.backend.Do(ctx, http.MethodPost, "/community", bearer(ctx, s.store), post, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		nil,
	)
}

// UpdateStatus moves a post to status. Any status value is forwarded as is.
// On success the author is notified.
func (s *CommunityService) UpdateStatus(ctx context.Context, id string, status domain.PostStatus) (*domain.CommunityPost, error) {
	post, err := fallback.Run(ctx, s.runner, "update_status",
		func(ctx context.Context) (*domain.CommunityPost, error) {
			var out domain.CommunityPost
			err := s.backend.Do(ctx, http.MethodPatch, "/community/"+url.PathEscape(id)+"/status", bearer(ctx, s.store),
				map[string]string{"status": string(status)}, &out)
			if err != nil {
				return nil, remap(err, domain.ErrNotFound, domain.ErrPostNotFound)
			}
			return &out, nil
		},
		func(ctx context.Context) (*domain.CommunityPost, error) {
			return s.modifyLocal(ctx, id, func(p *domain.CommunityPost) { p.Status = status })
		},
	)
	if err != nil {
		return nil, err
	}

	s.notifyAuthor(ctx, post)
	return post, nil
}

// React records a like or a dislike on a post.
func (s *CommunityService) React(ctx context.Context, id, kind string) (*domain.CommunityPost, error) {
	if kind != domain.ReactionLike && kind != domain.ReactionDislike {
		return nil, fmt.Errorf("react %q: %w", kind, domain.ErrBadRequest)
	}

	return fallback.Run(ctx, s.runner, "react",
		func(ctx context.Context) (*domain.CommunityPost, error) {
			var out domain.CommunityPost
			err := s.backend.Do(ctx, http.MethodPost, "/community/"+url.PathEscape(id)+"/likes", bearer(ctx, s.store),
				map[string]string{"type": kind}, &out)
			if err != nil {
				return nil, remap(err, domain.ErrNotFound, domain.ErrPostNotFound)
			}
			return &out, nil
		},
		func(ctx context.Context) (*domain.CommunityPost, error) {
			return s.modifyLocal(ctx, id, func(p *domain.CommunityPost) {
				if kind == domain.ReactionLike {
					p.Likes++
				} else {
					p.Dislikes++
				}
			})
		},
	)
}

// Delete removes a post. There is no offline substitute.
func (s *CommunityService) Delete(ctx context.Context, id string) error {
	err := fallback.Exec(ctx, s.runner, "delete",
		func(ctx context.Context) error {
			err := s.backend.Do(ctx, http.MethodDelete, "/community/"+url.PathEscape(id), bearer(ctx, s.store), nil, nil)
			return remap(err, domain.ErrNotFound, domain.ErrPostNotFound)
		},
		nil,
	)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, communityScope, id); err != nil {
		s.log.Warn().Err(err).Str("post_id", id).Msg("failed to drop local copy")
	}
	return nil
}

// modifyLocal applies fn to the local copy of a post, creating a stub when
// the post was never seen offline.
func (s *CommunityService) modifyLocal(ctx context.Context, id string, fn func(*domain.CommunityPost)) (*domain.CommunityPost, error) {
	post, err := loadJSON[domain.CommunityPost](ctx, s.store, communityScope, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		post = domain.CommunityPost{ID: id, Status: domain.PostPending, CreatedAt: time.Now().UTC()}
	}

	fn(&post)
	post.UpdatedAt = time.Now().UTC()

	if err := saveJSON(ctx, s.store, communityScope, id, post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *CommunityService) localPosts(ctx context.Context) ([]domain.CommunityPost, error) {
	ids, err := s.store.Keys(ctx, communityScope)
	if err != nil {
		return nil, err
	}
	posts := make([]domain.CommunityPost, 0, len(ids))
	for _, id := range ids {
		p, err := loadJSON[domain.CommunityPost](ctx, s.store, communityScope, id)
		if err != nil {
			s.log.Warn().Err(err).Str("post_id", id).Msg("skipping unreadable local post")
			continue
		}
		posts = append(posts, p)
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (s *CommunityService) notifyAuthor(ctx context.Context, post *domain.CommunityPost) {
	if s.notifier == nil || post.AuthorID == "" {
		return
	}

	title := post.Title
	if title == "" {
		title = post.ID
	}
	err := s.notifier.Notify(ctx, ports.CreateNotificationInput{
		UserID:  post.AuthorID,
		Type:    domain.NotificationCommunity,
		Title:   "Statut de votre publication",
		Message: fmt.Sprintf("Votre publication « %s » est maintenant : %s", title, post.Status),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("post_id", post.ID).Msg("failed to notify author")
	}
}
