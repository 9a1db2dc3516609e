package service

import (
	"context"
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

type NotificationService struct {
	backend ports.Backend
	runner  *fallback.Runner
	store   ports.LocalStore
	log     zerolog.Logger
}

func NewNotificationService(remote Remote, store ports.LocalStore) *NotificationService {
	return &NotificationService{
		backend: remote.Backend,
		runner:  remote.runner("notifications"),
		store:   store,
		log:     remote.Log.With().Str("component", "notifications").Logger(),
	}
}

func notificationScope(userID string) string {
	return fallbackScope + ":notifications:" + userID
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	items, err := fallback.Run(ctx, s.runner, "list",
		func(ctx context.Context) ([]domain.Notification, error) {
			var out []domain.Notification
			path := "/notifications?userId=" + url.QueryEscape(userID)
			if err := s.backend.Do(ctx, http.MethodGet, path, bearer(ctx, s.store), nil, &out); err != nil {
				return nil, err
			}
			return out, nil
		},
		func(ctx context.Context) ([]domain.Notification, error) {
			return s.localList(ctx, userID)
		},
	)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n, nil
}

// Create records a notification. Offline it is kept locally so the user
// still sees it.
func (s *NotificationService) Create(ctx context.Context, in ports.CreateNotificationInput) (*domain.Notification, error) {
	if in.UserID == "" || (strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Message) == "") {
		return nil, fmt.Errorf("create notification: %w", domain.ErrBadRequest)
	}
	if in.Type == "" {
		in.Type = domain.NotificationInfo
	}

	n := domain.Notification{
		UserID:    in.UserID,
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
	}

	return fallback.Run(ctx, s.runner, "create",
		func(ctx context.Context) (*domain.Notification, error) {
			var out domain.Notification
			if err := s.backend.Do(ctx, http.MethodPost, "/notifications", bearer(ctx, s.store), n, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func(ctx context.Context) (*domain.Notification, error) {
			local := n
			local.ID = newID("n-")
			if err := saveJSON(ctx, s.store, notificationScope(in.UserID), local.ID, local); err != nil {
				return nil, err
			}
			return &local, nil
		},
	)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) (*domain.Notification, error) {
	return fallback.Run(ctx, s.runner, "mark_read",
		func(ctx context.Context) (*domain.Notification, error) {
			var out domain.Notification
			err := s.backend.Do(ctx, http.MethodPatch, "/notifications/"+url.PathEscape(id)+"/read", bearer(ctx, s.store), nil, &out)
			if err != nil {
				return nil, remap(err, domain.ErrNotFound, domain.ErrNotificationNotFound)
			}
			if out.ID == "" {
				out = domain.Notification{ID: id, UserID: userID, Read: true}
			}
			if out.UserID != userID {
				return nil, fmt.Errorf("mark read %s: %w", id, domain.ErrNotificationNotFound)
			}
			return &out, nil
		},
		func(ctx context.Context) (*domain.Notification, error) {
			scope := notificationScope(userID)
			n, err := loadJSON[domain.Notification](ctx, s.store, scope, id)
			if err != nil {
				return nil, remap(err, domain.ErrNotFound, domain.ErrNotificationNotFound)
			}
			n.Read = true
			if err := saveJSON(ctx, s.store, scope, id, n); err != nil {
				return nil, err
			}
			return &n, nil
		},
	)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return fallback.Exec(ctx, s.runner, "mark_all_read",
		func(ctx context.Context) error {
			return s.backend.Do(ctx, http.MethodPatch, "/notifications/read-all", bearer(ctx, s.store),
				map[string]string{"userId": userID}, nil)
		},
		func(ctx context.Context) error {
			items, err := s.localList(ctx, userID)
			if err != nil {
				return err
			}
			scope := notificationScope(userID)
			for _, n := range items {
				if n.Read {
					continue
				}
				n.Read = true
				if err := saveJSON(ctx, s.store, scope, n.ID, n); err != nil {
					return err
				}
			}
			return nil
		},
	)
}

// Delete removes a notification. There is no offline substitute.
func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	err := fallback.Exec(ctx, s.runner, "delete",
		func(ctx context.Context) error {
			err := s.backend.Do(ctx, http.MethodDelete, "/notifications/"+url.PathEscape(id), bearer(ctx, s.store), nil, nil)
			return remap(err, domain.ErrNotFound, domain.ErrNotificationNotFound)
		},
		nil,
	)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, notificationScope(userID), id); err != nil {
		s.log.Warn().Err(err).Str("notification_id", id).Msg("failed to drop local copy")
	}
	return nil
}

func (s *NotificationService) localList(ctx context.Context, userID string) ([]domain.Notification, error) {
	scope := notificationScope(userID)
	ids, err := s.store.Keys(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Notification, 0, len(ids))
	for _, id := range ids {
		n, err := loadJSON[domain.Notification](ctx, s.store, scope, id)
		if err != nil {
			s.log.Warn().Err(err).Str("notification_id", id).Msg("skipping unreadable local notification")
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
