package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/fallback"
	"github.com/visago/visa-assistant/internal/core/ports"
)

// Remote bundles what every backend-first service needs.
type Remote struct {
	Backend ports.Backend
	Record  fallback.RecordFunc
	Log     zerolog.Logger
}

func (r Remote) runner(service string) *fallback.Runner {
	return fallback.NewRunner(service, r.Backend, r.Log, r.Record)
}

// fallbackScope holds writes made while the backend was unreachable. They are
// kept for local reads only and never replayed.
const fallbackScope = "fallback"

func loadJSON[T any](ctx context.Context, store ports.LocalStore, scope, key string) (T, error) {
	var v T
	b, err := store.Get(ctx, scope, key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

func saveJSON(ctx context.Context, store ports.LocalStore, scope, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, scope, key, b)
}

// bearer returns the backend token saved at login for the session carried by
// ctx. Sessions opened offline have none.
func bearer(ctx context.Context, store ports.LocalStore) string {
	sid := domain.SessionIDFrom(ctx)
	if sid == "" {
		return ""
	}
	b, err := store.Get(ctx, sid, domain.KeyAuthToken)
	if err != nil {
		return ""
	}
	return string(b)
}

// newID returns prefix followed by a random UUID.
func newID(prefix string) string {
	return prefix + uuid.NewString()
}

// remap replaces a generic backend answer with the service's own error.
func remap(err error, generic, specific error) error {
	if errors.Is(err, generic) {
		return fmt.Errorf("%w: %v", specific, err)
	}
	return err
}
