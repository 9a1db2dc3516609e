package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// Store implements ports.LocalStore on Redis hashes.
// Key format: <prefix>:<scope>, one hash field per key.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStore wraps client. A positive ttl is refreshed on every write so idle
// sessions expire; zero keeps scopes forever.
func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = "visago"
	}
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, scope, key string) ([]byte, error) {
	b, err := s.client.HGet(ctx, s.key(scope), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("store get %s: %w", key, err)
	}
	return b, nil
}

func (s *Store) Set(ctx context.Context, scope, key string, value []byte) error {
	k := s.key(scope)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, k, key, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, k, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, scope, key string) error {
	if err := s.client.HDel(ctx, s.key(scope), key).Err(); err != nil {
		return fmt.Errorf("store delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Keys(ctx context.Context, scope string) ([]string, error) {
	keys, err := s.client.HKeys(ctx, s.key(scope)).Result()
	if err != nil {
		return nil, fmt.Errorf("store keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Clear(ctx context.Context, scope string) error {
	if err := s.client.Del(ctx, s.key(scope)).Err(); err != nil {
		return fmt.Errorf("store clear: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) key(scope string) string {
	return s.prefix + ":" + scope
}
