package ports

import "context"

// LocalStore is scoped key/value persistence. A scope is either a session id
// (standing in for one browser's local storage) or a shared fallback scope
// holding writes made while the backend was unreachable.
type LocalStore interface {
	// Get returns domain.ErrNotFound when the key is absent.
	Get(ctx context.Context, scope, key string) ([]byte, error)
	Set(ctx context.Context, scope, key string, value []byte) error
	Delete(ctx context.Context, scope, key string) error
	// Keys lists every key currently set in scope.
	Keys(ctx context.Context, scope string) ([]string, error)
	Clear(ctx context.Context, scope string) error
	Ping(ctx context.Context) error
}
