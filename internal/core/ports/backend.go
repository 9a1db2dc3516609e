package ports

import "context"

// Backend is the remote REST API every domain service prefers when it is
// reachable. Do encodes in as JSON when non-nil and decodes the response into
// out when non-nil. token, when non-empty, is sent as a bearer token.
type Backend interface {
	IsOnline(ctx context.Context) bool
	Do(ctx context.Context, method, path, token string, in, out any) error
}
