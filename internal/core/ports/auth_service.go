package ports

import (
	"context"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// LoginResult is returned by a successful login or registration.
type LoginResult struct {
	Token     string
	SessionID string
	User      *domain.User
	// Offline is true when the session was opened from fixture data.
	Offline bool
}

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (*LoginResult, error)
	Verify(ctx context.Context, sessionID string) (*domain.User, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, sessionID string) (*domain.User, error)
}
