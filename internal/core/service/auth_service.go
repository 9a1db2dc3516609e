package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/fallback"
	"github.com/visago/visa-assistant/internal/core/ports"
)

// UserDirectory authenticates against local user data when the backend is
// unreachable.
type UserDirectory interface {
	Authenticate(email, password string) (*domain.User, error)
}

// AuthService implements login, registration and server-side sessions.
type AuthService struct {
	backend   ports.Backend
	runner    *fallback.Runner
	users     UserDirectory
	store     ports.LocalStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(remote Remote, users UserDirectory, store ports.LocalStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		backend:   remote.Backend,
		runner:    remote.runner("auth"),
		users:     users,
		store:     store,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       remote.Log.With().Str("component", "auth").Logger(),
	}
}

// authPayload is the backend's answer to login and register.
type authPayload struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`

	offline bool
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	payload, err := fallback.Run(ctx, s.runner, "login",
		func(ctx context.Context) (authPayload, error) {
			var out authPayload
			err := s.backend.Do(ctx, http.MethodPost, "/auth/login", "",
				map[string]string{"email": email, "password": password}, &out)
			if err != nil {
				return out, credentialsError(err)
			}
			if out.User == nil {
				return out, fmt.Errorf("login: backend answered without a user")
			}
			return out, nil
		},
		func(ctx context.Context) (authPayload, error) {
			u, err := s.users.Authenticate(email, password)
			if err != nil {
				return authPayload{}, err
			}
			return authPayload{User: u, offline: true}, nil
		},
	)
	if err != nil {
		return nil, err
	}

	return s.openSession(ctx, payload)
}

// Register has no local substitute: an account cannot be created offline.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.LoginResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, domain.ErrInvalidCredentials
	}

	payload, err := fallback.Run(ctx, s.runner, "register",
		func(ctx context.Context) (authPayload, error) {
			var out authPayload
			err := s.backend.Do(ctx, http.MethodPost, "/auth/register", "", map[string]string{
				"name":     in.Name,
				"email":    in.Email,
				"password": in.Password,
			}, &out)
			if err != nil {
				return out, remap(err, domain.ErrConflict, domain.ErrUserExists)
			}
			if out.User == nil {
				return out, fmt.Errorf("register: backend answered without a user")
			}
			return out, nil
		},
		nil,
	)
	if err != nil {
		return nil, err
	}

	return s.openSession(ctx, payload)
}

// Verify confirms the session is still valid. Online, the stored backend
// token is checked against /auth/verify; offline, the stored user is trusted.
func (s *AuthService) Verify(ctx context.Context, sessionID string) (*domain.User, error) {
	current, err := s.CurrentUser(ctx, sessionID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, _ := s.store.Get(ctx, sessionID, domain.KeyAuthToken)
	if len(token) == 0 {
		// opened from fixtures; the backend has never seen this session
		return current, nil
	}

	user, err := fallback.Run(ctx, s.runner, "verify",
		func(ctx context.Context) (*domain.User, error) {
			var out struct {
				User *domain.User `json:"user"`
			}
			if err := s.backend.Do(ctx, http.MethodGet, "/auth/verify", string(token), nil, &out); err != nil {
				return nil, err
			}
			if out.User == nil {
				return current, nil
			}
			return out.User.Public(), nil
		},
		func(context.Context) (*domain.User, error) { return current, nil },
	)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden) {
			s.log.Info().Str("user_id", current.ID).Msg("backend rejected session token, closing session")
			_ = s.store.Clear(ctx, sessionID)
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if err := saveJSON(ctx, s.store, sessionID, domain.KeyCurrentUser, user); err != nil {
		s.log.Warn().Err(err).Msg("failed to refresh stored user")
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CurrentUser returns the user stored in the session.
func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	u, err := loadJSON[*domain.User](ctx, s.store, sessionID, domain.KeyCurrentUser)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrSessionNotFound
	}
	return u, nil
}

func (s *AuthService) openSession(ctx context.Context, p authPayload) (*ports.LoginResult, error) {
	user := p.User.Public()
	sid := newID("s-")

	if err := saveJSON(ctx, s.store, sid, domain.KeyCurrentUser, user); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	if p.Token != "" {
		if err := s.store.Set(ctx, sid, domain.KeyAuthToken, []byte(p.Token)); err != nil {
			return nil, fmt.Errorf("open session: %w", err)
		}
	}
	if lang := user.Preferences["language"]; lang != "" {
		_ = s.store.Set(ctx, sid, domain.KeyLanguage, []byte(lang))
	}
	if theme := user.Preferences["theme"]; theme != "" {
		_ = s.store.Set(ctx, sid, domain.KeyTheme, []byte(theme))
	}

	token, err := s.generateToken(user, sid)
	if err != nil {
		_ = s.store.Clear(ctx, sid)
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Bool("offline", p.offline).Msg("session opened")

	return &ports.LoginResult{Token: token, SessionID: sid, User: user, Offline: p.offline}, nil
}

func (s *AuthService) generateToken(user *domain.User, sid string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"sid":   sid,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// credentialsError turns a backend refusal of the login into
// ErrInvalidCredentials. Availability errors pass through so the caller
// falls back.
func credentialsError(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrBadRequest):
		return domain.ErrInvalidCredentials
	}
	return err
}
