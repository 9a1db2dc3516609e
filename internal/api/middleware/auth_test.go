package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/visago/visa-assistant/internal/core/domain"
)

type stubSessions struct {
	known map[string]bool
}

func (s stubSessions) CurrentUser(_ context.Context, sid string) (*domain.User, error) {
	if s.known[sid] {
		return &domain.User{ID: "u-1"}, nil
	}
	return nil, domain.ErrSessionNotFound
}

func sign(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "u-1",
		"sid":   "s-1",
		"role":  "admin",
		"email": "a@example.com",
		"name":  "Amina",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, validClaims(), "secret"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret", stubSessions{known: map[string]bool{"s-1": true}})
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "u-1" {
			t.Fatalf("user id not set")
		}
		if c.Get(CtxRole) != "admin" {
			t.Fatalf("role not set")
		}
		if c.Get(CtxSessionID) != "s-1" {
			t.Fatalf("session id not set")
		}
		if c.Get(CtxName) != "Amina" {
			t.Fatalf("name not set")
		}
		if domain.SessionIDFrom(c.Request().Context()) != "s-1" {
			t.Fatalf("session id not carried by the request context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	noSession := validClaims()
	delete(noSession, "sid")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"invalid header format", "Token abc"},
		{"invalid token", "Bearer not-a-token"},
		{"wrong secret", "Bearer " + sign(t, validClaims(), "other")},
		{"expired", "Bearer " + sign(t, expired, "secret")},
		{"missing sid", "Bearer " + sign(t, noSession, "secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mw := Auth("secret", nil)
			handler := mw(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestAuthMiddleware_ClosedSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, validClaims(), "secret"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", stubSessions{})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session not found, got %v", err)
	}
}
