package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// Context keys set by Auth.
const (
	CtxUserID    = "user_id"
	CtxRole      = "role"
	CtxSessionID = "sid"
	CtxEmail     = "email"
	CtxName      = "name"
)

// SessionChecker confirms a session still exists.
type SessionChecker interface {
	CurrentUser(ctx context.Context, sessionID string) (*domain.User, error)
}

// Auth validates the JWT and injects claims into context. When sessions is
// not nil, tokens whose session was closed are refused.
func Auth(jwtSecret string, sessions SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return fmt.Errorf("missing authorization header: %w", domain.ErrUnauthorized)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return fmt.Errorf("invalid authorization header: %w", domain.ErrUnauthorized)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
			}

			sub, _ := claims["sub"].(string)
			sid, _ := claims["sid"].(string)
			if sub == "" || sid == "" {
				return fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
			}

			if sessions != nil {
				if _, err := sessions.CurrentUser(c.Request().Context(), sid); err != nil {
					return fmt.Errorf("session %s: %w", sid, domain.ErrSessionNotFound)
				}
			}

			c.SetRequest(c.Request().WithContext(domain.WithSessionID(c.Request().Context(), sid)))
			c.Set(CtxUserID, sub)
			c.Set(CtxSessionID, sid)
			c.Set(CtxRole, claims["role"])
			c.Set(CtxEmail, claims["email"])
			c.Set(CtxName, claims["name"])

			return next(c)
		}
	}
}
