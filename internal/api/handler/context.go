package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visago/visa-assistant/internal/api/middleware"
	"github.com/visago/visa-assistant/internal/core/domain"
)

type identity struct {
	UserID    string
	SessionID string
	Role      string
	Email     string
	Name      string
}

// ctxIdentity extracts the claims injected by the Auth middleware. Both the
// user and the session id must be present.
func ctxIdentity(c echo.Context) (identity, error) {
	var id identity
	id.UserID, _ = c.Get(middleware.CtxUserID).(string)
	id.SessionID, _ = c.Get(middleware.CtxSessionID).(string)
	if id.UserID == "" || id.SessionID == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	id.Role, _ = c.Get(middleware.CtxRole).(string)
	id.Email, _ = c.Get(middleware.CtxEmail).(string)
	id.Name, _ = c.Get(middleware.CtxName).(string)
	return id, nil
}

func errInvalidPayload(err error) error {
	return fmt.Errorf("invalid payload: %w: %v", domain.ErrBadRequest, err)
}

func errValidation(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse documents the envelope rendered by the HTTP error handler.
type errorResponse struct {
	Error string `json:"error"`
}
