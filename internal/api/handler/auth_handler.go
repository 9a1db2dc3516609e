package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visago/visa-assistant/internal/api/metrics"
	"github.com/visago/visa-assistant/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account on the backend and opens a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return errValidation(err)
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.SessionsOpenedTotal.WithLabelValues(sessionMode(res)).Inc()
	return c.JSON(http.StatusCreated, authResponse{Token: res.Token, User: res.User, Offline: res.Offline})
}

// Login authenticates against the backend, or the bundled users when the
// backend is unreachable, and returns a JWT.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return errValidation(err)
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.SessionsOpenedTotal.WithLabelValues(sessionMode(res)).Inc()
	return c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User, Offline: res.Offline})
}

// Verify handles GET /auth/verify.
//
// @Summary      Verify the current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  verifyResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Verify(c.Request().Context(), id.SessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, verifyResponse{Valid: true, User: user})
}

// Logout handles POST /auth/logout. The whole session is dropped.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), id.SessionID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func sessionMode(res *ports.LoginResult) string {
	if res.Offline {
		return "offline"
	}
	return "online"
}
