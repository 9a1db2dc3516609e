package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visago/visa-assistant/internal/core/ports"
)

// Headers carrying the client country, set by Cloudflare or a front proxy.
const (
	HeaderCFIPCountry  = "CF-IPCountry"
	HeaderXCountryCode = "X-Country-Code"
)

// HeaderAcceptLanguage is not among echo's header constants.
const HeaderAcceptLanguage = "Accept-Language"

// PreferenceHandler serves the per-session presentation state.
type PreferenceHandler struct {
	service ports.PreferenceService
}

func NewPreferenceHandler(service ports.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: service}
}

// GetTheme handles GET /preferences/theme.
//
// @Summary      Current theme
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  themeResponse
// @Router       /preferences/theme [get]
func (h *PreferenceHandler) GetTheme(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	theme, err := h.service.Theme(c.Request().Context(), id.SessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Theme: theme})
}

// SetTheme handles PUT /preferences/theme.
//
// @Summary      Change theme
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      themeRequest  true  "light or dark"
// @Success      200   {object}  themeResponse
// @Failure      400   {object}  errorResponse
// @Router       /preferences/theme [put]
func (h *PreferenceHandler) SetTheme(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return errValidation(err)
	}
	if err := h.service.SetTheme(c.Request().Context(), id.SessionID, req.Theme); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Theme: req.Theme})
}

// GetLanguage handles GET /preferences/language.
//
// @Summary      Current language
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  languageResponse
// @Router       /preferences/language [get]
func (h *PreferenceHandler) GetLanguage(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	lang, err := h.service.Language(c.Request().Context(), id.SessionID, c.Request().Header.Get(HeaderAcceptLanguage))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, languageResponse{Language: lang})
}

// SetLanguage handles PUT /preferences/language.
//
// @Summary      Change language
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      languageRequest  true  "fr, en or ar"
// @Success      200   {object}  languageResponse
// @Failure      400   {object}  errorResponse
// @Router       /preferences/language [put]
func (h *PreferenceHandler) SetLanguage(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req languageRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return errValidation(err)
	}
	if err := h.service.SetLanguage(c.Request().Context(), id.SessionID, req.Language); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, languageResponse{Language: req.Language})
}

// GetLocation handles GET /preferences/location.
//
// @Summary      Resolved user location
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserLocation
// @Router       /preferences/location [get]
func (h *PreferenceHandler) GetLocation(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	loc, err := h.service.Location(c.Request().Context(), id.SessionID, requestHint(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loc)
}

// SetLocation handles PUT /preferences/location. An empty body re-runs the
// header and language detection.
//
// @Summary      Set user location
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      locationRequest  false  "Explicit country or coordinates"
// @Success      200   {object}  domain.UserLocation
// @Failure      400   {object}  errorResponse
// @Router       /preferences/location [put]
func (h *PreferenceHandler) SetLocation(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return errValidation(err)
	}

	hint := requestHint(c)
	hint.CountryCode = req.CountryCode
	hint.Latitude = req.Latitude
	hint.Longitude = req.Longitude

	loc, err := h.service.SetLocation(c.Request().Context(), id.SessionID, hint)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loc)
}

func requestHint(c echo.Context) ports.LocationHint {
	hdr := c.Request().Header
	country := hdr.Get(HeaderCFIPCountry)
	if country == "" {
		country = hdr.Get(HeaderXCountryCode)
	}
	return ports.LocationHint{
		HeaderCountry:  country,
		AcceptLanguage: hdr.Get(HeaderAcceptLanguage),
	}
}

// GetProgress handles GET /preferences/progress.
//
// @Summary      Visa application progress
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ProgressView
// @Router       /preferences/progress [get]
func (h *PreferenceHandler) GetProgress(c echo.Context) error {
	return h.progress(c, h.service.Progress)
}

// AdvanceProgress handles POST /preferences/progress/advance.
//
// @Summary      Complete the current step
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ProgressView
// @Router       /preferences/progress/advance [post]
func (h *PreferenceHandler) AdvanceProgress(c echo.Context) error {
	return h.progress(c, h.service.AdvanceProgress)
}

// ResetProgress handles POST /preferences/progress/reset.
//
// @Summary      Restart the application flow
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ProgressView
// @Router       /preferences/progress/reset [post]
func (h *PreferenceHandler) ResetProgress(c echo.Context) error {
	return h.progress(c, h.service.ResetProgress)
}

// SetProgressStep handles PUT /preferences/progress.
//
// @Summary      Jump to a step
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      progressStepRequest  true  "Zero-based step index"
// @Success      200   {object}  ports.ProgressView
// @Failure      400   {object}  errorResponse
// @Router       /preferences/progress [put]
func (h *PreferenceHandler) SetProgressStep(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req progressStepRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return errValidation(err)
	}
	view, err := h.service.SetProgressStep(c.Request().Context(), id.SessionID, *req.Step)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (h *PreferenceHandler) progress(c echo.Context, fn func(ctx context.Context, sid string) (*ports.ProgressView, error)) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	view, err := fn(c.Request().Context(), id.SessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// GetChatHistory handles GET /preferences/chat-history.
//
// @Summary      Stored chatbot conversation
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  chatHistoryResponse
// @Router       /preferences/chat-history [get]
func (h *PreferenceHandler) GetChatHistory(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	history, err := h.service.ChatHistory(c.Request().Context(), id.SessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chatHistoryResponse{History: history})
}

// SetChatHistory handles PUT /preferences/chat-history. Only the most recent
// messages are kept.
//
// @Summary      Replace the stored conversation
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatHistoryRequest  true  "Conversation"
// @Success      200   {object}  chatHistoryResponse
// @Failure      400   {object}  errorResponse
// @Router       /preferences/chat-history [put]
func (h *PreferenceHandler) SetChatHistory(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req chatHistoryRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return errValidation(err)
	}
	stored, err := h.service.SetChatHistory(c.Request().Context(), id.SessionID, toChatMessages(req.History))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chatHistoryResponse{History: stored})
}

// ClearChatHistory handles DELETE /preferences/chat-history.
//
// @Summary      Forget the stored conversation
// @Tags         preferences
// @Security     BearerAuth
// @Success      204
// @Router       /preferences/chat-history [delete]
func (h *PreferenceHandler) ClearChatHistory(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.ClearChatHistory(c.Request().Context(), id.SessionID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
