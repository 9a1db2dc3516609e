package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/visago/visa-assistant/internal/api/handler"
	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/ports"
	"github.com/visago/visa-assistant/internal/core/service"
	"github.com/visago/visa-assistant/internal/i18n"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// LanguageFunc picks the language of the messages rendered for c.
type LanguageFunc func(c echo.Context) string

// HeaderLanguage picks the language from Accept-Language only.
func HeaderLanguage(c echo.Context) string {
	return i18n.Negotiate(c.Request().Header.Get(handler.HeaderAcceptLanguage))
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes and a localized message.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, lang LanguageFunc) echo.HTTPErrorHandler {
	if lang == nil {
		lang = HeaderLanguage
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c, lang)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

// domainErrors is checked in order; specific errors come before the generic
// ones they may wrap.
var domainErrors = []struct {
	err  error
	code int
	key  string
}{
	{domain.ErrBackendUnavailable, http.StatusServiceUnavailable, i18n.MsgBackendUnavailable},
	{domain.ErrChatUnavailable, http.StatusBadGateway, i18n.MsgChatUnavailable},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, i18n.MsgInvalidCredentials},
	{domain.ErrUserExists, http.StatusConflict, i18n.MsgUserExists},
	{domain.ErrUserNotFound, http.StatusNotFound, i18n.MsgNotFound},
	{domain.ErrSessionNotFound, http.StatusUnauthorized, i18n.MsgSessionExpired},
	{domain.ErrCountryNotFound, http.StatusNotFound, i18n.MsgCountryNotFound},
	{domain.ErrPostNotFound, http.StatusNotFound, i18n.MsgPostNotFound},
	{domain.ErrNotificationNotFound, http.StatusNotFound, i18n.MsgNotificationNotFound},
	{domain.ErrDocumentNotFound, http.StatusNotFound, i18n.MsgDocumentNotFound},
	{domain.ErrInvalidDocument, http.StatusBadRequest, i18n.MsgInvalidDocument},
	{domain.ErrTooManyFiles, http.StatusBadRequest, i18n.MsgTooManyFiles},
	{domain.ErrFileTooLarge, http.StatusBadRequest, i18n.MsgFileTooLarge},
	{domain.ErrInvalidStep, http.StatusBadRequest, i18n.MsgInvalidStep},
	{domain.ErrInvalidPreference, http.StatusBadRequest, i18n.MsgInvalidPreference},
	{domain.ErrEmptyHistory, http.StatusBadRequest, i18n.MsgEmptyHistory},
	{domain.ErrUnauthorized, http.StatusUnauthorized, i18n.MsgUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden, i18n.MsgForbidden},
	{domain.ErrNotFound, http.StatusNotFound, i18n.MsgNotFound},
	{domain.ErrConflict, http.StatusConflict, i18n.MsgConflict},
	{domain.ErrBadRequest, http.StatusBadRequest, i18n.MsgBadRequest},
}

// statusMessages localizes echo's own errors when they carry the default
// status text.
var statusMessages = map[int]string{
	http.StatusBadRequest:            i18n.MsgBadRequest,
	http.StatusUnauthorized:          i18n.MsgUnauthorized,
	http.StatusForbidden:             i18n.MsgForbidden,
	http.StatusNotFound:              i18n.MsgNotFound,
	http.StatusRequestEntityTooLarge: i18n.MsgFileTooLarge,
	http.StatusInternalServerError:   i18n.MsgInternal,
	http.StatusServiceUnavailable:    i18n.MsgBackendUnavailable,
}

func resolveError(err error, log zerolog.Logger, c echo.Context, lang LanguageFunc) (int, string) {
	// Echo's own errors (bind failures, 404 from router, validation, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		if key, ok := statusMessages[he.Code]; ok && msg == http.StatusText(he.Code) {
			msg = i18n.Message(lang(c), key)
		}
		return he.Code, msg
	}

	var upstream *ports.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Status, upstream.Message
	}

	for _, de := range domainErrors {
		if !errors.Is(err, de.err) {
			continue
		}
		msg := i18n.Message(lang(c), de.key)
		var rejected *service.RejectedFile
		if errors.As(err, &rejected) {
			msg += ": " + rejected.Name
		}
		if de.code >= http.StatusInternalServerError {
			log.Warn().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("dependency unavailable")
		}
		return de.code, msg
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, i18n.Message(lang(c), i18n.MsgInternal)
}
