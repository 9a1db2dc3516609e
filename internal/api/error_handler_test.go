package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/visago/visa-assistant/internal/api/handler"
	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/ports"
	"github.com/visago/visa-assistant/internal/core/service"
)

func render(t *testing.T, err error, method, acceptLanguage string) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	if acceptLanguage != "" {
		req.Header.Set(handler.HeaderAcceptLanguage, acceptLanguage)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop(), nil)(err, c)

	if rec.Body.Len() == 0 {
		return rec.Code, ""
	}
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body.Error
}

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		lang   string
		status int
		msg    string
	}{
		{"wrapped backend outage", fmt.Errorf("GET /countries: %w", domain.ErrBackendUnavailable), "", http.StatusServiceUnavailable, "Service temporairement indisponible"},
		{"specific before generic", fmt.Errorf("%w: %w", domain.ErrCountryNotFound, domain.ErrNotFound), "en", http.StatusNotFound, "Country not found"},
		{"rejected file names the file", &service.RejectedFile{Name: "virus.exe", Err: domain.ErrInvalidDocument}, "en", http.StatusBadRequest, ""},
		{"upstream relayed", &ports.UpstreamError{Status: http.StatusUnauthorized, Message: "Incorrect API key"}, "", http.StatusUnauthorized, "Incorrect API key"},
		{"missing credentials localized", fmt.Errorf("missing authorization header: %w", domain.ErrUnauthorized), "en", http.StatusUnauthorized, "Authentication required"},
		{"closed session localized", fmt.Errorf("session s-1: %w", domain.ErrSessionNotFound), "", http.StatusUnauthorized, "Session expirée, veuillez vous reconnecter"},
		{"echo default text localized", echo.ErrNotFound, "ar", http.StatusNotFound, "المورد غير موجود"},
		{"echo custom text kept", echo.NewHTTPError(http.StatusBadRequest, "email is required"), "", http.StatusBadRequest, "email is required"},
		{"unknown error", errors.New("disk on fire"), "en-GB", http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := render(t, tc.err, http.MethodGet, tc.lang)
			require.Equal(t, tc.status, status)
			if tc.msg != "" {
				require.Equal(t, tc.msg, msg)
			}
		})
	}
}

func TestHTTPErrorHandler_RejectedFileMessage(t *testing.T) {
	_, msg := render(t, &service.RejectedFile{Name: "virus.exe", Err: domain.ErrInvalidDocument}, http.MethodGet, "en")
	require.Contains(t, msg, ": virus.exe")
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	status, msg := render(t, domain.ErrDocumentNotFound, http.MethodHead, "")
	require.Equal(t, http.StatusNotFound, status)
	require.Empty(t, msg)
}
