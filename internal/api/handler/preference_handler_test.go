package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/ports"
	"github.com/visago/visa-assistant/internal/core/service"
	"github.com/visago/visa-assistant/internal/infrastructure/db/memory"
)

func newPreferenceHandler() *PreferenceHandler {
	return NewPreferenceHandler(service.NewPreferenceService(memory.NewStore(), "FR", zerolog.Nop()))
}

func TestPreferenceHandler_Theme(t *testing.T) {
	e := newTestEcho()
	h := newPreferenceHandler()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/preferences/theme", nil), rec)
	authenticate(c, "u-1", "s-1")
	require.NoError(t, h.GetTheme(c))
	require.JSONEq(t, `{"theme":"light"}`, rec.Body.String())

	c = e.NewContext(jsonRequest(http.MethodPut, "/preferences/theme", `{"theme":"dark"}`), httptest.NewRecorder())
	authenticate(c, "u-1", "s-1")
	require.NoError(t, h.SetTheme(c))

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/preferences/theme", nil), rec)
	authenticate(c, "u-1", "s-1")
	require.NoError(t, h.GetTheme(c))
	require.JSONEq(t, `{"theme":"dark"}`, rec.Body.String())

	c = e.NewContext(jsonRequest(http.MethodPut, "/preferences/theme", `{"theme":"blue"}`), httptest.NewRecorder())
	authenticate(c, "u-1", "s-1")
	var he *echo.HTTPError
	require.True(t, errors.As(h.SetTheme(c), &he))
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPreferenceHandler_Location_FromHeader(t *testing.T) {
	e := newTestEcho()
	h := newPreferenceHandler()

	req := httptest.NewRequest(http.MethodGet, "/preferences/location", nil)
	req.Header.Set(HeaderCFIPCountry, "ma")
	req.Header.Set(HeaderAcceptLanguage, "en-CA")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	authenticate(c, "u-1", "s-1")

	require.NoError(t, h.GetLocation(c))
	var loc domain.UserLocation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loc))
	require.Equal(t, "MA", loc.CountryCode)
	require.Equal(t, domain.LocationFromHeader, loc.Source)
}

func TestPreferenceHandler_Location_UnknownHeaderFallsThrough(t *testing.T) {
	e := newTestEcho()
	h := newPreferenceHandler()

	req := jsonRequest(http.MethodPut, "/preferences/location", `{}`)
	req.Header.Set(HeaderCFIPCountry, "XX")
	req.Header.Set(HeaderAcceptLanguage, "en-CA,en;q=0.8")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	authenticate(c, "u-1", "s-1")

	require.NoError(t, h.SetLocation(c))
	var loc domain.UserLocation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loc))
	require.Equal(t, "CA", loc.CountryCode)
	require.Equal(t, domain.LocationFromLanguage, loc.Source)
}

func TestPreferenceHandler_Progress(t *testing.T) {
	e := newTestEcho()
	h := newPreferenceHandler()

	call := func(fn func(echo.Context) error, req *http.Request) ports.ProgressView {
		t.Helper()
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		authenticate(c, "u-1", "s-1")
		require.NoError(t, fn(c))
		var v ports.ProgressView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
		return v
	}

	v := call(h.AdvanceProgress, httptest.NewRequest(http.MethodPost, "/preferences/progress/advance", nil))
	require.Equal(t, 1, v.CurrentStep)
	require.Equal(t, 16, v.Percent)

	v = call(h.SetProgressStep, jsonRequest(http.MethodPut, "/preferences/progress", `{"step":3}`))
	require.Equal(t, 3, v.CurrentStep)
	require.Equal(t, []bool{true, true, true, false, false, false}, v.Completed)
	require.Equal(t, 50, v.Percent)

	v = call(h.ResetProgress, httptest.NewRequest(http.MethodPost, "/preferences/progress/reset", nil))
	require.Equal(t, 0, v.CurrentStep)
	require.Equal(t, 0, v.Percent)

	c := e.NewContext(jsonRequest(http.MethodPut, "/preferences/progress", `{"step":9}`), httptest.NewRecorder())
	authenticate(c, "u-1", "s-1")
	require.ErrorIs(t, h.SetProgressStep(c), domain.ErrInvalidStep)

	c = e.NewContext(jsonRequest(http.MethodPut, "/preferences/progress", `{}`), httptest.NewRecorder())
	authenticate(c, "u-1", "s-1")
	var he *echo.HTTPError
	require.True(t, errors.As(h.SetProgressStep(c), &he))
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPreferenceHandler_ChatHistory(t *testing.T) {
	e := newTestEcho()
	h := newPreferenceHandler()

	c := e.NewContext(jsonRequest(http.MethodPut, "/preferences/chat-history",
		`{"history":[{"role":"user","content":"Bonjour"},{"role":"assistant","content":"Bonjour !"}]}`), httptest.NewRecorder())
	authenticate(c, "u-1", "s-1")
	require.NoError(t, h.SetChatHistory(c))

	rec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/preferences/chat-history", nil), rec)
	authenticate(c, "u-1", "s-1")
	require.NoError(t, h.GetChatHistory(c))

	var resp chatHistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.History, 2)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodDelete, "/preferences/chat-history", nil), rec)
	authenticate(c, "u-1", "s-1")
	require.NoError(t, h.ClearChatHistory(c))
}
