package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/visago/visa-assistant/internal/api/handler"
	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/service"
	"github.com/visago/visa-assistant/internal/fixtures"
	"github.com/visago/visa-assistant/internal/infrastructure/backend"
	"github.com/visago/visa-assistant/internal/infrastructure/db/memory"
	"github.com/visago/visa-assistant/internal/infrastructure/storage"
)

type cannedChat struct{}

func (cannedChat) Reply(context.Context, []domain.ChatMessage) (string, error) {
	return "Bonjour !", nil
}

// newOfflineRouter wires the real services with no backend configured.
func newOfflineRouter(t *testing.T) http.Handler {
	t.Helper()
	log := zerolog.Nop()

	fx, err := fixtures.Load(bcrypt.MinCost)
	require.NoError(t, err)
	disk, err := storage.NewDisk(t.TempDir())
	require.NoError(t, err)

	store := memory.NewStore()
	be := backend.NewClient(backend.Config{}, log)
	remote := service.Remote{Backend: be, Log: log}
	notifications := service.NewNotificationService(remote, store)

	return NewRouter(Deps{
		Log:       log,
		JWTSecret: "test-secret",
		BodyLimit: "2M",
		Origins:   []string{"*"},

		Probe:         be,
		Auth:          service.NewAuthService(remote, fx, store, "test-secret", 0),
		Countries:     service.NewCountryService(remote, fx),
		Currency:      service.NewCurrencyService(fx.Rates(), log),
		Community:     service.NewCommunityService(remote, store, nil),
		Notifications: notifications,
		Preferences:   service.NewPreferenceService(store, "FR", log),
		Chat:          cannedChat{},
		Documents:     service.NewDocumentService(memory.NewDocumentRepository(), disk, service.DocumentConfig{}, log),

		Ready:    map[string]handler.Pinger{},
		Registry: prometheus.NewRegistry(),
	})
}

func do(t *testing.T, h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/auth/login", "", `{"email":"amina@example.com","password":"voyage2024"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token   string `json:"token"`
		Offline bool   `json:"offline"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Offline)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRouter_OpsRoutes(t *testing.T) {
	h := newOfflineRouter(t)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "", "").Code)

	rec := do(t, h, http.MethodGet, "/status", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"online":false`)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health/ready", "", "").Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/metrics", "", "").Code)
}

func TestRouter_OfflineSession(t *testing.T) {
	h := newOfflineRouter(t)
	token := login(t, h)

	rec := do(t, h, http.MethodGet, "/auth/verify", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/preferences/theme", token, `{"theme":"dark"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(t, h, http.MethodGet, "/preferences/theme", token, "")
	require.JSONEq(t, `{"theme":"dark"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/countries", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/chat", "", `{"history":[{"role":"user","content":"Salut"}]}`)
	require.JSONEq(t, `{"content":"Bonjour !"}`, rec.Body.String())

	// moderation is admin only
	rec = do(t, h, http.MethodPatch, "/community/p-1/status", token, `{"status":"approved"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// registration needs the backend
	rec = do(t, h, http.MethodPost, "/auth/register", "", `{"name":"Nour","email":"nour@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, "/auth/logout", token, "").Code)
	require.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/preferences/theme", token, "").Code)
}

func TestRouter_Unauthenticated(t *testing.T) {
	h := newOfflineRouter(t)

	rec := do(t, h, http.MethodGet, "/documents/list", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Authentification requise")

	rec = do(t, h, http.MethodGet, "/documents/list", "not-a-token", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Authentification requise")

	rec = do(t, h, http.MethodGet, "/nowhere", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Ressource introuvable")
}
