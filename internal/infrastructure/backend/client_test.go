package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/visago/visa-assistant/internal/core/domain"
)

func TestClient_IsOnline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())
	require.True(t, c.IsOnline(context.Background()))
}

func TestClient_IsOnline_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())
	require.False(t, c.IsOnline(context.Background()))
}

func TestClient_EmptyBaseURLIsOffline(t *testing.T) {
	c := NewClient(Config{}, zerolog.Nop())
	require.False(t, c.IsOnline(context.Background()))

	err := c.Do(context.Background(), http.MethodGet, "/countries", "", nil, nil)
	require.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestClient_Do_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "amina@example.com", in["email"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"abc","user":{"id":"u-1"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL + "/"}, zerolog.Nop())

	var out struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	err := c.Do(context.Background(), http.MethodPost, "/auth/login", "tok", map[string]string{"email": "amina@example.com"}, &out)
	require.NoError(t, err)
	require.Equal(t, "abc", out.Token)
	require.Equal(t, "u-1", out.User.ID)
}

func TestClient_Do_ErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   error
		msg    string
	}{
		{http.StatusUnauthorized, `{"message":"bad password"}`, domain.ErrUnauthorized, "bad password"},
		{http.StatusNotFound, `{"error":"no such country"}`, domain.ErrNotFound, "no such country"},
		{http.StatusConflict, `taken`, domain.ErrConflict, "taken"},
		{http.StatusUnprocessableEntity, ``, domain.ErrBadRequest, "422 Unprocessable Entity"},
		{http.StatusServiceUnavailable, ``, domain.ErrBackendUnavailable, "503 Service Unavailable"},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(tc.body))
		}))

		c := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())
		err := c.Do(context.Background(), http.MethodGet, "/x", "", nil, nil)
		srv.Close()

		require.ErrorIs(t, err, tc.want, "status %d", tc.status)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, tc.status, apiErr.Status)
		require.Equal(t, tc.msg, apiErr.Message)
	}
}

func TestClient_Do_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url}, zerolog.Nop())
	err := c.Do(context.Background(), http.MethodGet, "/countries", "", nil, nil)
	require.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestClient_Do_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())
	err := c.Do(ctx, http.MethodPost, "/notifications", "", map[string]string{"title": "x"}, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, domain.ErrBackendUnavailable)
}
