package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/ports"
)

func TestClient_Complete_TrimsFirstChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("missing api key header")
		}
		var body completionRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body.Model != "gpt-test" || body.MaxTokens != 300 || len(body.Messages) != 1 {
			t.Errorf("unexpected request: %+v", body)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Bonjour !\n"}},{"message":{"content":"second"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, APIKey: "key"})
	got, err := c.Complete(context.Background(), ports.CompletionRequest{
		Model:     "gpt-test",
		MaxTokens: 300,
		Messages:  []domain.ChatMessage{{Role: "user", Content: "Salut"}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "Bonjour !" {
		t.Fatalf("expected trimmed first choice, got %q", got)
	}
}

func TestClient_Complete_UpstreamError(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"json envelope", http.StatusTooManyRequests, `{"error":{"message":"Rate limit reached"}}`, "Rate limit reached"},
		{"raw body", http.StatusUnauthorized, `invalid key`, "invalid key"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(Config{URL: srv.URL}).Complete(context.Background(), ports.CompletionRequest{})
			var upErr *ports.UpstreamError
			if !errors.As(err, &upErr) {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if upErr.Status != tc.status || upErr.Message != tc.want {
				t.Fatalf("unexpected upstream error: %+v", upErr)
			}
		})
	}
}
