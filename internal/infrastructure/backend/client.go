// Package backend is the HTTP client for the remote REST API the domain
// services prefer when it is reachable.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/visago/visa-assistant/internal/core/domain"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultProbeTimeout = 2 * time.Second
	maxErrorBody        = 4 << 10
)

// Config captures the settings of the backend client.
type Config struct {
	// BaseURL of the backend. Empty means the backend is never reachable and
	// every service runs on local data.
	BaseURL      string
	ProbePath    string
	Timeout      time.Duration
	ProbeTimeout time.Duration
}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

// Unwrap maps the status to a domain error so callers can use errors.Is.
// 5xx answers count as unavailability and make services fall back.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status >= 500:
		return domain.ErrBackendUnavailable
	case e.Status == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return domain.ErrForbidden
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusConflict:
		return domain.ErrConflict
	default:
		return domain.ErrBadRequest
	}
}

// Client implements ports.Backend over net/http.
type Client struct {
	baseURL      string
	probePath    string
	probeTimeout time.Duration
	http         *http.Client
	log          zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	probePath := cfg.ProbePath
	if probePath == "" {
		probePath = "/health"
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		probePath:    probePath,
		probeTimeout: probeTimeout,
		http:         &http.Client{Timeout: timeout},
		log:          log.With().Str("component", "backend").Logger(),
	}
}

// IsOnline probes the backend. Any answer below 500 counts as online: the
// probe only asks whether something is listening.
func (c *Client) IsOnline(ctx context.Context) bool {
	if c.baseURL == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.probePath, nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Msg("backend probe failed")
		return false
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return resp.StatusCode < 500
}

// Do issues a JSON request. Transport failures are wrapped with
// domain.ErrBackendUnavailable unless ctx itself is done, in which case its
// error is returned. Non-2xx answers are returned as *APIError.
func (c *Client) Do(ctx context.Context, method, path, token string, in, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrBackendUnavailable)
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// the caller gave up; the backend is not at fault
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return fmt.Errorf("%s %s: %w: %v", method, path, domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage extracts {"message"} or {"error"} from a backend error body.
func errorMessage(raw []byte, fallback string) string {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &env) == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}
	if s := strings.TrimSpace(string(raw)); s != "" {
		return s
	}
	return fallback
}
