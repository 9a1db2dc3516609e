package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/visago/visa-assistant/internal/core/fallback"
	"github.com/visago/visa-assistant/internal/infrastructure/db/memory"
)

type backendCall struct {
	Method string
	Path   string
	Token  string
	Body   any
}

// stubBackend answers with respond and records every call.
type stubBackend struct {
	online  bool
	respond func(method, path string, in any) (any, error)

	mu    sync.Mutex
	calls []backendCall
}

func (b *stubBackend) IsOnline(context.Context) bool { return b.online }

func (b *stubBackend) Do(_ context.Context, method, path, token string, in, out any) error {
	b.mu.Lock()
	b.calls = append(b.calls, backendCall{Method: method, Path: path, Token: token, Body: in})
	b.mu.Unlock()

	if b.respond == nil {
		return nil
	}
	v, err := b.respond(method, path, in)
	if err != nil {
		return err
	}
	if out == nil || v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (b *stubBackend) Calls() []backendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]backendCall(nil), b.calls...)
}

type outcome struct {
	service, op string
	result      fallback.Outcome
}

type recorder struct {
	mu  sync.Mutex
	got []outcome
}

func (r *recorder) record(service, op string, o fallback.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, outcome{service, op, o})
}

func (r *recorder) last() outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.got) == 0 {
		return outcome{}
	}
	return r.got[len(r.got)-1]
}

func newRemote(b *stubBackend, rec *recorder) Remote {
	r := Remote{Backend: b, Log: zerolog.Nop()}
	if rec != nil {
		r.Record = rec.record
	}
	return r
}

func newStore() *memory.Store { return memory.NewStore() }
