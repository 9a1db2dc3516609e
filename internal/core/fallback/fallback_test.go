package fallback

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/visago/visa-assistant/internal/core/domain"
)

type staticProbe bool

func (p staticProbe) IsOnline(context.Context) bool { return bool(p) }

type recorder struct {
	outcomes []Outcome
}

func (r *recorder) record(_, _ string, o Outcome) { r.outcomes = append(r.outcomes, o) }

func newRunner(online bool) (*Runner, *recorder) {
	rec := &recorder{}
	return NewRunner("test", staticProbe(online), zerolog.Nop(), rec.record), rec
}

func remoteValue(v string, err error) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return v, err }
}

func TestRun_OnlineUsesRemote(t *testing.T) {
	r, rec := newRunner(true)

	v, err := Run(context.Background(), r, "get", remoteValue("remote", nil), remoteValue("local", nil))
	require.NoError(t, err)
	require.Equal(t, "remote", v)
	require.Equal(t, []Outcome{OutcomeRemote}, rec.outcomes)
}

func TestRun_OfflineUsesLocal(t *testing.T) {
	r, rec := newRunner(false)

	remote := func(context.Context) (string, error) {
		t.Fatalf("remote must not be called while offline")
		return "", nil
	}
	v, err := Run(context.Background(), r, "get", remote, remoteValue("local", nil))
	require.NoError(t, err)
	require.Equal(t, "local", v)
	require.Equal(t, []Outcome{OutcomeFallback}, rec.outcomes)
}

func TestRun_UnavailableRemoteFallsBack(t *testing.T) {
	r, _ := newRunner(true)

	failing := remoteValue("", fmt.Errorf("GET /countries: %w", domain.ErrBackendUnavailable))
	v, err := Run(context.Background(), r, "list", failing, remoteValue("fixture", nil))
	require.NoError(t, err)
	require.Equal(t, "fixture", v)
}

func TestRun_RemoteAnswerIsNotAFailure(t *testing.T) {
	r, rec := newRunner(true)

	local := func(context.Context) (string, error) {
		t.Fatalf("4xx answers must not fall back")
		return "", nil
	}
	_, err := Run(context.Background(), r, "login", remoteValue("", domain.ErrUnauthorized), local)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	require.Equal(t, []Outcome{OutcomeError}, rec.outcomes)
}

func TestRun_NoLocalSubstitute(t *testing.T) {
	r, _ := newRunner(false)

	_, err := Run[string](context.Background(), r, "create", remoteValue("x", nil), nil)
	require.ErrorIs(t, err, domain.ErrBackendUnavailable)

	online, _ := newRunner(true)
	err = Exec(context.Background(), online, "delete",
		func(context.Context) error { return fmt.Errorf("boom: %w", domain.ErrBackendUnavailable) },
		nil)
	require.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestExec_Offline(t *testing.T) {
	r, _ := newRunner(false)

	called := false
	err := Exec(context.Background(), r, "mark", nil, func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, called)
}

func TestRun_CancelledContextSkipsLocal(t *testing.T) {
	r, rec := newRunner(true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	remote := remoteValue("", fmt.Errorf("POST /community: %w", domain.ErrBackendUnavailable))
	local := func(context.Context) (string, error) {
		t.Fatalf("local must not run for a cancelled request")
		return "", nil
	}
	_, err := Run(ctx, r, "create", remote, local)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []Outcome{OutcomeError}, rec.outcomes)
}
