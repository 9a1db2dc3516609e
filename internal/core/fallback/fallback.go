// Package fallback runs an operation against the backend and, when the backend
// is unreachable, against a local substitute.
package fallback

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// Outcome labels how a call was served.
type Outcome string

const (
	OutcomeRemote   Outcome = "remote"
	OutcomeFallback Outcome = "fallback"
	OutcomeError    Outcome = "error"
)

// Prober reports whether the backend is reachable.
type Prober interface {
	IsOnline(ctx context.Context) bool
}

// RecordFunc observes every call outcome, typically a metrics counter.
type RecordFunc func(service, operation string, outcome Outcome)

// Runner carries the per-service settings shared by every call.
type Runner struct {
	service string
	probe   Prober
	log     zerolog.Logger
	record  RecordFunc
}

// NewRunner returns a Runner for service. record may be nil.
func NewRunner(service string, probe Prober, log zerolog.Logger, record RecordFunc) *Runner {
	return &Runner{
		service: service,
		probe:   probe,
		log:     log.With().Str("service", service).Logger(),
		record:  record,
	}
}

// Online reports the probe result.
func (r *Runner) Online(ctx context.Context) bool {
	return r.probe.IsOnline(ctx)
}

func (r *Runner) observe(op string, o Outcome) {
	if r.record != nil {
		r.record(r.service, op, o)
	}
}

// Run calls remote when the backend is online. If the probe says offline, or
// remote fails with domain.ErrBackendUnavailable, local is called instead.
// Any other remote error is returned as is: the backend answered.
//
// A nil local means the operation has no local substitute; the
// unavailability error is then returned to the caller. Once ctx is done,
// local is never called and ctx.Err() is returned.
func Run[T any](ctx context.Context, r *Runner, op string, remote, local func(context.Context) (T, error)) (T, error) {
	var zero T

	cause := fmt.Errorf("%s.%s: %w", r.service, op, domain.ErrBackendUnavailable)
	if r.probe.IsOnline(ctx) {
		v, err := remote(ctx)
		if err == nil {
			r.observe(op, OutcomeRemote)
			return v, nil
		}
		if !errors.Is(err, domain.ErrBackendUnavailable) {
			r.observe(op, OutcomeError)
			return zero, err
		}
		r.log.Warn().Err(err).Str("operation", op).Msg("backend call failed, using local data")
		cause = err
	} else {
		r.log.Debug().Str("operation", op).Msg("backend offline, using local data")
	}

	if err := ctx.Err(); err != nil {
		r.observe(op, OutcomeError)
		return zero, err
	}
	if local == nil {
		r.observe(op, OutcomeError)
		return zero, cause
	}

	v, err := local(ctx)
	if err != nil {
		r.observe(op, OutcomeError)
		return zero, err
	}
	r.observe(op, OutcomeFallback)
	return v, nil
}

// Exec is Run for operations without a result value.
func Exec(ctx context.Context, r *Runner, op string, remote, local func(context.Context) error) error {
	wrap := func(f func(context.Context) error) func(context.Context) (struct{}, error) {
		if f == nil {
			return nil
		}
		return func(ctx context.Context) (struct{}, error) { return struct{}{}, f(ctx) }
	}
	_, err := Run(ctx, r, op, wrap(remote), wrap(local))
	return err
}
