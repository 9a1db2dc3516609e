package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/visago/visa-assistant/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher delivers notifications in the background. Notifications for the
// same user always go to the same worker, so they are stored in the order
// they were queued.
type Dispatcher struct {
	workers []chan ports.CreateNotificationInput
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.CreateNotificationInput, numWorkers),
		service: service,
		log:     log.With().Str("component", "notify_dispatcher").Logger(),
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.CreateNotificationInput, channelBuffer)
	}
	return d
}

// Start launches the workers. They stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify queues in for delivery. It blocks only while the user's worker
// buffer is full, and gives up when ctx is done.
func (d *Dispatcher) Notify(ctx context.Context, in ports.CreateNotificationInput) error {
	select {
	case d.workers[d.shardIndex(in.UserID)] <- in:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.CreateNotificationInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			// the request that queued this is long gone
			if _, err := d.service.Create(context.WithoutCancel(ctx), in); err != nil {
				d.log.Error().Err(err).
					Str("user_id", in.UserID).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
