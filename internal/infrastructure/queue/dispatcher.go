package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/adminsync/portal-api/internal/api/metrics"
	"github.com/adminsync/portal-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

type resetNotification struct {
	Email string
	Token string
}

// Dispatcher delivers password-reset notifications through a fixed set of
// workers, sharded by recipient so notifications to the same address keep
// their order. It implements ports.Notifier: SendPasswordReset enqueues and
// returns immediately, decoupling the auth flow from delivery latency.
type Dispatcher struct {
	workers  []chan resetNotification
	delegate ports.Notifier
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers
// delivering through delegate. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, delegate ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan resetNotification, numWorkers),
		delegate: delegate,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan resetNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// SendPasswordReset enqueues a notification for asynchronous delivery. The
// call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) SendPasswordReset(_ context.Context, email, token string) error {
	idx := d.shardIndex(email)
	d.workers[idx] <- resetNotification{Email: email, Token: token}
	metrics.NotificationsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	return nil
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan resetNotification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.delegate.SendPasswordReset(ctx, n.Email, n.Token); err != nil {
				d.log.Error().Err(err).
					Str("email", n.Email).
					Int("worker_id", id).
					Msg("reset notification delivery failed")
			}
		}
	}
}
