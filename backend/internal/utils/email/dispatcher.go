package email

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	internal_errors "github.com/yamdb-dev/yamdb/shared/errors"
	"github.com/yamdb-dev/yamdb/shared/logger"
	"github.com/yamdb-dev/yamdb/shared/middleware/metrics"
)

const defaultBaseBackoff = 500 * time.Millisecond

// Dispatcher delivers messages in the background so callers never wait on SMTP.
// Delivery is at-least-once per accepted message within the retry budget.
type Dispatcher struct {
	sender      Sender
	queue       chan Message
	workers     int
	maxRetries  uint64
	baseBackoff time.Duration

	mu     sync.RWMutex // guards closed against concurrent Enqueue
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(sender Sender, workers, queueSize, maxRetries int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Dispatcher{
		sender:      sender,
		queue:       make(chan Message, queueSize),
		workers:     workers,
		maxRetries:  uint64(maxRetries),
		baseBackoff: defaultBaseBackoff,
	}
}

// WithBaseBackoff sets the first retry delay; later retries double it
func (d *Dispatcher) WithBaseBackoff(b time.Duration) *Dispatcher {
	d.baseBackoff = b
	return d
}

// Start launches the workers. ctx bounds individual deliveries: cancelling it
// aborts in-flight retries but the queue is still drained by Shutdown.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for msg := range d.queue {
				d.deliver(ctx, msg)
			}
		}()
	}
}

// Enqueue never blocks. It reports false when the message was dropped because
// the queue is full or the dispatcher is shutting down.
func (d *Dispatcher) Enqueue(msg Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		logger.Log.Error("email dropped: dispatcher stopped", "to", msg.To)
		metrics.EmailDelivery(metrics.DeliveryDropped)
		return false
	}
	select {
	case d.queue <- msg:
		return true
	default:
		logger.Log.Error("email dropped: queue full", "to", msg.To, "capacity", cap(d.queue))
		metrics.EmailDelivery(metrics.DeliveryDropped)
		return false
	}
}

// Shutdown stops accepting messages and waits for queued ones to be delivered
// or for ctx to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg Message) {
	backoff := retry.WithMaxRetries(d.maxRetries, retry.NewExponential(d.baseBackoff))
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := d.sender.Send(ctx, msg); err != nil {
			logger.Log.Warn("email delivery attempt failed", "to", msg.To, "attempt", attempt, "error", err)
			// a malformed recipient fails the same way every time
			if internal_errors.StatusCode(err) == http.StatusBadRequest {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		logger.Log.Error("email delivery failed", "to", msg.To, "attempts", attempt, "error", err)
		metrics.EmailDelivery(metrics.DeliveryFailed)
		return
	}
	logger.Log.Debug("email delivered", "to", msg.To, "attempts", attempt)
	metrics.EmailDelivery(metrics.DeliverySent)
}
