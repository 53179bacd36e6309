package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	applog "snapbook/internal/log"
	"snapbook/internal/metrics"
)

var (
	ErrQueueFull = errors.New("notify: queue full")
	ErrClosed    = errors.New("notify: dispatcher closed")
)

// SendTimeout bounds a single delivery attempt.
const SendTimeout = 5 * time.Second

type event struct {
	subject string
	message string
}

// Dispatcher queues notifications and delivers them from one worker.
// A full queue drops the event instead of blocking the caller.
type Dispatcher struct {
	sender Sender
	queue  chan event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sender Sender, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan event, size),
		done:   make(chan struct{}),
	}
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), SendTimeout)
		err := d.sender.Notify(ctx, ev.subject, ev.message)
		cancel()
		if err != nil {
			metrics.NotificationFailed()
			applog.Logger().WithError(err).WithField("subject", ev.subject).Warn("notify.send.fail")
			continue
		}
		metrics.NotificationSent()
	}
}

// Notify enqueues the notification. The context is not used for delivery,
// which outlives the request.
func (d *Dispatcher) Notify(_ context.Context, subject, message string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}
	select {
	case d.queue <- event{subject: subject, message: message}:
		return nil
	default:
		metrics.NotificationDropped()
		return ErrQueueFull
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}
