package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type notice struct {
	receiverID string
	senderID   string
	title      string
	message    string
}

// Dispatcher queues notices and delivers them from background workers, so a
// slow push backend never holds up a booking request. Notify never fails; a
// full queue drops the notice with a warning.
type Dispatcher struct {
	next        Notifier
	logger      *zap.Logger
	sendTimeout time.Duration

	queue     chan notice
	wg        sync.WaitGroup
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

func NewDispatcher(next Notifier, logger *zap.Logger, workers, capacity int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if capacity < 1 {
		capacity = 1
	}
	d := &Dispatcher{
		next:        next,
		logger:      logger,
		sendTimeout: 10 * time.Second,
		queue:       make(chan notice, capacity),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	return d
}

func (d *Dispatcher) Notify(_ context.Context, receiverID, senderID, title, message string) error {
	if receiverID == "" {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("Notification dropped after shutdown", zap.String("receiverId", receiverID), zap.String("title", title))
		return nil
	}
	select {
	case d.queue <- notice{receiverID: receiverID, senderID: senderID, title: title, message: message}:
	default:
		d.logger.Warn("Notification queue full, dropping", zap.String("receiverId", receiverID), zap.String("title", title))
	}
	return nil
}

// Close stops accepting notices and waits for queued ones to be delivered.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	d.wg.Wait()
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for n := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		if err := d.next.Notify(ctx, n.receiverID, n.senderID, n.title, n.message); err != nil {
			d.logger.Warn("Notification delivery failed",
				zap.String("receiverId", n.receiverID),
				zap.String("title", n.title),
				zap.Error(err))
		}
		cancel()
	}
}
