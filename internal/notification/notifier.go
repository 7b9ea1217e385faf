package notification

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Notifier fans messages out to admin devices from a background worker.
// Enqueue never blocks and never fails: delivery is strictly best-effort and
// must not affect the latency or outcome of the operation that triggered it.
type Notifier struct {
	sender Sender
	queue  chan Message
	logger zerolog.Logger

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewNotifier creates a notifier with a bounded queue.
func NewNotifier(sender Sender, queueSize int, logger zerolog.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		queue:  make(chan Message, queueSize),
		logger: logger.With().Str("component", "notifier").Logger(),
	}
}

// Start launches the delivery worker. The worker drains the queue until it
// is closed or the context is cancelled.
func (n *Notifier) Start(ctx context.Context) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-n.queue:
				if !ok {
					return
				}
				if err := n.sender.Send(ctx, msg); err != nil {
					n.logger.Warn().
						Err(err).
						Str("title", msg.Title).
						Int("token_count", len(msg.Tokens)).
						Msg("push delivery failed")
				}
			}
		}
	}()
}

// Enqueue hands a message to the worker. When the queue is full the message
// is dropped and logged.
func (n *Notifier) Enqueue(msg Message) {
	select {
	case n.queue <- msg:
	default:
		n.logger.Warn().Str("title", msg.Title).Msg("notification queue full, message dropped")
	}
}

// Close stops accepting messages and waits for the worker to drain.
func (n *Notifier) Close() {
	n.closeOnce.Do(func() {
		close(n.queue)
	})
	n.wg.Wait()
}
