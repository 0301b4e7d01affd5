package notify

import (
	"context"
	"fmt"
	"sync"
)

// Channel is an in-process dispatcher backed by a buffered channel. The
// disposition worker drains it, mirroring the kafka topology without a
// broker. Used when KAFKA_BROKERS is not configured, and by tests.
type Channel struct {
	mu     sync.Mutex
	ch     chan Payload
	closed bool
}

// NewChannel creates a channel dispatcher with the given buffer size.
func NewChannel(buffer int) *Channel {
	if buffer <= 0 {
		buffer = 64
	}
	return &Channel{ch: make(chan Payload, buffer)}
}

// Send enqueues the payload. A full buffer is a dispatch failure, not a
// blocking wait: the transition already persisted and must not hang on the
// notification path.
func (c *Channel) Send(ctx context.Context, p Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("%w: dispatcher closed", ErrDispatchFailed)
	}
	select {
	case c.ch <- p:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrDispatchFailed, ctx.Err())
	default:
		return fmt.Errorf("%w: dispatch buffer full", ErrDispatchFailed)
	}
}

// Payloads exposes the consuming side for the worker.
func (c *Channel) Payloads() <-chan Payload {
	return c.ch
}

// Close stops accepting new payloads. Buffered payloads remain readable so
// the worker can drain on shutdown.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.ch)
	}
}
