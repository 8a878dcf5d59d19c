package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/soltixdb/salescast/internal/utils"
)

// MemoryQueue implements Queue interface using in-memory channels
// This is useful for testing and development without external dependencies
type MemoryQueue struct {
	channels      map[string]chan []byte
	subscriptions map[string]context.CancelFunc
	closed        bool
	mu            sync.RWMutex
}

// newMemoryQueue creates a new in-memory queue instance
func newMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		channels:      make(map[string]chan []byte),
		subscriptions: make(map[string]context.CancelFunc),
	}
}

// channel returns the subject channel, creating it on first use. Caller holds mu.
func (q *MemoryQueue) channel(subject string) chan []byte {
	if ch, exists := q.channels[subject]; exists {
		return ch
	}
	ch := make(chan []byte, utils.DefaultBufferSize)
	q.channels[subject] = ch
	return ch
}

// Publish buffers a copy of data for the subject
func (q *MemoryQueue) Publish(ctx context.Context, subject string, data []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return fmt.Errorf("queue is closed")
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	select {
	case q.channel(subject) <- dataCopy:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("channel full for subject: %s", subject)
	}
}

// Subscribe consumes the subject channel in the background
func (q *MemoryQueue) Subscribe(subject string, handler MessageHandler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return fmt.Errorf("queue is closed")
	}
	if _, exists := q.subscriptions[subject]; exists {
		return fmt.Errorf("already subscribed to subject: %s", subject)
	}

	ch := q.channel(subject)
	ctx, cancel := context.WithCancel(context.Background())
	q.subscriptions[subject] = cancel

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case data, ok := <-ch:
				if !ok {
					return
				}
				// Handler errors drop the message; there is no redelivery in memory
				_ = handler(data)
			}
		}
	}()

	return nil
}

// Unsubscribe unsubscribes from a channel
func (q *MemoryQueue) Unsubscribe(subject string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	cancel, exists := q.subscriptions[subject]
	if !exists {
		return fmt.Errorf("not subscribed to subject: %s", subject)
	}

	cancel()
	delete(q.subscriptions, subject)
	return nil
}

// Close cancels all subscriptions and closes all channels
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true

	for subject, cancel := range q.subscriptions {
		cancel()
		delete(q.subscriptions, subject)
	}
	for subject, ch := range q.channels {
		close(ch)
		delete(q.channels, subject)
	}
	return nil
}

// PendingCount returns the number of buffered messages for a subject
func (q *MemoryQueue) PendingCount(subject string) int {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if ch, exists := q.channels[subject]; exists {
		return len(ch)
	}
	return 0
}
