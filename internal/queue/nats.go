package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/soltixdb/salescast/internal/utils"
)

// NATSConfig represents NATS connection settings
type NATSConfig struct {
	URL      string
	Username string
	Password string
}

// NATSQueue implements Queue interface using NATS JetStream
type NATSQueue struct {
	conn          *nats.Conn
	js            nats.JetStreamContext
	streams       map[string]bool
	subscriptions map[string]*nats.Subscription
	mu            sync.Mutex
}

// newNATSQueue connects to NATS and enables JetStream
func newNATSQueue(cfg NATSConfig) (*NATSQueue, error) {
	opts := []nats.Option{nats.Name("salescast"), nats.Timeout(utils.QueueConnectTimeout)}
	if cfg.Username != "" {
		opts = append(opts, nats.UserInfo(cfg.Username, cfg.Password))
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	q, err := newNATSQueueWithConn(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return q, nil
}

// newNATSQueueWithConn wraps an existing connection
func newNATSQueueWithConn(conn *nats.Conn) (*NATSQueue, error) {
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &NATSQueue{
		conn:          conn,
		js:            js,
		streams:       make(map[string]bool),
		subscriptions: make(map[string]*nats.Subscription),
	}, nil
}

// streamName derives the JetStream stream that captures a subject
func streamName(subject string) string {
	return "salescast-" + sanitizeName(subject)
}

// ensureStream creates the stream for subject if it does not exist. Caller holds mu.
func (q *NATSQueue) ensureStream(subject string) error {
	if q.streams[subject] {
		return nil
	}

	name := streamName(subject)
	if _, err := q.js.StreamInfo(name); err != nil {
		_, err = q.js.AddStream(&nats.StreamConfig{
			Name:     name,
			Subjects: []string{subject},
			Storage:  nats.FileStorage,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream for subject %s: %w", subject, err)
		}
	}

	q.streams[subject] = true
	return nil
}

// Publish publishes a message and waits for the JetStream ack
func (q *NATSQueue) Publish(ctx context.Context, subject string, data []byte) error {
	q.mu.Lock()
	err := q.ensureStream(subject)
	q.mu.Unlock()
	if err != nil {
		return err
	}

	if _, err := q.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", subject, err)
	}
	return nil
}

// Subscribe attaches a durable consumer with manual acks. Failed messages are redelivered
// up to three times.
func (q *NATSQueue) Subscribe(subject string, handler MessageHandler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.subscriptions[subject]; exists {
		return fmt.Errorf("already subscribed to subject: %s", subject)
	}
	if err := q.ensureStream(subject); err != nil {
		return err
	}

	sub, err := q.js.Subscribe(subject, func(msg *nats.Msg) {
		if err := handler(msg.Data); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("consumer-"+sanitizeName(subject)),
		nats.ManualAck(),
		nats.MaxAckPending(100),
		nats.AckWait(30*time.Second),
		nats.MaxDeliver(3),
		nats.DeliverAll(),
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}

	q.subscriptions[subject] = sub
	return nil
}

// Unsubscribe unsubscribes from a subject
func (q *NATSQueue) Unsubscribe(subject string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	sub, exists := q.subscriptions[subject]
	if !exists {
		return fmt.Errorf("not subscribed to subject: %s", subject)
	}

	if err := sub.Unsubscribe(); err != nil {
		return fmt.Errorf("failed to unsubscribe from subject %s: %w", subject, err)
	}

	delete(q.subscriptions, subject)
	return nil
}

// Close drains subscriptions and closes the connection
func (q *NATSQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for subject, sub := range q.subscriptions {
		_ = sub.Unsubscribe()
		delete(q.subscriptions, subject)
	}

	q.conn.Close()
	return nil
}

// sanitizeName replaces characters not allowed in stream and consumer names
// (A-Z, a-z, 0-9, dash and underscore) with underscores
func sanitizeName(subject string) string {
	result := make([]byte, 0, len(subject))
	for i := 0; i < len(subject); i++ {
		c := subject[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '_' {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}
	return string(result)
}
