package services

import (
	"fmt"

	"github.com/soltixdb/salescast/internal/compression"
	"github.com/soltixdb/salescast/internal/logging"
	"github.com/soltixdb/salescast/internal/queue"
)

// EventHandler receives decoded forecast events
type EventHandler func(event *ForecastEvent) error

// EventConsumer reads forecast events published by ForecastService
type EventConsumer struct {
	logger     *logging.Logger
	subscriber queue.Subscriber
	compressor compression.Compressor
	subject    string
}

// NewEventConsumer creates a consumer for subject. c must match the publisher's compressor.
func NewEventConsumer(logger *logging.Logger, subscriber queue.Subscriber, subject string, c compression.Compressor) *EventConsumer {
	if c == nil {
		c = &compression.NoneCompressor{}
	}
	return &EventConsumer{
		logger:     logger,
		subscriber: subscriber,
		compressor: c,
		subject:    subject,
	}
}

// Start subscribes and hands each decoded event to handler. Payloads that fail to
// decode are logged and acknowledged; handler errors are returned to the queue so the
// backend can redeliver.
func (c *EventConsumer) Start(handler EventHandler) error {
	if handler == nil {
		return fmt.Errorf("event handler is required")
	}

	err := c.subscriber.Subscribe(c.subject, func(data []byte) error {
		event, err := DecodeEvent(c.compressor, data)
		if err != nil {
			c.logger.Warn("Dropping undecodable forecast event",
				"subject", c.subject,
				"bytes", len(data),
				"error", err)
			return nil
		}
		return handler(event)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", c.subject, err)
	}

	c.logger.Info("Consuming forecast events", "subject", c.subject)
	return nil
}

// Stop unsubscribes from the subject
func (c *EventConsumer) Stop() error {
	return c.subscriber.Unsubscribe(c.subject)
}
