package utils

import "time"

// =============================================================================
// Timeout Constants
// =============================================================================

const (
	// PublishTimeout bounds a single forecast event publish
	PublishTimeout = 5 * time.Second

	// QueueConnectTimeout bounds the connectivity check made when a queue is opened
	QueueConnectTimeout = 5 * time.Second

	// ShutdownTimeout bounds graceful HTTP shutdown
	ShutdownTimeout = 10 * time.Second
)

// =============================================================================
// Retry and Backoff Constants
// =============================================================================

const (
	// DefaultMaxRetries is the default number of retry attempts
	DefaultMaxRetries = 3

	// DefaultRetryBackoff is the default backoff duration between retries
	DefaultRetryBackoff = 100 * time.Millisecond
)

// =============================================================================
// Buffer Constants
// =============================================================================

const (
	// DefaultBufferSize is the per-subject buffer of the in-memory queue
	DefaultBufferSize = 1024
)

// =============================================================================
// Queue Type Constants
// =============================================================================

// QueueType represents the type of message queue
type QueueType string

const (
	// QueueTypeNATS represents NATS JetStream queue (default)
	QueueTypeNATS QueueType = "nats"

	// QueueTypeRedis represents Redis Streams queue
	QueueTypeRedis QueueType = "redis"

	// QueueTypeKafka represents Apache Kafka queue
	QueueTypeKafka QueueType = "kafka"

	// QueueTypeMemory represents in-memory queue (for testing)
	QueueTypeMemory QueueType = "memory"
)
