package queue

import (
	"context"
	"fmt"
	"strings"

	"github.com/soltixdb/salescast/internal/config"
	"github.com/soltixdb/salescast/internal/utils"
)

// NewQueue creates a new Queue instance based on configuration
// Default is NATS if type is not specified
func NewQueue(cfg config.QueueConfig) (Queue, error) {
	queueType := utils.QueueType(strings.ToLower(cfg.Type))

	if queueType == "" {
		queueType = utils.QueueTypeNATS
	}

	switch queueType {
	case utils.QueueTypeNATS:
		return newNATSQueue(NATSConfig{
			URL:      cfg.URL,
			Username: cfg.Username,
			Password: cfg.Password,
		})

	case utils.QueueTypeRedis:
		return newRedisQueue(RedisConfig{
			URL:      cfg.URL,
			Password: cfg.Password,
			DB:       cfg.RedisDB,
			Stream:   cfg.RedisStream,
			Group:    cfg.RedisGroup,
		})

	case utils.QueueTypeKafka:
		return newKafkaQueue(KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			GroupID: cfg.KafkaGroupID,
		})

	case utils.QueueTypeMemory:
		return newMemoryQueue(), nil

	default:
		return nil, fmt.Errorf("unsupported queue type: %s (supported: nats, redis, kafka, memory)", queueType)
	}
}

// NewPublisher creates a Publisher, or a no-op publisher when the queue is disabled
func NewPublisher(cfg config.QueueConfig) (Publisher, error) {
	if !cfg.Enabled {
		return NopPublisher{}, nil
	}
	return NewQueue(cfg)
}

// NopPublisher drops every message
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, _ string, _ []byte) error { return nil }

func (NopPublisher) Close() error { return nil }
