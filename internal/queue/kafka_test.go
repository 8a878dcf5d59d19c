package queue

import (
	"context"
	"net"
	"testing"
	"time"
)

// kafkaAvailable reports whether a broker listens on localhost:9092
func kafkaAvailable() bool {
	conn, err := net.DialTimeout("tcp", "localhost:9092", time.Second)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func TestNewKafkaQueue(t *testing.T) {
	q, err := NewKafkaQueue(KafkaConfig{Brokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("Failed to create Kafka queue: %v", err)
	}
	defer func() { _ = q.Close() }()

	if q.config.GroupID != "salescast-group" {
		t.Errorf("Expected default group id, got %s", q.config.GroupID)
	}
	if q.config.BatchTimeout != 10*time.Millisecond || q.config.MaxAttempts != 3 {
		t.Errorf("Unexpected defaults: %+v", q.config)
	}
}

func TestNewKafkaQueue_NoBrokers(t *testing.T) {
	if _, err := NewKafkaQueue(KafkaConfig{}); err == nil {
		t.Fatal("Expected error without brokers")
	}
}

func TestKafkaQueue_WriterReused(t *testing.T) {
	q, _ := NewKafkaQueue(KafkaConfig{Brokers: []string{"localhost:9092"}})
	defer func() { _ = q.Close() }()

	w1 := q.writer("forecasts")
	w2 := q.writer("forecasts")
	if w1 != w2 {
		t.Error("Expected the same writer for one topic")
	}
	if q.writer("other") == w1 {
		t.Error("Expected a separate writer per topic")
	}
}

func TestKafkaQueue_UnsubscribeNotSubscribed(t *testing.T) {
	q, _ := NewKafkaQueue(KafkaConfig{Brokers: []string{"localhost:9092"}})
	defer func() { _ = q.Close() }()

	if err := q.Unsubscribe("missing"); err == nil {
		t.Error("Expected error when not subscribed")
	}
}

func TestKafkaQueue_Publish(t *testing.T) {
	if !kafkaAvailable() {
		t.Skip("Kafka not available, skipping test")
	}

	q, _ := NewKafkaQueue(KafkaConfig{Brokers: []string{"localhost:9092"}})
	defer func() { _ = q.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := q.Publish(ctx, "salescast-test", []byte("event")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
}
