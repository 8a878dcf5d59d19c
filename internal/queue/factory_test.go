package queue

import (
	"context"
	"testing"

	"github.com/soltixdb/salescast/internal/config"
	"github.com/soltixdb/salescast/internal/utils"
)

func TestNewQueue_MemoryQueue(t *testing.T) {
	q, err := NewQueue(config.QueueConfig{Type: "memory"})
	if err != nil {
		t.Fatalf("Failed to create memory queue: %v", err)
	}
	defer func() { _ = q.Close() }()

	if _, ok := q.(*MemoryQueue); !ok {
		t.Errorf("Expected *MemoryQueue, got %T", q)
	}
}

func TestNewQueue_CaseInsensitiveType(t *testing.T) {
	q, err := NewQueue(config.QueueConfig{Type: "MEMORY"})
	if err != nil {
		t.Fatalf("Failed to create memory queue: %v", err)
	}
	_ = q.Close()
}

func TestNewQueue_UnsupportedType(t *testing.T) {
	if _, err := NewQueue(config.QueueConfig{Type: "unknown"}); err == nil {
		t.Fatal("Expected error for unsupported queue type")
	}
}

func TestNewQueue_KafkaWithoutBrokers(t *testing.T) {
	if _, err := NewQueue(config.QueueConfig{Type: "kafka"}); err == nil {
		t.Fatal("Expected error for kafka without brokers")
	}
}

func TestNewPublisher_Disabled(t *testing.T) {
	p, err := NewPublisher(config.QueueConfig{Enabled: false, Type: "nats", URL: "nats://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	if _, ok := p.(NopPublisher); !ok {
		t.Errorf("Expected NopPublisher, got %T", p)
	}
	if err := p.Publish(context.Background(), "s", []byte("x")); err != nil {
		t.Errorf("NopPublisher.Publish returned %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("NopPublisher.Close returned %v", err)
	}
}

func TestNewPublisher_Enabled(t *testing.T) {
	p, err := NewPublisher(config.QueueConfig{Enabled: true, Type: string(utils.QueueTypeMemory)})
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	defer func() { _ = p.Close() }()

	if _, ok := p.(*MemoryQueue); !ok {
		t.Errorf("Expected *MemoryQueue, got %T", p)
	}
}
