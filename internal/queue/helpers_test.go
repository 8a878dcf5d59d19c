package queue

import (
	"testing"
	"time"
)

// Test-only constructors and helpers.

func NewMemoryQueue() *MemoryQueue {
	return newMemoryQueue()
}

func NewKafkaQueue(cfg KafkaConfig) (*KafkaQueue, error) {
	return newKafkaQueue(cfg)
}

// waitFor polls cond until it holds or the timeout elapses
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}
