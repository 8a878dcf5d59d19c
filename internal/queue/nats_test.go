package queue

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// setupTestNATS starts an embedded JetStream-enabled NATS server
func setupTestNATS(t *testing.T) string {
	t.Helper()
	opts := &server.Options{
		Host:      "127.0.0.1",
		Port:      -1, // Random port
		JetStream: true,
		StoreDir:  t.TempDir(),
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		t.Fatalf("Failed to create NATS server: %v", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(5 * time.Second) {
		t.Fatal("NATS server not ready")
	}

	t.Cleanup(func() {
		ns.Shutdown()
		ns.WaitForShutdown()
	})

	return ns.ClientURL()
}

func TestNewNATSQueue(t *testing.T) {
	url := setupTestNATS(t)

	q, err := newNATSQueue(NATSConfig{URL: url})
	if err != nil {
		t.Fatalf("Failed to create NATS queue: %v", err)
	}
	defer func() { _ = q.Close() }()

	if q.conn == nil || q.js == nil {
		t.Error("Expected connection and JetStream context to be initialized")
	}
}

func TestNewNATSQueue_InvalidURL(t *testing.T) {
	q, err := newNATSQueue(NATSConfig{URL: "nats://127.0.0.1:1"})
	if err == nil {
		_ = q.Close()
		t.Fatal("Expected error with unreachable server")
	}
}

func TestNATSQueue_PublishCreatesStream(t *testing.T) {
	url := setupTestNATS(t)

	q, err := newNATSQueue(NATSConfig{URL: url})
	if err != nil {
		t.Fatalf("Failed to create NATS queue: %v", err)
	}
	defer func() { _ = q.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		if err := q.Publish(ctx, "salescast.forecasts", []byte("event")); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
	}

	info, err := q.js.StreamInfo(streamName("salescast.forecasts"))
	if err != nil {
		t.Fatalf("StreamInfo failed: %v", err)
	}
	if info.State.Msgs != 3 {
		t.Errorf("Expected 3 stored messages, got %d", info.State.Msgs)
	}
}

func TestNATSQueue_SubscribeReceivesPublished(t *testing.T) {
	url := setupTestNATS(t)

	conn, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	q, err := newNATSQueueWithConn(conn)
	if err != nil {
		t.Fatalf("Failed to create NATS queue: %v", err)
	}
	defer func() { _ = q.Close() }()

	subject := "salescast.test"
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Published before subscribing; DeliverAll replays it
	if err := q.Publish(ctx, subject, []byte("first")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	received := make(chan string, 2)
	if err := q.Subscribe(subject, func(data []byte) error {
		received <- string(data)
		return nil
	}); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := q.Publish(ctx, subject, []byte("second")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	for _, want := range []string{"first", "second"} {
		select {
		case got := <-received:
			if got != want {
				t.Errorf("Expected %q, got %q", want, got)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("Timed out waiting for %q", want)
		}
	}

	if err := q.Subscribe(subject, func([]byte) error { return nil }); err == nil {
		t.Error("Expected error for duplicate subscription")
	}
	if err := q.Unsubscribe(subject); err != nil {
		t.Errorf("Unsubscribe failed: %v", err)
	}
	if err := q.Unsubscribe(subject); err == nil {
		t.Error("Expected error when not subscribed")
	}
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"salescast.forecasts": "salescast_forecasts",
		"a-b_c":               "a-b_c",
		"x*>y":                "x__y",
	}
	for in, want := range tests {
		if got := sanitizeName(in); got != want {
			t.Errorf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
