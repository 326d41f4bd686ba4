package messaging

import (
	"context"
	"testing"
	"time"
)

func TestNatsServer_NotStarted(t *testing.T) {
	ns, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	if err := ns.Publish("console.events.test", nil); err == nil {
		t.Error("expected publish to fail before start")
	}
	if _, err := ns.Subscribe("console.events.test", func([]byte) {}); err == nil {
		t.Error("expected subscribe to fail before start")
	}
}

func TestNatsServer_EventTapRoundTrip(t *testing.T) {
	// Port -1 asks the server for a random free port.
	ns, err := NewNatsServer(WithHost("127.0.0.1"), WithPort(-1), WithStartTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() { errChan <- ns.Start(ctx) }()

	// Start connects the internal client once the server is ready; poll
	// until publishes are accepted.
	deadline := time.Now().Add(5 * time.Second)
	for ns.Publish("console.events.warmup", nil) != nil {
		if time.Now().After(deadline) {
			t.Fatal("server never became ready")
		}
		time.Sleep(10 * time.Millisecond)
	}

	recv := make(chan []byte, 1)
	unsub, err := ns.Subscribe("console.events.test", func(data []byte) {
		recv <- data
	})
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer unsub()

	if err := ns.Publish("console.events.test", []byte(`{"type":"test"}`)); err != nil {
		t.Fatalf("publishing: %v", err)
	}

	select {
	case data := <-recv:
		if string(data) != `{"type":"test"}` {
			t.Errorf("unexpected payload %q", data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("tapped event never arrived")
	}

	cancel()
	select {
	case err := <-errChan:
		if err != nil {
			t.Fatalf("server failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
