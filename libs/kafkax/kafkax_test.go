package kafkax

import (
	"context"
	"testing"
)

func TestSplitBrokers(t *testing.T) {
	got := SplitBrokers(" kafka:9092, ,kafka2:9092 ")
	if len(got) != 2 || got[0] != "kafka:9092" || got[1] != "kafka2:9092" {
		t.Fatalf("unexpected brokers %#v", got)
	}
	if ReadyCheck("") != nil {
		t.Fatal("expected nil ready check without brokers")
	}
}

func TestEventHeaders(t *testing.T) {
	h := EventHeaders("studio.client.deleted.v1")
	if HeaderValue(h, "event_type") != "studio.client.deleted.v1" {
		t.Fatalf("unexpected event_type header %q", HeaderValue(h, "event_type"))
	}
	if HeaderValue(h, "event_id") == "" {
		t.Fatal("expected event_id header")
	}

	// With the default no-op propagator nothing is injected and headers are preserved.
	out := InjectTraceHeaders(context.Background(), h)
	if len(out) != len(h) {
		t.Fatalf("expected %d headers, got %d", len(h), len(out))
	}
}
