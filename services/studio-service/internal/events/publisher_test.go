package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/yaelle-pmu/studio/libs/kafkax"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)

	err := p.Publish(context.Background(), Event{
		Type:    TopicClientDeleted,
		Key:     "client_1",
		Payload: map[string]any{"client_id": "client_1", "treatments_removed": 2},
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if msg.Topic != TopicClientDeleted || string(msg.Key) != "client_1" {
		t.Fatalf("unexpected topic/key %s/%s", msg.Topic, msg.Key)
	}
	if kafkax.HeaderValue(msg.Headers, "event_type") != TopicClientDeleted {
		t.Fatal("missing event_type header")
	}
	var payload map[string]any
	if err := json.Unmarshal(msg.Value, &payload); err != nil || payload["client_id"] != "client_1" {
		t.Fatalf("unexpected payload %s (%v)", msg.Value, err)
	}
}

func TestKafkaPublisher_WrapsWriteErrors(t *testing.T) {
	boom := errors.New("broker down")
	p := newKafkaPublisher(&fakeWriter{err: boom}, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	if err := p.Publish(context.Background(), Event{Type: TopicAppointmentBooked}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}

func TestNewPublisher_NoBrokers(t *testing.T) {
	p := NewPublisher(KafkaConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if _, ok := p.(Noop); !ok {
		t.Fatalf("expected Noop publisher, got %T", p)
	}
}

func TestNewKafkaWriter_DeliversInBackground(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	w := newKafkaWriter([]string{"localhost:9092"}, 0, logger)
	defer w.Close()

	if !w.Async || w.Completion == nil {
		t.Fatal("expected an async writer with a completion callback")
	}
	if w.WriteTimeout != defaultTimeout {
		t.Fatalf("expected default write timeout, got %s", w.WriteTimeout)
	}

	w.Completion([]kafka.Message{{Topic: TopicAppointmentBooked, Key: []byte("apt_1")}}, nil)
	if buf.Len() != 0 {
		t.Fatalf("successful delivery should not log, got %s", buf.String())
	}
	msg := kafka.Message{Topic: TopicAppointmentBooked, Key: []byte("apt_1"), Headers: kafkax.EventHeaders(TopicAppointmentBooked)}
	w.Completion([]kafka.Message{msg}, errors.New("broker down"))
	out := buf.String()
	if !strings.Contains(out, "event delivery failed") || !strings.Contains(out, TopicAppointmentBooked) || !strings.Contains(out, "apt_1") {
		t.Fatalf("unexpected log output %s", out)
	}
}

func TestNewKafkaWriter_UsesConfiguredTimeout(t *testing.T) {
	w := newKafkaWriter([]string{"localhost:9092"}, 2*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer w.Close()
	if w.WriteTimeout != 2*time.Second {
		t.Fatalf("expected 2s write timeout, got %s", w.WriteTimeout)
	}
}
