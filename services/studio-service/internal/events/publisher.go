package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/yaelle-pmu/studio/libs/kafkax"
)

// Topics. The topic name doubles as the event type.
const (
	TopicAppointmentBooked        = "studio.appointment.booked.v1"
	TopicAppointmentStatusChanged = "studio.appointment.status_changed.v1"
	TopicAppointmentDeleted       = "studio.appointment.deleted.v1"
	TopicClientDeleted            = "studio.client.deleted.v1"
	TopicCampaignSent             = "studio.campaign.sent.v1"
)

type Event struct {
	Type string
	// Key partitions the topic, normally the aggregate id.
	Key     string
	Payload any
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// Noop drops every event. It is used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

const defaultTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer  messageWriter
	logger  *slog.Logger
	timeout time.Duration
}

type KafkaConfig struct {
	Brokers string
	Timeout time.Duration
}

// NewPublisher returns a Kafka publisher, or Noop when cfg has no brokers.
func NewPublisher(cfg KafkaConfig, logger *slog.Logger) Publisher {
	brokers := kafkax.SplitBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		logger.Warn("event publishing disabled (no kafka brokers configured)")
		return Noop{}
	}
	return newKafkaPublisher(newKafkaWriter(brokers, cfg.Timeout, logger), logger, cfg.Timeout)
}

// newKafkaWriter builds an async writer: WriteMessages only enqueues, delivery
// happens in the background and failures are reported through Completion.
func newKafkaWriter(brokers []string, timeout time.Duration, logger *slog.Logger) *kafka.Writer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		BatchTimeout:           100 * time.Millisecond,
		WriteTimeout:           timeout,
		Completion:             completionLogger(logger),
	}
}

func completionLogger(logger *slog.Logger) func([]kafka.Message, error) {
	return func(msgs []kafka.Message, err error) {
		if err == nil {
			return
		}
		for _, m := range msgs {
			logger.Error("event delivery failed",
				"topic", m.Topic,
				"key", string(m.Key),
				"event_id", kafkax.HeaderValue(m.Headers, "event_id"),
				"err", err,
			)
		}
	}
}

func newKafkaPublisher(w messageWriter, logger *slog.Logger, timeout time.Duration) *KafkaPublisher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &KafkaPublisher{writer: w, logger: logger, timeout: timeout}
}

// Publish hands evt to the writer. The writer built by NewPublisher is async, so a
// nil error means the message was queued, not delivered.
func (p *KafkaPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", evt.Type, err)
	}
	msg := kafka.Message{
		Topic:   evt.Type,
		Key:     []byte(evt.Key),
		Value:   payload,
		Headers: kafkax.EventHeaders(evt.Type),
	}
	msg.Headers = kafkax.InjectTraceHeaders(ctx, msg.Headers)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", evt.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
