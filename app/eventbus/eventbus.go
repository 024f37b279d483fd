package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/attr"
	"github.com/google/uuid"
)

// Metadata keys set on every published message.
const (
	MetadataCorrelationID = "correlation_id"
	MetadataTopic         = "topic"
)

// EventBus is a watermill publisher and subscriber with a JSON convenience publisher.
type EventBus interface {
	message.Publisher
	message.Subscriber
	PublishEvent(ctx context.Context, topic string, payload any) error
}

type eventBus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// NewEventBus creates an in-process bus. Messages are not persisted; a subscriber
// only sees what is published after it subscribed. Publish returns once every
// subscriber has acked, so handler side effects are visible to the publisher.
func NewEventBus(logger *slog.Logger, bufferSize int64) EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            bufferSize,
			BlockPublishUntilSubscriberAck: true,
		},
		watermill.NewSlogLogger(logger),
	)
	return &eventBus{pubsub: pubsub, logger: logger}
}

func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	return eb.pubsub.Publish(topic, messages...)
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return eb.pubsub.Subscribe(ctx, topic)
}

// PublishEvent marshals payload as JSON and publishes it with the correlation id from ctx.
func (eb *eventBus) PublishEvent(ctx context.Context, topic string, payload any) error {
	msg, err := NewMessage(ctx, topic, payload)
	if err != nil {
		return err
	}
	if err := eb.pubsub.Publish(topic, msg); err != nil {
		eb.logger.ErrorContext(ctx, "Failed to publish event",
			attr.String("topic", topic),
			attr.String("message_id", msg.UUID),
			attr.Error(err),
		)
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	eb.logger.DebugContext(ctx, "Published event",
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
		attr.ExtractCorrelationID(ctx),
	)
	return nil
}

func (eb *eventBus) Close() error {
	return eb.pubsub.Close()
}

// NewMessage builds a JSON message for topic.
func NewMessage(ctx context.Context, topic string, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}
	msg := message.NewMessage(uuid.NewString(), data)
	msg.Metadata.Set(MetadataTopic, topic)
	if id := attr.CorrelationID(ctx); id != "" {
		msg.Metadata.Set(MetadataCorrelationID, id)
	}
	msg.SetContext(ctx)
	return msg, nil
}

// Decode unmarshals a message payload into T.
func Decode[T any](msg *message.Message) (T, error) {
	var out T
	if err := json.Unmarshal(msg.Payload, &out); err != nil {
		return out, fmt.Errorf("failed to unmarshal message %s: %w", msg.UUID, err)
	}
	return out, nil
}
