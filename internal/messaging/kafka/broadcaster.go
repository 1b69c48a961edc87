package kafka

import (
	"context"
	"encoding/json"

	"github.com/leanh1541989-hash/taphoa39/internal/events"
	"github.com/leanh1541989-hash/taphoa39/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Broadcaster interface {
	Broadcast(ctx context.Context, event events.RecordChangedEvent) error
}

type writerBroadcaster struct {
	writer *kafkago.Writer
}

func NewBroadcaster(brokers []string) Broadcaster {
	return &writerBroadcaster{
		writer: &kafkago.Writer{
			Addr:     kafkago.TCP(brokers...),
			Topic:    events.RecordChangedTopic,
			Balancer: &kafkago.LeastBytes{},
		},
	}
}

func (b *writerBroadcaster) Broadcast(ctx context.Context, event events.RecordChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafkago.Message{
		Key:   []byte(event.RecordID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "kind", Value: []byte(event.Kind)},
		},
	}
	return b.writer.WriteMessages(ctx, msg)
}

// Emit publishes best-effort: a broadcast failure is logged and
// swallowed, never changing the triggering operation's own outcome.
// A nil broadcaster disables emission entirely.
func Emit(ctx context.Context, b Broadcaster, logger *zap.Logger, event events.RecordChangedEvent) {
	if b == nil {
		return
	}
	if event.RequestID == "" {
		event.RequestID = contextutil.GetRequestID(ctx)
	}
	if err := b.Broadcast(ctx, event); err != nil {
		if logger == nil {
			logger = zap.L()
		}
		logger.Warn("record change broadcast failed",
			zap.String("event_type", event.EventType),
			zap.String("record_id", event.RecordID),
			zap.Error(err),
		)
	}
}
