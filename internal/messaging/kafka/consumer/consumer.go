package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/leanh1541989-hash/taphoa39/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeRecordChanges tails the record-changed topic and writes each
// event to the audit log. A message that does not decode is logged and
// skipped; the stream never stops on bad input.
func ConsumeRecordChanges(ctx context.Context, reader *kafkago.Reader, logger *zap.Logger) {
	audit := logger.Named("audit")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			logger.Error("read message failed", zap.Error(err))
			continue
		}

		var event events.RecordChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Warn("undecodable message skipped",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		audit.Info("record changed",
			zap.String("event_type", event.EventType),
			zap.String("kind", event.Kind),
			zap.String("record_id", event.RecordID),
			zap.String("request_id", event.RequestID),
			zap.Time("occurred_at", event.OccurredAt),
		)
	}
}
