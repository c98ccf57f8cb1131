package consumer

import (
	"context"

	"github.com/Picancianmartin/UniformesCoachSite/internal/cart"
	"github.com/Picancianmartin/UniformesCoachSite/internal/outbox"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeMessages reads order events and dispatches the ones this
// consumer handles. Unknown event types are committed and skipped.
func ConsumeMessages(ctx context.Context, reader *kafka.Reader, cartService cart.Service, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("kafka.consumer")

	logger.Info("started consuming messages")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("fetch failed", zap.Error(err))
			continue
		}

		eventType := headerValue(msg.Headers, "event_type")

		if eventType != outbox.EventDeleteCart {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := handleDeleteCart(ctx, msg.Value, cartService, logger); err != nil {
			// Not committed: the message is retried on the next fetch.
			logger.Error("delete cart failed", zap.Error(err))
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error("commit failed", zap.Error(err))
		}
	}
}

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
