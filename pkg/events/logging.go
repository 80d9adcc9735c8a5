package events

import (
	"context"
	"time"

	"cinehall/pkg/logger"
)

// LoggingMiddleware logs every publish with its outcome and latency.
func LoggingMiddleware(log *logger.Logger) Middleware {
	return func(ctx context.Context, msg Message, next func(ctx context.Context, msg Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		duration := time.Since(start)

		eventType, _ := msg.GetHeader(HeaderEventType)
		if err != nil {
			log.Error("Event publish failed",
				"key", msg.Key,
				"event_type", eventType,
				"duration_ms", duration.Milliseconds(),
				"error", err,
			)
			return err
		}

		log.Debug("Event published",
			"key", msg.Key,
			"event_type", eventType,
			"duration_ms", duration.Milliseconds(),
		)
		return nil
	}
}
