package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"flock/internal/notify"
)

// Consumer reads disposition payloads from the topic and hands them to a
// payload handler (the disposition worker). Malformed records are logged and
// skipped; notification delivery is out-of-band and must never wedge on one
// bad message.
type Consumer struct {
	client *kgo.Client
	logger *slog.Logger
	handle func(context.Context, notify.Payload) error
}

// NewConsumer joins the given consumer group on the disposition topic.
func NewConsumer(brokers []string, topic, group string, logger *slog.Logger, handle func(context.Context, notify.Payload) error) (*Consumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumerGroup(group),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}
	return &Consumer{client: client, logger: logger, handle: handle}, nil
}

// Run polls until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.client.Close()

	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			c.logger.ErrorContext(ctx, "disposition fetch error",
				"topic", topic,
				"partition", partition,
				"error", err,
			)
		})
		fetches.EachRecord(func(record *kgo.Record) {
			var payload notify.Payload
			if err := json.Unmarshal(record.Value, &payload); err != nil {
				c.logger.WarnContext(ctx, "skipping malformed disposition record",
					"offset", record.Offset,
					"error", err,
				)
				return
			}
			if err := c.handle(ctx, payload); err != nil {
				c.logger.ErrorContext(ctx, "disposition handling failed",
					"registration_id", payload.RegistrationID,
					"error", err,
				)
			}
		})
	}
}
