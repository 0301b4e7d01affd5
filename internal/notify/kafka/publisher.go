// Package kafka implements the notification dispatcher over a kafka topic.
// The publisher is the engine-facing side; the consumer feeds the disposition
// worker that renders and sends the actual notifications.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"flock/internal/notify"
)

// Publisher produces disposition payloads to a kafka topic, keyed by
// registration ID so per-registration ordering is preserved.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewPublisher connects to the brokers and ensures the topic exists.
func NewPublisher(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Publisher{client: client, topic: topic, logger: logger}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	resps, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, resp := range resps {
		if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", resp.Topic, resp.Err)
		}
	}
	return nil
}

// Send produces the payload synchronously. The transition controller depends
// on this returning only after the broker acknowledged or refused the record.
func (p *Publisher) Send(ctx context.Context, payload notify.Payload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %v", notify.ErrDispatchFailed, err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(payload.RegistrationID.String()),
		Value: value,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("%w: produce: %v", notify.ErrDispatchFailed, err)
	}

	p.logger.DebugContext(ctx, "disposition published",
		"registration_id", payload.RegistrationID,
		"domain", payload.Domain,
		"disposition", payload.Disposition,
	)
	return nil
}

// Close flushes and releases the kafka client.
func (p *Publisher) Close() {
	p.client.Close()
}
