// Package notifier delivers leaderboard notifications to the outside world.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
)

// DefaultTopic is where ranking notifications land unless configured otherwise.
const DefaultTopic = "cadence.rankings"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes one message per notification, keyed by user id so
// a consumer sees each user's notifications in order.
type KafkaNotifier struct {
	writer messageWriter
}

var _ domain.Notifier = (*KafkaNotifier)(nil)

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		},
	}
}

func (n *KafkaNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(notification.UserID),
		Value: payload,
		Time:  time.Now().UTC(),
	}

	return n.writer.WriteMessages(ctx, msg)
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
