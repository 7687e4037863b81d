// Package kafka publishes last-alert change notifications for downstream
// consumers (push senders, dashboards).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/hilaln2210/AlertsAndUsers/internal/domain"
)

// Notifier produces one message per user whose recorded last alert changed
// during a reconciliation run. It implements reconciler.Notifier.
type Notifier struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewNotifier creates a Kafka producer for the notification topic.
func NewNotifier(brokers []string, topic string, logger *slog.Logger) *Notifier {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Notifier{writer: w, logger: logger}
}

// NotifyLastAlert publishes the user's new last alert, keyed by user name so
// per-user ordering holds within a partition.
func (n *Notifier) NotifyLastAlert(ctx context.Context, res domain.ReconciliationResult) error {
	msg, err := notificationMessage(res)
	if err != nil {
		return err
	}
	return n.writer.WriteMessages(ctx, msg)
}

func (n *Notifier) Close() error {
	return n.writer.Close()
}

// notification is the published payload.
type notification struct {
	Name      string `json:"name"`
	City      string `json:"city"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	LastAlert string `json:"last_alert"`
}

func notificationMessage(res domain.ReconciliationResult) (kafkago.Message, error) {
	if res.LastAlert == nil {
		return kafkago.Message{}, fmt.Errorf("notify %q: result has no last alert", res.Name)
	}

	payload := notification{
		Name:      res.Name,
		City:      res.City,
		Date:      res.LastAlert.Date,
		Time:      res.LastAlert.Time,
		LastAlert: res.LastAlert.Value(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize notification: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(res.Name),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "city", Value: []byte(res.City)},
			{Key: "alert_date", Value: []byte(res.LastAlert.Date)},
		},
	}, nil
}
