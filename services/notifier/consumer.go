package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

var deliveries = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "hr_notifier_deliveries_total",
		Help: "Webhook deliveries by event type and outcome",
	},
	[]string{"event_type", "outcome"},
)

// Sender delivers one event. WebhookClient satisfies it.
type Sender interface {
	Send(ctx context.Context, event LifecycleEvent, payload json.RawMessage) error
}

// MessageReader is the part of kafka.Reader the consumer uses
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer forwards employee lifecycle events to the webhook
type Consumer struct {
	reader MessageReader
	sender Sender
	store  *Store
	logger *logrus.Logger
}

func NewKafkaReader(cfg config.KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.Broker},
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})
}

func NewConsumer(reader MessageReader, sender Sender, store *Store, logger *logrus.Logger) *Consumer {
	return &Consumer{reader: reader, sender: sender, store: store, logger: logger}
}

// Run reads until ctx is cancelled
func (c *Consumer) Run(ctx context.Context) {
	c.logger.Info("Starting employee event consumer")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.WithError(err).Error("Error reading employee event")
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		if err := c.Handle(ctx, msg); err != nil {
			c.logger.WithError(err).WithField("offset", msg.Offset).Error("Failed to handle employee event")
		}
	}
}

// Handle delivers one message. A failed delivery is stored for retry and is not an error.
func (c *Consumer) Handle(ctx context.Context, msg kafka.Message) error {
	var event LifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		deliveries.WithLabelValues("unknown", "malformed").Inc()
		return fmt.Errorf("failed to unmarshal employee event: %w", err)
	}
	if event.EventType == "" {
		event.EventType = headerValue(msg, "event_type")
	}

	log := c.logger.WithFields(logrus.Fields{
		"event_id":    event.ID,
		"event_type":  event.EventType,
		"employee_id": event.EmployeeID,
	})

	sendErr := c.sender.Send(ctx, event, msg.Value)
	if sendErr == nil {
		deliveries.WithLabelValues(event.EventType, "delivered").Inc()
		log.Debug("Employee event delivered")
		return nil
	}

	deliveries.WithLabelValues(event.EventType, "deferred").Inc()
	log.WithError(sendErr).Warn("Delivery failed, storing for retry")
	if _, err := c.store.Record(ctx, event, msg.Value, sendErr); err != nil {
		return errors.Join(sendErr, err)
	}
	return nil
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("failed to close kafka reader: %w", err)
	}
	return nil
}
