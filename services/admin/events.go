package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	EventEmployeeCreated = "employee.created"
	EventEmployeeUpdated = "employee.updated"
	EventEmployeeDeleted = "employee.deleted"
)

var publishedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hr_admin",
	Subsystem: "events",
	Name:      "published_total",
	Help:      "Employee lifecycle events broken down by type and result.",
}, []string{"event_type", "result"})

// EmployeeEvent is published on every employee write
type EmployeeEvent struct {
	ID           uuid.UUID  `json:"id"`
	EventType    string     `json:"event_type"`
	EmployeeID   uint       `json:"employee_id"`
	TenantID     *uuid.UUID `json:"tenant_id,omitempty"`
	DepartmentID uint       `json:"department_id"`
	FullName     string     `json:"full_name"`
	ActorID      uint       `json:"actor_id"`
	Timestamp    time.Time  `json:"timestamp"`
}

func newEmployeeEvent(eventType string, e *models.Employee, actor *models.UserInfo) EmployeeEvent {
	event := EmployeeEvent{
		ID:           uuid.New(),
		EventType:    eventType,
		EmployeeID:   e.ID,
		DepartmentID: e.DepartmentID,
		FullName:     e.FullName(),
		Timestamp:    time.Now().UTC(),
	}
	if e.Department != nil {
		tenantID := e.Department.TenantID
		event.TenantID = &tenantID
	}
	if actor != nil {
		event.ActorID = actor.UserID
	}
	return event
}

// EventPublisher queues lifecycle events. Publish never blocks the request.
type EventPublisher interface {
	Publish(event EmployeeEvent) error
	Close() error
}

// NewEventPublisher returns a Kafka producer, or a publisher that only logs when no broker is configured
func NewEventPublisher(cfg config.KafkaConfig) EventPublisher {
	if cfg.Broker == "" {
		logrus.Warn("KAFKA_BROKER not set, employee events will only be logged")
		return logPublisher{}
	}
	return NewKafkaProducer(cfg)
}

type logPublisher struct{}

func (logPublisher) Publish(event EmployeeEvent) error {
	logrus.WithFields(logrus.Fields{
		"event_type":  event.EventType,
		"employee_id": event.EmployeeID,
	}).Debug("Employee event")
	publishedEvents.WithLabelValues(event.EventType, "skipped").Inc()
	return nil
}

func (logPublisher) Close() error { return nil }

// KafkaProducer handles Kafka message production with worker pool
type KafkaProducer struct {
	writer         *kafka.Writer
	topic          string
	eventChan      chan EmployeeEvent
	workerCount    int
	shutdownChan   chan struct{}
	wg             sync.WaitGroup
	circuitBreaker *utils.CircuitBreaker
}

// NewKafkaProducer creates a new Kafka producer with worker pool
func NewKafkaProducer(cfg config.KafkaConfig) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Broker),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	kp := &KafkaProducer{
		writer:         writer,
		topic:          cfg.Topic,
		eventChan:      make(chan EmployeeEvent, 1000),
		workerCount:    workers,
		shutdownChan:   make(chan struct{}),
		circuitBreaker: utils.NewCircuitBreaker("kafka-producer", cfg.Breaker),
	}

	kp.startWorkers()
	return kp
}

func (kp *KafkaProducer) startWorkers() {
	for i := 0; i < kp.workerCount; i++ {
		kp.wg.Add(1)
		go kp.eventWorker(i)
	}

	logrus.WithField("workers", kp.workerCount).Info("Kafka producer workers started")
}

func (kp *KafkaProducer) eventWorker(id int) {
	defer kp.wg.Done()

	for {
		select {
		case event := <-kp.eventChan:
			kp.deliver(id, event)
		case <-kp.shutdownChan:
			// drain what is already queued
			for {
				select {
				case event := <-kp.eventChan:
					kp.deliver(id, event)
				default:
					return
				}
			}
		}
	}
}

func (kp *KafkaProducer) deliver(worker int, event EmployeeEvent) {
	err := kp.circuitBreaker.Call(func() error {
		return kp.sendEventSync(event)
	})
	if err != nil {
		publishedEvents.WithLabelValues(event.EventType, "failed").Inc()
		logrus.WithError(err).WithFields(logrus.Fields{
			"worker":      worker,
			"event_type":  event.EventType,
			"employee_id": event.EmployeeID,
		}).Error("Failed to publish employee event")
		return
	}
	publishedEvents.WithLabelValues(event.EventType, "published").Inc()
}

// Publish queues an event asynchronously (non-blocking)
func (kp *KafkaProducer) Publish(event EmployeeEvent) error {
	select {
	case kp.eventChan <- event:
		return nil
	default:
		publishedEvents.WithLabelValues(event.EventType, "dropped").Inc()
		return fmt.Errorf("employee event queue full, event dropped")
	}
}

func (kp *KafkaProducer) sendEventSync(event EmployeeEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal employee event: %w", err)
	}

	headers := []kafka.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
	}
	if event.TenantID != nil {
		headers = append(headers, kafka.Header{Key: "tenant_id", Value: []byte(event.TenantID.String())})
	}

	msg := kafka.Message{
		Topic:   kp.topic,
		Key:     []byte(fmt.Sprintf("employee-%d", event.EmployeeID)),
		Value:   message,
		Headers: headers,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := kp.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write employee event to Kafka: %w", err)
	}
	return nil
}

// Close gracefully shuts down the Kafka producer and workers
func (kp *KafkaProducer) Close() error {
	close(kp.shutdownChan)
	kp.wg.Wait()

	if err := kp.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	logrus.Info("Kafka producer shut down")
	return nil
}
