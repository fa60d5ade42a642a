package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/sirupsen/logrus"
)

// Retrier redelivers stored notifications once their backoff has elapsed
type Retrier struct {
	store         *Store
	sender        Sender
	logger        *logrus.Logger
	maxRetries    int
	batchSize     int
	checkInterval time.Duration
}

func NewRetrier(store *Store, sender Sender, logger *logrus.Logger, cfg config.NotifierConfig) *Retrier {
	return &Retrier{
		store:         store,
		sender:        sender,
		logger:        logger,
		maxRetries:    cfg.MaxRetries,
		batchSize:     cfg.BatchSize,
		checkInterval: cfg.CheckInterval,
	}
}

// Run processes due notifications every check interval until ctx is cancelled
func (r *Retrier) Run(ctx context.Context) {
	r.logger.WithField("interval", r.checkInterval).Info("Starting notification retrier")

	ticker := time.NewTicker(r.checkInterval)
	defer ticker.Stop()

	for {
		if _, err := r.ProcessDue(ctx); err != nil {
			r.logger.WithError(err).Error("Error fetching failed notifications")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// ProcessDue retries one batch and returns how many were delivered
func (r *Retrier) ProcessDue(ctx context.Context) (int, error) {
	due, err := r.store.Due(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	r.logger.WithField("count", len(due)).Info("Retrying failed notifications")

	delivered := 0
	for i := range due {
		f := &due[i]
		log := r.logger.WithFields(logrus.Fields{"notification_id": f.ID, "retry_count": f.RetryCount})

		sendErr := r.sender.Send(ctx, f.Event(), json.RawMessage(f.Payload))
		if sendErr == nil {
			if err := r.store.Resolve(ctx, f); err != nil {
				log.WithError(err).Error("Failed to mark notification resolved")
				continue
			}
			deliveries.WithLabelValues(f.EventType, "retried").Inc()
			delivered++
			continue
		}

		if err := r.store.Retry(ctx, f, sendErr, r.maxRetries); err != nil {
			log.WithError(err).Error("Failed to schedule notification retry")
			continue
		}
		if f.Status == StatusPermanentlyFailed {
			deliveries.WithLabelValues(f.EventType, "abandoned").Inc()
			log.WithError(sendErr).Warn("Notification permanently failed")
		}
	}
	return delivered, nil
}

// RetryConfig is reported by /notifier/stats
type RetryConfig struct {
	MaxRetries    int    `json:"max_retries"`
	BatchSize     int    `json:"batch_size"`
	CheckInterval string `json:"check_interval"`
}

func (r *Retrier) Config() RetryConfig {
	return RetryConfig{
		MaxRetries:    r.maxRetries,
		BatchSize:     r.batchSize,
		CheckInterval: r.checkInterval.String(),
	}
}
