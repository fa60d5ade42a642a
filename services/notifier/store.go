package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending           = "pending"
	StatusResolved          = "resolved"
	StatusPermanentlyFailed = "permanently_failed"
)

// FailedNotification is a delivery waiting for retry
type FailedNotification struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EventID      string     `gorm:"not null;index" json:"event_id"`
	EventType    string     `gorm:"not null" json:"event_type"`
	EmployeeID   uint       `gorm:"not null" json:"employee_id"`
	TenantID     string     `json:"tenant_id,omitempty"`
	Payload      string     `gorm:"type:text;not null" json:"payload"`
	ErrorMessage string     `gorm:"not null" json:"error_message"`
	RetryCount   int        `gorm:"default:0" json:"retry_count"`
	Status       string     `gorm:"type:varchar(32);default:'pending';index" json:"status"`
	NextRetryAt  *time.Time `gorm:"index" json:"next_retry_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

func (FailedNotification) TableName() string {
	return "failed_notifications"
}

func (f *FailedNotification) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f *FailedNotification) Event() LifecycleEvent {
	return LifecycleEvent{
		ID:         f.EventID,
		EventType:  f.EventType,
		EmployeeID: f.EmployeeID,
		TenantID:   f.TenantID,
	}
}

// MaxBackoff caps the wait between retries
const MaxBackoff = 24 * time.Hour

// Backoff is the wait before retry number attempt: 1m, 2m, 4m ... up to MaxBackoff
func Backoff(attempt int) time.Duration {
	delay := time.Minute
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= MaxBackoff {
			return MaxBackoff
		}
	}
	return delay
}

// RetryStats counts failed notifications by status
type RetryStats struct {
	Pending           int64 `json:"pending"`
	Resolved          int64 `json:"resolved"`
	PermanentlyFailed int64 `json:"permanently_failed"`
}

// Store persists failed deliveries
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&FailedNotification{}); err != nil {
		return fmt.Errorf("failed to migrate failed notifications: %w", err)
	}
	return nil
}

// Record stores a delivery that failed on first attempt
func (s *Store) Record(ctx context.Context, event LifecycleEvent, payload json.RawMessage, cause error) (*FailedNotification, error) {
	next := s.now().UTC().Add(Backoff(1))
	failed := &FailedNotification{
		EventID:      event.ID,
		EventType:    event.EventType,
		EmployeeID:   event.EmployeeID,
		TenantID:     event.TenantID,
		Payload:      string(payload),
		ErrorMessage: cause.Error(),
		Status:       StatusPending,
		NextRetryAt:  &next,
	}
	if err := s.db.WithContext(ctx).Create(failed).Error; err != nil {
		return nil, fmt.Errorf("failed to store failed notification: %w", err)
	}
	return failed, nil
}

// Due returns up to limit pending notifications whose retry time has passed, oldest first
func (s *Store) Due(ctx context.Context, limit int) ([]FailedNotification, error) {
	var due []FailedNotification
	err := s.db.WithContext(ctx).
		Where("status = ? AND next_retry_at <= ?", StatusPending, s.now().UTC()).
		Order("created_at ASC").
		Limit(limit).
		Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due notifications: %w", err)
	}
	return due, nil
}

// Resolve marks a notification delivered
func (s *Store) Resolve(ctx context.Context, f *FailedNotification) error {
	now := s.now().UTC()
	f.Status = StatusResolved
	f.ResolvedAt = &now
	f.NextRetryAt = nil
	return s.db.WithContext(ctx).Save(f).Error
}

// Retry schedules the next attempt, or gives up after maxRetries
func (s *Store) Retry(ctx context.Context, f *FailedNotification, cause error, maxRetries int) error {
	now := s.now().UTC()
	f.RetryCount++

	if f.RetryCount >= maxRetries {
		f.Status = StatusPermanentlyFailed
		f.ResolvedAt = &now
		f.NextRetryAt = nil
		f.ErrorMessage = fmt.Sprintf("Max retries reached: %s", cause.Error())
	} else {
		next := now.Add(Backoff(f.RetryCount + 1))
		f.NextRetryAt = &next
		f.ErrorMessage = cause.Error()
	}
	return s.db.WithContext(ctx).Save(f).Error
}

func (s *Store) Stats(ctx context.Context) (RetryStats, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := s.db.WithContext(ctx).Model(&FailedNotification{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return RetryStats{}, fmt.Errorf("failed to count notifications: %w", err)
	}

	var stats RetryStats
	for _, row := range rows {
		switch row.Status {
		case StatusPending:
			stats.Pending = row.Total
		case StatusResolved:
			stats.Resolved = row.Total
		case StatusPermanentlyFailed:
			stats.PermanentlyFailed = row.Total
		}
	}
	return stats, nil
}
