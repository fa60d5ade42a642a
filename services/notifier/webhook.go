package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
)

// LifecycleEvent is the part of an employee event the notifier reads. The
// original payload is forwarded untouched.
type LifecycleEvent struct {
	ID         string    `json:"id"`
	EventType  string    `json:"event_type"`
	EmployeeID uint      `json:"employee_id"`
	TenantID   string    `json:"tenant_id,omitempty"`
	FullName   string    `json:"full_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// WebhookStatus is the delivery state reported by /notifier/status
type WebhookStatus struct {
	Connected   bool               `json:"connected"`
	Endpoint    string             `json:"endpoint"`
	Breaker     utils.CircuitState `json:"breaker"`
	LastSuccess *time.Time         `json:"last_success,omitempty"`
	LastError   string             `json:"last_error,omitempty"`
}

// WebhookClient posts lifecycle events to the configured endpoint
type WebhookClient struct {
	endpoint   string
	httpClient *http.Client
	breaker    *utils.CircuitBreaker

	mutex       sync.RWMutex
	connected   bool
	lastSuccess time.Time
	lastError   error
}

func NewWebhookClient(cfg config.NotifierConfig) *WebhookClient {
	return &WebhookClient{
		endpoint:   cfg.WebhookURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    utils.NewCircuitBreaker("notify-webhook", cfg.Breaker),
	}
}

// Send posts one event. payload is the raw event JSON.
func (c *WebhookClient) Send(ctx context.Context, event LifecycleEvent, payload json.RawMessage) error {
	err := c.breaker.Call(func() error {
		return c.post(ctx, event, payload)
	})
	c.record(err)
	return err
}

func (c *WebhookClient) post(ctx context.Context, event LifecycleEvent, payload json.RawMessage) error {
	body, err := json.Marshal(map[string]interface{}{
		"event_type": event.EventType,
		"data":       payload,
		"sent_at":    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", event.EventType)
	req.Header.Set("X-Event-ID", event.ID)
	if event.TenantID != "" {
		req.Header.Set("X-Tenant-ID", event.TenantID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *WebhookClient) record(err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err != nil {
		c.lastError = err
		return
	}
	c.connected = true
	c.lastSuccess = time.Now().UTC()
	c.lastError = nil
}

// Status reports the last delivery outcome and the breaker state
func (c *WebhookClient) Status() WebhookStatus {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	status := WebhookStatus{
		Connected: c.connected,
		Endpoint:  c.endpoint,
		Breaker:   c.breaker.GetState(),
	}
	if !c.lastSuccess.IsZero() {
		last := c.lastSuccess
		status.LastSuccess = &last
	}
	if c.lastError != nil {
		status.LastError = c.lastError.Error()
	}
	return status
}

// Reset closes the breaker so the next delivery is attempted immediately
func (c *WebhookClient) Reset() {
	c.breaker.Reset()
}
