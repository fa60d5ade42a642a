package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/middleware"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
)

// hop-by-hop headers are not forwarded
var hopHeaders = map[string]bool{
	"Connection":          true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
}

// gatewayOwned reports response headers the gateway's own middleware sets
func gatewayOwned(key string) bool {
	switch key {
	case "Content-Length", "Vary", middleware.RequestIDHeader:
		return true
	}
	return strings.HasPrefix(key, "Access-Control-")
}

// ServiceClient handles HTTP communication with a backend service
type ServiceClient struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

// ServiceClients holds all service clients
type ServiceClients struct {
	Admin    *ServiceClient
	Notifier *ServiceClient
}

// NewServiceClient creates a new service client
func NewServiceClient(name, baseURL string) *ServiceClient {
	return &ServiceClient{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ProxyRequest forwards the request to the service and copies the answer back
func (sc *ServiceClient) ProxyRequest(c *gin.Context) {
	targetURL := sc.baseURL + c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		targetURL += "?" + c.Request.URL.RawQuery
	}

	var body io.Reader
	if c.Request.Body != nil {
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			utils.InternalServerErrorResponse(c, "Failed to read request body")
			return
		}
		body = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, targetURL, body)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to create request")
		return
	}

	for key, values := range c.Request.Header {
		if hopHeaders[key] {
			continue
		}
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("X-Forwarded-For", c.ClientIP())
	if requestID := c.Writer.Header().Get(middleware.RequestIDHeader); requestID != "" {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}

	resp, err := sc.httpClient.Do(req)
	if err != nil {
		middleware.LoggerFromContext(c).WithError(err).WithField("service", sc.name).Error("Proxy request failed")
		c.JSON(http.StatusBadGateway, utils.APIResponse{
			Success: false,
			Error:   "Failed to communicate with " + sc.name + " service",
		})
		return
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to read response")
		return
	}

	for key, values := range resp.Header {
		if hopHeaders[key] || gatewayOwned(key) {
			continue
		}
		for _, value := range values {
			c.Writer.Header().Add(key, value)
		}
	}

	c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), responseBody)
}

// HealthCheck checks if the service answers its health endpoint
func (sc *ServiceClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sc.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := sc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service returned status %d", resp.StatusCode)
	}
	return nil
}

// ServiceStatus is the health of one backend
type ServiceStatus struct {
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// GetServiceStatus returns the status of all services
func (scs *ServiceClients) GetServiceStatus(ctx context.Context) (map[string]ServiceStatus, bool) {
	status := make(map[string]ServiceStatus, 2)
	healthy := true
	for _, sc := range []*ServiceClient{scs.Admin, scs.Notifier} {
		if err := sc.HealthCheck(ctx); err != nil {
			status[sc.name] = ServiceStatus{Healthy: false, Error: err.Error()}
			healthy = false
			continue
		}
		status[sc.name] = ServiceStatus{Healthy: true}
	}
	return status, healthy
}
