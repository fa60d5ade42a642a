package main

import (
	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
)

func handleGetStatus(client *WebhookClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.OKResponse(c, "Notifier status retrieved successfully", client.Status())
	}
}

func handleResetBreaker(client *WebhookClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		client.Reset()
		utils.OKResponse(c, "Webhook circuit breaker reset", client.Status())
	}
}

// StatsResponse is returned by /notifier/stats
type StatsResponse struct {
	RetryStats RetryStats  `json:"retry_stats"`
	Config     RetryConfig `json:"config"`
}

func handleGetStats(store *Store, retrier *Retrier) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := store.Stats(c.Request.Context())
		if err != nil {
			utils.InternalServerErrorResponse(c, "Failed to fetch retry stats")
			return
		}
		utils.OKResponse(c, "Notifier stats retrieved successfully", StatsResponse{
			RetryStats: stats,
			Config:     retrier.Config(),
		})
	}
}
