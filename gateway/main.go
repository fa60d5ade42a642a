package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/pavitra93/go-hr-admin-panel/shared/middleware"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"github.com/sirupsen/logrus"
)

func setupRouter(cfg *config.Config, clients *ServiceClients, logger *logrus.Logger) (*gin.Engine, error) {
	authMiddleware := middleware.NewAuthMiddleware(utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))

	limit, err := middleware.RateLimit(cfg.Gateway.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to configure rate limit: %w", err)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		middleware.Metrics(),
		middleware.Cors(cfg.AllowedOrigins...),
		limit,
	)

	router.GET("/health", func(c *gin.Context) {
		status, healthy := clients.GetServiceStatus(c.Request.Context())
		if !healthy {
			c.JSON(http.StatusServiceUnavailable, utils.APIResponse{
				Success: false,
				Message: "One or more services are unhealthy",
				Data:    status,
			})
			return
		}
		utils.OKResponse(c, "API Gateway is healthy", status)
	})
	router.GET("/metrics", middleware.MetricsHandler())

	// the admin service authenticates its own routes
	router.Any("/api/*path", clients.Admin.ProxyRequest)

	notifier := router.Group("/notifier")
	notifier.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	{
		notifier.GET("/status", clients.Notifier.ProxyRequest)
		notifier.GET("/stats", clients.Notifier.ProxyRequest)
		notifier.POST("/reset", clients.Notifier.ProxyRequest)
	}

	return router, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}
	logger := config.ConfigureLogger(cfg)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	clients := &ServiceClients{
		Admin:    NewServiceClient("admin", cfg.Gateway.AdminURL),
		Notifier: NewServiceClient("notifier", cfg.Gateway.NotifierURL),
	}

	router, err := setupRouter(cfg, clients, logger)
	if err != nil {
		logger.Fatal(err)
	}

	logger.Infof("API Gateway starting on port %s", cfg.Gateway.Port)
	if err := router.Run(":" + cfg.Gateway.Port); err != nil {
		logger.Fatal("Failed to start API Gateway: ", err)
	}
}
