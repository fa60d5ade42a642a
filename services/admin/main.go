package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	logger := config.ConfigureLogger(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Redis backs the location option cache and token revocation; the panel still works without it
	if err := utils.InitRedis(context.Background(), cfg.Redis); err != nil {
		logger.WithError(err).Warn("Redis unavailable, caching and logout revocation disabled")
	}
	defer utils.CloseRedis()

	db, err := config.ConnectDatabase(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database: ", err)
	}
	if err := config.Migrate(db); err != nil {
		logger.Fatal(err)
	}

	events := NewEventPublisher(cfg.Kafka)
	defer events.Close()

	exporter, err := NewExporter(cfg.Export)
	if err != nil {
		logger.Fatal("Failed to initialize exporter: ", err)
	}

	router, err := setupRouter(NewApp(cfg, db, logger, events, exporter))
	if err != nil {
		logger.Fatal(err)
	}

	logger.Infof("Admin service starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start admin service: ", err)
	}
}
