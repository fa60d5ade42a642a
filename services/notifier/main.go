package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/pavitra93/go-hr-admin-panel/shared/middleware"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"github.com/sirupsen/logrus"
)

func setupRouter(client *WebhookClient, store *Store, retrier *Retrier, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.Metrics())

	router.GET("/health", func(c *gin.Context) {
		utils.OKResponse(c, "Notifier service is healthy", nil)
	})
	router.GET("/metrics", middleware.MetricsHandler())

	notifier := router.Group("/notifier")
	{
		notifier.GET("/status", handleGetStatus(client))
		notifier.POST("/reset", handleResetBreaker(client))
		notifier.GET("/stats", handleGetStats(store, retrier))
	}
	return router
}

// serve runs srv until ctx is cancelled, then drains in-flight requests
func serve(ctx context.Context, srv *http.Server, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
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
	if cfg.Kafka.Broker == "" {
		logger.Fatal("KAFKA_BROKER is required by the notifier")
	}

	db, err := config.ConnectDatabase(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: ", err)
	}

	store := NewStore(db)
	if err := store.Migrate(); err != nil {
		logger.Fatal(err)
	}

	client := NewWebhookClient(cfg.Notifier)
	consumer := NewConsumer(NewKafkaReader(cfg.Kafka), client, store, logger)
	defer consumer.Close()
	retrier := NewRetrier(store, client, logger, cfg.Notifier)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go consumer.Run(ctx)
	go retrier.Run(ctx)

	router := setupRouter(client, store, retrier, logger)

	srv := &http.Server{Addr: ":" + cfg.NotifierPort, Handler: router}

	logger.Infof("Notifier service starting on port %s", cfg.NotifierPort)
	if err := serve(ctx, srv, 10*time.Second); err != nil {
		logger.Error("Notifier service stopped: ", err)
		return
	}
	logger.Info("Notifier service stopped")
}
