package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/onlineretail/storefront/config"
	authPG "github.com/onlineretail/storefront/internal/auth/postgres"
	"github.com/onlineretail/storefront/internal/httpapi"
	"github.com/onlineretail/storefront/internal/session"
	"github.com/onlineretail/storefront/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.New(logConfig)
	defer appLogger.Sync()

	// Sessions authenticate with the end user's own database credentials, so
	// there is no service-wide database pool to open here.
	resolver := authPG.NewResolver(&cfg.Postgres)

	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			appLogger.Warn("could not connect to Redis, product caching disabled", zap.Error(err))
			cache = nil
		} else {
			appLogger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}
	if cache != nil {
		defer cache.Close()
	}

	var events *kafka.Writer
	if len(cfg.Kafka.Brokers) > 0 {
		events = &kafka.Writer{
			Addr:     kafka.TCP(cfg.Kafka.Brokers...),
			Topic:    cfg.Kafka.Topic,
			Balancer: &kafka.LeastBytes{},
		}
		defer events.Close()
		appLogger.Info("cart commit events enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	registry := session.NewRegistry(resolver, cache, events, appLogger)
	api := httpapi.NewServer(registry, appLogger)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPPort,
		Handler: api.Router(),
	}

	go func() {
		appLogger.Info("starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}

	// Sessions release their handles after in-flight units finish.
	registry.CloseAll()
	appLogger.Info("server stopped")
}
