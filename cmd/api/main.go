package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"example.com/activities/internal/api"
	"example.com/activities/internal/config"
	"example.com/activities/internal/domain"
	"example.com/activities/internal/events"
	"example.com/activities/internal/logging"
	"example.com/activities/internal/registry"
	httptransport "example.com/activities/internal/transport/http"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	store := registry.NewStore()

	var publisher domain.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.RosterTopic)
		defer func() { _ = kafkaPublisher.Close() }()
		publisher = kafkaPublisher
		logger.Info("roster event publishing enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.RosterTopic),
		)
	}

	service := domain.NewService(store, publisher, logger)

	handler := api.NewHandler(service)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	chain := api.RequestID(api.RequestLogger(logger)(api.CORS(mux)))

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}, chain)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("activities service listening", zap.String("address", cfg.HTTPAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-shutdownCh
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
