package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/simula-invest-be/internal/config"
	"github.com/hongminglow/simula-invest-be/internal/logging"
	"github.com/hongminglow/simula-invest-be/internal/observability"
	"github.com/hongminglow/simula-invest-be/internal/server"
	"github.com/hongminglow/simula-invest-be/internal/storage/memory"
	postgres "github.com/hongminglow/simula-invest-be/internal/storage/postgres"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("init logger")
	}
	if envErr != nil {
		logger.Debug("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("init storage")
	}
	defer closeStore()

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	srv := server.New(cfg, server.Deps{Store: store, Logger: logger, Metrics: metrics})

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    cfg.HTTPAddress(),
			"storage": cfg.StorageBackend,
		}).Info("simula-invest backend listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("graceful shutdown error")
	}
	logger.Info("server stopped")
}

func openStore(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (server.Store, func(), error) {
	if cfg.StorageBackend == config.StorageMemory {
		logger.Warn("using in-memory storage; data is lost on restart")
		return memory.New(), func() {}, nil
	}

	store, err := postgres.NewStore(ctx, postgres.Options{
		URL:            cfg.DatabaseURL,
		MaxConns:       cfg.DBMaxConns,
		ConnectTimeout: cfg.DBConnectTimeout,
		Logger:         logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}
