package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"axelmotors/config"
	"axelmotors/controllers"
	"axelmotors/database"
	"axelmotors/events"
	"axelmotors/logging"
	"axelmotors/metrics"
	"axelmotors/payment"
	"axelmotors/router"
	"axelmotors/token"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log.Service, cfg.Log.Env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	if err := prepareDatabase(db, cfg.Database.SeedFile, logger); err != nil {
		return err
	}
	store := database.NewStore(db)

	var publisher events.Publisher = events.Nop{}
	if cfg.Broker.URL != "" {
		amqpPublisher, err := events.Dial(cfg.Broker.URL, cfg.Broker.Queue)
		if err != nil {
			return err
		}
		publisher = amqpPublisher
	} else {
		logger.Warn("events_disabled", zap.String("reason", "AMQP_URL is empty"))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("event_publisher_close_error", zap.Error(err))
		}
	}()

	payments := payment.NewProvider(cfg.Payment.SecretKey)
	if cfg.Payment.SecretKey == "" {
		logger.Warn("payments_disabled", zap.String("reason", "STRIPE_SECRET_KEY is empty"))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	tokens := token.NewManager(cfg.Server.SecretKey, cfg.Server.TokenTTL)

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(router.Deps{
		Handler: controllers.NewHandler(controllers.Options{
			Store:          store,
			Tokens:         tokens,
			Payments:       payments,
			Events:         publisher,
			Metrics:        m,
			Logger:         logger,
			Currency:       cfg.Payment.Currency,
			VerifyPayments: cfg.Payment.Verify,
		}),
		Store:    store,
		Tokens:   tokens,
		Metrics:  m,
		Gatherer: registry,
		Logger:   logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http_server_start", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("http_server_error", zap.Error(err))
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", zap.Error(err))
		return err
	}
	logger.Info("http_server_stopped")

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
