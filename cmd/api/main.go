package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/base14/examples/gin-product-catalog/config"
	"github.com/base14/examples/gin-product-catalog/internal/database"
	"github.com/base14/examples/gin-product-catalog/internal/handlers"
	"github.com/base14/examples/gin-product-catalog/internal/logging"
	"github.com/base14/examples/gin-product-catalog/internal/metrics"
	"github.com/base14/examples/gin-product-catalog/internal/repository"
	"github.com/base14/examples/gin-product-catalog/internal/telemetry"
	"github.com/base14/examples/gin-product-catalog/web"
	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(cfg.OTelServiceName, cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	log := logging.Logger()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Options{
		ServiceName:    cfg.OTelServiceName,
		Endpoint:       cfg.OTelEndpoint,
		Environment:    cfg.Environment,
		Enabled:        cfg.OTelEnabled,
		SampleRatio:    cfg.OTelSampleRatio,
		MetricInterval: cfg.OTelMetricInterval,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.WithError(err).Error("failed to shutdown telemetry")
		}
	}()

	db, err := database.Connect(cfg.DatabaseURL, database.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		Debug:           cfg.IsDevelopment(),
	})
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Error("failed to close database")
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to run database migrations")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := metrics.NewRegistry()
	router, err := handlers.NewRouter(handlers.RouterOptions{
		ServiceName:    cfg.OTelServiceName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Products:       handlers.NewProductHandler(repository.NewProductRepository(db), registry),
		Health:         handlers.NewHealthHandler(db, cfg.OTelServiceName),
		Metrics:        registry,
		Web:            web.Files,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to build router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("failed to shutdown server")
	}
}
