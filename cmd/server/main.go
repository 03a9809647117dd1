package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/revenuereports/internal/api"
	"github.com/jafarshop/revenuereports/internal/config"
	"github.com/jafarshop/revenuereports/internal/service"
	"github.com/jafarshop/revenuereports/internal/shopify"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting revenue reports server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Customer directory: optional identity data, missing file is not fatal
	directory, err := service.LoadCustomerDirectory(cfg.CustomersFile)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Customer directory file not found, report rows will use upstream emails only",
				zap.String("path", cfg.CustomersFile))
			directory = service.NewCustomerDirectory(nil)
		} else {
			logger.Fatal("Failed to load customer directory", zap.Error(err))
		}
	} else {
		logger.Info("Loaded customer directory",
			zap.String("path", cfg.CustomersFile),
			zap.Int("customers", directory.Len()),
		)
	}

	// Shopify client and report aggregator
	client := shopify.NewClient(cfg.Shopify, cfg.RateLimit, logger)
	reports := service.NewReportService(client, directory, logger)

	// Initialize router
	router := api.NewRouter(cfg, client, reports, logger)

	// Create HTTP server. No per-request write timeout: a report over many
	// orders runs as long as the sequential enrichment takes.
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
