// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/haspco/safety-catalog/internal/cache"
	"github.com/haspco/safety-catalog/internal/config"
	"github.com/haspco/safety-catalog/internal/database"
	"github.com/haspco/safety-catalog/internal/dataset"
	"github.com/haspco/safety-catalog/internal/i18n"
	"github.com/haspco/safety-catalog/internal/logging"
	"github.com/haspco/safety-catalog/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log, logFile := logging.Setup(cfg.Log)
	defer logFile.Close()

	if cfg.IsProduction() && cfg.Auth.AdminSecret == "" {
		log.Warn("ADMIN_JWT_SECRET is empty; POST /api/products is open")
	}

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		log.WithError(err).Fatal("Failed to initialize i18n")
	}

	data, err := dataset.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load bundled catalog data")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// The store serves canned results until a database is attached.
	store := database.NewStore(log)
	defer store.Close()

	if cfg.Database.Enabled {
		connector := &database.GormConnector{Config: cfg.Database, Manufacturers: data.Manufacturers}
		store.ConnectAsync(ctx, connector, database.ConnectOptions{
			Attempts: cfg.Database.ConnectRetries,
			Timeout:  cfg.Database.ConnectTimeout,
			Backoff:  time.Second,
		})
	} else {
		log.Warn("Database disabled; running in fallback mode")
	}

	productCache := cache.New(cfg.Cache)
	defer productCache.Close()

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.Initialize(ctx, cfg, store, data, productCache, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")
	stop()

	// Create a deadline for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exited")
}
