// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/library-shop/internal/catalog"
	"github.com/javajoker/library-shop/internal/config"
	"github.com/javajoker/library-shop/internal/i18n"
	"github.com/javajoker/library-shop/internal/inference"
	"github.com/javajoker/library-shop/internal/middleware"
	"github.com/javajoker/library-shop/internal/router"
	"github.com/javajoker/library-shop/internal/services"
)

const sessionSweepInterval = time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if err := config.ConfigureLogging(cfg.Log); err != nil {
		log.Fatal("Failed to configure logging:", err)
	}

	// Load catalog
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load catalog")
	}
	logrus.WithFields(logrus.Fields{
		"products":   cat.Len(),
		"categories": len(cat.Categories()),
	}).Info("Catalog loaded")

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize model client
	generator, err := inference.NewGemini(ctx, inference.GeminiConfig{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize Gemini client")
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	sessions := services.NewSessionStore(cfg.Session.TTL)
	limiters := middleware.NewRateLimiters(
		cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst,
		cfg.RateLimit.InferencePerMinute, cfg.RateLimit.InferenceBurst,
	)

	var background sync.WaitGroup
	background.Add(2)
	go func() {
		defer background.Done()
		sessions.Run(ctx, sessionSweepInterval)
	}()
	go func() {
		defer background.Done()
		limiters.Run(ctx)
	}()

	// Initialize router
	r := router.Initialize(cfg, router.Dependencies{
		Catalog:      cat,
		Generator:    generator,
		Sessions:     sessions,
		RateLimiters: limiters,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithFields(logrus.Fields{
			"port":  cfg.Server.Port,
			"model": generator.Model(),
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	stop()
	background.Wait()

	logrus.Info("Server exited")
}
