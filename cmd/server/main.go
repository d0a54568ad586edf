package main

import (
	"context"
	"errors"
	"fitu/dashboard/internal/api"
	"fitu/dashboard/internal/app"
	"fitu/dashboard/internal/config"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title FitU Dashboard API
// @version 1.0
// @description Instructor dashboard backend: rosters, exercise assignments, announcements.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting FitU Dashboard Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Printf("Configuration loaded (database driver %s).", cfg.Database.Driver)
	if err := cfg.Auth.RequireSecret(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	// --- Store ---
	store, closeStore, err := app.OpenStore(cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Could not open store: %v", err)
	}
	defer closeStore()

	// --- Storage ---
	fileStorage, err := app.OpenFileStorage(context.Background(), cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Services & Routes ---
	services := app.NewServices(cfg, store, fileStorage)
	if cfg.Auth.HookSecret == "" {
		log.Println("WARN: auth.hook_secret is empty, the account hook is disabled")
	}

	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, cfg.Auth.HookSecret, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
