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

	"github.com/isdelr/taskdesk-be/internal/api"
	"github.com/isdelr/taskdesk-be/internal/config"
	"github.com/isdelr/taskdesk-be/internal/database"
	"github.com/isdelr/taskdesk-be/internal/logger"
	"github.com/isdelr/taskdesk-be/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("Server stopped")
		os.Exit(1)
	}
}

// run owns every resource so deferred cleanup completes before main exits.
func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(cfg.LogLevel)

	// Set up database
	db, err := database.New(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("error connecting to the database: %w", err)
	}
	defer db.Close()
	log.Info().Str("driver", cfg.Database.Driver).Msg("Connected to the database")

	if err := database.Migrate(db); err != nil {
		return err
	}

	// Set up request logging
	accessLog, err := logger.OpenAccessLog(cfg.AccessLogPath, os.Stdout)
	if err != nil {
		return err
	}
	defer accessLog.Close()

	// Set up services
	userService := services.NewUserService(db)
	taskService := services.NewTaskService(db)

	// Set up router
	router := api.NewRouter(userService, taskService, accessLog, cfg.CORSAllowedOrigins)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server is running")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("listen and serve: %w", err)
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exiting")
	return nil
}
