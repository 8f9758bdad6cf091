package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventregistry/config"
	delivery "eventregistry/internal/delivery/http"
	"eventregistry/internal/delivery/http/controllers"
	"eventregistry/internal/delivery/http/middleware"
	"eventregistry/internal/repository/postgres"
	"eventregistry/internal/services"

	_ "eventregistry/docs"
)

// @title Event Registration API
// @version 1.0
// @description Event and registration management with transactional capacity guarantees.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to postgres")

	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	userRepo := postgres.NewUserRepository(db)

	eventService := services.NewEventService(eventRepo, registrationRepo, userRepo, cfg.RequestTimeout)
	registrationService := services.NewRegistrationService(registrationRepo, cfg.RequestTimeout)

	eventController := controllers.NewEventController(logger, eventService)
	registrationController := controllers.NewRegistrationController(logger, registrationService)

	mux := delivery.NewRouter(eventController, registrationController)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
