// Package main is the application entry point. It wires configuration, the
// database handle, repositories, services, adapters, and the HTTP router,
// then runs the server until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventbook/config"
	_ "eventbook/docs"
	"eventbook/internal/adapters/auth"
	"eventbook/internal/adapters/email"
	"eventbook/internal/adapters/eventsapi"
	"eventbook/internal/database"
	httpdelivery "eventbook/internal/delivery/http"
	"eventbook/internal/delivery/http/controllers"
	"eventbook/internal/repository/postgres"
	"eventbook/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title eventbook API
// @version 1.0
// @description Event listing and booking service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger().Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	// The connection is established lazily on first use; a warm-up failure
	// here only logs so the server still starts while the database is down.
	db := database.NewHandle(cfg.DBUrl, logger)
	defer db.Close()
	warmCtx, warmCancel := context.WithTimeout(context.Background(), serviceTimeout)
	if _, err := db.DB(warmCtx); err != nil {
		logger.Warn("database not reachable at startup, will retry on first request", "err", err)
	}
	warmCancel()

	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to initialize mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	eventService := services.NewEventService(eventRepo, serviceTimeout)
	bookingService := services.NewBookingService(bookingRepo, eventRepo, emailService, serviceTimeout)

	jwtCodec := auth.NewJWTCodec(cfg.JWTSecret)
	adminService := services.NewAdminService(cfg.AdminEmail, cfg.AdminPasswordHash, auth.NewBcryptVerifier(0), jwtCodec)

	listingClient := eventsapi.NewListingClient(cfg.InternalAPIBaseURL, nil)

	eventCtrl := controllers.NewEventController(logger, eventService)
	bookingCtrl := controllers.NewBookingController(logger, bookingService)
	authCtrl := controllers.NewAuthController(logger, adminService)
	pagesCtrl := controllers.NewPagesController(logger, listingClient, eventService)

	handler := httpdelivery.NewRouter(logger, cfg.AllowedOrigins, jwtCodec, eventCtrl, bookingCtrl, authCtrl, pagesCtrl)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
	logger.Info("server stopped")
}
