package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"

	"eventbook/config"
	_ "eventbook/docs"
	"eventbook/internal/adapters/auth"
	"eventbook/internal/adapters/email"
	"eventbook/internal/adapters/metrics"
	delivery "eventbook/internal/delivery/http"
	"eventbook/internal/delivery/http/controllers"
	"eventbook/internal/delivery/http/middleware"
	"eventbook/internal/repository/postgres"
	"eventbook/internal/services"
)

// @title Eventbook API
// @version 1.0
// @description Event publishing and booking service with admission control.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	logger := config.NewLogger()
	logger.Info("starting eventbook", "env", cfg.Environment, "port", cfg.Port)

	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	userRepo := postgres.NewUserRepository(db)

	tokenProvider := auth.NewJWTProvider(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)

	mailer, err := email.NewMailer(cfg.Email)
	if err != nil {
		logger.Error("failed to configure mailer", "err", err)
		os.Exit(1)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	bookingMetrics, err := metrics.NewBookingCollector(otel.Meter("eventbook"))
	if err != nil {
		logger.Error("failed to create metrics instruments", "err", err)
		os.Exit(1)
	}

	bookingSvc := services.NewBookingService(eventRepo, bookingRepo, userRepo, bookingRepo, bookingMetrics, emailSvc, logger)
	eventSvc := services.NewEventService(eventRepo, bookingRepo, logger)
	userSvc := services.NewUserService(userRepo, hasher, tokenProvider, cfg.TokenExpiry, logger)

	bookingController := controllers.NewBookingController(logger, bookingSvc)
	eventController := controllers.NewEventController(logger, eventSvc)
	authController := controllers.NewAuthController(logger, userSvc)

	mux := delivery.NewRouter(logger, tokenProvider, bookingController, eventController, authController)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop <- syscall.SIGTERM
		}
	}()

	sig := <-stop
	logger.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}

	logger.Info("stopped")
}
