// Package http wires controllers and middleware into the HTTP surface.
package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventbook/internal/delivery/http/controllers"
	"eventbook/internal/delivery/http/middleware"
	"eventbook/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	bookingController *controllers.BookingController,
	eventController *controllers.EventController,
	authController *controllers.AuthController,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier, logger)
	optionalAuth := middleware.OptionalAuth(verifier)

	// Public
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("POST /events/{eventID}/bookings", optionalAuth(bookingController.BookEvent))

	// Creator and admin
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("PUT /events/{eventID}", requireAuth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.DeleteEvent))
	mux.HandleFunc("GET /creator/events", requireAuth(eventController.ListOwnedEvents))
	mux.HandleFunc("GET /creator/events/{eventID}/bookings", requireAuth(eventController.ListEventBookings))

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
