package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventbook/internal/delivery/http/controllers"
	"eventbook/internal/delivery/http/middleware"
	"eventbook/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes and the
// middleware chain (recovery, CORS, logging, metrics, outermost first).
func NewRouter(
	logger *slog.Logger,
	allowedOrigins []string,
	verifier domain.TokenVerifier,
	eventCtrl *controllers.EventController,
	bookingCtrl *controllers.BookingController,
	authCtrl *controllers.AuthController,
	pagesCtrl *controllers.PagesController,
) http.Handler {
	mux := http.NewServeMux()
	admin := middleware.RequireAuth(verifier)

	// API Routes
	mux.HandleFunc("GET /api/events", eventCtrl.ListEvents)
	mux.HandleFunc("GET /api/events/{slug}", eventCtrl.GetEventBySlug)
	mux.HandleFunc("POST /api/events", admin(eventCtrl.CreateEvent))
	mux.HandleFunc("PATCH /api/events/{eventID}", admin(eventCtrl.UpdateEvent))
	mux.HandleFunc("DELETE /api/events/{eventID}", admin(eventCtrl.DeleteEvent))
	mux.HandleFunc("GET /api/events/{eventID}/bookings", admin(bookingCtrl.ListEventBookings))
	mux.HandleFunc("POST /api/bookings", bookingCtrl.CreateBooking)

	// Auth
	mux.HandleFunc("POST /api/auth/login", authCtrl.Login)

	// Rendered pages
	mux.HandleFunc("GET /{$}", pagesCtrl.Home)
	mux.HandleFunc("GET /events/{slug}", pagesCtrl.EventDetail)

	// Swagger & metrics
	mux.Handle("/swagger/", httpSwagger.WrapHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = middleware.Metrics(mux, handler)
	handler = middleware.Logging(logger, handler)
	handler = middleware.CORS(allowedOrigins, handler)
	handler = middleware.Recover(logger, handler)
	return handler
}
