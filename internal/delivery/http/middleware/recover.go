package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"eventbook/internal/delivery/http/helpers"
)

// Recover converts panics in downstream handlers into 500 responses so a
// single bad request cannot take the server down.
func Recover(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", fmt.Sprint(rec),
				)
				helpers.WriteServerError(w, "internal server error", fmt.Errorf("%v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
