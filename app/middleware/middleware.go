package appMiddleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/middleware"
)

// Recoverer is the final error layer: any panic that escapes a route
// handler is logged with its stack and answered with a JSON 500 carrying
// the panic message. It replaces chi's plain-text Recoverer so that every
// failure mode of the API produces a JSON body.
func Recoverer(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil || rvr == http.ErrAbortHandler {
					return
				}

				reqID := middleware.GetReqID(r.Context())
				logger.ErrorContext(r.Context(), "Panic recovered in handler",
					slog.String("req_id", reqID),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "Internal Server Error",
					"message": fmt.Sprintf("%v", rvr),
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
