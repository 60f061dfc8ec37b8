package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/hylin/go-cwa-forecast/internal/api"
	"github.com/hylin/go-cwa-forecast/internal/api/weather"
)

// Config contains dependencies needed for the router setup
type Config struct {
	WeatherHandler *weather.Handler
}

// ServiceInfo is the static description served at the root route.
type ServiceInfo struct {
	Service            string   `json:"service"`
	Description        string   `json:"description"`
	Endpoints          []string `json:"endpoints"`
	SupportedLocations []string `json:"supported_locations"`
}

// HealthStatus is the body of the health route.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	// Callers are not authenticated; the API is open to any origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSONResponse(w, r, http.StatusOK, ServiceInfo{
			Service:     "CWA Forecast Gateway",
			Description: "Forwards 36-hour forecast queries to the Taiwan Central Weather Administration open-data API",
			Endpoints: []string{
				"GET /",
				"GET /api/health",
				"GET /api/weather/{location}",
			},
			SupportedLocations: weather.SupportedCodes(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			api.WriteJSONResponse(w, r, http.StatusOK, HealthStatus{
				Status:    "OK",
				Timestamp: time.Now().Format(time.RFC3339),
			})
		})
		r.Get("/weather/{location}", cfg.WeatherHandler.GetForecast)
	})

	// Every unmatched request gets the same JSON 404, whatever the method.
	notFound := func(w http.ResponseWriter, r *http.Request) {
		api.ErrorResponse(w, r, http.StatusNotFound, "Not found", "Route not found")
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}
