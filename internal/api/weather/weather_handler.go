package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/hylin/go-cwa-forecast/app/observability/metrics"
	"github.com/hylin/go-cwa-forecast/internal/api"
	"github.com/hylin/go-cwa-forecast/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewWeatherHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// GetForecast handles GET /api/weather/{location} - runs the full
// resolve -> fetch -> normalize pipeline and maps the error taxonomy onto
// HTTP statuses.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WeatherHandler").Start(r.Context(), "GetForecast")
	defer span.End()

	code := chi.URLParam(r, "location")
	l := h.logger.With(slog.String("method", "GetForecast"), slog.String("location_code", code))

	result, err := h.service.GetForecast(ctx, code)
	metrics.Get().ForecastRequestsTotal.Add(ctx, 1)
	if err != nil {
		h.writeErrorResponse(ctx, w, r, l, code, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Forecast request failed")
		return
	}

	span.SetStatus(codes.Ok, "Forecast returned successfully")
	api.WriteJSONResponse(w, r, http.StatusOK, api.SuccessResponse{Success: true, Data: result})
}

func (h *Handler) writeErrorResponse(ctx context.Context, w http.ResponseWriter, r *http.Request, l *slog.Logger, code string, err error) {
	var notFound *types.LocationNotFoundError
	var upstream *types.UpstreamError

	switch {
	case errors.As(err, &notFound):
		l.WarnContext(ctx, "Unsupported location code requested")
		api.WriteJSONResponse(w, r, http.StatusBadRequest, api.APIError{
			Error:              "Invalid location",
			Message:            fmt.Sprintf("Location code %q is not supported", notFound.Code),
			SupportedLocations: notFound.Supported,
		})

	case errors.Is(err, types.ErrMissingAPIKey):
		l.ErrorContext(ctx, "Upstream API credential is not configured")
		api.ErrorResponse(w, r, http.StatusInternalServerError,
			"Configuration error", "Weather provider credential is not configured")

	case errors.As(err, &upstream):
		l.ErrorContext(ctx, "Upstream reported an error", slog.Int("upstream_status", upstream.StatusCode))
		api.WriteJSONResponse(w, r, upstream.StatusCode, api.APIError{
			Error:   "Upstream error",
			Message: "The weather provider reported an error",
			Details: upstreamDetails(upstream.Body),
		})

	case errors.Is(err, types.ErrNoForecastData):
		l.WarnContext(ctx, "No forecast data for location")
		api.ErrorResponse(w, r, http.StatusNotFound,
			"Not found", fmt.Sprintf("No forecast data available for location %q", code))

	default:
		// Transport-level or unexpected failure: log the cause, keep the
		// response generic.
		l.ErrorContext(ctx, "Forecast request failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError,
			"Internal server error", "Failed to fetch weather data")
	}
}

// upstreamDetails surfaces the upstream error body verbatim, as JSON when
// it parses, otherwise as a plain string.
func upstreamDetails(body []byte) any {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}
