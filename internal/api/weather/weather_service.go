package weather

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/hylin/go-cwa-forecast/internal/types"
)

// Service runs the resolve -> fetch -> normalize pipeline for one forecast
// query.
type Service interface {
	GetForecast(ctx context.Context, code string) (*types.ForecastResult, error)
}

// Ensure ServiceImpl implements Service
var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	logger *slog.Logger
	client UpstreamClient
}

func NewWeatherService(client UpstreamClient, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		client: client,
	}
}

func (s *ServiceImpl) GetForecast(ctx context.Context, code string) (*types.ForecastResult, error) {
	ctx, span := otel.Tracer("WeatherService").Start(ctx, "GetForecast")
	defer span.End()

	l := s.logger.With(slog.String("method", "GetForecast"), slog.String("location_code", code))

	locationName, err := ResolveLocation(code)
	if err != nil {
		l.WarnContext(ctx, "Unsupported location code")
		span.SetStatus(codes.Error, "Unsupported location code")
		return nil, err
	}

	payload, err := s.client.FetchForecast(ctx, locationName)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Upstream fetch failed")
		return nil, err
	}

	result := normalizeForecast(payload)
	l.InfoContext(ctx, "Forecast normalized",
		slog.String("city", result.City),
		slog.Int("slots", len(result.Forecasts)),
	)
	span.SetStatus(codes.Ok, "Forecast returned")
	return result, nil
}

// normalizeForecast flattens the per-element time series of the first
// location entry into one record per time slot. The first weather element's
// series length governs the slot count; the remaining elements are trusted
// to be aligned with it and contribute nothing for indexes they don't
// cover, leaving those fields empty.
func normalizeForecast(payload *types.CWAForecastResponse) *types.ForecastResult {
	result := &types.ForecastResult{
		UpdateTime: payload.Records.DatasetDescription,
		Forecasts:  []types.ForecastSlot{},
	}
	if len(payload.Records.Location) == 0 {
		return result
	}

	loc := payload.Records.Location[0]
	result.City = loc.LocationName
	if len(loc.WeatherElement) == 0 {
		return result
	}

	for i, entry := range loc.WeatherElement[0].Time {
		slot := types.ForecastSlot{
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
		}
		for _, elem := range loc.WeatherElement {
			if i >= len(elem.Time) {
				continue
			}
			name := elem.Time[i].Parameter.ParameterName
			switch elem.ElementName {
			case "Wx":
				slot.Weather = name
			case "PoP":
				if name == "" {
					name = "0"
				}
				slot.Rain = name + "%"
			case "MinT":
				if name == "" {
					name = "-"
				}
				slot.MinTemp = name + "°C"
			case "MaxT":
				if name == "" {
					name = "-"
				}
				slot.MaxTemp = name + "°C"
			case "CI":
				slot.Comfort = name
			case "WS":
				slot.WindSpeed = name
			default:
				// Unrecognized elements from the upstream are ignored
			}
		}
		result.Forecasts = append(result.Forecasts, slot)
	}
	return result
}
