package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hylin/go-cwa-forecast/app/observability/metrics"
	"github.com/hylin/go-cwa-forecast/internal/types"
)

// UpstreamClient fetches the raw forecast dataset for a resolved CWA
// location name.
type UpstreamClient interface {
	FetchForecast(ctx context.Context, locationName string) (*types.CWAForecastResponse, error)
}

// Ensure CWAClient implements UpstreamClient
var _ UpstreamClient = (*CWAClient)(nil)

// CWAClient calls the CWA open-data 36-hour forecast dataset (F-C0032-001).
type CWAClient struct {
	logger      *slog.Logger
	baseURL     string
	datasetPath string
	apiKey      string
	client      *http.Client
}

func NewCWAClient(baseURL, datasetPath, apiKey string, timeout time.Duration, logger *slog.Logger) *CWAClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CWAClient{
		logger:      logger,
		baseURL:     baseURL,
		datasetPath: datasetPath,
		apiKey:      apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchForecast issues one GET to the forecast dataset endpoint, passing
// the credential and location name as query parameters. The credential is
// checked before any network I/O happens.
func (c *CWAClient) FetchForecast(ctx context.Context, locationName string) (*types.CWAForecastResponse, error) {
	if c.apiKey == "" {
		return nil, types.ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("Authorization", c.apiKey)
	params.Set("locationName", locationName)
	endpoint := c.baseURL + c.datasetPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.Get().UpstreamDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		metrics.Get().UpstreamErrorsTotal.Add(ctx, 1)
		c.logger.ErrorContext(ctx, "Upstream request failed",
			slog.String("location", locationName),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to reach weather provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.Get().UpstreamErrorsTotal.Add(ctx, 1)
		c.logger.ErrorContext(ctx, "Upstream responded with an error",
			slog.String("location", locationName),
			slog.Int("status", resp.StatusCode),
		)
		return nil, &types.UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	var payload types.CWAForecastResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse upstream response: %w", err)
	}

	if len(payload.Records.Location) == 0 {
		c.logger.WarnContext(ctx, "Upstream returned no data for location",
			slog.String("location", locationName),
		)
		return nil, types.ErrNoForecastData
	}

	return &payload, nil
}
