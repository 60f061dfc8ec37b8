package types

import (
	"errors"
	"fmt"
)

// ForecastSlot is one time-bounded prediction window, flattened from the
// upstream per-element time series. All values are strings passed through
// from the provider; Rain carries a "%" suffix and the temperatures a "°C"
// suffix once populated.
type ForecastSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Weather   string `json:"weather"`
	Rain      string `json:"rain"`
	MinTemp   string `json:"minTemp"`
	MaxTemp   string `json:"maxTemp"`
	Comfort   string `json:"comfort"`
	WindSpeed string `json:"windSpeed"`
}

// ForecastResult is the response payload for one forecast query. Slot order
// is the upstream's chronological order, untouched.
type ForecastResult struct {
	City       string         `json:"city"`
	UpdateTime string         `json:"updateTime"`
	Forecasts  []ForecastSlot `json:"forecasts"`
}

// CWAForecastResponse mirrors the relevant portion of the CWA open-data
// forecast dataset response.
type CWAForecastResponse struct {
	Records CWARecords `json:"records"`
}

type CWARecords struct {
	DatasetDescription string        `json:"datasetDescription"`
	Location           []CWALocation `json:"location"`
}

type CWALocation struct {
	LocationName   string              `json:"locationName"`
	WeatherElement []CWAWeatherElement `json:"weatherElement"`
}

type CWAWeatherElement struct {
	ElementName string         `json:"elementName"`
	Time        []CWATimeEntry `json:"time"`
}

type CWATimeEntry struct {
	StartTime string       `json:"startTime"`
	EndTime   string       `json:"endTime"`
	Parameter CWAParameter `json:"parameter"`
}

type CWAParameter struct {
	ParameterName string `json:"parameterName"`
	ParameterUnit string `json:"parameterUnit,omitempty"`
}

// ErrMissingAPIKey is returned before any outbound call is attempted when
// no upstream credential is configured.
var ErrMissingAPIKey = errors.New("CWA API key is not configured")

// ErrNoForecastData is returned when the upstream call succeeds but carries
// no location entry for the requested region.
var ErrNoForecastData = errors.New("upstream returned no forecast data for location")

// LocationNotFoundError reports an unsupported location code together with
// the full supported set, so callers can discover valid codes.
type LocationNotFoundError struct {
	Code      string
	Supported []string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("unsupported location code %q", e.Code)
}

// UpstreamError is an HTTP error response from the provider. The status
// code is propagated to the caller as-is and the body is surfaced for
// diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.StatusCode)
}
