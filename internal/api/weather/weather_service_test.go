package weather

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hylin/go-cwa-forecast/internal/types"
)

// MockUpstreamClient is a mock implementation of the UpstreamClient interface
type MockUpstreamClient struct {
	mock.Mock
}

func (m *MockUpstreamClient) FetchForecast(ctx context.Context, locationName string) (*types.CWAForecastResponse, error) {
	args := m.Called(ctx, locationName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CWAForecastResponse), args.Error(1)
}

func newTestService(client UpstreamClient) *ServiceImpl {
	return NewWeatherService(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func timeEntry(start, end, name string) types.CWATimeEntry {
	return types.CWATimeEntry{
		StartTime: start,
		EndTime:   end,
		Parameter: types.CWAParameter{ParameterName: name},
	}
}

func element(name string, entries ...types.CWATimeEntry) types.CWAWeatherElement {
	return types.CWAWeatherElement{ElementName: name, Time: entries}
}

// fullPayload builds a payload with two aligned slots across all six
// recognized elements.
func fullPayload() *types.CWAForecastResponse {
	s1, e1 := "2025-01-01 06:00:00", "2025-01-01 18:00:00"
	s2, e2 := "2025-01-01 18:00:00", "2025-01-02 06:00:00"
	return &types.CWAForecastResponse{
		Records: types.CWARecords{
			DatasetDescription: "三十六小時天氣預報",
			Location: []types.CWALocation{
				{
					LocationName: "臺北市",
					WeatherElement: []types.CWAWeatherElement{
						element("Wx", timeEntry(s1, e1, "多雲時晴"), timeEntry(s2, e2, "陰短暫雨")),
						element("PoP", timeEntry(s1, e1, "20"), timeEntry(s2, e2, "70")),
						element("MinT", timeEntry(s1, e1, "16"), timeEntry(s2, e2, "14")),
						element("MaxT", timeEntry(s1, e1, "22"), timeEntry(s2, e2, "18")),
						element("CI", timeEntry(s1, e1, "舒適"), timeEntry(s2, e2, "稍有寒意")),
						element("WS", timeEntry(s1, e1, "微風"), timeEntry(s2, e2, "強風")),
					},
				},
			},
		},
	}
}

func TestGetForecastNormalizesPayload(t *testing.T) {
	client := new(MockUpstreamClient)
	client.On("FetchForecast", mock.Anything, "臺北市").Return(fullPayload(), nil)
	service := newTestService(client)

	result, err := service.GetForecast(context.Background(), "taipei")
	require.NoError(t, err)

	assert.Equal(t, "臺北市", result.City)
	assert.Equal(t, "三十六小時天氣預報", result.UpdateTime)
	require.Len(t, result.Forecasts, 2)

	assert.Equal(t, types.ForecastSlot{
		StartTime: "2025-01-01 06:00:00",
		EndTime:   "2025-01-01 18:00:00",
		Weather:   "多雲時晴",
		Rain:      "20%",
		MinTemp:   "16°C",
		MaxTemp:   "22°C",
		Comfort:   "舒適",
		WindSpeed: "微風",
	}, result.Forecasts[0])

	assert.Equal(t, types.ForecastSlot{
		StartTime: "2025-01-01 18:00:00",
		EndTime:   "2025-01-02 06:00:00",
		Weather:   "陰短暫雨",
		Rain:      "70%",
		MinTemp:   "14°C",
		MaxTemp:   "18°C",
		Comfort:   "稍有寒意",
		WindSpeed: "強風",
	}, result.Forecasts[1])

	client.AssertExpectations(t)
}

func TestGetForecastDefaultsForEmptyParameters(t *testing.T) {
	s, e := "2025-01-01 06:00:00", "2025-01-01 18:00:00"
	payload := &types.CWAForecastResponse{
		Records: types.CWARecords{
			Location: []types.CWALocation{
				{
					LocationName: "高雄市",
					WeatherElement: []types.CWAWeatherElement{
						element("Wx", timeEntry(s, e, "晴天")),
						element("PoP", timeEntry(s, e, "")),
						element("MinT", timeEntry(s, e, "")),
						element("MaxT", timeEntry(s, e, "")),
					},
				},
			},
		},
	}
	client := new(MockUpstreamClient)
	client.On("FetchForecast", mock.Anything, "高雄市").Return(payload, nil)
	service := newTestService(client)

	result, err := service.GetForecast(context.Background(), "kaohsiung")
	require.NoError(t, err)
	require.Len(t, result.Forecasts, 1)

	slot := result.Forecasts[0]
	assert.Equal(t, "0%", slot.Rain)
	assert.Equal(t, "-°C", slot.MinTemp)
	assert.Equal(t, "-°C", slot.MaxTemp)
}

func TestGetForecastAbsentElementsLeaveFieldsEmpty(t *testing.T) {
	s, e := "2025-01-01 06:00:00", "2025-01-01 18:00:00"
	payload := &types.CWAForecastResponse{
		Records: types.CWARecords{
			Location: []types.CWALocation{
				{
					LocationName: "臺中市",
					WeatherElement: []types.CWAWeatherElement{
						element("Wx", timeEntry(s, e, "晴天")),
					},
				},
			},
		},
	}
	client := new(MockUpstreamClient)
	client.On("FetchForecast", mock.Anything, "臺中市").Return(payload, nil)
	service := newTestService(client)

	result, err := service.GetForecast(context.Background(), "taichung")
	require.NoError(t, err)
	require.Len(t, result.Forecasts, 1)

	slot := result.Forecasts[0]
	assert.Equal(t, "晴天", slot.Weather)
	assert.Empty(t, slot.Rain)
	assert.Empty(t, slot.MinTemp)
	assert.Empty(t, slot.MaxTemp)
	assert.Empty(t, slot.Comfort)
	assert.Empty(t, slot.WindSpeed)
}

func TestGetForecastFirstElementGovernsSlotCount(t *testing.T) {
	s1, e1 := "2025-01-01 06:00:00", "2025-01-01 18:00:00"
	s2, e2 := "2025-01-01 18:00:00", "2025-01-02 06:00:00"
	payload := &types.CWAForecastResponse{
		Records: types.CWARecords{
			Location: []types.CWALocation{
				{
					LocationName: "新北市",
					WeatherElement: []types.CWAWeatherElement{
						element("Wx", timeEntry(s1, e1, "晴天"), timeEntry(s2, e2, "陰天")),
						// Misaligned shorter element: second slot gets no rain value.
						element("PoP", timeEntry(s1, e1, "30")),
						// Unrecognized element must be ignored.
						element("UVI", timeEntry(s1, e1, "8"), timeEntry(s2, e2, "1")),
					},
				},
			},
		},
	}
	client := new(MockUpstreamClient)
	client.On("FetchForecast", mock.Anything, "新北市").Return(payload, nil)
	service := newTestService(client)

	result, err := service.GetForecast(context.Background(), "new-taipei")
	require.NoError(t, err)
	require.Len(t, result.Forecasts, 2)

	assert.Equal(t, "30%", result.Forecasts[0].Rain)
	assert.Empty(t, result.Forecasts[1].Rain)
	assert.Equal(t, "陰天", result.Forecasts[1].Weather)
}

func TestGetForecastUnknownCodeSkipsFetch(t *testing.T) {
	client := new(MockUpstreamClient)
	service := newTestService(client)

	_, err := service.GetForecast(context.Background(), "atlantis")
	require.Error(t, err)

	var notFound *types.LocationNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, SupportedCodes(), notFound.Supported)
	client.AssertNotCalled(t, "FetchForecast", mock.Anything, mock.Anything)
}

func TestGetForecastPropagatesClientErrors(t *testing.T) {
	client := new(MockUpstreamClient)
	client.On("FetchForecast", mock.Anything, "臺北市").Return(nil, types.ErrNoForecastData)
	service := newTestService(client)

	_, err := service.GetForecast(context.Background(), "taipei")
	assert.ErrorIs(t, err, types.ErrNoForecastData)
}
