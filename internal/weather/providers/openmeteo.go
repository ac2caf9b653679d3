package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"

	"github.com/i474232898/japan-weather/internal/weather"
)

// API docs: https://open-meteo.com/en/docs/jma-api
const (
	DefaultOpenMeteoJMAURL = "https://api.open-meteo.com/v1/jma"
	DefaultRequestTimeout  = 30 * time.Second

	// Timezone of the daily axis and local timestamps.
	Timezone = "Asia/Tokyo"
)

var HourlyVariables = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"apparent_temperature",
	"precipitation_probability",
	"precipitation",
	"weather_code",
	"pressure_msl",
	"surface_pressure",
	"cloud_cover",
	"visibility",
	"wind_speed_10m",
	"wind_direction_10m",
	"wind_gusts_10m",
	"uv_index",
}

var DailyVariables = []string{
	"weather_code",
	"temperature_2m_max",
	"temperature_2m_min",
	"apparent_temperature_max",
	"apparent_temperature_min",
	"sunrise",
	"sunset",
	"uv_index_max",
	"precipitation_sum",
	"rain_sum",
	"showers_sum",
	"snowfall_sum",
	"precipitation_hours",
	"precipitation_probability_max",
	"wind_speed_10m_max",
	"wind_gusts_10m_max",
	"wind_direction_10m_dominant",
}

// OpenMeteoProvider implements weather.Provider for the JMA model of Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider keeps client for the lifetime of the provider; Close
// releases its idle connections. An empty baseURL selects the public endpoint.
func NewOpenMeteoProvider(client *http.Client, baseURL string, timeout time.Duration) *OpenMeteoProvider {
	if client == nil {
		client = &http.Client{}
	}
	if baseURL == "" {
		baseURL = DefaultOpenMeteoJMAURL
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return &OpenMeteoProvider{
		name:    "openmeteo-jma",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Timeout: timeout,
		},
		circuit: newCircuitBreaker("openmeteo-jma"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc weather.Location) (weather.ForecastPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, p.httpCfg.Timeout)
	defer cancel()

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Latitude))
		values.Set("longitude", fmt.Sprintf("%f", loc.Longitude))
		values.Set("hourly", strings.Join(HourlyVariables, ","))
		values.Set("daily", strings.Join(DailyVariables, ","))
		values.Set("current_weather", "true")
		values.Set("timezone", Timezone)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ForecastPayload{}, err
	}
	defer resp.Body.Close()

	var payload weather.ForecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastPayload{}, fmt.Errorf("failed to decode forecast response: %w", err)
	}

	return payload, nil
}

// Close drops idle keep-alive connections held by the shared client.
func (p *OpenMeteoProvider) Close() error {
	p.httpCfg.Client.CloseIdleConnections()
	return nil
}
