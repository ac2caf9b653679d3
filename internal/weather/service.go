package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/japan-weather/internal/maybe"
)

// Service is the refresh pipeline: it fetches the upstream forecast,
// normalizes and enriches it, and publishes one snapshot per cycle.
type Service struct {
	store    Store
	provider Provider
	logger   *slog.Logger
	now      func() time.Time

	mu        sync.Mutex
	listeners []func(*Snapshot)
}

type Option func(*Service)

// WithClock overrides the clock used for current-hour matching and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new Service.
func NewService(store Store, provider Provider, opts ...Option) *Service {
	s := &Service{
		store:    store,
		provider: provider,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("module", "weather")
	return s
}

// OnUpdate registers fn to be called after each published snapshot.
func (s *Service) OnUpdate(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Refresh runs one fetch-normalize-enrich-alert cycle. Invocations are
// expected to be serialized by the caller. On failure nothing is published.
func (s *Service) Refresh(ctx context.Context, latitude, longitude float64) (*Snapshot, error) {
	if s.provider == nil {
		return nil, &RefreshError{Cause: fmt.Errorf("no weather provider configured")}
	}

	loc := Location{Latitude: latitude, Longitude: longitude}
	s.logger.Debug("refreshing weather data",
		slog.String("provider", s.provider.Name()),
		slog.Float64("latitude", latitude),
		slog.Float64("longitude", longitude))

	payload, err := s.provider.Fetch(ctx, loc)
	if err != nil {
		rerr := asRefreshError(err)
		s.logger.Error("weather refresh failed; keeping last snapshot", slog.Any("error", rerr))
		return nil, rerr
	}

	snapshot := s.buildSnapshot(loc, payload, s.now().UTC())
	s.store.Publish(snapshot)

	s.logger.Info("weather snapshot published",
		slog.Int("alerts", len(snapshot.Alerts)),
		slog.Int("degraded", len(snapshot.Degraded)),
		slog.String("comfort", string(snapshot.Current.ComfortLevel)))

	s.mu.Lock()
	listeners := append([]func(*Snapshot){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snapshot)
	}

	return snapshot, nil
}

// Latest returns the most recently published snapshot.
func (s *Service) Latest() (*Snapshot, error) {
	return s.store.Latest()
}

// Close releases the upstream connection resources.
func (s *Service) Close() error {
	if s.provider == nil {
		return nil
	}
	return s.provider.Close()
}

func (s *Service) buildSnapshot(loc Location, payload ForecastPayload, now time.Time) *Snapshot {
	hourly := NewSeries(payload.Hourly)
	daily := NewSeries(payload.Daily)

	snapshot := &Snapshot{
		Location:   loc,
		Hourly:     hourly,
		Daily:      daily,
		Sources:    []string{SourceJMAOpenMeteo},
		LastUpdate: now,
	}

	var c Current

	if payload.Hourly != nil {
		idx := CurrentHourIndex(hourly.Time, now)
		c.Humidity = hourly.Float("relative_humidity_2m", idx)
		c.Pressure = hourly.Float("pressure_msl", idx)
		c.Visibility = hourly.Float("visibility", idx)
		c.UVIndex = hourly.Float("uv_index", idx)
		c.CloudCover = hourly.Float("cloud_cover", idx)
		c.Precipitation = hourly.Float("precipitation", idx)
		c.PrecipitationProbability = hourly.Float("precipitation_probability", idx)
		c.ApparentTemperature = hourly.Float("apparent_temperature", idx)
		c.WindGusts = hourly.Float("wind_gusts_10m", idx)
	}

	if cw := payload.CurrentWeather; cw != nil {
		c.Temperature = toFloat(cw["temperature"])
		c.WindSpeed = toFloat(cw["windspeed"])
		c.WindDirection = toFloat(cw["winddirection"])
		c.WeatherCode = toInt(cw["weathercode"])
		c.ObservedAt = toText(cw["time"])
	}

	degrade := func(field string, err error) {
		s.logger.Warn("derived field unavailable", slog.String("field", field), slog.Any("error", err))
		snapshot.Degraded = append(snapshot.Degraded, FieldIssue{Field: field, Reason: err.Error()})
	}

	temp, tempOK := c.Temperature.Get()
	humidity, humidityOK := c.Humidity.Get()
	if tempOK && humidityOK {
		hi, err := HeatIndex(temp, humidity)
		if err != nil {
			degrade("heat_index", err)
		}
		c.HeatIndex = maybe.Some(hi)
	}

	level, err := ComfortLevelFor(c)
	if err != nil {
		degrade("comfort_level", err)
	}
	c.ComfortLevel = level

	products, err := DeriveSatelliteProducts(c)
	if err != nil {
		degrade("satellite", err)
	}
	c.Satellite = products

	snapshot.Current = c
	snapshot.Alerts = GenerateAlerts(c, now)
	return snapshot
}

// CurrentHourIndex finds the hourly position whose timestamp starts with the
// current UTC hour ("YYYY-MM-DDTHH:00"). It falls back to 0.
func CurrentHourIndex(times []string, now time.Time) int {
	prefix := now.UTC().Format("2006-01-02T15:00")
	for i, ts := range times {
		if strings.HasPrefix(ts, prefix) {
			return i
		}
	}
	return 0
}
