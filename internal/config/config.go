package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/i474232898/japan-weather/internal/weather"
)

// Defaults, Tokyo.
const (
	DefaultLatitude  = 35.6762
	DefaultLongitude = 139.6503
)

// Validation failures reported for coordinates outside the Japan bounding box.
var (
	ErrLatitudeOutOfRange  = errors.New("latitude_out_of_range")
	ErrLongitudeOutOfRange = errors.New("longitude_out_of_range")
)

type AppConfig struct {
	Latitude  float64 `mapstructure:"latitude" validate:"gte=24,lte=46"`
	Longitude float64 `mapstructure:"longitude" validate:"gte=123,lte=146"`

	// FetchInterval controls how often the forecast is refreshed.
	FetchInterval time.Duration `mapstructure:"fetch_interval" validate:"gt=0"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout" validate:"gt=0"`

	// TrendHistory is the number of readings kept per trend sensor.
	TrendHistory int `mapstructure:"trend_history" validate:"gte=3,lte=24"`

	OpenMeteoBaseURL string `mapstructure:"openmeteo_base_url" validate:"required,url"`

	Port     string `mapstructure:"port" validate:"required,numeric"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
}

// envKeys maps config keys to their environment variables.
var envKeys = map[string]string{
	"latitude":           "WEATHER_LATITUDE",
	"longitude":          "WEATHER_LONGITUDE",
	"fetch_interval":     "FETCH_INTERVAL",
	"http_timeout":       "HTTP_TIMEOUT",
	"trend_history":      "TREND_HISTORY",
	"openmeteo_base_url": "OPENMETEO_BASE_URL",
	"port":               "PORT",
	"log_level":          "LOG_LEVEL",
}

var validate = validator.New()

// Load reads .env, an optional config.yaml from the given directories (the
// working directory and ./config when none are given), then the environment.
func Load(paths ...string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("latitude", DefaultLatitude)
	v.SetDefault("longitude", DefaultLongitude)
	v.SetDefault("fetch_interval", 600*time.Second)
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("trend_history", 6)
	v.SetDefault("openmeteo_base_url", "https://api.open-meteo.com/v1/jma")
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the field constraints. Coordinate failures wrap
// ErrLatitudeOutOfRange or ErrLongitudeOutOfRange.
func (c *AppConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Latitude":
			errs = append(errs, fmt.Errorf("%w: %v", ErrLatitudeOutOfRange, fe.Value()))
		case "Longitude":
			errs = append(errs, fmt.Errorf("%w: %v", ErrLongitudeOutOfRange, fe.Value()))
		default:
			errs = append(errs, fmt.Errorf("invalid %s: failed %q", fe.Field(), fe.Tag()))
		}
	}
	return errors.Join(errs...)
}

func (c *AppConfig) Location() weather.Location {
	return weather.Location{Latitude: c.Latitude, Longitude: c.Longitude}
}

func (c *AppConfig) ListenAddr() string {
	return ":" + c.Port
}

// SlogLevel parses LogLevel, defaulting to info.
func (c *AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
