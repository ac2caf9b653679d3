package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Latitude != DefaultLatitude || cfg.Longitude != DefaultLongitude {
		t.Errorf("unexpected location %v,%v", cfg.Latitude, cfg.Longitude)
	}
	if cfg.FetchInterval != 600*time.Second {
		t.Errorf("unexpected interval %v", cfg.FetchInterval)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("unexpected timeout %v", cfg.HTTPTimeout)
	}
	if cfg.TrendHistory != 6 {
		t.Errorf("unexpected trend history %d", cfg.TrendHistory)
	}
	if cfg.ListenAddr() != ":8080" {
		t.Errorf("unexpected listen address %q", cfg.ListenAddr())
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("unexpected level %v", cfg.SlogLevel())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("WEATHER_LATITUDE", "43.0642")
	t.Setenv("WEATHER_LONGITUDE", "141.3469")
	t.Setenv("FETCH_INTERVAL", "5m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Location().Latitude != 43.0642 || cfg.Location().Longitude != 141.3469 {
		t.Errorf("unexpected location %+v", cfg.Location())
	}
	if cfg.FetchInterval != 5*time.Minute {
		t.Errorf("unexpected interval %v", cfg.FetchInterval)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("unexpected level %v", cfg.SlogLevel())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "latitude: 26.2124\nlongitude: 127.6809\nport: \"9090\"\ntrend_history: 12\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Latitude != 26.2124 || cfg.Port != "9090" || cfg.TrendHistory != 12 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		want      []error
	}{
		{"inside", 35.0, 139.0, nil},
		{"lower bounds", 24.0, 123.0, nil},
		{"upper bounds", 46.0, 146.0, nil},
		{"latitude south", 23.9, 139.0, []error{ErrLatitudeOutOfRange}},
		{"longitude east", 35.0, 146.5, []error{ErrLongitudeOutOfRange}},
		{"both", 51.5, -0.12, []error{ErrLatitudeOutOfRange, ErrLongitudeOutOfRange}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Latitude = tt.latitude
			cfg.Longitude = tt.longitude

			err := cfg.Validate()
			if len(tt.want) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("expected %v in %v", want, err)
				}
			}
		})
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := validConfig()
	cfg.TrendHistory = 2
	cfg.FetchInterval = 0
	cfg.LogLevel = "verbose"

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadRejectsOutOfRangeEnvironment(t *testing.T) {
	t.Setenv("WEATHER_LATITUDE", "10")
	if _, err := Load(t.TempDir()); !errors.Is(err, ErrLatitudeOutOfRange) {
		t.Fatalf("expected ErrLatitudeOutOfRange, got %v", err)
	}
}

func validConfig() *AppConfig {
	return &AppConfig{
		Latitude:         DefaultLatitude,
		Longitude:        DefaultLongitude,
		FetchInterval:    10 * time.Minute,
		HTTPTimeout:      30 * time.Second,
		TrendHistory:     6,
		OpenMeteoBaseURL: "https://api.open-meteo.com/v1/jma",
		Port:             "8080",
		LogLevel:         "info",
	}
}
