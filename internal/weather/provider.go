package weather

import (
	"context"
)

// ForecastPayload is the decoded upstream response before normalization.
// Hourly and Daily hold parallel arrays keyed by variable name, including "time".
type ForecastPayload struct {
	Hourly         map[string][]any `json:"hourly"`
	Daily          map[string][]any `json:"daily"`
	CurrentWeather map[string]any   `json:"current_weather"`
}

// Provider abstracts the upstream forecast source.
// Implementations issue one request per call and must not retry.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (ForecastPayload, error)
	Close() error
}

// Store is the publication point for the current snapshot.
type Store interface {
	Publish(snapshot *Snapshot)
	Latest() (*Snapshot, error)
}
