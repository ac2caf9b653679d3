package weather

import (
	"time"

	"github.com/i474232898/japan-weather/internal/maybe"
)

// SourceJMAOpenMeteo labels data coming from the JMA model of Open-Meteo.
const SourceJMAOpenMeteo = "JMA Open-Meteo"

// Location is the fixed point the pipeline refreshes weather for.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ComfortLevel is a coarse human comfort band.
type ComfortLevel string

const (
	ComfortExcellent ComfortLevel = "excellent"
	ComfortGood      ComfortLevel = "good"
	ComfortFair      ComfortLevel = "fair"
	ComfortPoor      ComfortLevel = "poor"
	ComfortUnknown   ComfortLevel = "unknown"
)

const (
	ImageryOperational = "operational"
	ImageryUnavailable = "unavailable"

	QualityGood    = "good"
	QualityUnknown = "unknown"
)

// SatelliteProducts are synthetic values computed from the current
// conditions. None of them is a satellite measurement.
type SatelliteProducts struct {
	SeaSurfaceTemperature  maybe.Maybe[float64] `json:"seaSurfaceTemperatureC"`
	CloudTopHeight         maybe.Maybe[float64] `json:"cloudTopHeightKm"`
	SolarRadiation         maybe.Maybe[float64] `json:"solarRadiationWm2"`
	AerosolOpticalDepth    maybe.Maybe[float64] `json:"aerosolOpticalDepth"`
	WildfireDetectionCount maybe.Maybe[int]     `json:"wildfireDetectionCount"`
	VegetationIndex        maybe.Maybe[float64] `json:"vegetationIndex"`

	ImageryStatus string `json:"imageryStatus"`
	DataQuality   string `json:"dataQuality"`
}

// Current holds the point-in-time conditions of a snapshot.
// Wind speeds are km/h, visibility is metres, pressure is hPa.
type Current struct {
	Temperature              maybe.Maybe[float64] `json:"temperatureC"`
	ApparentTemperature      maybe.Maybe[float64] `json:"apparentTemperatureC"`
	HeatIndex                maybe.Maybe[float64] `json:"heatIndexC"`
	Humidity                 maybe.Maybe[float64] `json:"humidityPercent"`
	Pressure                 maybe.Maybe[float64] `json:"pressureHpa"`
	WindSpeed                maybe.Maybe[float64] `json:"windSpeedKmh"`
	WindDirection            maybe.Maybe[float64] `json:"windDirectionDeg"`
	WindGusts                maybe.Maybe[float64] `json:"windGustsKmh"`
	Visibility               maybe.Maybe[float64] `json:"visibilityM"`
	CloudCover               maybe.Maybe[float64] `json:"cloudCoverPercent"`
	Precipitation            maybe.Maybe[float64] `json:"precipitationMm"`
	PrecipitationProbability maybe.Maybe[float64] `json:"precipitationProbability"`
	UVIndex                  maybe.Maybe[float64] `json:"uvIndex"`
	WeatherCode              maybe.Maybe[int]     `json:"weatherCode"`
	ObservedAt               maybe.Maybe[string]  `json:"observedAt"`

	ComfortLevel ComfortLevel      `json:"comfortLevel"`
	Satellite    SatelliteProducts `json:"satellite"`
}

// Severity of a generated alert.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// AlertType identifies the threshold that produced an alert.
type AlertType string

const (
	AlertHeat AlertType = "heat_warning"
	AlertCold AlertType = "cold_warning"
	AlertWind AlertType = "wind_warning"
	AlertGust AlertType = "gust_warning"
	AlertRain AlertType = "rain_alert"
	AlertUV   AlertType = "uv_warning"
)

// Alert is derived from the current conditions on every refresh.
type Alert struct {
	ID          string    `json:"id"`
	Type        AlertType `json:"type"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// FieldIssue records a derived field that degraded to unavailable during a refresh.
type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Snapshot is the immutable result of one refresh cycle.
type Snapshot struct {
	Location   Location     `json:"location"`
	Current    Current      `json:"current"`
	Hourly     Series       `json:"hourly"`
	Daily      Series       `json:"daily"`
	Alerts     []Alert      `json:"alerts"`
	Sources    []string     `json:"sources"`
	LastUpdate time.Time    `json:"lastUpdate"` // always UTC
	Degraded   []FieldIssue `json:"degraded,omitempty"`
}
