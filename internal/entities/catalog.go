package entities

import (
	"github.com/i474232898/japan-weather/internal/maybe"
	"github.com/i474232898/japan-weather/internal/weather"
)

// Description is the static part of a sensor.
type Description struct {
	Key         string
	Name        string
	Unit        string
	DeviceClass string
	Icon        string

	// missing is the error attribute reported when the value is unavailable.
	missing string
	read    func(r readContext) (any, bool)
}

// readContext is what a description reads from: the snapshot and the
// position of today on the daily axis (-1 when absent).
type readContext struct {
	snap  *weather.Snapshot
	today int
}

func (r readContext) current() weather.Current { return r.snap.Current }

func of[T any](m maybe.Maybe[T]) (any, bool) {
	v, ok := m.Get()
	return v, ok
}

func currentFloat(field func(weather.Current) maybe.Maybe[float64]) func(readContext) (any, bool) {
	return func(r readContext) (any, bool) { return of(field(r.current())) }
}

func satellite(field func(weather.SatelliteProducts) maybe.Maybe[float64]) func(readContext) (any, bool) {
	return func(r readContext) (any, bool) { return of(field(r.current().Satellite)) }
}

func dailyFloat(column string) func(readContext) (any, bool) {
	return func(r readContext) (any, bool) { return of(r.snap.Daily.Float(column, r.today)) }
}

func dailyText(column string) func(readContext) (any, bool) {
	return func(r readContext) (any, bool) { return of(r.snap.Daily.Text(column, r.today)) }
}

const (
	unitCelsius = "°C"
	unitPercent = "%"
	unitKmh     = "km/h"
	unitKm      = "km"
	unitMm      = "mm"
)

var catalog = []Description{
	{
		Key: "temperature", Name: "Current Temperature", Unit: unitCelsius, DeviceClass: "temperature",
		Icon: "mdi:thermometer", missing: "Temperature data unavailable",
		read: currentFloat(func(c weather.Current) maybe.Maybe[float64] { return c.Temperature }),
	},
	{
		Key: "apparent_temperature", Name: "Feels Like Temperature", Unit: unitCelsius, DeviceClass: "temperature",
		Icon: "mdi:thermometer-alert", missing: "Apparent temperature data unavailable",
		read: currentFloat(func(c weather.Current) maybe.Maybe[float64] { return c.ApparentTemperature }),
	},
	{
		Key: "heat_index", Name: "Heat Index", Unit: unitCelsius, DeviceClass: "temperature",
		Icon: "mdi:thermometer-plus", missing: "Heat index data unavailable",
		read: currentFloat(func(c weather.Current) maybe.Maybe[float64] { return c.HeatIndex }),
	},
	{
		Key: "humidity", Name: "Humidity", Unit: unitPercent, DeviceClass: "humidity",
		Icon: "mdi:water-percent", missing: "Humidity data unavailable",
		read: currentFloat(func(c weather.Current) maybe.Maybe[float64] { return c.Humidity }),
	},
	{
		Key: "pressure", Name: "Atmospheric Pressure", Unit: "hPa", DeviceClass: "atmospheric_pressure",
		Icon: "mdi:gauge", missing: "Pressure data unavailable",
		read: currentFloat(func(c weather.Current) maybe.Maybe[float64] { return c.Pressure }),
	},
	{
		Key: "wind_speed", Name: "Wind Speed", Unit: unitKmh, DeviceClass: "wind_speed",
		Icon: "mdi:weather-windy", missing: "Wind speed data unavailable",
		read: currentFloat(func(c weather.Current) maybe.Maybe[float64] { return c.WindSpeed }),
	},
	{
		Key: "wind_direction", Name: "Wind Direction", Unit: "°",
		Icon: "mdi:compass-outline", missing: "Wind direction data unavailable",
		read: currentFloat(func(c weather.Current) maybe.Maybe[float64] { return c.WindDirection }),
	},
	{
		Key: "wind_gusts", Name: "Wind Gusts", Unit: unitKmh, DeviceClass: "wind_speed",
		Icon: "mdi:weather-windy-variant", missing: "Wind gusts data unavailable",
		read: currentFloat(func(c weather.Current) maybe.Maybe[float64] { return c.WindGusts }),
	},
	{
		Key: "visibility", Name: "Visibility", Unit: unitKm,
		Icon: "mdi:eye-outline", missing: "Visibility data unavailable",
		read: func(r readContext) (any, bool) { return of(visibilityKm(r.current())) },
	},
	{
		Key: "cloud_cover", Name: "Cloud Coverage", Unit: unitPercent,
		Icon: "mdi:weather-cloudy", missing: "Cloud cover data unavailable",
		read: currentFloat(func(c weather.Current) maybe.Maybe[float64] { return c.CloudCover }),
	},
	{
		Key: "precipitation", Name: "Current Precipitation", Unit: unitMm, DeviceClass: "precipitation",
		Icon: "mdi:weather-rainy", missing: "Precipitation data unavailable",
		read: currentFloat(func(c weather.Current) maybe.Maybe[float64] { return c.Precipitation }),
	},
	{
		Key: "precipitation_probability", Name: "Precipitation Probability", Unit: unitPercent,
		Icon: "mdi:weather-pouring", missing: "Precipitation probability data unavailable",
		read: currentFloat(func(c weather.Current) maybe.Maybe[float64] { return c.PrecipitationProbability }),
	},
	{
		Key: "uv_index", Name: "UV Index",
		Icon: "mdi:weather-sunny-alert", missing: "UV index data unavailable",
		read: currentFloat(func(c weather.Current) maybe.Maybe[float64] { return c.UVIndex }),
	},
	{
		Key: "comfort_level", Name: "Weather Comfort Level",
		Icon: "mdi:account-check", missing: "Comfort level data unavailable",
		read: func(r readContext) (any, bool) {
			level := r.current().ComfortLevel
			return string(level), level != "" && level != weather.ComfortUnknown
		},
	},
	{
		Key: "today_max_temp", Name: "Today's Maximum Temperature", Unit: unitCelsius, DeviceClass: "temperature",
		Icon: "mdi:thermometer-chevron-up", missing: "Today's max temperature data unavailable",
		read: dailyFloat("temperature_2m_max"),
	},
	{
		Key: "today_min_temp", Name: "Today's Minimum Temperature", Unit: unitCelsius, DeviceClass: "temperature",
		Icon: "mdi:thermometer-chevron-down", missing: "Today's min temperature data unavailable",
		read: dailyFloat("temperature_2m_min"),
	},
	{
		Key: "today_precipitation_sum", Name: "Today's Total Precipitation", Unit: unitMm, DeviceClass: "precipitation",
		Icon: "mdi:cup-water", missing: "Today's precipitation sum data unavailable",
		read: dailyFloat("precipitation_sum"),
	},
	{
		Key: "sunrise", Name: "Sunrise Time", DeviceClass: "timestamp",
		Icon: "mdi:weather-sunset-up", missing: "Sunrise data unavailable",
		read: dailyText("sunrise"),
	},
	{
		Key: "sunset", Name: "Sunset Time", DeviceClass: "timestamp",
		Icon: "mdi:weather-sunset-down", missing: "Sunset data unavailable",
		read: dailyText("sunset"),
	},
	{
		Key: "weather_alerts_count", Name: "Active Weather Alerts",
		Icon: "mdi:alert-circle", missing: "Weather alerts data unavailable",
		read: func(r readContext) (any, bool) { return len(r.snap.Alerts), true },
	},
	{
		Key: "weather_condition_code", Name: "Weather Condition Code",
		Icon: "mdi:weather-partly-cloudy", missing: "Weather code data unavailable",
		read: func(r readContext) (any, bool) { return of(r.current().WeatherCode) },
	},
	{
		Key: "sea_surface_temperature", Name: "Sea Surface Temperature", Unit: unitCelsius, DeviceClass: "temperature",
		Icon: "mdi:thermometer-water", missing: "Sea surface temperature data unavailable",
		read: satellite(func(p weather.SatelliteProducts) maybe.Maybe[float64] { return p.SeaSurfaceTemperature }),
	},
	{
		Key: "cloud_top_height", Name: "Cloud Top Height", Unit: unitKm,
		Icon: "mdi:cloud-upload", missing: "Cloud top height data unavailable",
		read: satellite(func(p weather.SatelliteProducts) maybe.Maybe[float64] { return p.CloudTopHeight }),
	},
	{
		Key: "satellite_solar_radiation", Name: "Satellite Solar Radiation", Unit: "W/m²", DeviceClass: "irradiance",
		Icon: "mdi:solar-power", missing: "Satellite solar radiation data unavailable",
		read: satellite(func(p weather.SatelliteProducts) maybe.Maybe[float64] { return p.SolarRadiation }),
	},
	{
		Key: "aerosol_optical_depth", Name: "Aerosol Optical Depth", Unit: "AOD",
		Icon: "mdi:smog", missing: "Aerosol optical depth data unavailable",
		read: satellite(func(p weather.SatelliteProducts) maybe.Maybe[float64] { return p.AerosolOpticalDepth }),
	},
	{
		Key: "wildfire_detection_count", Name: "Wildfire Detection Count", Unit: "detections",
		Icon: "mdi:fire", missing: "Wildfire detection count data unavailable",
		read: func(r readContext) (any, bool) { return of(r.current().Satellite.WildfireDetectionCount) },
	},
	{
		Key: "vegetation_index", Name: "Vegetation Index (NDVI)", Unit: "NDVI",
		Icon: "mdi:leaf", missing: "Vegetation index data unavailable",
		read: satellite(func(p weather.SatelliteProducts) maybe.Maybe[float64] { return p.VegetationIndex }),
	},
	{
		Key: "satellite_imagery_status", Name: "Satellite Imagery Status",
		Icon: "mdi:satellite-variant", missing: "Satellite imagery status data unavailable",
		read: func(r readContext) (any, bool) {
			status := r.current().Satellite.ImageryStatus
			return status, status != ""
		},
	},
	{
		Key: "satellite_data_quality", Name: "Satellite Data Quality",
		Icon: "mdi:check-circle", missing: "Satellite data quality data unavailable",
		read: func(r readContext) (any, bool) {
			quality := r.current().Satellite.DataQuality
			return quality, quality != ""
		},
	},
}

// dailyKeys need today's position on the daily axis.
var dailyKeys = map[string]bool{
	"today_max_temp":          true,
	"today_min_temp":          true,
	"today_precipitation_sum": true,
	"sunrise":                 true,
	"sunset":                  true,
}

// Catalog lists the plain sensors in display order.
func Catalog() []Description {
	return append([]Description(nil), catalog...)
}

func visibilityKm(c weather.Current) maybe.Maybe[float64] {
	v, ok := c.Visibility.Get()
	if !ok {
		return maybe.None[float64]()
	}
	return maybe.Some(v / 1000)
}
