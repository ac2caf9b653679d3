package weather

import (
	"errors"
	"fmt"
	"math"

	"github.com/i474232898/japan-weather/internal/maybe"
)

var errNonFinite = errors.New("non-finite result")

// HeatIndex returns the feels-like temperature in Celsius. On arithmetic
// failure the input temperature is returned together with the cause.
func HeatIndex(tempC, humidity float64) (float64, error) {
	if !finite(tempC) || !finite(humidity) {
		return tempC, fmt.Errorf("heat index inputs: %w", errNonFinite)
	}

	f := tempC*9/5 + 32
	hi := 0.5 * (f + 61.0 + (f-68.0)*1.2 + humidity*0.094)

	if hi > 80 {
		// Rothfusz regression.
		hi = -42.379 +
			2.04901523*f +
			10.14333127*humidity -
			0.22475541*f*humidity -
			0.00683783*f*f -
			0.05481717*humidity*humidity +
			0.00122874*f*f*humidity +
			0.00085282*f*humidity*humidity -
			0.00000199*f*f*humidity*humidity
	}

	c := (hi - 32) * 5 / 9
	if !finite(c) {
		return tempC, fmt.Errorf("heat index: %w", errNonFinite)
	}
	return c, nil
}

// Defaults used when a comfort input is unavailable.
const (
	comfortDefaultTemp     = 20.0
	comfortDefaultHumidity = 50.0
	comfortDefaultWind     = 0.0
	comfortDefaultPrecip   = 0.0
)

// ComfortScore scores temperature, humidity, wind and precipitation.
func ComfortScore(c Current) (int, error) {
	temp := c.Temperature.ValueOrDefault(comfortDefaultTemp)
	humidity := c.Humidity.ValueOrDefault(comfortDefaultHumidity)
	wind := c.WindSpeed.ValueOrDefault(comfortDefaultWind)
	precip := c.Precipitation.ValueOrDefault(comfortDefaultPrecip)

	if !finite(temp) || !finite(humidity) || !finite(wind) || !finite(precip) {
		return 0, fmt.Errorf("comfort inputs: %w", errNonFinite)
	}

	score := 0

	switch {
	case temp >= 20 && temp <= 25:
		score += 40
	case (temp >= 15 && temp < 20) || (temp > 25 && temp <= 30):
		score += 25
	case (temp >= 10 && temp < 15) || (temp > 30 && temp <= 35):
		score += 10
	}

	switch {
	case humidity >= 40 && humidity <= 60:
		score += 30
	case (humidity >= 30 && humidity < 40) || (humidity > 60 && humidity <= 70):
		score += 20
	case (humidity >= 20 && humidity < 30) || (humidity > 70 && humidity <= 80):
		score += 10
	}

	switch {
	case wind >= 5 && wind <= 15:
		score += 20
	case wind < 5:
		score += 15
	case wind > 15 && wind <= 25:
		score += 10
	}

	if precip > 0 {
		score -= 20
	}

	return score, nil
}

// ComfortLevelFor maps the comfort score to a band.
func ComfortLevelFor(c Current) (ComfortLevel, error) {
	score, err := ComfortScore(c)
	if err != nil {
		return ComfortUnknown, err
	}
	switch {
	case score >= 70:
		return ComfortExcellent, nil
	case score >= 50:
		return ComfortGood, nil
	case score >= 30:
		return ComfortFair, nil
	default:
		return ComfortPoor, nil
	}
}

// UnavailableSatelliteProducts is the degraded form of the satellite block.
func UnavailableSatelliteProducts() SatelliteProducts {
	return SatelliteProducts{
		SeaSurfaceTemperature:  maybe.None[float64](),
		CloudTopHeight:         maybe.None[float64](),
		SolarRadiation:         maybe.None[float64](),
		AerosolOpticalDepth:    maybe.None[float64](),
		WildfireDetectionCount: maybe.None[int](),
		VegetationIndex:        maybe.None[float64](),
		ImageryStatus:          ImageryUnavailable,
		DataQuality:            QualityUnknown,
	}
}

// DeriveSatelliteProducts computes the simulated satellite fields.
// Temperature, cloud cover and precipitation are required inputs; if any is
// unavailable, or a result is not finite, the whole block degrades.
func DeriveSatelliteProducts(c Current) (SatelliteProducts, error) {
	temp, ok := c.Temperature.Get()
	if !ok {
		return UnavailableSatelliteProducts(), errors.New("temperature unavailable")
	}
	cloud, ok := c.CloudCover.Get()
	if !ok {
		return UnavailableSatelliteProducts(), errors.New("cloud cover unavailable")
	}
	precip, ok := c.Precipitation.Get()
	if !ok {
		return UnavailableSatelliteProducts(), errors.New("precipitation unavailable")
	}

	p := SatelliteProducts{
		SeaSurfaceTemperature:  maybe.Some(temp + 3.0),
		CloudTopHeight:         maybe.Some(CloudTopHeight(cloud)),
		SolarRadiation:         maybe.Some(SolarRadiation(c.UVIndex)),
		AerosolOpticalDepth:    maybe.Some(AerosolOpticalDepth(c.Visibility)),
		WildfireDetectionCount: maybe.Some(WildfireDetections(c.Temperature, c.Humidity)),
		VegetationIndex:        maybe.Some(VegetationIndex(precip)),
		ImageryStatus:          ImageryOperational,
		DataQuality:            QualityGood,
	}

	for _, v := range []maybe.Maybe[float64]{
		p.SeaSurfaceTemperature, p.CloudTopHeight, p.SolarRadiation,
		p.AerosolOpticalDepth, p.VegetationIndex,
	} {
		if !finite(v.Value()) {
			return UnavailableSatelliteProducts(), fmt.Errorf("satellite products: %w", errNonFinite)
		}
	}
	return p, nil
}

// CloudTopHeight in km from the cloud cover percentage.
func CloudTopHeight(cloudCover float64) float64 {
	switch {
	case cloudCover > 70:
		return 8.5
	case cloudCover > 30:
		return 4.2
	default:
		return 1.8
	}
}

// SolarRadiation is a W/m² proxy; an absent or zero UV index yields 200.
func SolarRadiation(uv maybe.Maybe[float64]) float64 {
	if v, ok := uv.Get(); ok && v != 0 {
		return v * 100
	}
	return 200
}

// AerosolOpticalDepth grows as visibility (metres) drops. Unknown or zero
// visibility yields the background value 0.15.
func AerosolOpticalDepth(visibility maybe.Maybe[float64]) float64 {
	v, ok := visibility.Get()
	if !ok || v == 0 {
		return 0.15
	}
	return math.Max(0.05, 20.0/(v/1000))
}

// WildfireDetections is a placeholder; both branches report zero detections.
func WildfireDetections(temp, humidity maybe.Maybe[float64]) int {
	if temp.ValueOrDefault(20) > 30 && humidity.ValueOrDefault(50) < 30 {
		return 0
	}
	return 0
}

// VegetationIndex is an NDVI-like value nudged by precipitation.
func VegetationIndex(precipitation float64) float64 {
	const base = 0.6
	if precipitation > 5 {
		return math.Min(0.85, base+0.1)
	}
	return math.Max(0.3, base-0.1)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
