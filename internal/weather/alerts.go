package weather

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Alert thresholds. Temperatures are °C, wind km/h, probability %.
const (
	HeatWarningTemp      = 35.0
	ColdWarningTemp      = -10.0
	WindWarningSpeed     = 50.0
	GustWarningSpeed     = 70.0
	RainAlertProbability = 80.0
	UVWarningIndex       = 8.0
)

// GenerateAlerts evaluates the current conditions against the fixed
// thresholds. Order is temperature, wind, precipitation, UV. Unavailable
// inputs skip their check.
func GenerateAlerts(c Current, now time.Time) []Alert {
	alerts := make([]Alert, 0)
	ts := now.UTC()

	if temp, ok := c.Temperature.Get(); ok {
		switch {
		case temp >= HeatWarningTemp:
			alerts = append(alerts, newAlert(AlertHeat, SeverityHigh, ts,
				"Extreme Heat Warning",
				fmt.Sprintf("Temperature is %s°C. Take precautions against heatstroke.", formatValue(temp))))
		case temp <= ColdWarningTemp:
			alerts = append(alerts, newAlert(AlertCold, SeverityHigh, ts,
				"Extreme Cold Warning",
				fmt.Sprintf("Temperature is %s°C. Risk of frostbite and hypothermia.", formatValue(temp))))
		}
	}

	wind, windOK := c.WindSpeed.Get()
	gusts, gustsOK := c.WindGusts.Get()
	switch {
	case windOK && wind >= WindWarningSpeed:
		alerts = append(alerts, newAlert(AlertWind, SeverityHigh, ts,
			"High Wind Warning",
			fmt.Sprintf("Wind speed is %s km/h. Avoid outdoor activities.", formatValue(wind))))
	case gustsOK && gusts >= GustWarningSpeed:
		alerts = append(alerts, newAlert(AlertGust, SeverityMedium, ts,
			"Wind Gust Alert",
			fmt.Sprintf("Wind gusts up to %s km/h expected.", formatValue(gusts))))
	}

	if prob, ok := c.PrecipitationProbability.Get(); ok && prob >= RainAlertProbability {
		alerts = append(alerts, newAlert(AlertRain, SeverityMedium, ts,
			"High Rain Probability",
			fmt.Sprintf("%s%% chance of precipitation.", formatValue(prob))))
	}

	if uv, ok := c.UVIndex.Get(); ok && uv >= UVWarningIndex {
		alerts = append(alerts, newAlert(AlertUV, SeverityMedium, ts,
			"High UV Index",
			fmt.Sprintf("UV index is %s. Use sun protection.", formatValue(uv))))
	}

	return alerts
}

// HighestSeverity returns the most severe level present, or "unknown".
func HighestSeverity(alerts []Alert) string {
	seen := make(map[Severity]bool, len(alerts))
	for _, a := range alerts {
		seen[a.Severity] = true
	}
	for _, s := range []Severity{SeverityHigh, SeverityMedium, SeverityLow} {
		if seen[s] {
			return string(s)
		}
	}
	return "unknown"
}

func newAlert(t AlertType, sev Severity, ts time.Time, title, desc string) Alert {
	return Alert{
		ID:          uuid.NewString(),
		Type:        t,
		Severity:    sev,
		Title:       title,
		Description: desc,
		Timestamp:   ts,
	}
}

// formatValue renders readings the way the upstream reports them, keeping
// one decimal for whole numbers (36 -> "36.0").
func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
