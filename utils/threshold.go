package utils

import "greenhouse/models"

// Status of a metric relative to a plant's norm range.
const (
	StatusBelow   = "below"
	StatusWithin  = "within"
	StatusAbove   = "above"
	StatusUnknown = "unknown"
)

// EvaluateThresholds compares a measurement against a plant's norms and
// returns one verdict per metric. A metric with no reading, or whose norm
// pair is incomplete, is unknown rather than a guess.
func EvaluateThresholds(m models.Measurement, p models.Plant) map[string]string {
	return map[string]string{
		"air_temp":   evaluateMetric(m.AirTemp, p.AirTempMin, p.AirTempMax),
		"air_hum":    evaluateMetric(m.AirHum, p.AirHumMin, p.AirHumMax),
		"air_press":  evaluateMetric(m.AirPress, p.AirPressMin, p.AirPressMax),
		"gas":        evaluateMetric(m.Gas, p.GasMin, p.GasMax),
		"water_temp": evaluateMetric(m.WaterTemp, p.WaterTempMin, p.WaterTempMax),
		"soil":       evaluateMetric(m.Soil, p.SoilMin, p.SoilMax),
		"light":      evaluateMetric(m.Light, p.LightMin, p.LightMax),
	}
}

func evaluateMetric(value, min, max *float64) string {
	if value == nil || min == nil || max == nil {
		return StatusUnknown
	}
	if *value < *min {
		return StatusBelow
	}
	if *value > *max {
		return StatusAbove
	}
	return StatusWithin
}
