package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"greenhouse/models"
)

// ErrMissingDeviceID marks a measurement payload without a usable device_id.
var ErrMissingDeviceID = errors.New("device_id is required")

// MeasurementFromPayload builds a measurement row from a decoded device
// payload. The timestamp is assigned here, at the trust boundary. Absent
// metrics stay NULL. With strict false a present-but-non-numeric value is
// also stored as NULL; with strict true it aborts the whole submission.
func MeasurementFromPayload(payload map[string]interface{}, strict bool) (*models.Measurement, error) {
	deviceID, _ := payload["device_id"].(string)
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	m := &models.Measurement{DeviceID: deviceID, Time: time.Now()}

	fields := map[string]**float64{
		"air_temp":   &m.AirTemp,
		"air_hum":    &m.AirHum,
		"air_press":  &m.AirPress,
		"gas":        &m.Gas,
		"water_temp": &m.WaterTemp,
		"soil":       &m.Soil,
		"light":      &m.Light,
	}
	for name, field := range fields {
		raw, ok := payload[name]
		if !ok || raw == nil {
			continue
		}
		value, ok := toFloat(raw)
		if !ok {
			if strict {
				return nil, fmt.Errorf("%s must be numeric", name)
			}
			continue
		}
		*field = &value
	}

	return m, nil
}

// toFloat accepts JSON numbers plus numeric strings, which some firmwares
// send for every channel.
func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
