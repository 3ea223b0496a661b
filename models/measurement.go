package models

import "time"

// Measurement is one append-only telemetry row. Time is assigned by the
// server at ingestion, never taken from the device, so rows for a device are
// monotonic regardless of device clock skew. Each metric is independently
// nullable: sensors that report only a subset of channels are normal.
type Measurement struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	DeviceID  string    `json:"device_id" gorm:"index:idx_measurements_device_time;not null"`
	Time      time.Time `json:"time" gorm:"index:idx_measurements_device_time"`
	AirTemp   *float64  `json:"air_temp"`
	AirHum    *float64  `json:"air_hum"`
	AirPress  *float64  `json:"air_press"`
	Gas       *float64  `json:"gas"`
	WaterTemp *float64  `json:"water_temp"`
	Soil      *float64  `json:"soil"`
	Light     *float64  `json:"light"`
}
