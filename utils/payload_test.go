package utils

import (
	"errors"
	"testing"
	"time"
)

func TestMeasurementFromPayloadRequiresDeviceID(t *testing.T) {
	cases := []map[string]interface{}{
		{},
		{"device_id": ""},
		{"device_id": "   "},
		{"device_id": 42.0},
		{"soil": 50.0},
	}
	for _, payload := range cases {
		if _, err := MeasurementFromPayload(payload, false); !errors.Is(err, ErrMissingDeviceID) {
			t.Errorf("payload %v: err = %v, want ErrMissingDeviceID", payload, err)
		}
	}
}

func TestMeasurementFromPayloadAssignsServerTime(t *testing.T) {
	before := time.Now()
	m, err := MeasurementFromPayload(map[string]interface{}{"device_id": "dev-1"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Time.Before(before) || m.Time.After(time.Now()) {
		t.Fatalf("timestamp %v not assigned at ingestion", m.Time)
	}
}

func TestMeasurementFromPayloadPartialMetrics(t *testing.T) {
	m, err := MeasurementFromPayload(map[string]interface{}{
		"device_id": "dev-1",
		"soil":      42.5,
		"light":     nil,
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Soil == nil || *m.Soil != 42.5 {
		t.Fatalf("soil = %v, want 42.5", m.Soil)
	}
	for name, v := range map[string]*float64{
		"air_temp": m.AirTemp, "air_hum": m.AirHum, "air_press": m.AirPress,
		"gas": m.Gas, "water_temp": m.WaterTemp, "light": m.Light,
	} {
		if v != nil {
			t.Errorf("%s = %v, want nil for absent metric", name, *v)
		}
	}
}

func TestMeasurementFromPayloadNumericStrings(t *testing.T) {
	m, err := MeasurementFromPayload(map[string]interface{}{
		"device_id": "dev-1",
		"air_temp":  "21.5",
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.AirTemp == nil || *m.AirTemp != 21.5 {
		t.Fatalf("air_temp = %v, want 21.5", m.AirTemp)
	}
}

func TestMeasurementFromPayloadNumericPolicy(t *testing.T) {
	payload := map[string]interface{}{"device_id": "dev-1", "soil": "garbage"}

	// Lenient: garbage stored as null.
	m, err := MeasurementFromPayload(payload, false)
	if err != nil {
		t.Fatalf("lenient mode errored: %v", err)
	}
	if m.Soil != nil {
		t.Fatalf("lenient mode kept a value: %v", *m.Soil)
	}

	// Strict: the whole submission is rejected.
	if _, err := MeasurementFromPayload(payload, true); err == nil {
		t.Fatal("strict mode accepted a non-numeric metric")
	}
}
