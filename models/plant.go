package models

// Plant is read-only reference data: a name plus the acceptable [min, max]
// range for each tracked metric. A nil bound means no norm is defined for
// that side of the range.
type Plant struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"unique;not null"`

	AirTempMin   *float64 `json:"air_temp_min"`
	AirTempMax   *float64 `json:"air_temp_max"`
	AirHumMin    *float64 `json:"air_hum_min"`
	AirHumMax    *float64 `json:"air_hum_max"`
	AirPressMin  *float64 `json:"air_press_min"`
	AirPressMax  *float64 `json:"air_press_max"`
	GasMin       *float64 `json:"gas_min"`
	GasMax       *float64 `json:"gas_max"`
	WaterTempMin *float64 `json:"water_temp_min"`
	WaterTempMax *float64 `json:"water_temp_max"`
	SoilMin      *float64 `json:"soil_min"`
	SoilMax      *float64 `json:"soil_max"`
	LightMin     *float64 `json:"light_min"`
	LightMax     *float64 `json:"light_max"`
}
