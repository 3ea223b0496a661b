package controllers

import (
	"greenhouse/config"
	"greenhouse/models"

	"gorm.io/gorm"
)

// MigrateModels runs the database migrations and seeds the plant catalog.
func MigrateModels(db *gorm.DB) error {
	config.DB = db
	if err := db.AutoMigrate(&models.User{}, &models.Plant{}, &models.Pairing{}, &models.Measurement{}); err != nil {
		return err
	}
	return seedPlants(db)
}

// seedPlants loads the reference catalog on first start. Plants are
// read-only data; an already populated table is left alone.
func seedPlants(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Plant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	plants := defaultPlants()
	return db.Create(&plants).Error
}

func defaultPlants() []models.Plant {
	return []models.Plant{
		{
			Name:       "Basil",
			AirTempMin: f(18), AirTempMax: f(30),
			AirHumMin: f(40), AirHumMax: f(60),
			WaterTempMin: f(18), WaterTempMax: f(25),
			SoilMin: f(40), SoilMax: f(70),
			LightMin: f(200), LightMax: f(800),
		},
		{
			Name:       "Cucumber",
			AirTempMin: f(20), AirTempMax: f(28),
			AirHumMin: f(60), AirHumMax: f(80),
			WaterTempMin: f(20), WaterTempMax: f(26),
			SoilMin: f(50), SoilMax: f(80),
			LightMin: f(300), LightMax: f(900),
		},
		{
			Name:       "Eggplant",
			AirTempMin: f(22), AirTempMax: f(30),
			AirHumMin: f(50), AirHumMax: f(70),
			WaterTempMin: f(20), WaterTempMax: f(27),
			SoilMin: f(40), SoilMax: f(75),
			LightMin: f(400), LightMax: f(1000),
		},
		{
			Name:       "Lettuce",
			AirTempMin: f(10), AirTempMax: f(21),
			AirHumMin: f(50), AirHumMax: f(70),
			WaterTempMin: f(15), WaterTempMax: f(22),
			SoilMin: f(50), SoilMax: f(80),
			LightMin: f(150), LightMax: f(500),
		},
		{
			Name:       "Strawberry",
			AirTempMin: f(15), AirTempMax: f(26),
			AirHumMin: f(60), AirHumMax: f(80),
			WaterTempMin: f(16), WaterTempMax: f(24),
			SoilMin: f(45), SoilMax: f(75),
			LightMin: f(250), LightMax: f(850),
		},
		{
			Name:       "Tomato",
			AirTempMin: f(18), AirTempMax: f(27),
			AirHumMin: f(55), AirHumMax: f(75),
			AirPressMin: f(980), AirPressMax: f(1040),
			WaterTempMin: f(18), WaterTempMax: f(26),
			SoilMin: f(40), SoilMax: f(70),
			LightMin: f(350), LightMax: f(950),
		},
	}
}

func f(v float64) *float64 { return &v }
