package main

import (
	"context"
	"log"
	"os"

	"greenhouse/config"
	"greenhouse/controllers"
	"greenhouse/middlewares"
	"greenhouse/mqtt"
	"greenhouse/retention"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load environment variables
	godotenv.Load()
	config.LoadSettings()

	// Connect to PostgreSQL database and migrate models
	if err := config.ConnectDatabase(os.Getenv("DATABASE_URL")); err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := controllers.MigrateModels(config.DB); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	// Device feed from the MQTT broker (optional; HTTP ingest always works)
	if broker := os.Getenv("MQTT_BROKER_URL"); broker != "" {
		topic := os.Getenv("MQTT_TOPIC")
		if topic == "" {
			topic = "greenhouse/#"
		}
		worker, err := mqtt.NewWorker(broker, "greenhouse-backend", topic)
		if err != nil {
			log.Fatal("Failed to connect to MQTT broker: ", err)
		}
		if err := worker.Subscribe(); err != nil {
			log.Fatal("Failed to subscribe to MQTT topic: ", err)
		}
		defer worker.Stop()
	}

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	retention.StartSweeper(sweepCtx, config.RetentionDays)

	// Set up Gin router with CORS configuration
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Public routes
	r.GET("/api/health", controllers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/api/register", controllers.Signup)
	r.POST("/api/login", controllers.Login)
	r.GET("/api/weather", controllers.GetWeather)
	r.GET("/api/plants", controllers.ListPlants)
	r.GET("/api/plants/:id", controllers.GetPlant)

	// Device-facing ingestion (devices carry no user token)
	r.POST("/api/measurements", controllers.ReceiveData)

	// Protected routes using auth middleware
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/profile", controllers.GetProfile)
	auth.GET("/user/device", controllers.GetPairing)
	auth.POST("/user/device", controllers.SetPairing)
	auth.DELETE("/user/device", controllers.ClearPairing)
	auth.GET("/user/device/status", controllers.GetDeviceStatus)
	auth.GET("/measurements/:device_id", controllers.GetHistory)
	auth.GET("/measurements/:device_id/latest", controllers.GetLatest)
	auth.GET("/measurements/:device_id/csv", controllers.DownloadCSV)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
