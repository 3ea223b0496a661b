package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker"
)

type weatherUpstream struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Cod int `json:"cod"`
}

var weatherBreaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
	Name:    "openweathermap",
	Timeout: 30 * time.Second,
	ReadyToTrip: func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	},
})

var weatherClient = &http.Client{Timeout: 5 * time.Second}

var weatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// weatherBodyLimit caps how much of the upstream response gets decoded.
const weatherBodyLimit = 1 << 20

// GetWeather proxies current conditions from OpenWeatherMap. A run of
// upstream failures opens the breaker so a dead API is not hammered on every
// dashboard load.
func GetWeather(c *gin.Context) {
	city := c.DefaultQuery("city", "Kosice")
	apiKey := os.Getenv("WEATHER_KEY")
	if apiKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Weather API key missing"})
		return
	}

	result, err := weatherBreaker.Execute(func() (interface{}, error) {
		return fetchWeather(city, apiKey)
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Weather API failed"})
		return
	}

	data := result.(*weatherUpstream)
	resp := gin.H{
		"city":     data.Name,
		"temp":     data.Main.Temp,
		"humidity": data.Main.Humidity,
		"wind":     data.Wind.Speed,
		"time":     time.Now().UTC().Format(time.RFC3339),
	}
	if len(data.Weather) > 0 {
		resp["description"] = data.Weather[0].Description
		resp["icon"] = data.Weather[0].Icon
	}

	c.JSON(http.StatusOK, resp)
}

func fetchWeather(city, apiKey string) (*weatherUpstream, error) {
	endpoint := fmt.Sprintf("%s?q=%s&units=metric&appid=%s",
		weatherBaseURL, url.QueryEscape(city), apiKey)
	resp, err := weatherClient.Get(endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API returned status %s", resp.Status)
	}

	var data weatherUpstream
	if err := json.NewDecoder(io.LimitReader(resp.Body, weatherBodyLimit)).Decode(&data); err != nil {
		return nil, err
	}
	if data.Cod != http.StatusOK {
		return nil, fmt.Errorf("weather API returned code %d", data.Cod)
	}
	return &data, nil
}
