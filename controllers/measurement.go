package controllers

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"greenhouse/config"
	"greenhouse/models"
	"greenhouse/utils"

	"github.com/gin-gonic/gin"
)

const defaultWindowDays = 30

// ReceiveData ingests one device measurement. The write is a single atomic
// insert with no retry; identical submissions create distinct rows.
func ReceiveData(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.IngestRejected.WithLabelValues("malformed_json").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	m, err := utils.MeasurementFromPayload(payload, config.StrictNumericIngest)
	if err != nil {
		utils.IngestRejected.WithLabelValues("invalid_payload").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := config.StoreContext(c.Request.Context())
	defer cancel()

	if err := config.DB.WithContext(ctx).Create(m).Error; err != nil {
		utils.IngestRejected.WithLabelValues("store").Inc()
		respondStoreError(c, err, "")
		return
	}

	utils.IngestedTotal.WithLabelValues("http").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetHistory streams a device's measurements inside the trailing window,
// ascending by time. Rows are encoded as they come off the cursor; a large
// window never sits in memory as one slice.
func GetHistory(c *gin.Context) {
	deviceID := c.Param("device_id")

	days, ok := windowDays(c)
	if !ok {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	ctx, cancel := config.StoreContext(c.Request.Context())
	defer cancel()

	rows, err := config.DB.WithContext(ctx).Model(&models.Measurement{}).
		Where("device_id = ? AND time >= ?", deviceID, cutoff).
		Order("time asc").Rows()
	if err != nil {
		respondStoreError(c, err, "")
		return
	}
	defer rows.Close()

	c.Header("Content-Type", "application/json")
	if err := writeMeasurementArray(c.Writer, rows); err != nil {
		// Headers are gone, so no error status is possible. The array is
		// left unterminated rather than passed off as a complete window.
		log.Printf("history stream for %s aborted: %v", deviceID, err)
	}
}

// writeMeasurementArray encodes the cursor as a JSON array. The closing
// bracket is only written after a clean pass over every row, so a cursor
// fault leaves the output unparseable instead of silently short.
func writeMeasurementArray(w io.Writer, rows *sql.Rows) error {
	io.WriteString(w, "[")
	enc := json.NewEncoder(w)
	first := true
	for rows.Next() {
		var m models.Measurement
		if err := config.DB.ScanRows(rows, &m); err != nil {
			return err
		}
		if !first {
			io.WriteString(w, ",")
		}
		first = false
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "]")
	return err
}

// GetLatest returns the most recent reading for a device, used for live
// dashboard tiles.
func GetLatest(c *gin.Context) {
	ctx, cancel := config.StoreContext(c.Request.Context())
	defer cancel()

	var m models.Measurement
	if err := config.DB.WithContext(ctx).Where("device_id = ?", c.Param("device_id")).
		Order("time desc").First(&m).Error; err != nil {
		respondStoreError(c, err, "No measurements for device")
		return
	}

	c.JSON(http.StatusOK, m)
}

// DownloadCSV sends the windowed history as a CSV file.
func DownloadCSV(c *gin.Context) {
	deviceID := c.Param("device_id")

	days, ok := windowDays(c)
	if !ok {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	ctx, cancel := config.StoreContext(c.Request.Context())
	defer cancel()

	rows, err := config.DB.WithContext(ctx).Model(&models.Measurement{}).
		Where("device_id = ? AND time >= ?", deviceID, cutoff).
		Order("time asc").Rows()
	if err != nil {
		respondStoreError(c, err, "")
		return
	}
	defer rows.Close()

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=measurements.csv")
	if err := writeMeasurementCSV(c.Writer, rows); err != nil {
		// The buffered tail is dropped, so the export ends mid-stream
		// instead of looking complete.
		log.Printf("csv export for %s aborted: %v", deviceID, err)
	}
}

func writeMeasurementCSV(w io.Writer, rows *sql.Rows) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"time", "air_temp", "air_hum", "air_press", "gas", "water_temp", "soil", "light"}); err != nil {
		return err
	}
	for rows.Next() {
		var m models.Measurement
		if err := config.DB.ScanRows(rows, &m); err != nil {
			return err
		}
		record := []string{
			m.Time.Format("2006-01-02 15:04:05"),
			formatMetric(m.AirTemp),
			formatMetric(m.AirHum),
			formatMetric(m.AirPress),
			formatMetric(m.Gas),
			formatMetric(m.WaterTemp),
			formatMetric(m.Soil),
			formatMetric(m.Light),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// GetDeviceStatus evaluates the latest reading of the user's paired device
// against the paired plant's norms. Nothing is cached: the verdict is
// recomputed on every call.
func GetDeviceStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := config.StoreContext(c.Request.Context())
	defer cancel()

	var pairing models.Pairing
	if err := config.DB.WithContext(ctx).Where("user_id = ?", userID).First(&pairing).Error; err != nil {
		respondStoreError(c, err, "No device paired")
		return
	}
	if pairing.PlantID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No plant selected for device"})
		return
	}

	var plant models.Plant
	if err := config.DB.WithContext(ctx).First(&plant, *pairing.PlantID).Error; err != nil {
		respondStoreError(c, err, "Plant not found")
		return
	}

	var m models.Measurement
	if err := config.DB.WithContext(ctx).Where("device_id = ?", pairing.DeviceUID).
		Order("time desc").First(&m).Error; err != nil {
		respondStoreError(c, err, "No measurements for device")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"device_uid": pairing.DeviceUID,
		"plant_id":   plant.ID,
		"time":       m.Time,
		"status":     utils.EvaluateThresholds(m, plant),
	})
}

func windowDays(c *gin.Context) (int, bool) {
	days := defaultWindowDays
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return 0, false
		}
		days = parsed
	}
	return days, true
}

func formatMetric(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
