package controllers

import (
	"net/http"
	"strings"

	"greenhouse/config"
	"greenhouse/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

type pairingRequest struct {
	DeviceName string `json:"deviceName"`
	DeviceUID  string `json:"deviceUid"`
	PlantID    *uint  `json:"plantId"`
}

// GetPairing returns the device pairing for the current user.
func GetPairing(c *gin.Context) {
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

	c.JSON(http.StatusOK, pairing)
}

// SetPairing replaces the user's pairing as one atomic upsert on the user_id
// uniqueness constraint. All fields are overwritten, never merged, so a
// request with no plantId clears the plant. Concurrent setters cannot create
// duplicate rows; the last commit wins on value.
func SetPairing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req pairingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	req.DeviceName = strings.TrimSpace(req.DeviceName)
	req.DeviceUID = strings.TrimSpace(req.DeviceUID)
	if req.DeviceName == "" || req.DeviceUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deviceName and deviceUid are required"})
		return
	}

	ctx, cancel := config.StoreContext(c.Request.Context())
	defer cancel()

	pairing := models.Pairing{
		UserID:     userID,
		DeviceName: req.DeviceName,
		DeviceUID:  req.DeviceUID,
		PlantID:    req.PlantID,
	}
	if err := config.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"device_name", "device_uid", "plant_id", "updated_at"}),
	}).Create(&pairing).Error; err != nil {
		respondStoreError(c, err, "")
		return
	}

	// Re-read so the response carries the stored row, id and updated_at included.
	if err := config.DB.WithContext(ctx).Where("user_id = ?", userID).First(&pairing).Error; err != nil {
		respondStoreError(c, err, "No device paired")
		return
	}

	c.JSON(http.StatusOK, pairing)
}

// ClearPairing deletes the pairing row. Measurements already ingested under
// the device identifier stay queryable.
func ClearPairing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := config.StoreContext(c.Request.Context())
	defer cancel()

	if err := config.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Pairing{}).Error; err != nil {
		respondStoreError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
