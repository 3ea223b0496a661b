package controllers

import (
	"net/http"

	"greenhouse/config"
	"greenhouse/models"

	"github.com/gin-gonic/gin"
)

// ListPlants returns the catalog ordered by name.
func ListPlants(c *gin.Context) {
	ctx, cancel := config.StoreContext(c.Request.Context())
	defer cancel()

	var plants []models.Plant
	if err := config.DB.WithContext(ctx).Order("name").Find(&plants).Error; err != nil {
		respondStoreError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, plants)
}

// GetPlant returns one plant with its norms.
func GetPlant(c *gin.Context) {
	ctx, cancel := config.StoreContext(c.Request.Context())
	defer cancel()

	var plant models.Plant
	if err := config.DB.WithContext(ctx).First(&plant, "id = ?", c.Param("id")).Error; err != nil {
		respondStoreError(c, err, "Plant not found")
		return
	}

	c.JSON(http.StatusOK, plant)
}
