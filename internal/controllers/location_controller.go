package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"breadvan/internal/config"
	"breadvan/internal/services"
)

type updateLocationInput struct {
	Location string `json:"location" binding:"required"`
}

// UpdateDriverLocation overwrites a driver's last-known position. The
// location is free text, or a GeoJSON point when the client has coordinates.
func UpdateDriverLocation(c *gin.Context) {
	driverID, ok := parseIDParam(c, "driverId")
	if !ok {
		return
	}

	var input updateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	user, err := services.NewLocationService(config.DB).UpdateDriverLocation(driverID, input.Location)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Driver location updated successfully.",
		"driver":  prepareUserResponse(user),
	})
}

// GetDriverLocation returns the last-known position snapshot for a driver.
func GetDriverLocation(c *gin.Context) {
	driverID, ok := parseIDParam(c, "driverId")
	if !ok {
		return
	}

	snapshot, err := services.NewLocationService(config.DB).DriverLocation(driverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": snapshot})
}

// ListDriverLocations returns snapshots for all drivers that have reported.
func ListDriverLocations(c *gin.Context) {
	snapshots, err := services.NewLocationService(config.DB).DriversWithLocation()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snapshots})
}

// GetDriverLocationHistory returns a driver's full trail, newest first.
func GetDriverLocationHistory(c *gin.Context) {
	driverID, ok := parseIDParam(c, "driverId")
	if !ok {
		return
	}

	history, err := services.NewLocationService(config.DB).HistoryForDriver(driverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": history})
}
