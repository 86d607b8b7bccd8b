package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"breadvan/internal/config"
	"breadvan/internal/services"
)

type createScheduleInput struct {
	DriverID           uint      `json:"driver_id" binding:"required"`
	Street             string    `json:"street" binding:"required"`
	ScheduledStartTime time.Time `json:"scheduled_start_time" binding:"required"`
	ScheduledEndTime   time.Time `json:"scheduled_end_time" binding:"required"`
}

// CreateSchedule records a planned street run for a driver.
func CreateSchedule(c *gin.Context) {
	var input createScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	schedule, err := services.NewScheduleService(config.DB).CreateSchedule(
		input.DriverID, input.Street, input.ScheduledStartTime, input.ScheduledEndTime,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Schedule created successfully.",
		"schedule": schedule,
	})
}

// GetSchedule fetches a schedule by ID.
func GetSchedule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	schedule, err := services.NewScheduleService(config.DB).ScheduleByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// ListSchedulesByStreet matches the street name by substring, any case.
func ListSchedulesByStreet(c *gin.Context) {
	street := c.Query("street")
	if street == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "street query parameter is required"})
		return
	}

	schedules, err := services.NewScheduleService(config.DB).SchedulesForStreet(street)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": schedules})
}

// ListSchedulesByDriver lists every run a driver has on the books.
func ListSchedulesByDriver(c *gin.Context) {
	driverID, ok := parseIDParam(c, "driverId")
	if !ok {
		return
	}

	schedules, err := services.NewScheduleService(config.DB).SchedulesForDriver(driverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": schedules})
}

// ListUpcomingSchedules lists runs starting at or after now, soonest first.
func ListUpcomingSchedules(c *gin.Context) {
	schedules, err := services.NewScheduleService(config.DB).UpcomingSchedules()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": schedules})
}
