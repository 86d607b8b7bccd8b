package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"breadvan/internal/config"
	"breadvan/internal/services"
)

type createStopRequestInput struct {
	ResidentID uint `json:"resident_id" binding:"required"`
	ScheduleID uint `json:"schedule_id" binding:"required"`
}

// CreateStopRequest asks for a stop during a schedule. The service enforces
// the one-hour lead time and the one-request-per-schedule rule.
func CreateStopRequest(c *gin.Context) {
	var input createStopRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	request, err := services.NewStopRequestService(config.DB).CreateStopRequest(input.ResidentID, input.ScheduleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Stop request created successfully.",
		"stop_request": request,
	})
}

// ListStopRequestsByResident lists a resident's requests.
func ListStopRequestsByResident(c *gin.Context) {
	residentID, ok := parseIDParam(c, "residentId")
	if !ok {
		return
	}

	requests, err := services.NewStopRequestService(config.DB).RequestsByResident(residentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": requests})
}

// ListStopRequestsBySchedule lists the stops requested against a schedule.
func ListStopRequestsBySchedule(c *gin.Context) {
	scheduleID, ok := parseIDParam(c, "scheduleId")
	if !ok {
		return
	}

	requests, err := services.NewStopRequestService(config.DB).RequestsBySchedule(scheduleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": requests})
}

// UpdateStopRequestStatus overwrites a request's status.
func UpdateStopRequestStatus(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	request, err := services.NewStopRequestService(config.DB).UpdateStatus(requestID, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Stop request status updated successfully.",
		"stop_request": request,
	})
}
