package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"breadvan/internal/config"
	"breadvan/internal/models"
	"breadvan/internal/services"
)

// GetUser fetches a single account by ID, specialization included.
func GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := services.NewUserService(config.DB).GetUserByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": prepareUserResponse(user)})
}

// ListUsers lists accounts. ?type=residents or ?type=drivers narrows the set.
func ListUsers(c *gin.Context) {
	svc := services.NewUserService(config.DB)

	var (
		users []models.User
		err   error
	)
	switch c.Query("type") {
	case "residents":
		users, err = svc.ListResidents()
	case "drivers":
		users, err = svc.ListDrivers()
	default:
		users, err = svc.ListUsers()
	}
	if err != nil {
		respondError(c, err)
		return
	}

	payload := make([]gin.H, 0, len(users))
	for i := range users {
		payload = append(payload, prepareUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": payload})
}

// DeleteUser removes an account and everything owned by it: a driver's
// schedules with their stop requests, or a resident's stop requests.
func DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewUserService(config.DB).DeleteUser(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User and owned records deleted successfully."})
}
