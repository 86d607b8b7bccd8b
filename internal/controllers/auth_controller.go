package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"breadvan/internal/config"
	"breadvan/internal/middleware"
	"breadvan/internal/models"
	"breadvan/internal/services"
)

type signupInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	UserType string `json:"user_type" binding:"required"`

	// Resident-only
	HomeAddress string `json:"home_address"`

	// Driver-only
	VehicleType  string `json:"vehicle_type"`
	LicensePlate string `json:"license_plate"`
}

// SignupUser registers a resident or driver account and returns a token.
func SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewUserService(config.DB)

	var (
		user *models.User
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(input.UserType)) {
	case models.UserTypeResident:
		user, err = svc.CreateResident(services.ResidentInput{
			Username:    input.Username,
			Password:    input.Password,
			Email:       input.Email,
			Name:        input.Name,
			HomeAddress: input.HomeAddress,
		})
	case models.UserTypeDriver:
		user, err = svc.CreateDriver(services.DriverInput{
			Username:     input.Username,
			Password:     input.Password,
			Email:        input.Email,
			Name:         input.Name,
			VehicleType:  input.VehicleType,
			LicensePlate: input.LicensePlate,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_type must be resident or driver"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.UserType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

// LoginUser checks credentials and returns a token plus the account payload.
// An unknown username and a wrong password fail the same way.
func LoginUser(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.NewUserService(config.DB).Authenticate(body.Username, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.UserType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

// prepareUserResponse constructs the JSON response map for the user,
// including the specialization fields for its type.
func prepareUserResponse(user *models.User) gin.H {
	responseUser := gin.H{
		"ID":        user.ID,
		"CreatedAt": user.CreatedAt,
		"UpdatedAt": user.UpdatedAt,
		"username":  user.Username,
		"email":     user.Email,
		"name":      user.Name,
		"user_type": user.UserType,
	}

	if user.Resident != nil {
		responseUser["home_address"] = user.Resident.HomeAddress
	}
	if user.Driver != nil {
		responseUser["vehicle_type"] = user.Driver.VehicleType
		responseUser["license_plate"] = user.Driver.LicensePlate
		responseUser["current_status"] = user.Driver.CurrentStatus
		responseUser["current_location"] = user.Driver.CurrentLocation
		responseUser["location_updated_at"] = user.Driver.LocationUpdatedAt
	}
	return responseUser
}
