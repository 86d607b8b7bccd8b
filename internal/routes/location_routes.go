package routes

import (
	"breadvan/internal/controllers"
	"breadvan/internal/middleware"

	"github.com/gin-gonic/gin"
)

func LocationRoutes(r *gin.Engine) {
	locations := r.Group("/locations")
	{
		locations.PUT("/driver/:driverId", middleware.RequireAuthWithType("driver"), controllers.UpdateDriverLocation)
		locations.GET("/driver/:driverId", controllers.GetDriverLocation)
		locations.GET("/driver/:driverId/history", controllers.GetDriverLocationHistory)
		locations.GET("/", controllers.ListDriverLocations)
	}
}
