package routes

import (
	"breadvan/internal/controllers"
	"breadvan/internal/middleware"

	"github.com/gin-gonic/gin"
)

func StopRequestRoutes(r *gin.Engine) {
	stops := r.Group("/stop-requests")
	{
		stops.POST("/", middleware.RequireAuthWithType("resident"), controllers.CreateStopRequest)
		stops.GET("/resident/:residentId", controllers.ListStopRequestsByResident)
		stops.GET("/schedule/:scheduleId", controllers.ListStopRequestsBySchedule)
	}

	r.PUT("/stop-request/:id/status", middleware.RequireAuthWithType("driver"), controllers.UpdateStopRequestStatus)
}
