package routes

import (
	"breadvan/internal/controllers"
	"breadvan/internal/middleware"

	"github.com/gin-gonic/gin"
)

func ScheduleRoutes(r *gin.Engine) {
	schedules := r.Group("/schedules")
	{
		schedules.POST("/", middleware.RequireAuthWithType("driver"), controllers.CreateSchedule)
		schedules.GET("/", controllers.ListSchedulesByStreet)
		schedules.GET("/upcoming", controllers.ListUpcomingSchedules)
		schedules.GET("/driver/:driverId", controllers.ListSchedulesByDriver)
	}

	// Singular prefix keeps the id parameter away from the static
	// /schedules children, which gin's route tree will not mix.
	r.GET("/schedule/:id", controllers.GetSchedule)
}
