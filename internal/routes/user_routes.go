package routes

import (
	"breadvan/internal/controllers"
	"breadvan/internal/middleware"

	"github.com/gin-gonic/gin"
)

func UserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.GET("/", controllers.ListUsers)
		users.GET("/:id", controllers.GetUser)
		users.DELETE("/:id", middleware.RequireAuth(), controllers.DeleteUser)
	}
}
