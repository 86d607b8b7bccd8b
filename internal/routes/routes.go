package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine with recovery and request logging installed
// before any route, so every handler runs under them.
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r)
	UserRoutes(r)
	ScheduleRoutes(r)
	StopRequestRoutes(r)
	LocationRoutes(r)

	return r
}
