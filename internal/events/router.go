package events

import "github.com/gin-gonic/gin"

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	discovery := router.Group("/discovery/events")
	{
		discovery.GET("", controller.ListEvents)                       // GET /api/v1/discovery/events
		discovery.GET("/:id", controller.GetEvent)                     // GET /api/v1/discovery/events/:id
		discovery.GET("/:id/availability", controller.GetAvailability) // GET /api/v1/discovery/events/:id/availability
	}
}
