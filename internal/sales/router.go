package sales

import (
	"clubly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSalesRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	sales := rg.Group("/discovery/events")
	sales.Use(auth, middleware.RequireAdmin())
	{
		sales.GET("/:id/sales", controller.GetEventSales) // GET /api/v1/discovery/events/:id/sales
	}
}
