package clubs

import (
	"clubly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupClubRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	discovery := rg.Group("/discovery/clubs")
	{
		discovery.GET("", controller.ListClubs)                   // GET /api/v1/discovery/clubs
		discovery.GET("/:id", controller.GetClub)                 // GET /api/v1/discovery/clubs/:id
		discovery.GET("/:id/price-tier", controller.GetPriceTier) // GET /api/v1/discovery/clubs/:id/price-tier
	}

	admin := rg.Group("/admin/clubs")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.POST("/price-tier/recompute", controller.RecomputeAll)           // POST /api/v1/admin/clubs/price-tier/recompute
		admin.GET("/price-tier/job", controller.GetJobStatus)                  // GET /api/v1/admin/clubs/price-tier/job
		admin.POST("/:id/price-tier/recompute", controller.RecomputePriceTier) // POST /api/v1/admin/clubs/:id/price-tier/recompute
	}
}
