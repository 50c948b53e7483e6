package genres

import "github.com/gin-gonic/gin"

func SetupGenreRoutes(router *gin.RouterGroup, controller Controller) {
	discovery := router.Group("/discovery/genres")
	{
		discovery.GET("", controller.GetActiveGenres)      // GET /api/v1/discovery/genres
		discovery.GET("/:slug", controller.GetGenreBySlug) // GET /api/v1/discovery/genres/:slug
	}
}
