// api/routes/router.go
package routes

import (
	"context"
	"net/http"
	"time"

	_ "clubly/docs"
	"clubly/internal/clubs"
	"clubly/internal/events"
	"clubly/internal/genres"
	"clubly/internal/sales"
	"clubly/internal/shared/config"
	"clubly/internal/shared/database"
	"clubly/internal/shared/middleware"
	"clubly/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const serviceName = "clubly-discovery"

// HealthChecker is implemented by background workers reported on /status
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Router wires the discovery services and their HTTP routes
type Router struct {
	config *config.Config
	db     *database.DB

	genreService genres.Service
	eventService events.Service
	clubService  clubs.Service
	salesService sales.Service
	tierJob      *clubs.TierJob
	consumer     HealthChecker
}

// NewRouter builds every service. publisher may be nil when Kafka is disabled.
func NewRouter(cfg *config.Config, db *database.DB, publisher sales.Publisher) *Router {
	pg := db.PostgreSQL

	var cacheService cache.Service
	if db.Redis != nil {
		cacheService = cache.NewService(db.Redis)
	}

	genreService := genres.NewService(genres.NewRepository(pg))

	eventService := events.NewService(
		events.NewRepository(pg),
		events.NewPresenter(cfg.Discovery.DefaultFromPrice, cfg.Discovery.Currency),
		events.Options{
			DefaultPageSize: cfg.Discovery.DefaultPageSize,
			MaxPageSize:     cfg.Discovery.MaxPageSize,
			ListingCacheTTL: cfg.Discovery.ListingCacheTTL,
		},
	)

	salesRepo := sales.NewRepository(pg)
	var salesService sales.Service
	if publisher != nil {
		salesService = sales.NewServiceWithPublisher(salesRepo, eventService, publisher)
	} else {
		salesService = sales.NewService(salesRepo, eventService)
	}
	eventService.SetSalesReader(salesService)

	clubService := clubs.NewService(clubs.NewRepository(pg), eventService, cfg.Discovery.DefaultPageSize, cfg.Discovery.MaxPageSize)

	if cacheService != nil {
		genreService.SetCacheService(cacheService)
		eventService.SetCacheService(cacheService)
		clubService.SetCacheService(cacheService)
	}

	tierJob := clubs.NewTierJob(clubService, &clubs.JobConfig{
		Interval:     cfg.Discovery.TierRecomputeInterval,
		RunOnStartup: cfg.Discovery.TierRecomputeOnStartup,
	})

	return &Router{
		config:       cfg,
		db:           db,
		genreService: genreService,
		eventService: eventService,
		clubService:  clubService,
		salesService: salesService,
		tierJob:      tierJob,
	}
}

func (r *Router) SalesService() sales.Service {
	return r.salesService
}

func (r *Router) TierJob() *clubs.TierJob {
	return r.tierJob
}

// SetConsumer registers the purchase consumer for status reporting
func (r *Router) SetConsumer(consumer HealthChecker) {
	r.consumer = consumer
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.JWTAuthWithConfig(r.config)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		genres.SetupGenreRoutes(api, genres.NewController(r.genreService))
		events.SetupEventRoutes(api, events.NewController(r.eventService))
		sales.SetupSalesRoutes(api, sales.NewController(r.salesService), auth)
		clubs.SetupClubRoutes(api, clubs.NewController(r.clubService, r.tierJob), auth)
	}
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   serviceName,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		kafkaStatus := gin.H{"enabled": r.config.Kafka.Enabled, "consumer": "stopped"}
		if r.consumer != nil {
			if err := r.consumer.HealthCheck(c.Request.Context()); err != nil {
				kafkaStatus["consumer"] = err.Error()
			} else {
				kafkaStatus["consumer"] = "running"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
			"sales":       kafkaStatus,
			"price_tiers": r.tierJob.Status(),
		})
	})
}
