package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubly/api/routes"
	"clubly/internal/sales"
	"clubly/internal/shared/config"
	"clubly/internal/shared/database"
	"clubly/internal/shared/middleware"
	"clubly/pkg/logger"
	"clubly/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// @title           Clubly Discovery API
// @version         1.0
// @description     Nightlife event and club discovery: availability, price labels, price tiers and genre ranking.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	appLogger = logger.New()
	logger.SetDefault(appLogger)
	appLogger.Info("Starting clubly discovery",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("commit", GitCommit),
	)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("Failed to initialize databases", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.Redis, &ratelimit.Config{
			Enabled:           cfg.RateLimit.Enabled,
			WindowDuration:    cfg.RateLimit.WindowDuration,
			DefaultRequests:   cfg.RateLimit.DefaultRequests,
			DiscoveryRequests: cfg.RateLimit.DiscoveryRequests,
			AdminRequests:     cfg.RateLimit.AdminRequests,
			HealthRequests:    cfg.RateLimit.HealthRequests,
			WhitelistedIPs:    cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("discovery_requests", cfg.RateLimit.DiscoveryRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	var publisher *sales.KafkaPublisher
	if cfg.Kafka.Enabled {
		publisherConfig := sales.DefaultPublisherConfig()
		publisherConfig.Brokers = cfg.Kafka.Brokers
		publisherConfig.Topic = cfg.Kafka.AvailabilityTopic

		publisher, err = sales.NewKafkaPublisher(publisherConfig)
		if err != nil {
			appLogger.Error("Failed to create availability publisher, continuing without it", slog.Any("error", err))
			publisher = nil
		} else {
			defer func() {
				if err := publisher.Close(); err != nil {
					appLogger.Error("Error closing availability publisher", slog.Any("error", err))
				}
			}()
		}
	}

	var appRouter *routes.Router
	if publisher != nil {
		appRouter = routes.NewRouter(cfg, db, publisher)
	} else {
		appRouter = routes.NewRouter(cfg, db, nil)
	}

	if cfg.Kafka.Enabled {
		consumer, err := sales.NewPurchaseConsumer(&sales.ConsumerConfig{
			Brokers:           cfg.Kafka.Brokers,
			GroupID:           cfg.Kafka.GroupID,
			Topics:            []string{cfg.Kafka.PurchaseTopic},
			SessionTimeout:    30 * time.Second,
			Heartbeat:         3 * time.Second,
			MaxProcessingTime: time.Minute,
			OffsetOldest:      cfg.Kafka.OffsetOldest,
			MaxRetries:        cfg.Kafka.MaxRetries,
			RetryBackoff:      cfg.Kafka.RetryBackoff,
		}, appRouter.SalesService())
		if err != nil {
			appLogger.Error("Failed to create purchase consumer, sales counters will not update", slog.Any("error", err))
		} else {
			consumer.Start(cfg.Kafka.Workers)
			appRouter.SetConsumer(consumer)
			defer func() {
				if err := consumer.Stop(); err != nil {
					appLogger.Error("Error stopping purchase consumer", slog.Any("error", err))
				}
			}()
		}
	} else {
		appLogger.Info("Kafka disabled, purchase ingestion is off")
	}

	jobCtx, jobCancel := context.WithCancel(context.Background())
	defer jobCancel()
	tierJob := appRouter.TierJob()
	tierJob.Start(jobCtx)
	defer tierJob.Stop()

	router := setupRouter(cfg, appRouter, rateLimiter)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.Bool("kafka", cfg.Kafka.Enabled),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, appRouter *routes.Router, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(middleware.RequestLogger(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	appRouter.SetupRoutes(engine)
	return engine
}
