package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/cadenceapp/cadence-insights-engine/docs"
	"github.com/cadenceapp/cadence-insights-engine/internal/adapters/handler/http/middleware"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/services"
)

type RouterDependencies struct {
	GoalHandler        *GoalHandler
	CheckInHandler     *CheckInHandler
	StreakHandler      *StreakHandler
	InsightsHandler    *InsightsHandler
	LeaderboardHandler *LeaderboardHandler
	TokenService       *services.TokenService
	DB                 *sqlx.DB
	Redis              *redis.Client
	RateLimit          int
	RateWindow         time.Duration
	StartTime          time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsCfg))

	if deps.Redis != nil {
		limit := deps.RateLimit
		if limit <= 0 {
			limit = 100
		}
		window := deps.RateWindow
		if window <= 0 {
			window = 1 * time.Minute
		}
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, limit, window))
	}

	router.GET("/health", func(c *gin.Context) {
		// The engine can run on the in-memory store, a missing DB or cache
		// is only unhealthy when one was actually configured.
		dbStatus := "memory"
		redisStatus := "disabled"

		if deps.DB != nil {
			dbStatus = "connected"
			if err := deps.DB.Ping(); err != nil {
				dbStatus = "unreachable"
			}
		}

		if deps.Redis != nil {
			redisStatus = "connected"
			if deps.Redis.Ping(c.Request.Context()).Err() != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode := 200
		status := "ok"
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = 503
			status = "error"
		}

		c.JSON(statusCode, gin.H{
			"status":   status,
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenService))
	{
		deps.GoalHandler.RegisterRoutes(protected)
		deps.CheckInHandler.RegisterRoutes(protected)
		deps.StreakHandler.RegisterRoutes(protected)
		deps.InsightsHandler.RegisterRoutes(protected)
		deps.LeaderboardHandler.RegisterRoutes(protected)
	}

	return router
}
