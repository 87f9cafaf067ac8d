package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/cadenceapp/cadence-insights-engine/internal/adapters/cache"
	adapterHTTP "github.com/cadenceapp/cadence-insights-engine/internal/adapters/handler/http"
	"github.com/cadenceapp/cadence-insights-engine/internal/adapters/notifier"
	"github.com/cadenceapp/cadence-insights-engine/internal/adapters/repository"
	"github.com/cadenceapp/cadence-insights-engine/internal/config"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/services"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/workers"
)

// @title						Cadence Insights Engine API
// @version					1.0
// @description				Aggregation and analytics engine for goals, shared streaks and daily check-ins.
// @BasePath					/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	cfg := config.Load()

	var db *sqlx.DB

	var (
		goalRepo    domain.GoalRepository
		streakRepo  domain.StreakRepository
		checkInRepo domain.CheckInRepository
		boardRepo   domain.LeaderboardRepository
	)

	if cfg.DatabaseConfigured() {
		log.Println("Connecting to database...")

		var err error
		db, err = sqlx.Connect("pgx", cfg.DatabaseDSN())
		if err != nil {
			log.Fatalf("Critical: Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		log.Println("Database connected successfully.")

		goalRepo = repository.NewPostgresGoalRepository(db)
		streakRepo = repository.NewPostgresStreakRepository(db)
		checkInRepo = repository.NewPostgresCheckInRepository(db)
		boardRepo = repository.NewPostgresLeaderboardRepository(db)
	} else {
		log.Println("DB_NAME not set, running on the in-memory store.")

		goalRepo = repository.NewInMemoryGoalRepository()
		streakRepo = repository.NewInMemoryStreakRepository()
		checkInRepo = repository.NewInMemoryCheckInRepository()
		boardRepo = repository.NewInMemoryLeaderboardRepository()
	}

	var redisClient *redis.Client
	if cfg.RedisConfigured() {
		var err error
		redisClient, err = cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Critical: Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		boardRepo = repository.NewCachedLeaderboardRepository(boardRepo, redisClient)

		log.Println("Redis connected, leaderboard cache and rate limiting enabled.")
	}

	var rankNotifier domain.Notifier
	if cfg.KafkaConfigured() {
		topic := cfg.KafkaTopic
		if topic == "" {
			topic = notifier.DefaultTopic
		}

		kafkaNotifier := notifier.NewKafkaNotifier(cfg.KafkaBrokers, topic)
		defer kafkaNotifier.Close()
		rankNotifier = kafkaNotifier

		log.Printf("Kafka notifier enabled on topic %q", topic)
	} else {
		rankNotifier = notifier.NewLogNotifier()
	}

	runWorker := workers.NewRunWorker(goalRepo, streakRepo, checkInRepo)

	goalService := services.NewGoalService(goalRepo)
	checkInService := services.NewCheckInService(checkInRepo, goalRepo, streakRepo, runWorker)
	streakService := services.NewStreakService(streakRepo, checkInRepo)
	progressService := services.NewProgressService(goalRepo, checkInRepo)
	metricsService := services.NewMetricsService(checkInRepo)
	rankingService := services.NewRankingService(checkInRepo, boardRepo, rankNotifier)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTDuration)

	rankingWorker := workers.NewRankingWorker(rankingService, cfg.RankingInterval)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	runWorker.Start(workerCtx)
	rankingWorker.Start(workerCtx)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		GoalHandler:        adapterHTTP.NewGoalHandler(goalService),
		CheckInHandler:     adapterHTTP.NewCheckInHandler(checkInService),
		StreakHandler:      adapterHTTP.NewStreakHandler(streakService),
		InsightsHandler:    adapterHTTP.NewInsightsHandler(progressService, metricsService),
		LeaderboardHandler: adapterHTTP.NewLeaderboardHandler(rankingService),
		TokenService:       tokenService,
		DB:                 db,
		Redis:              redisClient,
		RateLimit:          cfg.RateLimit,
		RateWindow:         cfg.RateWindow,
		StartTime:          startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Cadence Insights Engine running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
