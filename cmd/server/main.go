package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/fieldsim/gridiron/internal/api/handlers"
	"github.com/fieldsim/gridiron/internal/cache"
	"github.com/fieldsim/gridiron/internal/engine"
	"github.com/fieldsim/gridiron/internal/models"
	"github.com/fieldsim/gridiron/internal/roster"
	"github.com/fieldsim/gridiron/pkg/config"
	"github.com/fieldsim/gridiron/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	logger.WithService("season-rating-service").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
		"season":      cfg.SeasonYear,
	}).Info("Starting Season Rating Service")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to Redis when enabled; the engine works without it, the
	// query cache just stays off.
	var redisClient *redis.Client
	var queryCache *cache.QueryCache
	if cfg.RedisEnabled {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.WithService("season-rating-service").Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.WithService("season-rating-service").Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		queryCache, err = cache.NewQueryCache(cache.Config{
			RedisURL:   cfg.RedisURL,
			DefaultTTL: cfg.LeadersCacheTTL,
			KeyPrefix:  "gridiron:",
		})
		if err != nil {
			logger.WithService("season-rating-service").Fatalf("Failed to initialize query cache: %v", err)
		}
		defer queryCache.Close()
	}

	seasonEngine := engine.NewEngine(cfg.SeasonYear, cfg.RecentFormWindow)
	rosterManager := roster.NewManager(cfg.SeasonYear)

	seasonHandler := handlers.NewSeasonHandler(seasonEngine, queryCache, structuredLogger)
	rosterHandler := handlers.NewRosterHandler(rosterManager, seasonEngine, structuredLogger)
	healthHandler := handlers.NewHealthHandler(seasonEngine, redisClient)

	// Scheduled leaderboard cache refresh keeps hot leaderboards warm
	// between games.
	var scheduler *cron.Cron
	if queryCache != nil && cfg.LeadersRefreshCron != "" {
		refreshStats := make([]models.StatCategory, 0, len(cfg.LeadersRefreshStats))
		for _, raw := range cfg.LeadersRefreshStats {
			category, err := models.ParseStatCategory(raw)
			if err != nil {
				logger.WithService("season-rating-service").WithField("stat", raw).Warn("Skipping unknown stat in refresh list")
				continue
			}
			refreshStats = append(refreshStats, category)
		}

		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.LeadersRefreshCron, func() {
			seasonHandler.RefreshLeaderboards(refreshStats, cfg.LeadersMinGames)
		})
		if err != nil {
			logger.WithService("season-rating-service").Fatalf("Invalid leaderboard refresh schedule: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	apiV1 := router.Group("/api/v1")
	{
		// Player registration and game recording
		apiV1.POST("/players", seasonHandler.RegisterPlayer)
		apiV1.POST("/players/:key/games", seasonHandler.RecordGame)

		// Rating queries
		apiV1.GET("/players/:key/summary", seasonHandler.GetSummary)
		apiV1.GET("/players/:key/ratings", seasonHandler.GetRatings)
		apiV1.GET("/leaders", seasonHandler.GetLeaders)
		apiV1.GET("/movers/:direction", seasonHandler.GetMovers)

		// Season persistence
		apiV1.POST("/season/export", seasonHandler.ExportSeason)
		apiV1.POST("/season/import", seasonHandler.ImportSeason)

		// Roster management
		apiV1.POST("/rosters/trade", rosterHandler.TradePlayer)
		apiV1.POST("/rosters/free-agents", rosterHandler.PoolFreeAgent)
		apiV1.GET("/rosters/free-agents", rosterHandler.ListFreeAgents)
		apiV1.POST("/rosters/:team/players", rosterHandler.SignPlayer)
		apiV1.GET("/rosters/:team/analysis", rosterHandler.GetAnalysis)
	}

	router.GET("/health", healthHandler.GetHealth)
	router.HEAD("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithService("season-rating-service").WithField("port", cfg.Port).Info("Season rating service started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("season-rating-service").Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("season-rating-service").Info("Shutting down season rating service...")

	// Snapshot the season before exit so a restart can re-import it.
	if cfg.ExportPath != "" {
		if err := seasonEngine.ExportSeasonData(cfg.ExportPath); err != nil {
			logger.WithService("season-rating-service").WithError(err).Warn("Failed to export season on shutdown")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithService("season-rating-service").Fatalf("Season rating service forced to shutdown: %v", err)
	}

	logger.WithService("season-rating-service").Info("Season rating service exited")
}
